package dto

import "github.com/google/uuid"

type CheckoutRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	FeeTypes  []string  `json:"fee_types,omitempty"`

	FirstName string `json:"first_name" validate:"required,max=60"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=60"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=20"`
}
