package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleDTO struct {
	Name   string          `json:"name" validate:"required,max=5"`
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
	Fare   decimal.Decimal `json:"fare" validate:"gte=0"`
	Status string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

func TestNewValidator_DecimalAndJSONNames(t *testing.T) {
	v := NewValidator()

	ok := sampleDTO{Name: "abc", Amount: decimal.NewFromInt(10), Fare: decimal.Zero, Status: "active"}
	require.NoError(t, v.Struct(ok))

	bad := sampleDTO{Name: "", Amount: decimal.Zero, Fare: decimal.NewFromInt(-1), Status: "gone"}
	err := v.Struct(bad)
	require.Error(t, err)

	fields := ValidationErrors(err)
	assert.Equal(t, []string{"is required"}, fields["name"])
	assert.Equal(t, []string{"must be greater than 0"}, fields["amount"])
	assert.Equal(t, []string{"must be greater than or equal to 0"}, fields["fare"])
	assert.Equal(t, []string{"must be one of [active inactive]"}, fields["status"])
}

func TestValidationErrors_NonValidatorError(t *testing.T) {
	fields := ValidationErrors(errors.New("boom"))
	assert.Equal(t, map[string][]string{"_": {"boom"}}, fields)
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pgx unique", &pgconn.PgError{Code: "23505", ConstraintName: "uq_fee_submissions_utr"}, true},
		{"pgx wrapped", fmt.Errorf("create fee submission: %w", &pgconn.PgError{Code: "23505"}), true},
		{"pgx fk", &pgconn.PgError{Code: "23503", Message: "duplicate key mentioned in detail"}, false},
		{"lib/pq unique", &pq.Error{Code: "23505"}, true},
		{"lib/pq fk", &pq.Error{Code: "23503"}, false},
		{"formatted text", errors.New(`ERROR: duplicate key value violates unique constraint "uq_class_fees_class_type" (SQLSTATE 23505)`), true},
		{"other", errors.New("connection refused"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsUniqueViolation(tc.err))
		})
	}
}
