package model

import "github.com/google/uuid"

// Student: read-only view of the students directory, dipakai untuk
// mengisi profil baris ledger hasil fan-out.
type Student struct {
	StudentID      uuid.UUID `json:"student_id" gorm:"column:student_id;type:uuid;primaryKey"`
	StudentName    string    `json:"student_name" gorm:"column:student_name"`
	StudentRollNo  *string   `json:"student_roll_no,omitempty" gorm:"column:student_roll_no"`
	StudentClass   string    `json:"student_class" gorm:"column:student_class"`
	StudentSection *string   `json:"student_section,omitempty" gorm:"column:student_section"`
}

func (Student) TableName() string { return "students" }
