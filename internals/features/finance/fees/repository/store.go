// file: internals/features/finance/fees/repository/store.go
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"schoolfee_backend/internals/features/finance/fees/model"
)

// Store: akses persistence untuk fitur fees.
// Not found selalu dikembalikan sebagai gorm.ErrRecordNotFound.
type Store interface {
	// class_fees
	ListClassFees(ctx context.Context, f ClassFeeFilter) ([]model.ClassFee, error)
	GetClassFee(ctx context.Context, id uuid.UUID) (model.ClassFee, error)
	FindClassFee(ctx context.Context, class, feeType string) (model.ClassFee, error)
	CreateClassFee(ctx context.Context, m *model.ClassFee) error
	UpdateClassFee(ctx context.Context, m *model.ClassFee) error
	DeleteClassFee(ctx context.Context, id uuid.UUID) error

	// student_fees
	ListStudentFees(ctx context.Context, f StudentFeeFilter) ([]model.StudentFee, error)
	CountStudentFees(ctx context.Context, f StudentFeeFilter) (int64, error)
	GetStudentFee(ctx context.Context, id uuid.UUID) (model.StudentFee, error)
	CreateStudentFees(ctx context.Context, rows []model.StudentFee) error
	UpdateStudentFee(ctx context.Context, m *model.StudentFee) error
	DeleteStudentFee(ctx context.Context, id uuid.UUID) error

	// transport_assignments
	ListTransportAssignments(ctx context.Context, studentID *uuid.UUID) ([]model.TransportAssignment, error)
	FindActiveTransportAssignment(ctx context.Context, studentID uuid.UUID) (model.TransportAssignment, error)
	SaveTransportAssignment(ctx context.Context, m *model.TransportAssignment) error

	// fee_submissions
	ListFeeSubmissions(ctx context.Context, f FeeSubmissionFilter) ([]model.FeeSubmission, error)
	GetFeeSubmission(ctx context.Context, id uuid.UUID, forUpdate bool) (model.FeeSubmission, error)
	FindFeeSubmissionByUTR(ctx context.Context, utr string) (model.FeeSubmission, error)
	CreateFeeSubmission(ctx context.Context, m *model.FeeSubmission) error
	DeleteFeeSubmission(ctx context.Context, id uuid.UUID) error

	// students (read-only)
	GetStudent(ctx context.Context, id uuid.UUID) (model.Student, error)

	// Transaction: fn dijalankan atomik; error apa pun → rollback semua tulisan.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type ClassFeeFilter struct {
	Class   string
	FeeType string
}

type StudentFeeFilter struct {
	StudentID *uuid.UUID
	Class     string
	FeeType   string
	UTRNumber string
	DateFrom  *time.Time
	DateTo    *time.Time

	// Urutan: kolom fisik (whitelist di controller); kosong → created_at ASC
	OrderBy   string
	OrderDesc bool

	Limit  int // 0 = tanpa batas
	Offset int
}

type FeeSubmissionFilter struct {
	StudentID *uuid.UUID
	Status    string
}
