// file: internals/features/finance/fees/repository/gorm_store.go
package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolfee_backend/internals/features/finance/fees/model"
)

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) db(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx)
}

// =====================================================================
// class_fees
// =====================================================================

func (s *GormStore) ListClassFees(ctx context.Context, f ClassFeeFilter) ([]model.ClassFee, error) {
	q := s.db(ctx).Model(&model.ClassFee{})
	if v := strings.TrimSpace(f.Class); v != "" {
		q = q.Where("class_fee_class = ?", v)
	}
	if v := strings.TrimSpace(f.FeeType); v != "" {
		q = q.Where("class_fee_fee_type = ?", v)
	}
	var out []model.ClassFee
	if err := q.Order("class_fee_class ASC, class_fee_created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) GetClassFee(ctx context.Context, id uuid.UUID) (model.ClassFee, error) {
	var m model.ClassFee
	err := s.db(ctx).First(&m, "class_fee_id = ?", id).Error
	return m, err
}

func (s *GormStore) FindClassFee(ctx context.Context, class, feeType string) (model.ClassFee, error) {
	var m model.ClassFee
	err := s.db(ctx).
		Where("class_fee_class = ? AND class_fee_fee_type = ?", strings.TrimSpace(class), strings.TrimSpace(feeType)).
		Order("class_fee_updated_at DESC").
		First(&m).Error
	return m, err
}

func (s *GormStore) CreateClassFee(ctx context.Context, m *model.ClassFee) error {
	return s.db(ctx).Create(m).Error
}

func (s *GormStore) UpdateClassFee(ctx context.Context, m *model.ClassFee) error {
	return s.db(ctx).Save(m).Error
}

func (s *GormStore) DeleteClassFee(ctx context.Context, id uuid.UUID) error {
	res := s.db(ctx).Delete(&model.ClassFee{}, "class_fee_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// =====================================================================
// student_fees
// =====================================================================

func (s *GormStore) studentFeeQuery(ctx context.Context, f StudentFeeFilter) *gorm.DB {
	q := s.db(ctx).Model(&model.StudentFee{})
	if f.StudentID != nil {
		q = q.Where("student_fee_student_id = ?", *f.StudentID)
	}
	if v := strings.TrimSpace(f.Class); v != "" {
		q = q.Where("student_fee_class = ?", v)
	}
	if v := strings.TrimSpace(f.FeeType); v != "" {
		q = q.Where("student_fee_fee_type = ?", v)
	}
	if v := strings.TrimSpace(f.UTRNumber); v != "" {
		q = q.Where("student_fee_utr_number = ?", v)
	}
	if f.DateFrom != nil {
		q = q.Where("student_fee_created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("student_fee_created_at <= ?", *f.DateTo)
	}
	return q
}

func (s *GormStore) ListStudentFees(ctx context.Context, f StudentFeeFilter) ([]model.StudentFee, error) {
	q := s.studentFeeQuery(ctx, f)

	col := f.OrderBy
	if col == "" {
		col = "student_fee_created_at"
	}
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: f.OrderDesc})
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var out []model.StudentFee
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) CountStudentFees(ctx context.Context, f StudentFeeFilter) (int64, error) {
	var total int64
	err := s.studentFeeQuery(ctx, f).Count(&total).Error
	return total, err
}

func (s *GormStore) GetStudentFee(ctx context.Context, id uuid.UUID) (model.StudentFee, error) {
	var m model.StudentFee
	err := s.db(ctx).First(&m, "student_fee_id = ?", id).Error
	return m, err
}

func (s *GormStore) CreateStudentFees(ctx context.Context, rows []model.StudentFee) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db(ctx).Create(&rows).Error
}

func (s *GormStore) UpdateStudentFee(ctx context.Context, m *model.StudentFee) error {
	return s.db(ctx).Save(m).Error
}

func (s *GormStore) DeleteStudentFee(ctx context.Context, id uuid.UUID) error {
	res := s.db(ctx).Delete(&model.StudentFee{}, "student_fee_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// =====================================================================
// transport_assignments
// =====================================================================

func (s *GormStore) ListTransportAssignments(ctx context.Context, studentID *uuid.UUID) ([]model.TransportAssignment, error) {
	q := s.db(ctx).Model(&model.TransportAssignment{})
	if studentID != nil {
		q = q.Where("transport_assignment_student_id = ?", *studentID)
	}
	var out []model.TransportAssignment
	if err := q.Order("transport_assignment_updated_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) FindActiveTransportAssignment(ctx context.Context, studentID uuid.UUID) (model.TransportAssignment, error) {
	var m model.TransportAssignment
	err := s.db(ctx).
		Where("transport_assignment_student_id = ? AND LOWER(transport_assignment_status) = ?", studentID, model.TransportStatusActive).
		Order("transport_assignment_updated_at DESC").
		First(&m).Error
	return m, err
}

func (s *GormStore) SaveTransportAssignment(ctx context.Context, m *model.TransportAssignment) error {
	if m.TransportAssignmentID == uuid.Nil {
		m.TransportAssignmentID = uuid.New()
		return s.db(ctx).Create(m).Error
	}
	return s.db(ctx).Save(m).Error
}

// =====================================================================
// fee_submissions
// =====================================================================

func (s *GormStore) ListFeeSubmissions(ctx context.Context, f FeeSubmissionFilter) ([]model.FeeSubmission, error) {
	q := s.db(ctx).Model(&model.FeeSubmission{})
	if f.StudentID != nil {
		q = q.Where("fee_submission_student_id = ?", *f.StudentID)
	}
	if v := strings.TrimSpace(f.Status); v != "" {
		q = q.Where("fee_submission_status = ?", v)
	}
	var out []model.FeeSubmission
	if err := q.Order("fee_submission_created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) GetFeeSubmission(ctx context.Context, id uuid.UUID, forUpdate bool) (model.FeeSubmission, error) {
	q := s.db(ctx)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var m model.FeeSubmission
	err := q.First(&m, "fee_submission_id = ?", id).Error
	return m, err
}

func (s *GormStore) FindFeeSubmissionByUTR(ctx context.Context, utr string) (model.FeeSubmission, error) {
	var m model.FeeSubmission
	err := s.db(ctx).First(&m, "fee_submission_utr_number = ?", strings.TrimSpace(utr)).Error
	return m, err
}

func (s *GormStore) CreateFeeSubmission(ctx context.Context, m *model.FeeSubmission) error {
	return s.db(ctx).Create(m).Error
}

func (s *GormStore) DeleteFeeSubmission(ctx context.Context, id uuid.UUID) error {
	res := s.db(ctx).Delete(&model.FeeSubmission{}, "fee_submission_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// =====================================================================
// students
// =====================================================================

func (s *GormStore) GetStudent(ctx context.Context, id uuid.UUID) (model.Student, error) {
	var m model.Student
	err := s.db(ctx).First(&m, "student_id = ?", id).Error
	return m, err
}

// =====================================================================
// tx
// =====================================================================

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{DB: tx})
	})
}
