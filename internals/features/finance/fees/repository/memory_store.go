// file: internals/features/finance/fees/repository/memory_store.go
package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolfee_backend/internals/features/finance/fees/model"
)

// MemoryStore: Store in-memory (tests & demo lokal).
// FailOn[namaMethod] membuat method tsb mengembalikan error yang diberikan.
type MemoryStore struct {
	mu sync.Mutex
	// txMu: satu Transaction dalam satu waktu (seperti FOR UPDATE di postgres).
	// Tulis di luar Transaction tidak ikut dikunci dan bisa hilang saat rollback.
	txMu sync.Mutex

	classFees   []model.ClassFee
	studentFees []model.StudentFee
	transports  []model.TransportAssignment
	submissions []model.FeeSubmission
	students    []model.Student

	FailOn map[string]error
	Now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{FailOn: map[string]error{}, Now: time.Now}
}

type memorySnapshot struct {
	classFees   []model.ClassFee
	studentFees []model.StudentFee
	transports  []model.TransportAssignment
	submissions []model.FeeSubmission
}

func (s *MemoryStore) fail(op string) error {
	if s.FailOn == nil {
		return nil
	}
	return s.FailOn[op]
}

func (s *MemoryStore) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Seed helpers (tanpa validasi)
func (s *MemoryStore) AddStudent(st model.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students = append(s.students, st)
}

// =====================================================================
// class_fees
// =====================================================================

func (s *MemoryStore) ListClassFees(ctx context.Context, f ClassFeeFilter) ([]model.ClassFee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListClassFees"); err != nil {
		return nil, err
	}
	out := make([]model.ClassFee, 0, len(s.classFees))
	for _, m := range s.classFees {
		if v := strings.TrimSpace(f.Class); v != "" && m.ClassFeeClass != v {
			continue
		}
		if v := strings.TrimSpace(f.FeeType); v != "" && m.ClassFeeFeeType != v {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *MemoryStore) GetClassFee(ctx context.Context, id uuid.UUID) (model.ClassFee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.classFees {
		if m.ClassFeeID == id {
			return m, nil
		}
	}
	return model.ClassFee{}, gorm.ErrRecordNotFound
}

func (s *MemoryStore) FindClassFee(ctx context.Context, class, feeType string) (model.ClassFee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindClassFee"); err != nil {
		return model.ClassFee{}, err
	}
	class, feeType = strings.TrimSpace(class), strings.TrimSpace(feeType)
	for _, m := range s.classFees {
		if m.ClassFeeClass == class && m.ClassFeeFeeType == feeType {
			return m, nil
		}
	}
	return model.ClassFee{}, gorm.ErrRecordNotFound
}

func (s *MemoryStore) CreateClassFee(ctx context.Context, m *model.ClassFee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateClassFee"); err != nil {
		return err
	}
	for _, x := range s.classFees {
		if x.ClassFeeClass == m.ClassFeeClass && x.ClassFeeFeeType == m.ClassFeeFeeType {
			return errDuplicateKey
		}
	}
	if m.ClassFeeID == uuid.Nil {
		m.ClassFeeID = uuid.New()
	}
	now := s.now()
	m.ClassFeeCreatedAt, m.ClassFeeUpdatedAt = now, now
	s.classFees = append(s.classFees, *m)
	return nil
}

func (s *MemoryStore) UpdateClassFee(ctx context.Context, m *model.ClassFee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.classFees {
		if s.classFees[i].ClassFeeID == m.ClassFeeID {
			m.ClassFeeUpdatedAt = s.now()
			s.classFees[i] = *m
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *MemoryStore) DeleteClassFee(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.classFees {
		if s.classFees[i].ClassFeeID == id {
			s.classFees = append(s.classFees[:i], s.classFees[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// =====================================================================
// student_fees
// =====================================================================

func (s *MemoryStore) filterStudentFees(f StudentFeeFilter) []model.StudentFee {
	out := make([]model.StudentFee, 0, len(s.studentFees))
	for _, m := range s.studentFees {
		if f.StudentID != nil && (m.StudentFeeStudentID == nil || *m.StudentFeeStudentID != *f.StudentID) {
			continue
		}
		if v := strings.TrimSpace(f.Class); v != "" && m.StudentFeeClass != v {
			continue
		}
		if v := strings.TrimSpace(f.FeeType); v != "" && m.StudentFeeFeeType != v {
			continue
		}
		if v := strings.TrimSpace(f.UTRNumber); v != "" && (m.StudentFeeUTRNumber == nil || *m.StudentFeeUTRNumber != v) {
			continue
		}
		if f.DateFrom != nil && m.StudentFeeCreatedAt.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && m.StudentFeeCreatedAt.After(*f.DateTo) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (s *MemoryStore) ListStudentFees(ctx context.Context, f StudentFeeFilter) ([]model.StudentFee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ListStudentFees"); err != nil {
		return nil, err
	}
	out := s.filterStudentFees(f)

	less := func(a, b model.StudentFee) bool { return a.StudentFeeCreatedAt.Before(b.StudentFeeCreatedAt) }
	switch f.OrderBy {
	case "student_fee_paid_amount":
		less = func(a, b model.StudentFee) bool { return a.StudentFeePaidAmount.LessThan(b.StudentFeePaidAmount) }
	case "student_fee_fee_type":
		less = func(a, b model.StudentFee) bool { return a.StudentFeeFeeType < b.StudentFeeFeeType }
	case "student_fee_student_name":
		less = func(a, b model.StudentFee) bool { return a.StudentFeeStudentName < b.StudentFeeStudentName }
	}
	sort.SliceStable(out, func(i, j int) bool {
		if f.OrderDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})

	if f.Limit > 0 {
		if f.Offset >= len(out) {
			return []model.StudentFee{}, nil
		}
		end := f.Offset + f.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[f.Offset:end]
	}
	return out, nil
}

func (s *MemoryStore) CountStudentFees(ctx context.Context, f StudentFeeFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CountStudentFees"); err != nil {
		return 0, err
	}
	return int64(len(s.filterStudentFees(f))), nil
}

func (s *MemoryStore) GetStudentFee(ctx context.Context, id uuid.UUID) (model.StudentFee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.studentFees {
		if m.StudentFeeID == id {
			return m, nil
		}
	}
	return model.StudentFee{}, gorm.ErrRecordNotFound
}

func (s *MemoryStore) CreateStudentFees(ctx context.Context, rows []model.StudentFee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateStudentFees"); err != nil {
		return err
	}
	now := s.now()
	for i := range rows {
		if rows[i].StudentFeeID == uuid.Nil {
			rows[i].StudentFeeID = uuid.New()
		}
		if rows[i].StudentFeeCreatedAt.IsZero() {
			rows[i].StudentFeeCreatedAt = now
		}
		rows[i].StudentFeeUpdatedAt = now
	}
	s.studentFees = append(s.studentFees, rows...)
	return nil
}

func (s *MemoryStore) UpdateStudentFee(ctx context.Context, m *model.StudentFee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.studentFees {
		if s.studentFees[i].StudentFeeID == m.StudentFeeID {
			m.StudentFeeUpdatedAt = s.now()
			s.studentFees[i] = *m
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *MemoryStore) DeleteStudentFee(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.studentFees {
		if s.studentFees[i].StudentFeeID == id {
			s.studentFees = append(s.studentFees[:i], s.studentFees[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// =====================================================================
// transport_assignments
// =====================================================================

func (s *MemoryStore) ListTransportAssignments(ctx context.Context, studentID *uuid.UUID) ([]model.TransportAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.TransportAssignment, 0, len(s.transports))
	for _, m := range s.transports {
		if studentID != nil && m.TransportAssignmentStudentID != *studentID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *MemoryStore) FindActiveTransportAssignment(ctx context.Context, studentID uuid.UUID) (model.TransportAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FindActiveTransportAssignment"); err != nil {
		return model.TransportAssignment{}, err
	}
	// yang paling akhir disimpan menang
	for i := len(s.transports) - 1; i >= 0; i-- {
		m := s.transports[i]
		if m.TransportAssignmentStudentID == studentID && m.IsActive() {
			return m, nil
		}
	}
	return model.TransportAssignment{}, gorm.ErrRecordNotFound
}

func (s *MemoryStore) SaveTransportAssignment(ctx context.Context, m *model.TransportAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	m.TransportAssignmentUpdatedAt = now
	if m.TransportAssignmentID != uuid.Nil {
		for i := range s.transports {
			if s.transports[i].TransportAssignmentID == m.TransportAssignmentID {
				s.transports = append(s.transports[:i], s.transports[i+1:]...)
				break
			}
		}
	} else {
		m.TransportAssignmentID = uuid.New()
		m.TransportAssignmentCreatedAt = now
	}
	s.transports = append(s.transports, *m)
	return nil
}

// =====================================================================
// fee_submissions
// =====================================================================

func (s *MemoryStore) ListFeeSubmissions(ctx context.Context, f FeeSubmissionFilter) ([]model.FeeSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.FeeSubmission, 0, len(s.submissions))
	for _, m := range s.submissions {
		if f.StudentID != nil && m.FeeSubmissionStudentID != *f.StudentID {
			continue
		}
		if v := strings.TrimSpace(f.Status); v != "" && m.FeeSubmissionStatus != v {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *MemoryStore) GetFeeSubmission(ctx context.Context, id uuid.UUID, forUpdate bool) (model.FeeSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetFeeSubmission"); err != nil {
		return model.FeeSubmission{}, err
	}
	for _, m := range s.submissions {
		if m.FeeSubmissionID == id {
			return m, nil
		}
	}
	return model.FeeSubmission{}, gorm.ErrRecordNotFound
}

func (s *MemoryStore) FindFeeSubmissionByUTR(ctx context.Context, utr string) (model.FeeSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	utr = strings.TrimSpace(utr)
	for _, m := range s.submissions {
		if m.FeeSubmissionUTRNumber == utr {
			return m, nil
		}
	}
	return model.FeeSubmission{}, gorm.ErrRecordNotFound
}

func (s *MemoryStore) CreateFeeSubmission(ctx context.Context, m *model.FeeSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateFeeSubmission"); err != nil {
		return err
	}
	if m.FeeSubmissionID == uuid.Nil {
		m.FeeSubmissionID = uuid.New()
	}
	if m.FeeSubmissionStatus == "" {
		m.FeeSubmissionStatus = model.FeeSubmissionStatusPending
	}
	// uq_fee_submissions_utr
	for _, x := range s.submissions {
		if x.FeeSubmissionUTRNumber == m.FeeSubmissionUTRNumber {
			return errDuplicateKey
		}
	}
	if m.FeeSubmissionCreatedAt.IsZero() {
		m.FeeSubmissionCreatedAt = s.now()
	}
	s.submissions = append(s.submissions, *m)
	return nil
}

func (s *MemoryStore) DeleteFeeSubmission(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("DeleteFeeSubmission"); err != nil {
		return err
	}
	for i := range s.submissions {
		if s.submissions[i].FeeSubmissionID == id {
			s.submissions = append(s.submissions[:i], s.submissions[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// =====================================================================
// students
// =====================================================================

func (s *MemoryStore) GetStudent(ctx context.Context, id uuid.UUID) (model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.students {
		if m.StudentID == id {
			return m, nil
		}
	}
	return model.Student{}, gorm.ErrRecordNotFound
}

// =====================================================================
// tx (snapshot + restore)
// =====================================================================

func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := memorySnapshot{
		classFees:   append([]model.ClassFee(nil), s.classFees...),
		studentFees: append([]model.StudentFee(nil), s.studentFees...),
		transports:  append([]model.TransportAssignment(nil), s.transports...),
		submissions: append([]model.FeeSubmission(nil), s.submissions...),
	}
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.classFees = snap.classFees
		s.studentFees = snap.studentFees
		s.transports = snap.transports
		s.submissions = snap.submissions
		s.mu.Unlock()
		return err
	}
	return nil
}

type duplicateKeyError struct{}

func (duplicateKeyError) Error() string {
	return "ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"
}

func (duplicateKeyError) SQLState() string { return "23505" }

var errDuplicateKey error = duplicateKeyError{}
