package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"schoolfee_backend/internals/features/finance/fees/model"
	helper "schoolfee_backend/internals/helpers"
)

func tickingStore() *MemoryStore {
	st := NewMemoryStore()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	st.Now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Hour)
	}
	return st
}

func row(sid *uuid.UUID, name, feeType, paid string) model.StudentFee {
	return model.StudentFee{
		StudentFeeStudentID:   sid,
		StudentFeeStudentName: name,
		StudentFeeClass:       "10th",
		StudentFeeFeeType:     feeType,
		StudentFeePaidAmount:  decimal.RequireFromString(paid),
	}
}

func TestMemoryStore_ClassFeeUnique(t *testing.T) {
	ctx := context.Background()
	st := tickingStore()

	a := model.ClassFee{ClassFeeClass: "10th", ClassFeeFeeType: "Tuition Fee", ClassFeeAmount: decimal.NewFromInt(5000)}
	require.NoError(t, st.CreateClassFee(ctx, &a))
	assert.NotEqual(t, uuid.Nil, a.ClassFeeID)

	dup := model.ClassFee{ClassFeeClass: "10th", ClassFeeFeeType: "Tuition Fee"}
	err := st.CreateClassFee(ctx, &dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "23505")

	got, err := st.FindClassFee(ctx, " 10th ", "Tuition Fee")
	require.NoError(t, err)
	assert.Equal(t, a.ClassFeeID, got.ClassFeeID)

	_, err = st.FindClassFee(ctx, "9th", "Tuition Fee")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, st.DeleteClassFee(ctx, a.ClassFeeID))
	assert.ErrorIs(t, st.DeleteClassFee(ctx, a.ClassFeeID), gorm.ErrRecordNotFound)
}

func TestMemoryStore_StudentFeesFilterOrderPage(t *testing.T) {
	ctx := context.Background()
	st := tickingStore()
	sid := uuid.New()
	utr := "UTR-1"

	withUTR := row(&sid, "Asha", "Exam Fee", "1000")
	withUTR.StudentFeeUTRNumber = &utr
	rows := []model.StudentFee{
		row(&sid, "Asha", "Tuition Fee", "3000"),
		row(nil, "Bala", "Tuition Fee", "500"),
		withUTR,
	}
	for i := range rows {
		require.NoError(t, st.CreateStudentFees(ctx, rows[i:i+1]))
	}

	list, err := st.ListStudentFees(ctx, StudentFeeFilter{StudentID: &sid})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Tuition Fee", list[0].StudentFeeFeeType) // created_at ASC

	list, err = st.ListStudentFees(ctx, StudentFeeFilter{OrderBy: "student_fee_paid_amount", OrderDesc: true})
	require.NoError(t, err)
	assert.Equal(t, "Asha", list[0].StudentFeeStudentName)
	assert.Equal(t, "Bala", list[2].StudentFeeStudentName)

	list, err = st.ListStudentFees(ctx, StudentFeeFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Exam Fee", list[0].StudentFeeFeeType)

	list, err = st.ListStudentFees(ctx, StudentFeeFilter{Limit: 2, Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, list)

	cnt, err := st.CountStudentFees(ctx, StudentFeeFilter{UTRNumber: "UTR-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	from := time.Date(2024, 6, 1, 1, 30, 0, 0, time.UTC)
	to := time.Date(2024, 6, 1, 2, 30, 0, 0, time.UTC)
	list, err = st.ListStudentFees(ctx, StudentFeeFilter{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bala", list[0].StudentFeeStudentName)
}

func TestMemoryStore_TransactionRollback(t *testing.T) {
	ctx := context.Background()
	st := tickingStore()
	sub := model.FeeSubmission{
		FeeSubmissionStudentID: uuid.New(),
		FeeSubmissionFeeTypes:  "Tuition Fee",
		FeeSubmissionAmount:    decimal.NewFromInt(100),
		FeeSubmissionUTRNumber: "UTR-9",
	}
	require.NoError(t, st.CreateFeeSubmission(ctx, &sub))
	assert.Equal(t, model.FeeSubmissionStatusPending, sub.FeeSubmissionStatus)

	boom := errors.New("boom")
	err := st.Transaction(ctx, func(tx Store) error {
		if err := tx.CreateStudentFees(ctx, []model.StudentFee{row(nil, "X", "Tuition Fee", "100")}); err != nil {
			return err
		}
		if err := tx.DeleteFeeSubmission(ctx, sub.FeeSubmissionID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	cnt, err := st.CountStudentFees(ctx, StudentFeeFilter{})
	require.NoError(t, err)
	assert.Zero(t, cnt)
	_, err = st.GetFeeSubmission(ctx, sub.FeeSubmissionID, false)
	assert.NoError(t, err)

	// commit
	require.NoError(t, st.Transaction(ctx, func(tx Store) error {
		return tx.DeleteFeeSubmission(ctx, sub.FeeSubmissionID)
	}))
	_, err = st.FindFeeSubmissionByUTR(ctx, "UTR-9")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMemoryStore_FailOn(t *testing.T) {
	ctx := context.Background()
	st := tickingStore()
	boom := errors.New("db down")
	st.FailOn["ListClassFees"] = boom

	_, err := st.ListClassFees(ctx, ClassFeeFilter{})
	assert.ErrorIs(t, err, boom)
}

func TestMemoryStore_TransportLatestActiveWins(t *testing.T) {
	ctx := context.Background()
	st := tickingStore()
	sid := uuid.New()

	first := model.TransportAssignment{TransportAssignmentStudentID: sid, TransportAssignmentRouteID: "R-1",
		TransportAssignmentMonthlyFare: decimal.NewFromInt(700), TransportAssignmentStatus: model.TransportStatusActive}
	require.NoError(t, st.SaveTransportAssignment(ctx, &first))

	first.TransportAssignmentMonthlyFare = decimal.NewFromInt(750)
	require.NoError(t, st.SaveTransportAssignment(ctx, &first))

	all, err := st.ListTransportAssignments(ctx, &sid)
	require.NoError(t, err)
	require.Len(t, all, 1)

	got, err := st.FindActiveTransportAssignment(ctx, sid)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(750).Equal(got.TransportAssignmentMonthlyFare))

	first.TransportAssignmentStatus = model.TransportStatusInactive
	require.NoError(t, st.SaveTransportAssignment(ctx, &first))
	_, err = st.FindActiveTransportAssignment(ctx, sid)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMemoryStore_SubmissionUTRUnique(t *testing.T) {
	ctx := context.Background()
	st := tickingStore()
	a := model.FeeSubmission{FeeSubmissionStudentID: uuid.New(), FeeSubmissionFeeTypes: "Tuition Fee",
		FeeSubmissionAmount: decimal.NewFromInt(100), FeeSubmissionUTRNumber: "UTR-1"}
	require.NoError(t, st.CreateFeeSubmission(ctx, &a))

	b := a
	b.FeeSubmissionID = uuid.Nil
	err := st.CreateFeeSubmission(ctx, &b)
	require.Error(t, err)
	assert.True(t, helper.IsUniqueViolation(err))

	list, err := st.ListFeeSubmissions(ctx, FeeSubmissionFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemoryStore_TransactionsDoNotInterleave(t *testing.T) {
	ctx := context.Background()
	st := tickingStore()

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- st.Transaction(ctx, func(tx Store) error {
			if err := tx.CreateStudentFees(ctx, []model.StudentFee{row(nil, "Rolled", "Tuition Fee", "100")}); err != nil {
				return err
			}
			close(started)
			time.Sleep(20 * time.Millisecond)
			return errors.New("rollback")
		})
	}()
	<-started

	// menunggu transaksi pertama selesai, jadi tidak ikut tertimpa rollback
	require.NoError(t, st.Transaction(ctx, func(tx Store) error {
		return tx.CreateStudentFees(ctx, []model.StudentFee{row(nil, "Kept", "Tuition Fee", "200")})
	}))
	assert.Error(t, <-done)

	list, err := st.ListStudentFees(ctx, StudentFeeFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Kept", list[0].StudentFeeStudentName)
}
