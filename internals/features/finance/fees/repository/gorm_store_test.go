package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"schoolfee_backend/internals/features/finance/fees/model"
	helper "schoolfee_backend/internals/helpers"
)

// newGormTestStore: jalan ke postgres sungguhan (TEST_DATABASE_DSN), skip kalau kosong.
func newGormTestStore(t *testing.T) *GormStore {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.StudentFee{}, &model.FeeSubmission{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewGormStore(db)
}

func gormSubmission(t *testing.T, st *GormStore) model.FeeSubmission {
	t.Helper()
	sub := model.FeeSubmission{
		FeeSubmissionStudentID:   uuid.New(),
		FeeSubmissionFeeTypes:    "Tuition Fee,Exam Fee",
		FeeSubmissionAmount:      decimal.NewFromInt(6000),
		FeeSubmissionUTRNumber:   "UTR-" + uuid.NewString(),
		FeeSubmissionSource:      model.FeeSubmissionSourceMidtrans,
		FeeSubmissionItemAmounts: pq.StringArray{"5000", "1000"},
	}
	require.NoError(t, st.CreateFeeSubmission(context.Background(), &sub))
	t.Cleanup(func() {
		st.DB.Where("student_fee_student_id = ?", sub.FeeSubmissionStudentID).Unscoped().Delete(&model.StudentFee{})
		st.DB.Where("fee_submission_id = ?", sub.FeeSubmissionID).Delete(&model.FeeSubmission{})
	})
	return sub
}

func TestGormStore_TransactionRollbackAndCommit(t *testing.T) {
	st := newGormTestStore(t)
	ctx := context.Background()
	sub := gormSubmission(t, st)
	sid := sub.FeeSubmissionStudentID

	got, err := st.GetFeeSubmission(ctx, sub.FeeSubmissionID, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"5000", "1000"}, []string(got.FeeSubmissionItemAmounts))
	assert.True(t, got.IsPending())

	fanOut := func(tx Store) error {
		locked, err := tx.GetFeeSubmission(ctx, sub.FeeSubmissionID, true)
		if err != nil {
			return err
		}
		utr := locked.FeeSubmissionUTRNumber
		rows := []model.StudentFee{{
			StudentFeeStudentID:   &sid,
			StudentFeeStudentName: "Asha",
			StudentFeeClass:       "10th",
			StudentFeeFeeType:     "Tuition Fee",
			StudentFeeTotalAmount: decimal.NewFromInt(6000),
			StudentFeePaidAmount:  decimal.NewFromInt(6000),
			StudentFeeUTRNumber:   &utr,
		}}
		if err := tx.CreateStudentFees(ctx, rows); err != nil {
			return err
		}
		return tx.DeleteFeeSubmission(ctx, locked.FeeSubmissionID)
	}

	boom := errors.New("boom")
	err = st.Transaction(ctx, func(tx Store) error {
		if err := fanOut(tx); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := st.CountStudentFees(ctx, StudentFeeFilter{UTRNumber: sub.FeeSubmissionUTRNumber})
	require.NoError(t, err)
	assert.Zero(t, n)
	_, err = st.GetFeeSubmission(ctx, sub.FeeSubmissionID, false)
	require.NoError(t, err)

	require.NoError(t, st.Transaction(ctx, fanOut))
	n, err = st.CountStudentFees(ctx, StudentFeeFilter{UTRNumber: sub.FeeSubmissionUTRNumber})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = st.GetFeeSubmission(ctx, sub.FeeSubmissionID, false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGormStore_ForUpdateBlocksSecondLocker(t *testing.T) {
	st := newGormTestStore(t)
	ctx := context.Background()
	sub := gormSubmission(t, st)

	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- st.Transaction(ctx, func(tx Store) error {
			if _, err := tx.GetFeeSubmission(ctx, sub.FeeSubmissionID, true); err != nil {
				close(locked)
				return err
			}
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked

	// baris masih dikunci transaksi pertama
	waitCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	err := st.Transaction(waitCtx, func(tx Store) error {
		_, err := tx.GetFeeSubmission(waitCtx, sub.FeeSubmissionID, true)
		return err
	})
	assert.Error(t, err)

	close(release)
	require.NoError(t, <-done)

	// setelah dilepas, bisa dikunci lagi
	require.NoError(t, st.Transaction(ctx, func(tx Store) error {
		_, err := tx.GetFeeSubmission(ctx, sub.FeeSubmissionID, true)
		return err
	}))
}

func TestGormStore_SubmissionUTRUnique(t *testing.T) {
	st := newGormTestStore(t)
	ctx := context.Background()
	sub := gormSubmission(t, st)

	dup := model.FeeSubmission{
		FeeSubmissionStudentID: uuid.New(),
		FeeSubmissionFeeTypes:  "Tuition Fee",
		FeeSubmissionAmount:    decimal.NewFromInt(100),
		FeeSubmissionUTRNumber: sub.FeeSubmissionUTRNumber,
	}
	err := st.CreateFeeSubmission(ctx, &dup)
	require.Error(t, err)
	assert.True(t, helper.IsUniqueViolation(err), err.Error())
}
