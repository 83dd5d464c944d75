package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolfee_backend/internals/features/finance/fees/model"
	"schoolfee_backend/internals/features/finance/fees/repository"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

func strPtr(s string) *string { return &s }

func classFee(class, feeType, amount string) model.ClassFee {
	return model.ClassFee{ClassFeeClass: class, ClassFeeFeeType: feeType, ClassFeeAmount: dec(amount)}
}

func payment(id *uuid.UUID, name, class, feeType, total, paid string) model.StudentFee {
	return model.StudentFee{
		StudentFeeStudentID:   id,
		StudentFeeStudentName: name,
		StudentFeeClass:       class,
		StudentFeeFeeType:     feeType,
		StudentFeeTotalAmount: dec(total),
		StudentFeePaidAmount:  dec(paid),
	}
}

// newTestStore: MemoryStore dengan jam yang maju 1 detik per panggilan,
// supaya urutan created_at deterministik.
func newTestStore() *repository.MemoryStore {
	st := repository.NewMemoryStore()
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	tick := 0
	st.Now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return st
}

func mustCreateClassFees(t *testing.T, st repository.Store, fees ...model.ClassFee) {
	t.Helper()
	for i := range fees {
		require.NoError(t, st.CreateClassFee(context.Background(), &fees[i]))
	}
}

func mustCreatePayments(t *testing.T, st repository.Store, rows ...model.StudentFee) {
	t.Helper()
	for i := range rows {
		require.NoError(t, st.CreateStudentFees(context.Background(), rows[i:i+1]))
	}
}
