package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolfee_backend/internals/features/finance/fees/model"
)

func TestSplitAmount(t *testing.T) {
	tests := []struct {
		name  string
		total string
		n     int
		want  []string
	}{
		{"even split", "1000", 2, []string{"500", "500"}},
		{"single", "750.50", 1, []string{"750.50"}},
		{"remainder to first shares", "100", 3, []string{"33.34", "33.33", "33.33"}},
		{"two cents over three", "0.02", 3, []string{"0.01", "0.01", "0"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitAmount(dec(tc.total), tc.n)
			require.Len(t, got, len(tc.want))
			sum := dec("0")
			for i, w := range tc.want {
				assertDec(t, w, got[i], i)
				sum = sum.Add(got[i])
			}
			assertDec(t, tc.total, sum)
		})
	}

	assert.Nil(t, SplitAmount(dec("100"), 0))
}

func TestBuildFanOutRows(t *testing.T) {
	sid := uuid.New()
	subID := uuid.New()
	sub := model.FeeSubmission{
		FeeSubmissionID:        subID,
		FeeSubmissionStudentID: sid,
		FeeSubmissionFeeTypes:  "Tuition Fee, Exam Fee",
		FeeSubmissionAmount:    dec("1000"),
		FeeSubmissionUTRNumber: " UTR123 ",
		FeeSubmissionStatus:    model.FeeSubmissionStatusPending,
		FeeSubmissionSource:    model.FeeSubmissionSourceScanner,
	}
	profile := StudentProfile{Name: "Asha", RollNo: strPtr("10A-01"), Class: "10th", Section: strPtr("A")}

	rows := BuildFanOutRows(sub, profile)
	require.Len(t, rows, 2)

	assert.Equal(t, "Tuition Fee", rows[0].StudentFeeFeeType)
	assert.Equal(t, "Exam Fee", rows[1].StudentFeeFeeType)
	for _, r := range rows {
		assertDec(t, "500", r.StudentFeePaidAmount)
		assertDec(t, "500", r.StudentFeeTotalAmount)
		assert.Equal(t, sid, *r.StudentFeeStudentID)
		assert.Equal(t, "Asha", r.StudentFeeStudentName)
		assert.Equal(t, "10th", r.StudentFeeClass)
		assert.Equal(t, "A", *r.StudentFeeSection)
		assert.Equal(t, model.PaymentMethodScanner, r.StudentFeePaymentMethod)
		assert.Equal(t, "UTR123", *r.StudentFeeUTRNumber)
		assert.Equal(t, FanOutRemark, *r.StudentFeeRemarks)
		assert.Equal(t, subID, *r.StudentFeeSubmissionID)
	}

	t.Run("midtrans source", func(t *testing.T) {
		s := sub
		s.FeeSubmissionSource = model.FeeSubmissionSourceMidtrans
		rows := BuildFanOutRows(s, profile)
		require.NotEmpty(t, rows)
		assert.Equal(t, model.PaymentMethodMidtrans, rows[0].StudentFeePaymentMethod)
	})
}

func TestFanOutShares(t *testing.T) {
	base := model.FeeSubmission{
		FeeSubmissionFeeTypes: "Tuition Fee,Exam Fee",
		FeeSubmissionAmount:   dec("6000"),
		FeeSubmissionSource:   model.FeeSubmissionSourceMidtrans,
	}

	tests := []struct {
		name   string
		source string
		items  pq.StringArray
		want   []string
	}{
		{"midtrans itemized", model.FeeSubmissionSourceMidtrans, pq.StringArray{"5000", "1000"}, []string{"5000", "1000"}},
		{"midtrans without items", model.FeeSubmissionSourceMidtrans, nil, []string{"3000", "3000"}},
		{"midtrans items do not add up", model.FeeSubmissionSourceMidtrans, pq.StringArray{"5000", "500"}, []string{"3000", "3000"}},
		{"midtrans item count mismatch", model.FeeSubmissionSourceMidtrans, pq.StringArray{"6000"}, []string{"3000", "3000"}},
		{"midtrans item not a number", model.FeeSubmissionSourceMidtrans, pq.StringArray{"5000", "abc"}, []string{"3000", "3000"}},
		{"scanner ignores items", model.FeeSubmissionSourceScanner, pq.StringArray{"5000", "1000"}, []string{"3000", "3000"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sub := base
			sub.FeeSubmissionSource = tc.source
			sub.FeeSubmissionItemAmounts = tc.items

			got := FanOutShares(sub)
			require.Len(t, got, len(tc.want))
			for i, w := range tc.want {
				assertDec(t, w, got[i], i)
			}
		})
	}

	t.Run("rows carry item amounts", func(t *testing.T) {
		sub := base
		sub.FeeSubmissionItemAmounts = pq.StringArray{"5000", "1000"}
		rows := BuildFanOutRows(sub, StudentProfile{Name: "Asha", Class: "10th"})
		require.Len(t, rows, 2)
		assertDec(t, "5000", rows[0].StudentFeePaidAmount)
		assertDec(t, "5000", rows[0].StudentFeeTotalAmount)
		assertDec(t, "1000", rows[1].StudentFeePaidAmount)
	})
}
