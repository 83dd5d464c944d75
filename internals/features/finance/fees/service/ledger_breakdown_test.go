package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolfee_backend/internals/features/finance/fees/model"
)

func rowByType(t *testing.T, bd StudentBreakdown, feeType string) BreakdownRow {
	t.Helper()
	for _, r := range bd.Rows {
		if r.FeeType == feeType {
			return r
		}
	}
	t.Fatalf("fee type %q not in breakdown", feeType)
	return BreakdownRow{}
}

func TestParsePaidMode(t *testing.T) {
	m, err := ParsePaidMode("")
	require.NoError(t, err)
	assert.Equal(t, PaidModeSum, m)

	m, err = ParsePaidMode(" LAST_ROW ")
	require.NoError(t, err)
	assert.Equal(t, PaidModeLastRow, m)

	_, err = ParsePaidMode("average")
	assert.Error(t, err)
}

func TestBuildStudentBreakdown(t *testing.T) {
	sid := uuid.New()
	standards := []model.ClassFee{
		classFee("10th", "Tuition Fee", "5000"),
		classFee("10th", "Exam Fee", "1000"),
		classFee("9th", "Tuition Fee", "4000"),
	}
	payments := []model.StudentFee{
		payment(&sid, "Asha", "10th", "Tuition Fee", "5000", "3000"),
		payment(&sid, "Asha", "10th", "Transport Fee", "800", "800"),
		payment(&sid, "Asha", "10th", "Tuition Fee", "5000", "2000"),
	}

	t.Run("sum mode", func(t *testing.T) {
		bd := BuildStudentBreakdown("10th", standards, payments, PaidModeSum)
		require.Len(t, bd.Rows, 3)
		assert.Equal(t, PaidModeSum, bd.PaidMode)

		// standar kelas dulu, lalu fee type tambahan
		assert.Equal(t, []string{"Tuition Fee", "Exam Fee", "Transport Fee"},
			[]string{bd.Rows[0].FeeType, bd.Rows[1].FeeType, bd.Rows[2].FeeType})

		tuition := rowByType(t, bd, "Tuition Fee")
		assertDec(t, "5000", tuition.Standard)
		assertDec(t, "5000", tuition.Paid)
		assertDec(t, "0", tuition.Due)
		assert.True(t, tuition.Settled)
		assert.True(t, tuition.ClassStandard)

		exam := rowByType(t, bd, "Exam Fee")
		assertDec(t, "0", exam.Paid)
		assertDec(t, "1000", exam.Due)
		assert.False(t, exam.Settled)

		transport := rowByType(t, bd, "Transport Fee")
		assertDec(t, "800", transport.Standard)
		assertDec(t, "800", transport.Paid)
		assert.False(t, transport.ClassStandard)
		assert.True(t, transport.Settled)

		assertDec(t, "6800", bd.TotalPayable)
		assertDec(t, "5800", bd.TotalPaid)
		assertDec(t, "1000", bd.TotalDue)
	})

	t.Run("last row mode overwrites paid", func(t *testing.T) {
		bd := BuildStudentBreakdown("10th", standards, payments, PaidModeLastRow)
		tuition := rowByType(t, bd, "Tuition Fee")
		assertDec(t, "2000", tuition.Paid)
		assertDec(t, "3000", tuition.Due)
		assert.False(t, tuition.Settled)
	})

	t.Run("empty mode defaults to sum", func(t *testing.T) {
		bd := BuildStudentBreakdown("10th", standards, payments, "")
		assert.Equal(t, PaidModeSum, bd.PaidMode)
		assertDec(t, "5000", rowByType(t, bd, "Tuition Fee").Paid)
	})
}

func TestBuildStudentBreakdown_AdHocStandardTracksLatestRow(t *testing.T) {
	payments := []model.StudentFee{
		payment(nil, "Asha", "10th", "Transport Fee", "800", "400"),
		payment(nil, "Asha", "10th", "Transport Fee", "900", "400"),
	}
	bd := BuildStudentBreakdown("10th", nil, payments, PaidModeSum)
	require.Len(t, bd.Rows, 1)
	r := bd.Rows[0]
	assertDec(t, "900", r.Standard)
	assertDec(t, "800", r.Paid)
	assertDec(t, "100", r.Due)
}

func TestBuildStudentBreakdown_NoPayments(t *testing.T) {
	standards := []model.ClassFee{
		classFee("10th", "Tuition Fee", "5000"),
		classFee("10th", "Exam Fee", "1000"),
	}
	bd := BuildStudentBreakdown("10th", standards, nil, PaidModeSum)
	require.Len(t, bd.Rows, 2)
	for _, r := range bd.Rows {
		assertDec(t, "0", r.Paid)
		assert.True(t, r.Due.Equal(r.Standard))
	}
	assertDec(t, "6000", bd.TotalDue)
}
