// file: internals/features/finance/fees/service/fanout.go
package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"schoolfee_backend/internals/features/finance/fees/model"
)

const FanOutRemark = "Verified online payment"

// SplitAmount membagi total rata ke n bagian (2 desimal).
// Sisa pembulatan (dalam sen) ditambahkan ke bagian-bagian awal,
// jadi jumlah semua bagian selalu sama dengan total.
func SplitAmount(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	cents := total.Shift(2).Round(0).IntPart()
	base := cents / int64(n)
	rem := cents % int64(n)

	out := make([]decimal.Decimal, n)
	for i := range out {
		c := base
		if int64(i) < rem {
			c++
		}
		out[i] = decimal.New(c, -2)
	}
	return out
}

// StudentProfile: data identitas yang disalin ke baris ledger.
type StudentProfile struct {
	Name    string
	RollNo  *string
	Class   string
	Section *string
}

// FanOutShares: midtrans memakai nominal per item dari checkout,
// scanner (atau item tidak valid) dibagi rata.
func FanOutShares(sub model.FeeSubmission) []decimal.Decimal {
	if sub.FeeSubmissionSource == model.FeeSubmissionSourceMidtrans {
		if amounts, ok := sub.ItemAmounts(); ok {
			return amounts
		}
	}
	return SplitAmount(sub.FeeSubmissionAmount, len(sub.FeeTypeList()))
}

// BuildFanOutRows: satu StudentFee per fee type, paid = total = bagiannya.
func BuildFanOutRows(sub model.FeeSubmission, profile StudentProfile) []model.StudentFee {
	types := sub.FeeTypeList()
	shares := FanOutShares(sub)

	method := model.PaymentMethodScanner
	if sub.FeeSubmissionSource == model.FeeSubmissionSourceMidtrans {
		method = model.PaymentMethodMidtrans
	}

	studentID := sub.FeeSubmissionStudentID
	subID := sub.FeeSubmissionID
	utr := strings.TrimSpace(sub.FeeSubmissionUTRNumber)
	remark := FanOutRemark

	rows := make([]model.StudentFee, 0, len(types))
	for i, ft := range types {
		rows = append(rows, model.StudentFee{
			StudentFeeStudentID:     &studentID,
			StudentFeeStudentName:   profile.Name,
			StudentFeeRollNo:        profile.RollNo,
			StudentFeeClass:         profile.Class,
			StudentFeeSection:       profile.Section,
			StudentFeeFeeType:       ft,
			StudentFeeTotalAmount:   shares[i],
			StudentFeePaidAmount:    shares[i],
			StudentFeePaymentMethod: method,
			StudentFeeUTRNumber:     &utr,
			StudentFeeRemarks:       &remark,
			StudentFeeSubmissionID:  &subID,
		})
	}
	return rows
}
