// file: internals/features/finance/fees/service/checkout_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schoolfee_backend/internals/features/finance/fees/model"
	"schoolfee_backend/internals/features/finance/fees/repository"
	helper "schoolfee_backend/internals/helpers"
)

const maxCustomField = 255

// CheckoutService: bayar due siswa lewat Midtrans Snap. Notifikasi settlement
// masuk sebagai fee_submission (source=midtrans) dan tetap lewat verifikasi admin.
type CheckoutService struct {
	Ledger    *LedgerService
	Snap      SnapCreator
	ServerKey string
	Now       func() time.Time
}

func (s *CheckoutService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

type CheckoutInput struct {
	StudentID uuid.UUID
	FeeTypes  []string // kosong = semua fee type yang masih ada due
	Customer  CustomerInput
}

type CheckoutItem struct {
	FeeType string          `json:"fee_type"`
	Amount  decimal.Decimal `json:"amount"`
}

type CheckoutResult struct {
	OrderID     string          `json:"order_id"`
	Token       string          `json:"token"`
	RedirectURL string          `json:"redirect_url"`
	Amount      decimal.Decimal `json:"amount"`
	Items       []CheckoutItem  `json:"items"`
}

// CreateCheckout: item = due per fee type (dibulatkan ke rupiah penuh).
func (s *CheckoutService) CreateCheckout(ctx context.Context, in CheckoutInput) (CheckoutResult, error) {
	if s.Snap == nil {
		return CheckoutResult{}, fiber.NewError(fiber.StatusServiceUnavailable, "payment gateway is not configured")
	}

	bd, err := s.Ledger.GetStudentBreakdown(ctx, in.StudentID)
	if err != nil {
		return CheckoutResult{}, err
	}

	wanted := map[string]bool{}
	for _, ft := range in.FeeTypes {
		if ft = strings.TrimSpace(ft); ft != "" {
			wanted[ft] = true
		}
	}

	items := make([]CheckoutItem, 0, len(bd.Rows))
	for _, r := range bd.Rows {
		if len(wanted) > 0 {
			if !wanted[r.FeeType] {
				continue
			}
			delete(wanted, r.FeeType)
		}
		due := r.Due.Round(0)
		if !due.IsPositive() {
			continue
		}
		items = append(items, CheckoutItem{FeeType: r.FeeType, Amount: due})
	}
	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for ft := range wanted {
			unknown = append(unknown, ft)
		}
		return CheckoutResult{}, fiber.NewError(fiber.StatusUnprocessableEntity, "unknown fee types: "+strings.Join(unknown, ", "))
	}
	if len(items) == 0 {
		return CheckoutResult{}, fiber.NewError(fiber.StatusUnprocessableEntity, "nothing to pay")
	}

	feeTypes := make([]string, 0, len(items))
	amounts := make([]string, 0, len(items))
	gross := decimal.Zero
	mtItems := make([]midtrans.ItemDetails, 0, len(items))
	for _, it := range items {
		feeTypes = append(feeTypes, it.FeeType)
		amounts = append(amounts, it.Amount.String())
		gross = gross.Add(it.Amount)
		mtItems = append(mtItems, midtrans.ItemDetails{
			ID:       truncate(it.FeeType, 50),
			Name:     truncate(it.FeeType, 50),
			Price:    it.Amount.IntPart(),
			Qty:      1,
			Category: "School Fee",
		})
	}
	joined := strings.Join(feeTypes, ",")
	joinedAmounts := strings.Join(amounts, ",")
	if len(joined) > maxCustomField || len(joinedAmounts) > maxCustomField {
		return CheckoutResult{}, fiber.NewError(fiber.StatusUnprocessableEntity, "too many fee types for one checkout")
	}

	orderID := GenOrderID("FEE", s.now())
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: gross.IntPart(),
		},
		Items: &mtItems,
		CustomerDetail: &midtrans.CustomerDetails{
			FName: in.Customer.FirstName,
			LName: in.Customer.LastName,
			Email: in.Customer.Email,
			Phone: in.Customer.Phone,
		},
		CustomField1: in.StudentID.String(),
		CustomField2: joined,
		CustomField3: joinedAmounts,
	}

	resp, merr := s.Snap.CreateTransaction(req)
	if merr != nil {
		log.Printf("[ERROR] midtrans create transaction order=%s: %v", orderID, merr.Error())
		return CheckoutResult{}, fiber.NewError(fiber.StatusBadGateway, "failed to create payment")
	}

	return CheckoutResult{
		OrderID:     orderID,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
		Amount:      gross,
		Items:       items,
	}, nil
}

/* =========================================================
   Notification webhook
========================================================= */

type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	TransactionID     string `json:"transaction_id"`
	CustomField1      string `json:"custom_field1"`
	CustomField2      string `json:"custom_field2"`
	CustomField3      string `json:"custom_field3"`
}

const (
	NotificationRecorded  = "recorded"
	NotificationIgnored   = "ignored"
	NotificationDuplicate = "duplicate"
)

type NotificationResult struct {
	Action       string     `json:"action"`
	SubmissionID *uuid.UUID `json:"submission_id,omitempty"`
}

// HandleNotification mencatat transaksi settled sebagai pending fee_submission.
// Idempotent per order_id (utr_number).
func (s *CheckoutService) HandleNotification(ctx context.Context, n MidtransNotification, raw []byte) (NotificationResult, error) {
	if s.ServerKey == "" {
		return NotificationResult{}, fiber.NewError(fiber.StatusServiceUnavailable, "payment gateway is not configured")
	}
	if !VerifyNotificationSignature(n.OrderID, n.StatusCode, n.GrossAmount, s.ServerKey, n.SignatureKey) {
		return NotificationResult{}, fiber.NewError(fiber.StatusForbidden, "invalid signature")
	}
	if !IsSettledStatus(n.TransactionStatus, n.FraudStatus) {
		return NotificationResult{Action: NotificationIgnored}, nil
	}

	store := s.Ledger.Store
	orderID := strings.TrimSpace(n.OrderID)

	if existing, err := store.FindFeeSubmissionByUTR(ctx, orderID); err == nil {
		return NotificationResult{Action: NotificationDuplicate, SubmissionID: &existing.FeeSubmissionID}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return NotificationResult{}, fmt.Errorf("find fee submission: %w", err)
	}
	if cnt, err := store.CountStudentFees(ctx, repository.StudentFeeFilter{UTRNumber: orderID}); err != nil {
		return NotificationResult{}, fmt.Errorf("count student fees: %w", err)
	} else if cnt > 0 {
		return NotificationResult{Action: NotificationDuplicate}, nil
	}

	studentID, err := uuid.Parse(strings.TrimSpace(n.CustomField1))
	if err != nil {
		return NotificationResult{}, fiber.NewError(fiber.StatusUnprocessableEntity, "custom_field1 is not a student id")
	}
	feeTypes := model.SplitFeeTypes(n.CustomField2)
	if len(feeTypes) == 0 {
		return NotificationResult{}, fiber.NewError(fiber.StatusUnprocessableEntity, "custom_field2 has no fee types")
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(n.GrossAmount))
	if err != nil || !amount.IsPositive() {
		return NotificationResult{}, fiber.NewError(fiber.StatusUnprocessableEntity, "invalid gross_amount")
	}
	itemAmounts, err := parseItemAmounts(n.CustomField3, len(feeTypes), amount)
	if err != nil {
		return NotificationResult{}, err
	}

	sub := model.FeeSubmission{
		FeeSubmissionStudentID:   studentID,
		FeeSubmissionFeeTypes:    strings.Join(feeTypes, ","),
		FeeSubmissionAmount:      amount,
		FeeSubmissionUTRNumber:   orderID,
		FeeSubmissionStatus:      model.FeeSubmissionStatusPending,
		FeeSubmissionSource:      model.FeeSubmissionSourceMidtrans,
		FeeSubmissionItemAmounts: itemAmounts,
		FeeSubmissionMeta:        datatypes.JSON(raw),
	}
	if err := store.CreateFeeSubmission(ctx, &sub); err != nil {
		// notifikasi yang sama datang bersamaan
		if helper.IsUniqueViolation(err) {
			return NotificationResult{Action: NotificationDuplicate}, nil
		}
		return NotificationResult{}, fmt.Errorf("create fee submission: %w", err)
	}
	log.Printf("[INFO] midtrans order=%s recorded as fee submission %s", orderID, sub.FeeSubmissionID)
	return NotificationResult{Action: NotificationRecorded, SubmissionID: &sub.FeeSubmissionID}, nil
}

// parseItemAmounts: custom_field3 = "5000,1000" sejajar dengan custom_field2.
// Kosong = nil (fan-out dibagi rata).
func parseItemAmounts(raw string, n int, gross decimal.Decimal) (pq.StringArray, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != n {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "custom_field3 does not match custom_field2")
	}
	out := make(pq.StringArray, 0, n)
	sum := decimal.Zero
	for _, p := range parts {
		d, err := decimal.NewFromString(strings.TrimSpace(p))
		if err != nil || d.IsNegative() {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "invalid amount in custom_field3")
		}
		sum = sum.Add(d)
		out = append(out, d.String())
	}
	if !sum.Equal(gross) {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "custom_field3 does not add up to gross_amount")
	}
	return out, nil
}
