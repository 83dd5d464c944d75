package service

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

/* =========================================================
   Midtrans Client
========================================================= */

// SnapCreator: bagian snap.Client yang dipakai checkout (mudah di-fake di test).
type SnapCreator interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// NewSnapClient: useProduction=true untuk Production, false untuk Sandbox.
func NewSnapClient(serverKey string, useProduction bool) *snap.Client {
	var c snap.Client
	if useProduction {
		c.New(serverKey, midtrans.Production)
	} else {
		c.New(serverKey, midtrans.Sandbox)
	}
	return &c
}

type CustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

/* =========================================================
   Status & signature
========================================================= */

// IsSettledStatus: capture+accept atau settlement = uang sudah masuk.
func IsSettledStatus(transactionStatus, fraudStatus string) bool {
	ts := strings.ToLower(strings.TrimSpace(transactionStatus))
	fraud := strings.ToLower(strings.TrimSpace(fraudStatus))
	switch ts {
	case "settlement":
		return true
	case "capture":
		return fraud == "" || fraud == "accept"
	default:
		return false
	}
}

// NotificationSignature: sha512(order_id + status_code + gross_amount + server_key).
func NotificationSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func VerifyNotificationSignature(orderID, statusCode, grossAmount, serverKey, signature string) bool {
	want := NotificationSignature(orderID, statusCode, grossAmount, serverKey)
	got := strings.ToLower(strings.TrimSpace(signature))
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

/* =========================================================
   Utils
========================================================= */

func GenOrderID(prefix string, now time.Time) string {
	u := uuid.New().String()
	if len(u) > 8 {
		u = u[:8]
	}
	return prefix + "-" + now.Format("20060102-150405") + "-" + strings.ToUpper(u)
}

// truncate memotong s maksimal n byte tanpa memecah karakter multi-byte.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
