package constants

import "fmt"

const (
	RoleUser       = "user"
	RoleTeacher    = "teacher"
	RoleAccountant = "accountant"
	RoleAdmin      = "admin"
	RoleOwner      = "owner"
)

// Template pesan error role
const (
	ErrOnlyFinanceCanAccess = "❌ Hanya admin, accountant, atau owner yang boleh mengakses fitur %s."
)

func RoleErrorFinance(feature string) string {
	return fmt.Sprintf(ErrOnlyFinanceCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleTeacher,
		RoleAccountant,
		RoleAdmin,
		RoleOwner,
	}

	// FinanceRoles: boleh kelola ledger & verifikasi pembayaran
	FinanceRoles = []string{
		RoleAdmin,
		RoleAccountant,
		RoleOwner,
	}
)
