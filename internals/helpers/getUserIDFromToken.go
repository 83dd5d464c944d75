package helper

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolfee_backend/internals/constants"
)

// Ambil user_id dari c.Locals("user_id") (diisi AuthJWT).
// 401 kalau belum login, 400 kalau formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	switch t := c.Locals("user_id").(type) {
	case uuid.UUID:
		if t != uuid.Nil {
			return t, nil
		}
	case string:
		if s := strings.TrimSpace(t); s != "" {
			id, err := uuid.Parse(s)
			if err != nil {
				return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
			}
			return id, nil
		}
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
}

// ActorLabel: user_id untuk audit log, "-" kalau tidak ada.
func ActorLabel(c *fiber.Ctx) string {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return "-"
	}
	return id.String()
}

// Ambil student_id dari c.Locals("student_id") (claim akun orang tua).
func GetStudentIDFromToken(c *fiber.Ctx) (uuid.UUID, bool) {
	switch t := c.Locals("student_id").(type) {
	case uuid.UUID:
		return t, t != uuid.Nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(t))
		return id, err == nil && id != uuid.Nil
	}
	return uuid.Nil, false
}

// EnsureStudentAccess: role finance boleh semua siswa,
// role lain hanya siswa di claim student_id. Selain itu 403.
func EnsureStudentAccess(c *fiber.Ctx, studentID uuid.UUID) error {
	role, _ := c.Locals("userRole").(string)
	if slices.Contains(constants.FinanceRoles, strings.ToLower(strings.TrimSpace(role))) {
		return nil
	}
	own, ok := GetStudentIDFromToken(c)
	if !ok || own != studentID {
		return fiber.NewError(fiber.StatusForbidden, "Tidak punya akses ke data siswa ini")
	}
	return nil
}
