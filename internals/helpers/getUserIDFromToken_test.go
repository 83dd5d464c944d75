package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserIDFromToken(t *testing.T) {
	uid := uuid.New()
	tests := []struct {
		name   string
		local  any
		status int
		actor  string
	}{
		{"string", uid.String(), 0, uid.String()},
		{"uuid", uid, 0, uid.String()},
		{"missing", nil, fiber.StatusUnauthorized, "-"},
		{"empty", "  ", fiber.StatusUnauthorized, "-"},
		{"garbage", "abc", fiber.StatusBadRequest, "-"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				if tc.local != nil {
					c.Locals("user_id", tc.local)
				}
				id, err := GetUserIDFromToken(c)
				if tc.status == 0 {
					assert.NoError(t, err)
					assert.Equal(t, uid, id)
				} else {
					var fe *fiber.Error
					if assert.ErrorAs(t, err, &fe) {
						assert.Equal(t, tc.status, fe.Code)
					}
				}
				assert.Equal(t, tc.actor, ActorLabel(c))
				return c.SendStatus(fiber.StatusNoContent)
			})
			_, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
		})
	}
}

func TestEnsureStudentAccess(t *testing.T) {
	own := uuid.New()
	other := uuid.New()
	tests := []struct {
		name    string
		role    string
		student any
		target  uuid.UUID
		status  int
	}{
		{"finance role any student", "accountant", nil, other, 0},
		{"finance role upper case", " Admin ", nil, other, 0},
		{"parent own student", "user", own.String(), own, 0},
		{"parent own student uuid local", "user", own, own, 0},
		{"parent other student", "user", own.String(), other, fiber.StatusForbidden},
		{"parent without claim", "user", nil, other, fiber.StatusForbidden},
		{"teacher without claim", "teacher", nil, own, fiber.StatusForbidden},
		{"garbage claim", "user", "abc", own, fiber.StatusForbidden},
		{"no role", "", own.String(), own, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				if tc.role != "" {
					c.Locals("userRole", tc.role)
				}
				if tc.student != nil {
					c.Locals("student_id", tc.student)
				}
				err := EnsureStudentAccess(c, tc.target)
				if tc.status == 0 {
					assert.NoError(t, err)
				} else {
					var fe *fiber.Error
					if assert.ErrorAs(t, err, &fe) {
						assert.Equal(t, tc.status, fe.Code)
					}
				}
				return c.SendStatus(fiber.StatusNoContent)
			})
			_, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
		})
	}
}
