// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolfee_backend/internals/configs"
	feeController "schoolfee_backend/internals/features/finance/fees/controller"
	authMiddleware "schoolfee_backend/internals/middlewares/auth"
	routeDetails "schoolfee_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	log.Println("[INFO] Building fees handler...")
	h := routeDetails.NewFeesHandler(db)

	MountRoutes(app, h, configs.JWTSecret)
}

// MountRoutes memasang group public / user / admin.
func MountRoutes(app *fiber.App, h *feeController.Handler, jwtSecret string) {
	// PUBLIC → tanpa JWT (webhook)
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// PRIVATE (USER)
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              jwtSecret,
			AllowCookieFallback: true,
		}),
	)

	// ADMIN (role dicek per fitur)
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              jwtSecret,
			AllowCookieFallback: true,
		}),
	)

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinancePublicRoutes(public, h)
	routeDetails.FinanceUserRoutes(private, h)
	routeDetails.FinanceAdminRoutes(admin, h)
}
