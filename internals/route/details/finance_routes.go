// file: internals/route/details/finance_routes.go
package details

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolfee_backend/internals/configs"
	feeController "schoolfee_backend/internals/features/finance/fees/controller"
	feeRepo "schoolfee_backend/internals/features/finance/fees/repository"
	feeRoute "schoolfee_backend/internals/features/finance/fees/route"
	feeService "schoolfee_backend/internals/features/finance/fees/service"
)

// NewFeesHandler merakit store → services → handler dari konfigurasi env.
func NewFeesHandler(db *gorm.DB) *feeController.Handler {
	store := feeRepo.NewGormStore(db)

	mode, err := feeService.ParsePaidMode(configs.FeePaidMode)
	if err != nil {
		log.Printf("[WARN] FEE_BREAKDOWN_PAID_MODE: %v, pakai %q", err, feeService.PaidModeSum)
		mode = feeService.PaidModeSum
	}
	ledger := feeService.NewLedgerService(store, mode)

	checkout := &feeService.CheckoutService{
		Ledger:    ledger,
		ServerKey: configs.MidtransServerKey,
	}
	if configs.MidtransServerKey != "" {
		checkout.Snap = feeService.NewSnapClient(configs.MidtransServerKey, configs.MidtransUseProd)
	}

	return feeController.NewHandler(store, ledger, checkout)
}

func FinancePublicRoutes(r fiber.Router, h *feeController.Handler) {
	feeRoute.FeesPublicRoutes(r, h)
}

func FinanceUserRoutes(r fiber.Router, h *feeController.Handler) {
	feeRoute.FeesUserRoutes(r, h)
}

func FinanceAdminRoutes(r fiber.Router, h *feeController.Handler) {
	feeRoute.FeesAdminRoutes(r, h)
}
