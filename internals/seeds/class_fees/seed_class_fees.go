package classfees

import (
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"schoolfee_backend/internals/features/finance/fees/model"
)

type ClassFeeSeed struct {
	Class   string          `json:"class_fee_class"`
	FeeType string          `json:"class_fee_fee_type"`
	Amount  decimal.Decimal `json:"class_fee_amount"`
}

// SeedClassFeesFromJSON: (class, fee_type) yang sudah ada dilewati.
func SeedClassFeesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file class_fees:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var seeds []ClassFeeSeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	var rows []model.ClassFee
	for _, s := range seeds {
		class := strings.TrimSpace(s.Class)
		feeType := strings.TrimSpace(s.FeeType)

		var count int64
		if err := db.Model(&model.ClassFee{}).
			Where("class_fee_class = ? AND class_fee_fee_type = ?", class, feeType).
			Count(&count).Error; err != nil {
			log.Fatalf("❌ Gagal cek class_fees: %v", err)
		}
		if count > 0 {
			log.Printf("ℹ️ Class fee %s / %s sudah ada, dilewati.", class, feeType)
			continue
		}

		rows = append(rows, model.ClassFee{
			ClassFeeClass:   class,
			ClassFeeFeeType: feeType,
			ClassFeeAmount:  s.Amount,
		})
	}

	if len(rows) == 0 {
		log.Println("ℹ️ Tidak ada class fee baru untuk diinsert.")
		return
	}
	if err := db.Create(&rows).Error; err != nil {
		log.Fatalf("❌ Gagal insert class_fees: %v", err)
	}
	log.Printf("✅ Berhasil insert %d class fee", len(rows))
}
