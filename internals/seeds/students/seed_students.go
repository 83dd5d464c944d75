package students

import (
	"log"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolfee_backend/internals/features/finance/fees/model"
)

// SeedStudentsFromJSON: data demo direktori siswa (ON CONFLICT DO NOTHING).
func SeedStudentsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file students:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var rows []model.Student
	if err := sonic.Unmarshal(file, &rows); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}
	if len(rows) == 0 {
		log.Println("ℹ️ Tidak ada data student.")
		return
	}

	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if res.Error != nil {
		log.Fatalf("❌ Gagal insert students: %v", res.Error)
	}
	log.Printf("✅ Students: %d baru dari %d", res.RowsAffected, len(rows))
}
