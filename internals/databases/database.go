package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"schoolfee_backend/internals/configs"
	feeModel "schoolfee_backend/internals/features/finance/fees/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	// Kalau lewat PgBouncer, arahkan host/port ke PgBouncer dan biarkan PreferSimpleProtocol=true
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=schoolfee&options=-c statement_timeout=3000",
		configs.GetEnv("DB_USER"),
		configs.GetEnv("DB_PASSWORD"),
		configs.GetEnv("DB_HOST"),
		configs.GetEnv("DB_PORT", "5432"),
		configs.GetEnv("DB_NAME"),
		configs.GetEnv("DB_SSLMODE", "require"),
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Models: tabel yang dikelola modul fees.
func Models() []any {
	return []any{
		&feeModel.Student{},
		&feeModel.ClassFee{},
		&feeModel.StudentFee{},
		&feeModel.TransportAssignment{},
		&feeModel.FeeSubmission{},
	}
}

// Migrate selalu menjalankan AutoMigrate gorm (dipakai seeder).
func Migrate(db *gorm.DB) error {
	log.Println("[INFO] AutoMigrate fees tables...")
	return db.AutoMigrate(Models()...)
}

// AutoMigrate saat server start. Hanya jalan kalau DB_AUTO_MIGRATE=true;
// di production skema dikelola lewat migration SQL.
func AutoMigrate(db *gorm.DB) error {
	if !configs.GetEnvBool("DB_AUTO_MIGRATE", false) {
		return nil
	}
	return Migrate(db)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
			return
		}
		// tabel yang paling sering dibaca list ledger
		if err := DB.Exec("SELECT 1 FROM class_fees LIMIT 1").Error; err != nil {
			log.Printf("warm-up class_fees err: %v", err)
		}
	}()
}

func Ping() error { return ping() }

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
