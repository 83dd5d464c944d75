package seeds

import (
	classfees "schoolfee_backend/internals/seeds/class_fees"
	"schoolfee_backend/internals/seeds/students"

	"gorm.io/gorm"
)

func RunAllSeeds(db *gorm.DB) {
	//* Direktori siswa (demo)
	students.SeedStudentsFromJSON(db, "internals/seeds/students/data_students.json")

	//* Standar biaya per kelas
	classfees.SeedClassFeesFromJSON(db, "internals/seeds/class_fees/data_class_fees.json")
}
