package seeds

import (
	"gorm.io/gorm"

	"sekolahku_backend/internals/seeds/instansi"
	"sekolahku_backend/internals/seeds/users"
)

// RunAllSeeds: data awal dev (DB_SEED=true). Aman dijalankan ulang.
func RunAllSeeds(db *gorm.DB) {
	//* Instansi dulu, user butuh instansi_id
	instansi.SeedInstansiFromJSON(db, "internals/seeds/instansi/data_instansi.json")

	//* User
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
}
