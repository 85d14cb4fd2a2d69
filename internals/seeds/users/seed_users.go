package users

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	instansiModel "sekolahku_backend/internals/features/instansi/model"
	authService "sekolahku_backend/internals/features/users/auth/service"
	"sekolahku_backend/internals/features/users/user/model"
)

type UserSeed struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	InstansiSlug string `json:"instansi_slug"`
}

func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file user:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Gagal membaca file JSON: %v", err)
		return
	}
	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Printf("❌ Gagal decode JSON: %v", err)
		return
	}

	for _, data := range inputs {
		email := strings.ToLower(strings.TrimSpace(data.Email))
		var n int64
		db.Model(&model.UserModel{}).Where("email = ?", email).Count(&n)
		if n > 0 {
			log.Printf("ℹ️ User dengan email '%s' sudah ada, dilewati.", email)
			continue
		}
		if !constants.IsValidRole(data.Role) {
			log.Printf("❌ Role '%s' tidak valid untuk '%s'", data.Role, email)
			continue
		}

		u := model.UserModel{Name: data.Name, Email: email, Role: data.Role, IsActive: true}
		if data.Role != constants.RoleOwner {
			var inst instansiModel.InstansiModel
			if err := db.Where("instansi_slug = ?", data.InstansiSlug).First(&inst).Error; err != nil {
				log.Printf("❌ Instansi '%s' untuk '%s' tidak ditemukan", data.InstansiSlug, email)
				continue
			}
			u.InstansiID = &inst.ID
		}

		hashed, err := authService.HashPassword(data.Password)
		if err != nil {
			log.Printf("❌ Gagal hash password untuk '%s': %v", email, err)
			continue
		}
		u.Password = hashed

		if err := db.Create(&u).Error; err != nil {
			log.Printf("❌ Gagal insert user '%s': %v", email, err)
		} else {
			log.Printf("✅ Berhasil insert user '%s' (%s)", email, data.Role)
		}
	}
}
