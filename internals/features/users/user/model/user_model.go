package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel users
type UserModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	InstansiID  *uuid.UUID `gorm:"type:uuid;index;column:instansi_id" json:"instansi_id,omitempty"`
	Name        string     `gorm:"size:100;not null;column:name" json:"name"`
	Email       string     `gorm:"size:255;not null;uniqueIndex:uq_users_email;column:email" json:"email"`
	Password    string     `gorm:"not null;column:password" json:"-"`
	GoogleID    *string    `gorm:"size:255;uniqueIndex:uq_users_google_id;column:google_id" json:"-"`
	Role        string     `gorm:"type:varchar(20);not null;default:'student';index;column:role" json:"role"`
	IsActive    bool       `gorm:"not null;default:true;column:is_active" json:"is_active"`
	LastLoginAt *time.Time `gorm:"type:timestamptz;column:last_login_at" json:"last_login_at,omitempty"`

	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamptz;autoUpdateTime;column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:deleted_at" json:"-"`
}

func (UserModel) TableName() string { return "users" }

// email selalu disimpan lowercase
func (u *UserModel) BeforeSave(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)
	return nil
}
