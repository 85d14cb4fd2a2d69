package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ContactNew      = "new"
	ContactRead     = "read"
	ContactReplied  = "replied"
	ContactArchived = "archived"
)

func IsValidContactStatus(s string) bool {
	switch s {
	case ContactNew, ContactRead, ContactReplied, ContactArchived:
		return true
	}
	return false
}

type ContactMessageModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:contact_message_id" json:"contact_message_id"`
	InstansiID uuid.UUID  `gorm:"type:uuid;not null;index;column:contact_message_instansi_id" json:"contact_message_instansi_id"`
	Name       string     `gorm:"size:120;not null;column:contact_message_name" json:"contact_message_name"`
	Email      string     `gorm:"size:255;not null;column:contact_message_email" json:"contact_message_email"`
	Phone      *string    `gorm:"size:30;column:contact_message_phone" json:"contact_message_phone,omitempty"`
	Subject    string     `gorm:"size:200;not null;column:contact_message_subject" json:"contact_message_subject"`
	Message    string     `gorm:"type:text;not null;column:contact_message_message" json:"contact_message_message"`
	Status     string     `gorm:"size:20;not null;default:new;index;column:contact_message_status" json:"contact_message_status"`
	IP         *string    `gorm:"size:64;column:contact_message_ip" json:"contact_message_ip,omitempty"`
	ReadAt     *time.Time `gorm:"type:timestamptz;column:contact_message_read_at" json:"contact_message_read_at,omitempty"`
	RepliedAt  *time.Time `gorm:"type:timestamptz;column:contact_message_replied_at" json:"contact_message_replied_at,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index;column:contact_message_created_at" json:"contact_message_created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime;column:contact_message_updated_at" json:"contact_message_updated_at"`
}

func (ContactMessageModel) TableName() string { return "contact_messages" }
