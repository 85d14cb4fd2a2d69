package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/public_pages/contacts/model"
)

type SubmitContactRequest struct {
	Name    string  `json:"name" form:"name" validate:"required,min=2,max=120"`
	Email   string  `json:"email" form:"email" validate:"required,email,max=255"`
	Phone   *string `json:"phone" form:"phone" validate:"omitempty,max=30"`
	Subject string  `json:"subject" form:"subject" validate:"required,min=3,max=200"`
	Message string  `json:"message" form:"message" validate:"required,min=10,max=5000"`
	// honeypot: bot biasanya mengisi semua field
	Website string `json:"website" form:"website"`
}

func (r SubmitContactRequest) IsSpam() bool { return strings.TrimSpace(r.Website) != "" }

func (r SubmitContactRequest) ToModel(instansiID uuid.UUID, ip string) model.ContactMessageModel {
	m := model.ContactMessageModel{
		InstansiID: instansiID,
		Name:       strings.TrimSpace(r.Name),
		Email:      strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:      r.Phone,
		Subject:    strings.TrimSpace(r.Subject),
		Message:    strings.TrimSpace(r.Message),
		Status:     model.ContactNew,
	}
	if ip != "" {
		m.IP = &ip
	}
	return m
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read replied archived"`
}

// StatusUpdates: ReadAt/RepliedAt hanya diisi sekali.
func StatusUpdates(cur model.ContactMessageModel, status string, now time.Time) map[string]any {
	m := map[string]any{"contact_message_status": status}
	if (status == model.ContactRead || status == model.ContactReplied) && cur.ReadAt == nil {
		m["contact_message_read_at"] = now
	}
	if status == model.ContactReplied && cur.RepliedAt == nil {
		m["contact_message_replied_at"] = now
	}
	return m
}
