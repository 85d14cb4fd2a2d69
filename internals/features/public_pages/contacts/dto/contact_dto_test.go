package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"sekolahku_backend/internals/features/public_pages/contacts/model"
)

func TestHoneypot(t *testing.T) {
	assert.False(t, SubmitContactRequest{}.IsSpam())
	assert.False(t, SubmitContactRequest{Website: "  "}.IsSpam())
	assert.True(t, SubmitContactRequest{Website: "http://spam.example"}.IsSpam())
}

func TestSubmitToModel(t *testing.T) {
	m := SubmitContactRequest{Name: " Budi ", Email: " Budi@Mail.COM ", Subject: " Tanya ", Message: " halo admin "}.
		ToModel(uuid.New(), "10.0.0.1")
	assert.Equal(t, "budi@mail.com", m.Email)
	assert.Equal(t, "Budi", m.Name)
	assert.Equal(t, model.ContactNew, m.Status)
	assert.Equal(t, "10.0.0.1", *m.IP)
}

func TestStatusUpdates(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-time.Hour)

	tests := []struct {
		name    string
		cur     model.ContactMessageModel
		status  string
		read    bool
		replied bool
	}{
		{name: "mark read", status: model.ContactRead, read: true},
		{name: "reply unread", status: model.ContactReplied, read: true, replied: true},
		{name: "reply already read", cur: model.ContactMessageModel{ReadAt: &earlier}, status: model.ContactReplied, replied: true},
		{name: "archive", status: model.ContactArchived},
		{name: "read again", cur: model.ContactMessageModel{ReadAt: &earlier}, status: model.ContactRead},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusUpdates(tt.cur, tt.status, now)
			assert.Equal(t, tt.status, got["contact_message_status"])
			_, hasRead := got["contact_message_read_at"]
			_, hasReplied := got["contact_message_replied_at"]
			assert.Equal(t, tt.read, hasRead)
			assert.Equal(t, tt.replied, hasReplied)
		})
	}
}
