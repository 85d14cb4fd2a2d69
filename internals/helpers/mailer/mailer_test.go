package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

func TestBuildMessage(t *testing.T) {
	m := &SendgridMailer{key: "k", from: sgmail.NewEmail("Sekolahku", "no-reply@sekolahku.id"), subjPrefix: "[Sekolahku] "}
	v3 := m.build(Message{
		ToEmail: "admin@smpn1.sch.id",
		ReplyTo: "ortu@mail.com",
		Subject: "Pesan baru",
		Text:    "Halo",
	})

	assert.Equal(t, "[Sekolahku] Pesan baru", v3.Personalizations[0].Subject)
	assert.Equal(t, "admin@smpn1.sch.id", v3.Personalizations[0].To[0].Address)
	assert.Equal(t, "ortu@mail.com", v3.ReplyTo.Address)
	assert.Len(t, v3.Content, 1)
}

func TestSendRejectsEmptyRecipient(t *testing.T) {
	m := &SendgridMailer{key: "k", from: sgmail.NewEmail("a", "b@c.d")}
	assert.Error(t, m.Send(Message{Subject: "x"}))
	assert.NoError(t, ConsoleMailer{}.Send(Message{ToEmail: "a@b.c"}))
}
