package mailer

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"sekolahku_backend/internals/configs"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

type Message struct {
	ToName  string
	ToEmail string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(msg Message) error
}

// NewFromEnv: SENDGRID_API_KEY kosong → ConsoleMailer (hanya log).
func NewFromEnv() Mailer {
	key := configs.GetEnv("SENDGRID_API_KEY")
	appName := configs.GetEnv("APP_NAME", "Sekolahku")
	from := configs.GetEnv("MAIL_FROM", "no-reply@sekolahku.id")
	if key == "" {
		log.Println("⚠️ SENDGRID_API_KEY kosong, email hanya dicatat di log")
		return ConsoleMailer{}
	}
	return &SendgridMailer{
		key:        key,
		from:       sgmail.NewEmail(appName, from),
		subjPrefix: "[" + appName + "] ",
	}
}

type SendgridMailer struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
}

func (m *SendgridMailer) build(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = m.subjPrefix + msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	if strings.TrimSpace(msg.ReplyTo) != "" {
		v3.SetReplyTo(sgmail.NewEmail("", msg.ReplyTo))
	}
	v3.AddContent(sgmail.NewContent("text/plain", msg.Text))
	if msg.HTML != "" {
		v3.AddContent(sgmail.NewContent("text/html", msg.HTML))
	}
	return v3
}

func (m *SendgridMailer) Send(msg Message) error {
	if strings.TrimSpace(msg.ToEmail) == "" {
		return fmt.Errorf("penerima email kosong")
	}
	req := sendgrid.GetRequest(m.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.build(msg))

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

type ConsoleMailer struct{}

func (ConsoleMailer) Send(msg Message) error {
	log.Printf("[MAIL] to=%s subject=%q\n%s", msg.ToEmail, msg.Subject, msg.Text)
	return nil
}

// SendAsync: kirim di goroutine, error cukup dicatat.
func SendAsync(m Mailer, msg Message) {
	if m == nil {
		return
	}
	go func() {
		if err := m.Send(msg); err != nil {
			log.Printf("[MAIL] gagal kirim ke %s: %v", msg.ToEmail, err)
		}
	}()
}
