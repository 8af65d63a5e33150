package mail

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/dependency"
	"github.com/jekabolt/storefront-ledger/internal/entity"
	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

type Config struct {
	APIKey         string        `mapstructure:"sendgrid_api_key"`
	FromEmail      string        `mapstructure:"from_email"`
	FromName       string        `mapstructure:"from_email_name"`
	ReplyTo        string        `mapstructure:"reply_to"`
	WorkerInterval time.Duration `mapstructure:"worker_interval"`
}

// Mailer renders transactional emails, queues them in the store and sends
// them through SendGrid. Unsent emails are retried by the worker.
type Mailer struct {
	cli            dependency.Sender
	mailRepository dependency.Mail
	from           *mail.Email
	c              *Config
	ctx            context.Context
	cancel         context.CancelFunc
	templates      map[string]*template.Template
}

func New(c *Config, mailRepository dependency.Mail) (dependency.Mailer, error) {
	if c == nil {
		return nil, fmt.Errorf("mailer config is nil")
	}
	return newMailer(c, mailRepository, sendgrid.NewSendClient(c.APIKey))
}

func newMailer(c *Config, mailRepository dependency.Mail, cli dependency.Sender) (*Mailer, error) {
	if c.APIKey == "" || c.FromEmail == "" || c.FromName == "" {
		return nil, fmt.Errorf("incomplete config: from %q <%s>", c.FromName, c.FromEmail)
	}
	if c.WorkerInterval == 0 {
		c.WorkerInterval = time.Minute
	}

	m := &Mailer{
		cli:            cli,
		mailRepository: mailRepository,
		from:           mail.NewEmail(c.FromName, c.FromEmail),
		c:              c,
		templates:      make(map[string]*template.Template),
	}
	if err := m.parseTemplates(); err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}
	return m, nil
}

func (m *Mailer) parseTemplates() error {
	templateDir := "templates"

	dirEntries, err := templatesFS.ReadDir(templateDir)
	if err != nil {
		return fmt.Errorf("error reading template directory: %w", err)
	}

	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		tmpl, err := template.ParseFS(templatesFS, filepath.Join(templateDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("error parsing template '%s': %w", entry.Name(), err)
		}
		m.templates[entry.Name()] = tmpl
	}
	return nil
}

func (m *Mailer) render(to, subject, tn string, data any) (*entity.SendEmailRequest, error) {
	tmpl, ok := m.templates[tn]
	if !ok {
		return nil, fmt.Errorf("template not found: %v", tn)
	}

	body := &strings.Builder{}
	if err := tmpl.Execute(body, data); err != nil {
		return nil, fmt.Errorf("error executing template: %w", err)
	}

	replyTo := m.c.ReplyTo
	if replyTo == "" {
		replyTo = m.c.FromEmail
	}
	return &entity.SendEmailRequest{
		From:    m.c.FromEmail,
		To:      to,
		Html:    body.String(),
		Subject: subject,
		ReplyTo: replyTo,
	}, nil
}

func (m *Mailer) sgMail(ser *entity.SendEmailRequest) (*mail.SGMailV3, error) {
	if ser.To == "" || ser.Subject == "" || ser.Html == "" {
		return nil, gerr.BadMailRequest
	}
	from := m.from
	if ser.From != "" && ser.From != m.c.FromEmail {
		from = mail.NewEmail(m.c.FromName, ser.From)
	}
	msg := mail.NewSingleEmail(from, ser.Subject, mail.NewEmail("", ser.To), "", ser.Html)
	if ser.ReplyTo != "" {
		msg.SetReplyTo(mail.NewEmail("", ser.ReplyTo))
	}
	return msg, nil
}

func (m *Mailer) sendRaw(ctx context.Context, ser *entity.SendEmailRequest) error {
	msg, err := m.sgMail(ser)
	if err != nil {
		return err
	}
	resp, err := m.cli.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return gerr.MailApiLimitReached
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("error sending email bad status code: %s, status code: %d", resp.Body, resp.StatusCode)
	}
	return nil
}

// sendWithInsert queues the email, then tries to send it right away. A
// failed send is left to the worker.
func (m *Mailer) sendWithInsert(ctx context.Context, ser *entity.SendEmailRequest) error {
	id, err := m.mailRepository.AddMail(ctx, ser)
	if err != nil {
		return fmt.Errorf("error inserting email: %w", err)
	}
	ser.Id = id

	if err := m.sendRaw(ctx, ser); err != nil {
		slog.Default().ErrorContext(ctx, "can't send mail, left for retry",
			slog.Int("id", id),
			slog.String("err", err.Error()),
		)
		return nil
	}

	if err := m.mailRepository.UpdateSent(ctx, id); err != nil {
		return fmt.Errorf("error updating email: %w", err)
	}
	return nil
}
