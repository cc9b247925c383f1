package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strconv"
	"time"
)

type MailServiceInterface interface {
	SendPaymentReminder(to, name, reference string, expiresAt time.Time) error
	SendDecisionNotice(to, name, reference string, accepted bool) error
}

// SMTPConfig holds SMTP + branding config.
type SMTPConfig struct {
	Host     string // e.g. "smtp.gmail.com"
	Port     int    // e.g. 587 (STARTTLS)
	Username string
	Password string
	From     string // envelope from, e.g. "no-reply@tiketku.app"
	FromName string // display name

	AppName    string
	AppBaseURL string
}

type smtpMailService struct {
	cfg         SMTPConfig
	reminderTpl *template.Template
	decisionTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) MailServiceInterface {
	return &smtpMailService{
		cfg:         cfg,
		reminderTpl: template.Must(template.New("reminder").Parse(paymentReminderTemplate)),
		decisionTpl: template.Must(template.New("decision").Parse(decisionNoticeTemplate)),
	}
}

func (s *smtpMailService) SendPaymentReminder(to, name, reference string, expiresAt time.Time) error {
	var body bytes.Buffer
	err := s.reminderTpl.Execute(&body, map[string]interface{}{
		"AppName":   s.cfg.AppName,
		"Name":      name,
		"Reference": reference,
		"ExpiresAt": expiresAt.Format(time.RFC1123),
		"UploadURL": fmt.Sprintf("%s/transactions/%s/payment-proof", s.cfg.AppBaseURL, reference),
		"Year":      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, "Upload your payment proof", body.String())
}

func (s *smtpMailService) SendDecisionNotice(to, name, reference string, accepted bool) error {
	outcome := "rejected"
	if accepted {
		outcome = "confirmed"
	}

	var body bytes.Buffer
	err := s.decisionTpl.Execute(&body, map[string]interface{}{
		"AppName":   s.cfg.AppName,
		"Name":      name,
		"Reference": reference,
		"Outcome":   outcome,
		"Year":      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, fmt.Sprintf("Your order was %s", outcome), body.String())
}

func (s *smtpMailService) send(to, subject, htmlBody string) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}

	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.FromName, s.cfg.From, to, subject, htmlBody)
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

const paymentReminderTemplate = `<html><body>
<h2>{{.AppName}}</h2>
<p>Hi {{.Name}},</p>
<p>Your order <strong>{{.Reference}}</strong> is reserved. Upload your payment
proof before <strong>{{.ExpiresAt}}</strong> or the reservation will expire and
the tickets will be released.</p>
<p><a href="{{.UploadURL}}">Upload payment proof</a></p>
<p>&copy; {{.Year}} {{.AppName}}</p>
</body></html>`

const decisionNoticeTemplate = `<html><body>
<h2>{{.AppName}}</h2>
<p>Hi {{.Name}},</p>
<p>Your order <strong>{{.Reference}}</strong> has been <strong>{{.Outcome}}</strong> by the organizer.</p>
<p>&copy; {{.Year}} {{.AppName}}</p>
</body></html>`
