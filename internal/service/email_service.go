package service

import (
	"crypto/tls"
	"errors"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/autoluxe/internal/config"
	"github.com/autoluxe/internal/constants"
	"github.com/autoluxe/internal/i18n"
	"github.com/autoluxe/internal/models"
)

// EmailService 订单通知邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// OrderStatusEmailInput 订单状态邮件输入
type OrderStatusEmailInput struct {
	OrderID      string
	Status       string
	Total        models.Money
	CustomerName string
}

// SendOrderStatusEmail 发送订单状态通知
func (s *EmailService) SendOrderStatusEmail(toEmail string, input OrderStatusEmailInput, locale string) error {
	transport, err := s.transport()
	if err != nil {
		return err
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}
	subject, body := buildOrderStatusContent(input, locale)
	msg := composeTextMessage(formatSender(s.cfg.From, s.cfg.FromName), toEmail, subject, body)
	return classifySendError(transport.send(s.cfg.From, toEmail, msg))
}

func (s *EmailService) transport() (*smtpTransport, error) {
	if s == nil || s.cfg == nil || !s.cfg.Enabled {
		return nil, ErrEmailServiceDisabled
	}
	host := strings.TrimSpace(s.cfg.Host)
	if host == "" || s.cfg.Port <= 0 || strings.TrimSpace(s.cfg.From) == "" {
		return nil, ErrEmailServiceNotConfigured
	}
	t := &smtpTransport{
		host:     host,
		addr:     net.JoinHostPort(host, strconv.Itoa(s.cfg.Port)),
		implicit: s.cfg.UseSSL,
		startTLS: s.cfg.UseTLS && !s.cfg.UseSSL,
	}
	if s.cfg.Username != "" || s.cfg.Password != "" {
		t.auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, host)
	}
	return t, nil
}

func buildOrderStatusContent(input OrderStatusEmailInput, locale string) (string, string) {
	lang := i18n.Match(locale)
	statusKey := "order.status." + strings.ToLower(strings.TrimSpace(input.Status))
	statusLabel := i18n.T(lang, statusKey)
	if statusLabel == statusKey {
		statusLabel = input.Status
	}
	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		name = i18n.T(lang, "email.order_status.default_name")
	}
	total := input.Total.String()
	subject := i18n.Sprintf(lang, "email.order_status.subject", statusLabel)
	switch input.Status {
	case constants.OrderStatusPending:
		return subject, i18n.Sprintf(lang, "email.order_status.body_placed", name, input.OrderID, total)
	case constants.OrderStatusDelivered:
		return subject, i18n.Sprintf(lang, "email.order_status.body_delivered", name, input.OrderID, total)
	}
	return subject, i18n.Sprintf(lang, "email.order_status.body", name, input.OrderID, statusLabel, total)
}

func formatSender(from, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return from
	}
	return (&mail.Address{Name: mime.QEncoding.Encode("UTF-8", name), Address: from}).String()
}

func composeTextMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	headers := [][2]string{
		{"From", from},
		{"To", to},
		{"Subject", mime.QEncoding.Encode("UTF-8", subject)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/plain; charset=UTF-8"},
	}
	for _, h := range headers {
		b.WriteString(h[0] + ": " + h[1] + "\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// smtpTransport implicit 为 465 直连 TLS，startTLS 为明文连接后升级
type smtpTransport struct {
	host     string
	addr     string
	auth     smtp.Auth
	implicit bool
	startTLS bool
}

func (t *smtpTransport) dial() (*smtp.Client, error) {
	if !t.implicit {
		return smtp.Dial(t.addr)
	}
	conn, err := tls.Dial("tcp", t.addr, &tls.Config{ServerName: t.host})
	if err != nil {
		return nil, err
	}
	client, err := smtp.NewClient(conn, t.host)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return client, nil
}

func (t *smtpTransport) send(from, to string, msg []byte) error {
	client, err := t.dial()
	if err != nil {
		return err
	}
	defer client.Close()

	if t.startTLS {
		if err := client.StartTLS(&tls.Config{ServerName: t.host}); err != nil {
			return err
		}
	}
	if t.auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(t.auth); err != nil {
				return err
			}
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

var recipientRejectKeywords = []string{
	"no such recipient",
	"no such user",
	"recipient not found",
	"recipient address rejected",
	"invalid recipient",
	"user unknown",
	"unknown user",
	"unknown mailbox",
	"mailbox unavailable",
}

// classifySendError 收件人被拒收时转换为 ErrEmailRecipientRejected（任务不再重试）
func classifySendError(err error) error {
	if err == nil {
		return nil
	}
	if recipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

func recipientRejected(err error) bool {
	if err == nil {
		return false
	}
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 550, 551, 553:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	for _, keyword := range recipientRejectKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if !strings.Contains(message, "550") {
		return false
	}
	for _, hint := range []string{"recipient", "user", "mailbox", "address", "rcpt"} {
		if strings.Contains(message, hint) {
			return true
		}
	}
	return false
}
