package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/silkloom/storefront/internal/config"
	"github.com/silkloom/storefront/internal/i18n"
	"github.com/silkloom/storefront/internal/models"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled 是否已启用并配置 SMTP
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled && s.cfg.Host != "" && s.cfg.Port != 0 && s.cfg.From != ""
}

// SendCustomOrderSubmitted 通知店铺收到新的定制需求
func (s *EmailService) SendCustomOrderSubmitted(toEmail string, request *models.CustomOrderRequest, locale string) error {
	subject, body := buildCustomOrderSubmittedContent(request, locale)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendCustomOrderStatus 通知提交人定制需求状态变更
func (s *EmailService) SendCustomOrderStatus(request *models.CustomOrderRequest, status, locale string) error {
	subject, body := buildCustomOrderStatusContent(request, status, locale)
	return s.sendTextEmail(request.Email, subject, body)
}

// SendOrderPlaced 向下单用户发送确认邮件
func (s *EmailService) SendOrderPlaced(toEmail, recipientName string, order *models.Order, locale string) error {
	subject, body := buildOrderPlacedContent(recipientName, order, locale)
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s == nil || s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	client, err := dialSMTP(s.cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	return normalizeEmailSendError(sendSMTPData(client, s.cfg.From, []string{toEmail}, []byte(msg)))
}

// dialSMTP 按配置建立连接：UseSSL 直连 TLS，UseTLS 使用 STARTTLS，否则明文
func dialSMTP(cfg *config.EmailConfig) (*smtp.Client, error) {
	addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))
	tlsConfig := &tls.Config{ServerName: cfg.Host}

	if cfg.UseSSL {
		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return nil, err
		}
		client, err := smtp.NewClient(conn, cfg.Host)
		if err != nil {
			conn.Close()
			return nil, err
		}
		return client, nil
	}

	client, err := smtp.Dial(addr)
	if err != nil {
		return nil, err
	}
	if cfg.UseTLS {
		if err := client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return nil, err
		}
	}
	return client, nil
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
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

func buildCustomOrderSubmittedContent(request *models.CustomOrderRequest, locale string) (string, string) {
	budget := "-"
	if request.Budget != nil {
		budget = request.Budget.String()
	}
	phone := request.Phone
	if phone == "" {
		phone = "-"
	}
	subject := i18n.Sprintf(locale, "mail.custom_order_submitted.subject", request.ID)
	body := i18n.Sprintf(locale, "mail.custom_order_submitted.body", request.Name, request.Email, phone, budget, request.Requirements)
	return subject, body
}

func buildCustomOrderStatusContent(request *models.CustomOrderRequest, status, locale string) (string, string) {
	subject := i18n.Sprintf(locale, "mail.custom_order_status.subject", request.ID, status)
	body := i18n.Sprintf(locale, "mail.custom_order_status.body", request.Name, request.ID, status)
	return subject, body
}

func buildOrderPlacedContent(recipientName string, order *models.Order, locale string) (string, string) {
	var lines strings.Builder
	for _, item := range order.Items {
		lines.WriteString(fmt.Sprintf("- %s x%d @ %s\n", item.ProductName, item.Quantity, item.Price.String()))
	}
	subject := i18n.Sprintf(locale, "mail.order_placed.subject", order.ID)
	body := i18n.Sprintf(locale, "mail.order_placed.body", recipientName, order.ID, strings.TrimRight(lines.String(), "\n"), order.TotalAmount.String())
	return subject, body
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

var recipientRejectedKeywords = []string{
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

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	for _, keyword := range recipientRejectedKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		for _, hint := range []string{"recipient", "user", "mailbox", "address", "rcpt"} {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
