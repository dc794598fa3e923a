package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// IsConfigured reports whether an SMTP host is set. Callers treat email as
// best-effort and skip sending when unconfigured.
func (s *EmailService) IsConfigured() bool {
	return s.config.SMTPHost != ""
}

// OrderConfirmationItem is one line of the confirmation message
type OrderConfirmationItem struct {
	Description string
	Quantity    int
	UnitPrice   string
	Total       string
}

// OrderConfirmation is the data rendered into the confirmation template
type OrderConfirmation struct {
	CustomerName string
	OrderNumber  string
	OrderDate    string
	Items        []OrderConfirmationItem
	Total        string
	StoreName    string
}

// SendOrderConfirmation sends an order confirmation email
func (s *EmailService) SendOrderConfirmation(toEmail string, data OrderConfirmation) error {
	htmlContent, err := s.renderOrderConfirmation(data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Order %s confirmed", data.OrderNumber)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderOrderConfirmation renders the order confirmation email template
func (s *EmailService) renderOrderConfirmation(data OrderConfirmation) (string, error) {
	tmpl, err := template.New("order_confirmation").Parse(orderConfirmationTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

const orderConfirmationTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <h2>Thank you for your order, {{.CustomerName}}!</h2>
  <p>Your order <strong>{{.OrderNumber}}</strong> placed on {{.OrderDate}} has been received and is pending processing.</p>
  <table style="width: 100%; border-collapse: collapse;">
    <thead>
      <tr style="background: #f5f5f5;">
        <th style="text-align: left; padding: 8px; border-bottom: 1px solid #ddd;">Item</th>
        <th style="text-align: right; padding: 8px; border-bottom: 1px solid #ddd;">Qty</th>
        <th style="text-align: right; padding: 8px; border-bottom: 1px solid #ddd;">Unit</th>
        <th style="text-align: right; padding: 8px; border-bottom: 1px solid #ddd;">Total</th>
      </tr>
    </thead>
    <tbody>
      {{range .Items}}
      <tr>
        <td style="padding: 8px; border-bottom: 1px solid #eee;">{{.Description}}</td>
        <td style="text-align: right; padding: 8px; border-bottom: 1px solid #eee;">{{.Quantity}}</td>
        <td style="text-align: right; padding: 8px; border-bottom: 1px solid #eee;">{{.UnitPrice}}</td>
        <td style="text-align: right; padding: 8px; border-bottom: 1px solid #eee;">{{.Total}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <p style="text-align: right; font-size: 18px;"><strong>Total: {{.Total}}</strong></p>
  <p style="color: #888; font-size: 12px;">{{.StoreName}}</p>
</body>
</html>`
