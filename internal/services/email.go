package services

import (
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"rooftopgarden/internal/logger"
	"rooftopgarden/internal/models"
)

// mailSender, gomail.Dialer'ın kullandığımız kısmı
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailService, e-posta gönderimi için kullanılır
type EmailService struct {
	dialer     mailSender
	from       string
	adminEmail string
}

// SMTPSettings, EmailService ayarları
type SMTPSettings struct {
	Host       string
	Port       int
	User       string
	Pass       string
	AdminEmail string
}

// NewEmailService, yeni bir EmailService örneği oluşturur.
// SMTP bilgileri yoksa gönderim devre dışıdır ve mesajlar sadece loglanır.
func NewEmailService(s SMTPSettings) *EmailService {
	if s.User == "" || s.Pass == "" {
		logger.Log.Info("SMTP credentials not set, email sending disabled")
		return &EmailService{
			from:       "noreply@rooftopgarden.local",
			adminEmail: s.AdminEmail,
		}
	}

	return &EmailService{
		dialer:     gomail.NewDialer(s.Host, s.Port, s.User, s.Pass),
		from:       s.User,
		adminEmail: s.AdminEmail,
	}
}

// Enabled reports whether mail is actually sent.
func (es *EmailService) Enabled() bool {
	return es.dialer != nil
}

// SendOrderConfirmation, müşteriye sipariş onay e-postası gönderir
func (es *EmailService) SendOrderConfirmation(order *models.Order) error {
	if order.Email == "" {
		return nil
	}
	if es.dialer == nil {
		logger.Log.Info("Email disabled, order confirmation skipped",
			zap.String("order_number", order.OrderNumber), zap.String("to", order.Email))
		return nil
	}

	var rows strings.Builder
	for _, it := range order.Items {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td><td>$%s</td></tr>",
			html.EscapeString(it.Name), it.Quantity, it.TotalPrice.StringFixed(2))
	}

	body := fmt.Sprintf(`
		<h2>Thank you for your order!</h2>
		<p>Hello %s,</p>
		<p>Your order <strong>%s</strong> has been received.</p>
		<table>%s</table>
		<p>Total: <strong>$%s</strong></p>
		<br>
		<p>Happy gardening,<br>RoofTop Gardening</p>
	`, html.EscapeString(order.CustomerName), order.OrderNumber, rows.String(), order.TotalPrice.StringFixed(2))

	return es.send(order.Email, "Order Confirmation - "+order.OrderNumber, body)
}

// SendContactNotification, iletişim formundan gelen mesajı yöneticiye iletir
func (es *EmailService) SendContactNotification(msg *models.ContactMessage) error {
	if es.adminEmail == "" {
		return nil
	}
	if es.dialer == nil {
		logger.Log.Info("Email disabled, contact notification skipped", zap.String("from", msg.Email))
		return nil
	}

	body := fmt.Sprintf(`
		<h2>New contact message</h2>
		<p><strong>%s</strong> &lt;%s&gt; wrote:</p>
		<blockquote>%s</blockquote>
	`, html.EscapeString(msg.Name), html.EscapeString(msg.Email), html.EscapeString(msg.Message))

	return es.send(es.adminEmail, "New contact message from "+msg.Name, body)
}

func (es *EmailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", es.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := es.dialer.DialAndSend(m); err != nil {
		logger.Log.Error("Email sending failed", zap.String("to", to), zap.Error(err))
		return err
	}

	logger.Log.Info("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
