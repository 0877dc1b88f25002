package services

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"properties-api/domain"
)

// Notifier define la interfaz del colaborador de notificaciones
// Dos despachos por consulta: alerta al operador y acuse al remitente
type Notifier interface {
	SendOperatorAlert(contact *domain.Contact) error
	SendSubmitterAck(contact *domain.Contact) error
}

// smtpNotifier implementa Notifier sobre un relay SMTP
type smtpNotifier struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
}

// NewSMTPNotifier crea el notificador de correo
func NewSMTPNotifier(host string, port int, user, password, adminEmail string) Notifier {
	return &smtpNotifier{
		dialer:     gomail.NewDialer(host, port, user, password),
		from:       user,
		adminEmail: adminEmail,
	}
}

// SendOperatorAlert avisa al operador que entró una consulta nueva
func (n *smtpNotifier) SendOperatorAlert(contact *domain.Contact) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.adminEmail)
	m.SetHeader("Subject", fmt.Sprintf("New Contact Form: %s", contact.Subject))
	m.SetBody("text/html", fmt.Sprintf(`
		<h2>New Contact Form Submission</h2>
		<p><strong>Name:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Phone:</strong> %s</p>
		<p><strong>Subject:</strong> %s</p>
		<p><strong>Message:</strong> %s</p>
		<p><strong>Submitted At:</strong> %s</p>`,
		contact.Name, contact.Email, contact.Phone, contact.Subject,
		contact.Message, contact.CreatedAt.Format(time.RFC1123)))

	return n.dialer.DialAndSend(m)
}

// SendSubmitterAck agradece al remitente y le confirma la recepción
func (n *smtpNotifier) SendSubmitterAck(contact *domain.Contact) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", contact.Email)
	m.SetHeader("Subject", "Thank you for contacting Mohalla Properties")
	m.SetBody("text/html", fmt.Sprintf(`
		<h2>Thank you for contacting Mohalla Properties!</h2>
		<p>Dear %s,</p>
		<p>We have received your inquiry and our team will get back to you within 24 hours.</p>
		<p><strong>Your Query:</strong> %s</p>
		<p><strong>Your Message:</strong> %s</p>
		<br>
		<p>Best Regards,</p>
		<p>Mohalla Properties Team</p>`,
		contact.Name, contact.Subject, contact.Message))

	return n.dialer.DialAndSend(m)
}
