// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendOrderReceipt(toEmail, orderID string, total float64) error
	SendAppointmentConfirmation(toEmail, doctorName, date, timeSlot string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendOrderReceipt(toEmail, orderID string, total float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your HealthLink Order Receipt")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Thank you for your order!</h2>
			<p>Order reference: <strong>%s</strong></p>
			<p>Total charged: <strong>%.2f</strong></p>
			<p>We will notify you once your medicines are on the way.</p>
		</div>
	`, orderID, total)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send receipt to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Receipt sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendAppointmentConfirmation(toEmail, doctorName, date, timeSlot string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Appointment Confirmed")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your appointment is booked</h2>
			<p>Doctor: <strong>%s</strong></p>
			<p>Date: <strong>%s</strong> at <strong>%s</strong></p>
			<p>If you need to reschedule, you can do so from your dashboard.</p>
		</div>
	`, doctorName, date, timeSlot)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send confirmation to %s: %v\n", toEmail, err)
		return err
	}
	return nil
}
