package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendOTP(toEmail, otp string) error
	SendOrderConfirmation(toEmail, orderId string, total float64) error
	SendOrderStatusUpdate(toEmail, orderId, status string) error
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

func (s *emailService) SendOTP(toEmail, otp string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your GasFlow Verification Code")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to GasFlow!</h2>
			<p>Your verification code is:</p>
			<h1 style="color: #FF6B00; letter-spacing: 5px;">%s</h1>
			<p>This code will expire in 15 minutes.</p>
			<p>If you didn't request this, please ignore this email.</p>
		</div>
	`, otp)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send OTP to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] OTP sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendOrderConfirmation(toEmail, orderId string, total float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your GasFlow Order Confirmation")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Thank you for your order!</h2>
			<p>We received your order <b>%s</b>.</p>
			<p>Total: <b>Rp %.0f</b></p>
			<p>We will notify you as soon as your cylinders are on the way.</p>
		</div>
	`, orderId, total)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send order confirmation to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Order confirmation sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendOrderStatusUpdate(toEmail, orderId, status string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "GasFlow Order Update")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Order Update</h2>
			<p>Your order <b>%s</b> is now <b>%s</b>.</p>
		</div>
	`, orderId, status)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send status update to %s: %v\n", toEmail, err)
		return err
	}
	return nil
}
