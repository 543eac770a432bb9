// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendIncentiveOffer(toEmail, headline, callToAction string) error
	SendSessionRecoveryLink(toEmail, sessionId string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string // Added to construct links
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	// Get Frontend URL from ENV or default to a safe placeholder
	frontendURL := os.Getenv("FRONTEND_URL")

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		frontendURL: frontendURL,
	}
}

func (s *emailService) SendIncentiveOffer(toEmail, headline, callToAction string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", headline)

	upgradeLink := fmt.Sprintf("%s/upgrade", s.frontendURL)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s</h2>
			<p>Your CV is almost ready. You're closer than you think.</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">%s</a>
			<p>If you didn't request this, please ignore this email.</p>
		</div>
	`, headline, upgradeLink, callToAction)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send incentive offer to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Incentive offer sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendSessionRecoveryLink(toEmail, sessionId string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Pick up your CV where you left off")

	// Construct the clickable link pointing to the FRONTEND
	resumeLink := fmt.Sprintf("%s/resume?session=%s", s.frontendURL, sessionId)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your CV is waiting</h2>
			<p>You left a CV in progress. Click the button below to continue:</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Continue my CV</a>
			<p>Or copy this link:</p>
			<p>%s</p>
			<p>If you didn't request this, please ignore this email.</p>
		</div>
	`, resumeLink, resumeLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send recovery link to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Recovery link sent to %s\n", toEmail)
	return nil
}
