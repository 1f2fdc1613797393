package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendDecisionNotice(toEmail string, sessionId uint, externalUserId, decision string, note *string) error
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

// SendDecisionNotice informs the ops inbox that an operator decided a
// session. Delivery is best-effort; the decision itself is already
// committed when this runs.
func (s *emailService) SendDecisionNotice(toEmail string, sessionId uint, externalUserId, decision string, note *string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("KYC session #%d decided: %s", sessionId, decision))

	noteHTML := ""
	if note != nil && *note != "" {
		noteHTML = fmt.Sprintf("<p>Operator note: %s</p>", *note)
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Verification decision recorded</h2>
			<p>Session <strong>#%d</strong> (subject %s) was marked <strong>%s</strong>.</p>
			%s
		</div>
	`, sessionId, externalUserId, decision, noteHTML)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send decision notice for session %d: %v\n", sessionId, err)
		return err
	}

	return nil
}
