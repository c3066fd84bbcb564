package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendPendingDigest mails a building administrator the list of reports still
// awaiting resolution.
func (s *emailService) SendPendingDigest(ctx context.Context, toEmail, toName, buildingName string, pending []domain.Report) error {
	subject := fmt.Sprintf("Reportes pendientes - %s (%d)", buildingName, len(pending))

	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s,\n\nEl edificio %s tiene %d reporte(s) pendiente(s):\n\n", toName, buildingName, len(pending))
	for _, r := range pending {
		fmt.Fprintf(&b, "  %s — unidad %s reportada por %s (%s)\n    %s\n\n",
			r.Ticket, r.TargetUnit, r.UserName, r.OriginUnit, r.Body)
	}
	b.WriteString("Ingresa al muro de comunidad para responderlos.\n\nHabitat Portal")

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, b.String(), "")

	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail, "building", buildingName)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	logger.ExternalServiceResult("sendgrid", "send", err, "to", toEmail)

	if err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
