package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"velotrack-backoffice/internal/domain"
)

type emailService struct {
	apiKey        string
	fromEmail     string
	fromName      string
	workshopEmail string
}

func NewEmailService(apiKey, fromEmail, fromName, workshopEmail string) EmailService {
	return &emailService{
		apiKey:        apiKey,
		fromEmail:     fromEmail,
		fromName:      fromName,
		workshopEmail: workshopEmail,
	}
}

func (s *emailService) send(subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("Workshop", s.workshopEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendPurchaseStatusNotification(ctx context.Context, req *domain.PurchaseRequest) error {
	subject := fmt.Sprintf("Purchase request #%d is now %s", req.ID, req.Status)
	body := fmt.Sprintf("Purchase request #%d (%d x %s, priority %s) moved to status: %s.",
		req.ID, req.Quantity, req.PartName, req.Priority, req.Status)
	return s.send(subject, body)
}

func (s *emailService) SendLowStockAlert(ctx context.Context, parts []domain.Part) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%d part(s) are below their minimum stock level:\n\n", len(parts))
	for _, p := range parts {
		fmt.Fprintf(&b, "- %s: %d on hand (minimum %d)\n", p.Name, p.StockQuantity, p.MinStockQuantity)
	}
	return s.send("Low stock alert", b.String())
}

func (s *emailService) SendWeeklyGenerationSummary(ctx context.Context, report *WeeklyGenerationReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Weekly maintenance generation: %s.\n", report.Summary)
	for _, skip := range report.Skipped {
		fmt.Fprintf(&b, "- skipped bike %d on %s: %s\n", skip.BikeID, skip.Date.Format("2006-01-02"), skip.Reason)
	}
	for _, e := range report.Errors {
		fmt.Fprintf(&b, "- failed bike %d: %s\n", e.BikeID, e.Error)
	}
	return s.send("Weekly maintenance generation", b.String())
}
