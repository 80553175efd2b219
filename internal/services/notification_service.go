// internal/services/notification_service.go
// Email notifications fired off the analysis pipeline: a rare correct
// pick, or a freshly assembled AnalysisReport.

package services

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"bracketpool/internal/analysis"
	"bracketpool/internal/config"
)

// NotificationService sends participant-facing emails via SendGrid. A
// blank API key degrades to logging only, so local development never needs
// a live SendGrid account.
type NotificationService struct {
	apiKey      string
	fromEmail   string
	fromName    string
	frontendURL string
	logger      *log.Logger
}

// NewNotificationService creates a new notification service from the
// application's external-service configuration.
func NewNotificationService(cfg *config.Config, logger *log.Logger) *NotificationService {
	return &NotificationService{
		apiKey:      cfg.External.SendGridAPIKey,
		fromEmail:   "results@bracketpool.app",
		fromName:    "Bracket Pool Analyzer",
		frontendURL: cfg.External.FrontendURL,
		logger:      logger,
	}
}

// NotifyRareCorrectPick emails every listed participant when their pick
// correctly called a result that less than 10% of the pool predicted.
func (s *NotificationService) NotifyRareCorrectPick(ctx context.Context, recipients []string, pick analysis.RareCorrectPick) error {
	if len(recipients) == 0 {
		return nil
	}
	subject := fmt.Sprintf("Rare call: you had %s in round %d", pick.Winner.Name, pick.Round)
	body := fmt.Sprintf(
		"Only %.1f%% of the pool picked %s to win this matchup. You did.",
		pick.Percentage, pick.Winner.Name,
	)
	return s.send(ctx, recipients, subject, body)
}

// NotifyAnalysisReady emails participants when a fresh AnalysisReport is
// available, linking to the dashboard.
func (s *NotificationService) NotifyAnalysisReady(ctx context.Context, recipients []string, report analysis.AnalysisReport) error {
	if len(recipients) == 0 {
		return nil
	}
	subject := fmt.Sprintf("Updated odds: %s", report.RoundName)
	body := fmt.Sprintf(
		"The analysis has been refreshed after %s. View your updated standings at %s/dashboard.",
		report.RoundName, s.frontendURL,
	)
	return s.send(ctx, recipients, subject, body)
}

func (s *NotificationService) send(ctx context.Context, recipients []string, subject, body string) error {
	if s.apiKey == "" {
		for _, r := range recipients {
			s.logger.Printf("notification (no SENDGRID_API_KEY, logging only) to=%s subject=%q", r, subject)
		}
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	client := sendgrid.NewSendClient(s.apiKey)

	for _, r := range recipients {
		to := mail.NewEmail("", r)
		message := mail.NewSingleEmail(from, subject, to, body, "")
		response, err := client.SendWithContext(ctx, message)
		if err != nil {
			s.logger.Printf("notification send failed to=%s: %v", r, err)
			continue
		}
		if response.StatusCode >= 400 {
			s.logger.Printf("notification send rejected to=%s status=%d", r, response.StatusCode)
		}
	}
	return nil
}
