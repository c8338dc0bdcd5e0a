package ses

import (
	"context"
	"fmt"
	"net/url"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"notaryflow/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendSubmissionReceipt(ctx context.Context, toEmail, toName, referenceNumber string) error {
	retrieveURL := fmt.Sprintf("%s/retrieve?ref=%s", s.frontendURL, url.QueryEscape(referenceNumber))

	subject := "Your NotaryFlow submission was received"
	htmlBody := buildReceiptHTML(toName, referenceNumber, retrieveURL)
	textBody := fmt.Sprintf("Hi %s,\n\nWe received your document submission. Your reference number is:\n%s\n\nKeep it safe; together with the signing date it unlocks your document at:\n%s\n\nNotaryFlow Team", toName, referenceNumber, retrieveURL)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendNotaryScheduled(ctx context.Context, toEmail, toName, referenceNumber, meetingID string) error {
	retrieveURL := fmt.Sprintf("%s/retrieve?ref=%s", s.frontendURL, url.QueryEscape(referenceNumber))

	subject := "Your notarization session is scheduled"
	htmlBody := buildNotaryScheduledHTML(toName, referenceNumber, meetingID, retrieveURL)
	textBody := fmt.Sprintf("Hi %s,\n\nYour live notarization session is scheduled.\n\nReference number: %s\nMeeting ID: %s\n\nAfter the session, retrieve your notarized document at:\n%s\n\nNotaryFlow Team", toName, referenceNumber, meetingID, retrieveURL)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildReceiptHTML(name, referenceNumber, retrieveURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Submission received</h2>
  <p>Hi %s,</p>
  <p>We received your document submission. Your reference number is:</p>
  <p style="text-align: center; margin: 30px 0; font-size: 20px; font-weight: bold; letter-spacing: 1px;">%s</p>
  <p>Keep it safe. Together with the signing date it unlocks your completed document:</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Retrieve Document</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">NotaryFlow - Online Document Notarization</p>
</body>
</html>`, name, referenceNumber, retrieveURL)
}

func buildNotaryScheduledHTML(name, referenceNumber, meetingID, retrieveURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Notarization session scheduled</h2>
  <p>Hi %s,</p>
  <p>Your live notarization session is scheduled.</p>
  <p style="margin: 20px 0;">Reference number: <strong>%s</strong><br>Meeting ID: <strong>%s</strong></p>
  <p>After the session, retrieve your notarized document here:</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Retrieve Document</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">NotaryFlow - Online Document Notarization</p>
</body>
</html>`, name, referenceNumber, meetingID, retrieveURL)
}
