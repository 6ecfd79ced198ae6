// internal/notify/mailer.go

// Package notify sends meeting notices to the resolved recipient list.
package notify

import (
	"context"
	"regexp"

	commonaws "minutes-service/internal/common/aws"
	"minutes-service/internal/common/errors"
	"minutes-service/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// EmailSender is the transport surface, satisfied by the SES client.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

var _ EmailSender = (*commonaws.SESClient)(nil)

// addressPattern extracts the address from a "name <email>" recipient line.
var addressPattern = regexp.MustCompile(`<([^<>]+@[^<>]+)>`)

// Mailer sends meeting notices. A disabled mailer logs and drops sends, so
// environments without SES credentials still work.
type Mailer struct {
	sender  EmailSender
	from    string
	enabled bool
	logger  logger.Logger
}

func NewMailer(sender EmailSender, from string, enabled bool, log logger.Logger) *Mailer {
	return &Mailer{sender: sender, from: from, enabled: enabled, logger: log}
}

// ExtractAddresses pulls the bare email addresses out of rendered recipient
// lines. Lines without an address are dropped.
func ExtractAddresses(recipientList string) []string {
	var out []string
	for _, m := range addressPattern.FindAllStringSubmatch(recipientList, -1) {
		out = append(out, m[1])
	}
	return out
}

// SendMeetingNotice mails the document text to every address in the list.
func (m *Mailer) SendMeetingNotice(ctx context.Context, addresses []string, subject, body string) error {
	if len(addresses) == 0 {
		return errors.NewInvalidRequestError("no recipient addresses")
	}

	if !m.enabled {
		m.logger.Info("email disabled, notice dropped", map[string]interface{}{
			"subject":    subject,
			"recipients": len(addresses),
		})
		return nil
	}

	input := &ses.SendEmailInput{
		Source: aws.String(m.from),
		Destination: &types.Destination{
			ToAddresses: addresses,
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(body),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	if _, err := m.sender.SendEmail(ctx, input); err != nil {
		return errors.NewNotificationSendFailedError(err)
	}

	m.logger.Info("meeting notice sent", map[string]interface{}{
		"subject":    subject,
		"recipients": len(addresses),
	})
	return nil
}
