package email

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/labstack/gommon/log"
)

// Message is one outbound email. HTML is optional; when empty only the
// plain-text part is sent.
type Message struct {
	To      []string
	Subject string
	Body    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

type sesMailer struct {
	client *sesv2.Client
	from   string
}

// NewMailer returns an SES-backed mailer, or a mock mailer that only
// logs messages when EMAIL_FROM is not configured. The mock keeps
// local development working without AWS credentials.
func NewMailer() (Mailer, error) {
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		log.Warn("EMAIL_FROM not configured - emails will be logged only")
		return &mockMailer{}, nil
	}

	region := os.Getenv("AWS_SES_REGION")
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	return &sesMailer{
		client: sesv2.NewFromConfig(cfg),
		from:   from,
	}, nil
}

func (s *sesMailer) Send(ctx context.Context, msg *Message) error {
	body := &types.Body{
		Text: &types.Content{Data: aws.String(msg.Body)},
	}
	if msg.HTML != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTML)}
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: msg.To,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject)},
				Body:    body,
			},
		},
	}

	_, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return err
	}

	log.Infof("email sent to %v: %s", msg.To, msg.Subject)
	return nil
}

type mockMailer struct{}

func (m *mockMailer) Send(_ context.Context, msg *Message) error {
	log.Infof("=== EMAIL (mock mode) ===\nTo: %v\nSubject: %s\n%s\n=========================",
		msg.To, msg.Subject, msg.Body)
	return nil
}
