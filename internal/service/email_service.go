package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog"
)

// Notifier sends the account emails. EmailService implements it.
type Notifier interface {
	SendWelcomeEmail(ctx context.Context, toEmail, toName, familyName, inviteCode string) error
	SendPasswordResetNotice(ctx context.Context, toEmail, toName, familyName string) error
}

// SESSender is the part of the SES v2 client used for sending
type SESSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client    SESSender
	fromEmail string
	fromName  string
	enabled   bool
	log       zerolog.Logger
}

// NewEmailService creates a new email service. An empty fromEmail yields a
// disabled service whose sends are logged and skipped.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName string, log zerolog.Logger) (*EmailService, error) {
	log = log.With().Str("component", "email").Logger()

	if fromEmail == "" {
		log.Info().Msg("email service disabled: SES from address not configured")
		return &EmailService{enabled: false, log: log}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info().Str("from", fromEmail).Str("region", awsRegion).Msg("email service enabled")
	return NewEmailServiceWithClient(sesv2.NewFromConfig(cfg), fromEmail, fromName, log), nil
}

// NewEmailServiceWithClient creates an enabled service around an existing client
func NewEmailServiceWithClient(client SESSender, fromEmail, fromName string, log zerolog.Logger) *EmailService {
	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		log:       log,
	}
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcomeEmail greets a new family administrator and shares the invite code
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, toName, familyName, inviteCode string) error {
	if !s.enabled {
		s.log.Info().Str("to", toEmail).Msg("skipping welcome email (service disabled)")
		return nil
	}

	subject := "Bem-vindo ao FamBalance!"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #7c5cbf; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.code { font-size: 28px; letter-spacing: 6px; font-weight: bold; text-align: center; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Bem-vindo ao FamBalance!</h1>
		</div>
		<div class="content">
			<p>Olá %s,</p>
			<p>A família <strong>%s</strong> foi criada. Seu período de teste Premium já começou.</p>
			<p>Compartilhe este código de convite com sua família:</p>
			<p class="code">%s</p>
		</div>
		<div class="footer">
			<p>Este é um email automático do FamBalance. Por favor, não responda.</p>
		</div>
	</div>
</body>
</html>
`, toName, familyName, inviteCode)

	textBody := fmt.Sprintf(`Olá %s,

A família %s foi criada. Seu período de teste Premium já começou.

Compartilhe este código de convite com sua família: %s

---
Este é um email automático do FamBalance. Por favor, não responda.
`, toName, familyName, inviteCode)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendPasswordResetNotice tells the administrator a reset was requested.
// No reset token exists; the notice only points them to the family admin flow.
func (s *EmailService) SendPasswordResetNotice(ctx context.Context, toEmail, toName, familyName string) error {
	if !s.enabled {
		s.log.Info().Str("to", toEmail).Msg("skipping password reset notice (service disabled)")
		return nil
	}

	subject := "Redefinição de senha do FamBalance"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
</head>
<body>
	<p>Olá %s,</p>
	<p>Recebemos um pedido para redefinir a senha da família <strong>%s</strong>.</p>
	<p>Se não foi você, ignore este email.</p>
	<p style="font-size: 12px; color: #666;">Este é um email automático do FamBalance. Por favor, não responda.</p>
</body>
</html>
`, toName, familyName)

	textBody := fmt.Sprintf(`Olá %s,

Recebemos um pedido para redefinir a senha da família %s.

Se não foi você, ignore este email.

---
Este é um email automático do FamBalance. Por favor, não responda.
`, toName, familyName)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	event := s.log.Info().Str("to", toEmail).Str("subject", subject)
	if result != nil && result.MessageId != nil {
		event = event.Str("message_id", *result.MessageId)
	}
	event.Msg("email sent")
	return nil
}
