package services

import (
	"context"
	"errors"
	"fmt"

	"auraweb/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// Notifier sends the lifecycle emails. Every send is a single best-effort
// attempt; callers log failures and continue.
type Notifier interface {
	SendCustomerConfirmation(submission *models.Submission) error
	SendAdminAlert(submission *models.Submission) error
	SendPaymentRequest(submission *models.Submission, checkoutURL string, amount int) error
}

// ErrNoRecipient is returned when a submission has no email on file.
var ErrNoRecipient = errors.New("no recipient email on file")

type notificationService struct {
	sesClient  *sesv2.Client
	fromEmail  string
	adminEmail string
}

// NewNotificationService sends mail via AWS SES (SESv2 API).
func NewNotificationService(cfg aws.Config, fromEmail, adminEmail string) Notifier {
	return &notificationService{
		sesClient:  sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		adminEmail: adminEmail,
	}
}

func (n *notificationService) SendCustomerConfirmation(submission *models.Submission) error {
	if submission.Email == "" {
		return ErrNoRecipient
	}

	subject := fmt.Sprintf("Your Website Request Received - %s", submission.BusinessName)
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #667eea;">Thank You for Choosing AuraWeb!</h1>
    <p>Dear <strong>%s</strong>,</p>
    <p>We've successfully received your website development request. Our team is excited to bring your vision to life!</p>
    <div style="background: #f9fafb; padding: 20px; border-left: 4px solid #667eea;">
        <h3>Submission Details</h3>
        <p><strong>Package:</strong> %s</p>
        <p><strong>Business Type:</strong> %s</p>
        <p><strong>Contact:</strong> %s</p>
        <p><strong>Submission ID:</strong> %s</p>
    </div>
    <h3>What Happens Next?</h3>
    <ol>
        <li><strong>Review (24 hours):</strong> Our team will review your requirements</li>
        <li><strong>Payment Invoice:</strong> You'll receive a payment link for the 50%% deposit</li>
        <li><strong>Development Starts:</strong> Once payment is confirmed, we begin building</li>
        <li><strong>Delivery:</strong> Your website will be ready within the agreed timeline</li>
    </ol>
    <p>Questions? Reply to this email or call us at +251 911 234 567</p>
    <p style="color: #666; font-size: 14px;">AuraWeb Solutions - Addis Ababa, Ethiopia</p>
</body>
</html>`,
		submission.BusinessName, submission.PackageID, submission.BusinessType,
		submission.Phone, submission.ID)

	return n.sendEmail(submission.Email, subject, body)
}

func (n *notificationService) SendAdminAlert(submission *models.Submission) error {
	email := submission.Email
	if email == "" {
		email = "Not provided"
	}

	subject := fmt.Sprintf("New Website Request: %s", submission.BusinessName)
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="background: #1e293b; color: white; padding: 20px;">New Submission Alert</h2>
    <div style="background: #f8fafc; padding: 20px;">
        <p><strong>Business Name:</strong> %s</p>
        <p><strong>Package:</strong> %s</p>
        <p><strong>Business Type:</strong> %s</p>
        <p><strong>Phone:</strong> %s</p>
        <p><strong>Email:</strong> %s</p>
        <p><strong>Address:</strong> %s</p>
        <p><strong>Style:</strong> %s / %s / %s</p>
        <p><strong>Submission ID:</strong> %s</p>
    </div>
</body>
</html>`,
		submission.BusinessName, submission.PackageID, submission.BusinessType,
		submission.Phone, email, submission.Address,
		submission.ThemeStyle, submission.PrimaryColor, submission.Language,
		submission.ID)

	return n.sendEmail(n.adminEmail, subject, body)
}

func (n *notificationService) SendPaymentRequest(submission *models.Submission, checkoutURL string, amount int) error {
	if submission.Email == "" {
		return ErrNoRecipient
	}

	subject := fmt.Sprintf("Payment Request - %s Website", submission.BusinessName)
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #10b981;">Payment Request</h1>
    <p>Dear <strong>%s</strong>,</p>
    <p>Great news! We've reviewed your requirements and are ready to start building your website.</p>
    <div style="background: white; padding: 30px; border: 2px solid #10b981; text-align: center;">
        <h3>50%% Deposit Payment</h3>
        <p style="font-size: 36px; color: #10b981; font-weight: bold;">%d ETB</p>
        <a href="%s" style="background: #10b981; color: white; padding: 15px 40px; text-decoration: none; font-weight: bold;">Pay Now with Chapa</a>
        <p style="font-size: 12px; color: #666;">Secure payment via Mobile Money, Bank Transfer, or Card</p>
    </div>
    <ul>
        <li><strong>Package:</strong> %s</li>
        <li><strong>Business:</strong> %s</li>
        <li><strong>Submission ID:</strong> %s</li>
    </ul>
    <p><strong>Important:</strong> Development begins immediately after payment confirmation.</p>
</body>
</html>`,
		submission.BusinessName, amount, checkoutURL,
		submission.PackageID, submission.BusinessName, submission.ID)

	return n.sendEmail(submission.Email, subject, body)
}

func (n *notificationService) sendEmail(toEmail, subject, htmlBody string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.fromEmail),
		Destination:      &sestypes.Destination{ToAddresses: []string{toEmail}},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body:    &sestypes.Body{Html: &sestypes.Content{Data: aws.String(htmlBody)}},
			},
		},
	}
	if _, err := n.sesClient.SendEmail(context.Background(), input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
