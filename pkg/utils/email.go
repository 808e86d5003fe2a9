package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

var (
	emailFrom     = os.Getenv("EMAIL_FROM")
	emailPassword = os.Getenv("EMAIL_PASSWORD")
	smtpHost      = os.Getenv("SMTP_HOST")
	smtpPort      = os.Getenv("SMTP_PORT")
	companyName   = "Nova Rides"
	baseURL       = os.Getenv("APP_URL")
)

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #1a73e8; margin: 0;">Nova Rides</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
			<p>© 2026 Nova Rides. All rights reserved.</p>
		</div>
	</div>
</body>
</html>
`

func sendEmail(to []string, subject, body string) error {
	if emailFrom == "" || emailPassword == "" || smtpHost == "" || smtpPort == "" {
		return fmt.Errorf("email configuration not set")
	}

	// Headers
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", companyName, emailFrom)
	headers["To"] = strings.Join(to, ",")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"
	headers["X-Mailer"] = "NovaRides-Mailer"

	// Build message
	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + body

	// Authentication
	auth := smtp.PlainAuth("", emailFrom, emailPassword, smtpHost)

	// Send email
	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, emailFrom, to, []byte(message))
	if err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Successfully sent email to recipients: %v", to)
	return nil
}

func SendBookingRequestEmail(hostEmail, vehicleTitle, renterName string) error {
	subject := "New Booking Request - Nova Rides"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">New Booking Request</h1>
					<p>Hello,</p>
					<p>You have received a new booking request for <strong>%s</strong> from <strong>%s</strong>.</p>
					<p>Please log in to your Nova Rides dashboard to confirm or reject this request.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/dashboard/host" style="background-color: #1a73e8; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Open Dashboard</a>
					</div>
					<p>Best regards,<br>The Nova Rides Team</p>
				</div>`+emailFooter,
		vehicleTitle, renterName, baseURL)

	return sendEmail([]string{hostEmail}, subject, body)
}

func SendBookingConfirmedEmail(renterEmail, vehicleTitle string, bookingID uint) error {
	subject := "Booking Confirmed - Nova Rides"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Booking Confirmed</h1>
					<p>Hello,</p>
					<p>Great news! Your booking for <strong>%s</strong> has been confirmed by the host.</p>
					<p>Complete your payment to secure the reservation.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/bookings/%d/payment" style="background-color: #1a73e8; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Pay Now</a>
					</div>
					<p>Best regards,<br>The Nova Rides Team</p>
				</div>`+emailFooter,
		vehicleTitle, baseURL, bookingID)

	return sendEmail([]string{renterEmail}, subject, body)
}

func SendBookingRejectedEmail(renterEmail, vehicleTitle string) error {
	subject := "Booking Rejected - Nova Rides"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Booking Rejected</h1>
					<p>Hello,</p>
					<p>Unfortunately, the host has rejected your booking request for <strong>%s</strong>.</p>
					<p>Don't worry! There are plenty of other cars available.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/search" style="background-color: #1a73e8; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Find Another Car</a>
					</div>
					<p>Best regards,<br>The Nova Rides Team</p>
				</div>`+emailFooter,
		vehicleTitle, baseURL)
	return sendEmail([]string{renterEmail}, subject, body)
}

func SendPaymentReceivedEmail(renterEmail string, amount float64, currency string, bookingID uint) error {
	subject := "Payment Received - Nova Rides"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Payment Received</h1>
					<p>Hello,</p>
					<p>We have received your payment of <strong>%.2f %s</strong> for booking #%d.</p>
					<p>Your reservation is secured. Have a great trip!</p>
					<p>Best regards,<br>The Nova Rides Team</p>
				</div>`+emailFooter,
		amount, currency, bookingID)
	return sendEmail([]string{renterEmail}, subject, body)
}

func SendLicenseExpiryReminderEmail(userEmail string, daysLeft int) error {
	subject := "Driver's Licence Expiry Reminder - Nova Rides"
	expiryLine := fmt.Sprintf("Your driver's licence expires in <strong>%d days</strong>.", daysLeft)
	if daysLeft <= 0 {
		expiryLine = "Your driver's licence has <strong>expired</strong>."
	}
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Licence Expiry Reminder</h1>
					<p>Hello,</p>
					<p>%s</p>
					<p>Upload a renewed licence in your profile to keep booking cars on Nova Rides.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/profile" style="background-color: #1a73e8; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Update Licence</a>
					</div>
					<p>Best regards,<br>The Nova Rides Team</p>
				</div>`+emailFooter,
		expiryLine, baseURL)
	return sendEmail([]string{userEmail}, subject, body)
}
