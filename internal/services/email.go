package services

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

const fromAddress = `"JobTrackr Support" <no-reply@jobtrackr.dev>`

// SendEmail delivers an HTML mail through the SMTP server configured via
// SMTP_HOST, SMTP_PORT, SMTP_USER and SMTP_PASS.
var SendEmail = func(to, subject, html string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")

	if host == "" {
		return fmt.Errorf("SMTP_HOST environment variable is not set")
	}

	if port == "" {
		port = "587"
	}

	auth := smtp.PlainAuth("", os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"), host)

	var msg strings.Builder
	msg.WriteString("From: " + fromAddress + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(html)

	if err := smtp.SendMail(host+":"+port, auth, os.Getenv("SMTP_USER"), []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendResetCodeEmail mails the 6-digit password reset code to the user.
func SendResetCodeEmail(to, fullName, resetCode string) error {
	return SendEmail(to, "Password Reset Request", resetPasswordTemplate(fullName, resetCode))
}

func resetPasswordTemplate(fullName, resetCode string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; color: #333; }
        .container { max-width: 600px; margin: 20px auto; background: #ffffff; padding: 20px; border-radius: 8px; }
        .header h1 { color: #007bff; font-size: 24px; margin: 0; text-align: center; }
        .content { padding: 20px; text-align: center; }
        .reset-code { display: inline-block; font-size: 24px; font-weight: bold; color: #007bff; background: #f8f9fa; padding: 10px 20px; border-radius: 5px; margin: 20px 0; }
        .footer { text-align: center; padding-top: 20px; border-top: 1px solid #eee; font-size: 14px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>JobTrackr Password Reset</h1></div>
        <div class="content">
            <p>Dear %s,</p>
            <p>We received a request to reset your JobTrackr account password. Please use the following 6-digit code to reset your password:</p>
            <div class="reset-code">%s</div>
            <p>This code is valid for 1 hour. If you did not request a password reset, please ignore this email.</p>
        </div>
        <div class="footer"><p>Best regards,<br>JobTrackr Support Team</p></div>
    </div>
</body>
</html>`, fullName, resetCode)
}
