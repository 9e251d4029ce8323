// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// ResetPasswordEmailData holds data for the reset-password email.
type ResetPasswordEmailData struct {
	SiteName  string
	ResetURL  string
	ExpiresIn string // e.g., "10 minutes"
}

// BuildResetPasswordEmail creates a reset email with both HTML and text bodies.
func BuildResetPasswordEmail(data ResetPasswordEmailData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  "Password reset token",
		TextBody: buildResetText(data),
		HTMLBody: buildResetHTML(data),
	}
}

func buildResetText(data ResetPasswordEmailData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "You are receiving this email because you (or someone else) has requested the reset of a password for your %s account.\n\n", data.SiteName)
	buf.WriteString("Please make a PUT request to:\n")
	buf.WriteString(data.ResetURL + "\n\n")
	fmt.Fprintf(&buf, "This link expires in %s.\n\n", data.ExpiresIn)
	buf.WriteString("If you did not request this, you can safely ignore this email.\n")
	return buf.String()
}

var resetHTML = template.Must(template.New("reset").Parse(resetHTMLTemplate))

func buildResetHTML(data ResetPasswordEmailData) string {
	var buf bytes.Buffer
	_ = resetHTML.Execute(&buf, data)
	return buf.String()
}

const resetHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Password Reset</title>
</head>
<body style="margin: 0; padding: 24px; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; margin: 0 auto; background-color: #ffffff; border-radius: 8px;">
    <tr>
      <td style="padding: 32px;">
        <h1 style="margin: 0 0 16px; font-size: 22px; color: #111827;">{{.SiteName}}</h1>
        <p style="margin: 0 0 16px; color: #374151;">A password reset was requested for your account. Send a PUT request with your new password to:</p>
        <p style="margin: 0 0 16px; word-break: break-all;"><code>{{.ResetURL}}</code></p>
        <p style="margin: 0; color: #6b7280; font-size: 14px;">This link expires in {{.ExpiresIn}}. If you did not request it, ignore this email.</p>
      </td>
    </tr>
  </table>
</body>
</html>
`
