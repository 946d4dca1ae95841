package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"tech-invent-api/models"
)

type statusInfo struct {
	Title   string
	Color   string
	Message string
}

var statusDisplay = map[string]statusInfo{
	models.StatusAccepted: {
		Title:   "Proposal Accepted",
		Color:   "#22c55e",
		Message: "We are pleased to inform you that your proposal has been accepted. Our team will be in touch with the next steps. Congratulations!",
	},
	models.StatusRevision: {
		Title:   "Revision Required",
		Color:   "#3b82f6",
		Message: "Your proposal has been reviewed and requires some modifications. Please review the remarks from the committee and resubmit accordingly.",
	},
	models.StatusRejected: {
		Title:   "Proposal Not Accepted",
		Color:   "#ef4444",
		Message: "After careful consideration, we regret to inform you that your proposal has not been accepted at this time. We appreciate your effort and encourage you to submit again for future events.",
	},
	models.StatusUnderReview: {
		Title:   "Proposal Under Review",
		Color:   "#eab308",
		Message: "This is to confirm that we have received your proposal. It is now under review by the committee. We will notify you once a decision has been made.",
	},
}

var statusUpdateTmpl = template.Must(template.New("status-update").Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; margin: 0; padding: 0; background-color: #f4f4f4; }
    .container { max-width: 600px; margin: 20px auto; background-color: #ffffff; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.1); }
    .header { background-color: #0F172A; color: #ffffff; padding: 20px; text-align: center; }
    .header h1 { margin: 0; font-size: 24px; }
    .content { padding: 30px; line-height: 1.6; color: #333333; }
    .status-box { padding: 15px; border-radius: 5px; text-align: center; margin: 20px 0; border-left: 5px solid {{.Info.Color}}; background-color: #f0f3f8; }
    .status-box h2 { margin: 0; font-size: 20px; color: {{.Info.Color}}; }
    .remarks { background-color: #f9f9f9; border: 1px solid #eeeeee; padding: 15px; border-radius: 5px; margin-top: 20px; }
    .footer { background-color: #f1f1f1; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Tech Invent 2025</h1>
    </div>
    <div class="content">
      <p>Dear {{.Name}},</p>
      <p>This email is regarding your event proposal submitted for Tech Invent 2025.</p>
      <p><strong>Event Name:</strong> {{.EventName}}</p>
      <div class="status-box">
        <h2>{{.Info.Title}}</h2>
      </div>
      <p>{{.Info.Message}}</p>
      {{if .Remarks}}
      <div class="remarks">
        <strong>Committee Remarks:</strong>
        <p style="margin-top: 5px;"><em>{{.Remarks}}</em></p>
      </div>
      {{end}}
      <p>Thank you for your contribution to Tech Invent 2025.</p>
      <br>
      <p>Sincerely,</p>
      <p><strong>Office of Academic Affairs</strong></p>
    </div>
    <div class="footer">
      This is an automated notification. Please do not reply to this email.
    </div>
  </div>
</body>
</html>`))

// StatusUpdateEmail renders the formal notice sent to a proposal owner when
// an admin changes the review status.
func StatusUpdateEmail(name, eventName, status, remarks string) (subject, html string, err error) {
	info, ok := statusDisplay[status]
	if !ok {
		info = statusDisplay[models.StatusUnderReview]
	}

	var buf bytes.Buffer
	err = statusUpdateTmpl.Execute(&buf, struct {
		Name      string
		EventName string
		Remarks   string
		Info      statusInfo
	}{name, eventName, remarks, info})
	if err != nil {
		return "", "", fmt.Errorf("failed to render status email: %w", err)
	}

	subject = fmt.Sprintf("Update on your Tech Invent 2025 Proposal: %s", eventName)
	return subject, buf.String(), nil
}

var otpTmpl = template.Must(template.New("otp").Parse(`
<div style="font-family: Arial, sans-serif; color: #333;">
  <h2>{{.Heading}}</h2>
  <p>{{.Lead}}</p>
  <p style="font-size: 24px; font-weight: bold; letter-spacing: 5px; background: #f0f0f0; padding: 10px; border-radius: 5px;">{{.Code}}</p>
  <p>This OTP is valid for 10 minutes.</p>
  <p>If you did not request this, please ignore this email.</p>
</div>`))

// SignupOTPEmail renders the verification-code message for account signup.
func SignupOTPEmail(code string) (subject, html string, err error) {
	return otpEmail("Verify Your Email for Tech Invent Portal",
		"Tech Invent Portal Email Verification",
		"Here is your One-Time Password (OTP) to verify your email address:", code)
}

// ProposalOTPEmail renders the verification-code message used while filling
// in the proposal form.
func ProposalOTPEmail(code string) (subject, html string, err error) {
	return otpEmail("Your OTP for Tech Invent Proposal",
		"Tech Invent 2025 Proposal Verification",
		"Here is your One-Time Password (OTP) to complete your submission:", code)
}

func otpEmail(subject, heading, lead, code string) (string, string, error) {
	var buf bytes.Buffer
	err := otpTmpl.Execute(&buf, struct {
		Heading string
		Lead    string
		Code    string
	}{heading, lead, code})
	if err != nil {
		return "", "", fmt.Errorf("failed to render otp email: %w", err)
	}
	return subject, buf.String(), nil
}
