package mail

import "fmt"

// SignupOTPBody renders the signup verification email.
func SignupOTPBody(name, otp string, minutes int) (subject, body string) {
	subject = "Verify your StuNotes account"
	body = fmt.Sprintf(
		"<p>Hi %s,</p><p>Your StuNotes verification code is <b>%s</b>.</p>"+
			"<p>It expires in %d minutes.</p>", name, otp, minutes)
	return subject, body
}

// ResetOTPBody renders the password reset email.
func ResetOTPBody(otp string, minutes int) (subject, body string) {
	subject = "Your StuNotes password reset code"
	body = fmt.Sprintf(
		"<p>Your password reset code is <b>%s</b>.</p>"+
			"<p>It expires in %d minutes. If you did not request this, ignore this email.</p>",
		otp, minutes)
	return subject, body
}
