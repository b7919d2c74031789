package mail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPSenderValidation(t *testing.T) {
	_, err := NewSMTPSender(SMTPConfig{Host: "smtp.example.com"})
	assert.Error(t, err)
}

func TestNewSMTPSenderDefaults(t *testing.T) {
	s, err := NewSMTPSender(SMTPConfig{
		Host:     "smtp.example.com",
		Port:     "587",
		Username: "mailer@example.com",
		Password: "pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "mailer@example.com", s.cfg.From)
	assert.Equal(t, 10*time.Second, s.cfg.Timeout)
}

func TestOTPTemplates(t *testing.T) {
	subject, body := SignupOTPBody("Ada", "482913", 10)
	assert.NotEmpty(t, subject)
	assert.Contains(t, body, "Ada")
	assert.Contains(t, body, "482913")
	assert.Contains(t, body, "10 minutes")

	subject, body = ResetOTPBody("009213", 5)
	assert.NotEmpty(t, subject)
	assert.Contains(t, body, "009213")
	assert.Contains(t, body, "5 minutes")
}
