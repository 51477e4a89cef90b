package services

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom/internal/config"
	"newsroom/internal/models"
)

func TestSMTPMailerSend(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{Host: "smtp.example.com", Port: "2525", Username: "u", Password: "p"})

	var gotAddr, gotFrom string
	var gotTo []string
	var gotBody []byte
	m.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotBody = addr, from, to, msg
		return nil
	}

	err := m.Send(context.Background(), Message{
		Subject: "Hello\r\nBcc: evil@example.com",
		Body:    "Body text",
		From:    "site@example.com",
		To:      []string{"editor@example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.Equal(t, "site@example.com", gotFrom)
	assert.Equal(t, []string{"editor@example.com"}, gotTo)
	body := string(gotBody)
	assert.Contains(t, body, "Subject: Hello  Bcc: evil@example.com\r\n")
	assert.NotContains(t, body, "\r\nBcc:")
	assert.True(t, strings.HasSuffix(body, "\r\n\r\nBody text"))
}

func TestSMTPMailerFailure(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{Host: "smtp.example.com", Port: "25"})
	m.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := m.Send(context.Background(), Message{Subject: "s", Body: "b", From: "a@b.c", To: []string{"x@y.z"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotificationFailure)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSMTPMailerNoRecipients(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{Host: "smtp.example.com", Port: "25"})
	m.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("sendMail should not be called")
		return nil
	}
	err := m.Send(context.Background(), Message{Subject: "s"})
	assert.ErrorIs(t, err, models.ErrNotificationFailure)
}

func TestNewMailer(t *testing.T) {
	enabled := &config.Config{Env: "production", Mail: config.MailConfig{
		Host: "smtp.example.com", Port: "25", From: "a@b.c", To: []string{"x@y.z"},
	}}
	assert.IsType(t, &SMTPMailer{}, NewMailer(enabled))

	dev := &config.Config{Env: "development"}
	assert.IsType(t, LogMailer{}, NewMailer(dev))
	assert.NoError(t, NewMailer(dev).Send(context.Background(), Message{Subject: "s"}))

	prod := &config.Config{Env: "production"}
	err := NewMailer(prod).Send(context.Background(), Message{Subject: "s"})
	assert.ErrorIs(t, err, ErrMailDisabled)
	assert.ErrorIs(t, err, models.ErrNotificationFailure)
}
