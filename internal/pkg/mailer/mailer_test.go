package mailer

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FallsBackToLogMailer(t *testing.T) {
	m := New(Config{FromName: "Madarij", FromEmail: "noreply@madarij.local"}, zerolog.Nop())
	_, ok := m.(*LogMailer)
	assert.True(t, ok)

	m = New(Config{SendGridAPIKey: "SG.key", FromName: "Madarij", FromEmail: "noreply@madarij.local"}, zerolog.Nop())
	_, ok = m.(*SendGridMailer)
	assert.True(t, ok)
}

func TestLogMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(zerolog.New(&buf))

	err := m.Send(context.Background(), Message{ToEmail: "director@madarij.local", Subject: "Interview scheduled", TextContent: "hello"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "director@madarij.local")
	assert.Contains(t, buf.String(), "Interview scheduled")

	buf.Reset()
	require.NoError(t, m.Send(context.Background(), Message{Subject: "nobody"}))
	assert.Empty(t, buf.String())
}

func TestSendGridMailer_Prepare(t *testing.T) {
	m := NewSendGridMailer(Config{SendGridAPIKey: "SG.key", FromName: "Madarij", FromEmail: "noreply@madarij.local"}, zerolog.Nop())

	mail := m.prepare(Message{ToName: "Director", ToEmail: "director@madarij.local", Subject: "Interview scheduled", TextContent: "text"})
	require.Len(t, mail.Personalizations, 1)
	assert.Equal(t, "[Madarij] Interview scheduled", mail.Personalizations[0].Subject)
	require.Len(t, mail.Personalizations[0].To, 1)
	assert.Equal(t, "director@madarij.local", mail.Personalizations[0].To[0].Address)
	assert.Equal(t, "noreply@madarij.local", mail.From.Address)
	require.Len(t, mail.Content, 1)
	assert.Equal(t, "text/plain", mail.Content[0].Type)
}

func TestSendGridMailer_SkipsWithoutRecipient(t *testing.T) {
	m := NewSendGridMailer(Config{SendGridAPIKey: "SG.key"}, zerolog.Nop())
	assert.NoError(t, m.Send(context.Background(), Message{Subject: "x"}))
}

func TestSendGridMailer_HonoursContextDeadline(t *testing.T) {
	unblock := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-unblock:
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()
	defer close(unblock)

	prev := host
	host = srv.URL
	defer func() { host = prev }()

	m := NewSendGridMailer(Config{SendGridAPIKey: "SG.key", FromName: "Madarij", FromEmail: "noreply@madarij.local"}, zerolog.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := m.Send(ctx, Message{ToEmail: "director@madarij.local", Subject: "Interview scheduled", TextContent: "text"})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestSendGridMailer_Send(t *testing.T) {
	var path, auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, auth = r.URL.Path, r.Header.Get("Authorization")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	prev := host
	host = srv.URL
	defer func() { host = prev }()

	m := NewSendGridMailer(Config{SendGridAPIKey: "SG.key", FromName: "Madarij", FromEmail: "noreply@madarij.local"}, zerolog.Nop())
	err := m.Send(context.Background(), Message{ToEmail: "director@madarij.local", Subject: "Interview scheduled", TextContent: "text"})
	require.NoError(t, err)
	assert.Equal(t, endpoint, path)
	assert.Equal(t, "Bearer SG.key", auth)
}
