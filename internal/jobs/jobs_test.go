package jobs

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubSender struct {
	sent  int
	err   error
	panic bool
	calls int
	ctx   context.Context
}

func (s *stubSender) SendInterviewReminders(ctx context.Context) (int, error) {
	s.calls++
	s.ctx = ctx
	if s.panic {
		panic("boom")
	}
	return s.sent, s.err
}

func TestSendInterviewReminders(t *testing.T) {
	tests := []struct {
		name    string
		sender  *stubSender
		wantLog string
	}{
		{name: "success", sender: &stubSender{sent: 3}, wantLog: `"sent":3`},
		{name: "failure is logged", sender: &stubSender{err: errors.New("db down")}, wantLog: "Job failed"},
		{name: "panic is recovered", sender: &stubSender{panic: true}, wantLog: "Job panicked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRunner(tt.sender, zerolog.New(&buf))

			assert.NotPanics(t, r.SendInterviewReminders)
			assert.Equal(t, 1, tt.sender.calls)
			assert.Contains(t, buf.String(), tt.wantLog)

			_, hasDeadline := tt.sender.ctx.Deadline()
			assert.True(t, hasDeadline)
		})
	}
}
