package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	s := New(nil, zerolog.Nop())

	require.NoError(t, s.Register("reminders", "0 0 8 * * *", func() {}))
	assert.Equal(t, 1, s.Entries())

	// Five-field specs are rejected with seconds precision enabled
	assert.Error(t, s.Register("bad", "0 8 * * *", func() {}))
	assert.Equal(t, 1, s.Entries())
}

func TestStartRunsJobsAndStops(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Cairo")
	require.NoError(t, err)
	s := New(loc, zerolog.Nop())

	fired := make(chan struct{}, 1)
	require.NoError(t, s.Register("tick", "* * * * * *", func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	}))

	s.Start()
	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not fire")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
