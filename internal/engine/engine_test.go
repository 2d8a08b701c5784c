package engine

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshwire/meshwire/internal/config"
)

func testAggregate() *config.Aggregate {
	return &config.Aggregate{
		Channel: config.ChannelConfig{
			ListenOn:     config.Endpoint{Host: "0.0.0.0", Port: 12000},
			HelloTimeout: 3 * time.Second,
		},
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := New(testAggregate(), logger)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- eng.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop after context cancellation")
	}
}

func TestNewDefaultsLogger(t *testing.T) {
	eng := New(testAggregate(), nil)
	require.NotNil(t, eng.logger)
}
