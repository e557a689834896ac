package watch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/taskboard/pkg/taskboard"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for the streaming goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func setupClient(t *testing.T) *taskboard.Client {
	mr := miniredis.RunT(t)
	client, err := taskboard.NewClient(&redis.Options{Addr: mr.Addr()}, "test-instance")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestFormatEvent(t *testing.T) {
	at := time.Date(2025, 6, 10, 14, 5, 9, 0, time.Local).UnixMilli()

	tests := []struct {
		name     string
		event    taskboard.StateEvent
		expected string
	}{
		{"board updated", taskboard.StateEvent{Key: taskboard.AppStateKey, AtMs: at}, "[14:05:09] ✏️  Board updated"},
		{"board cleared", taskboard.StateEvent{Key: taskboard.AppStateKey, Removed: true, AtMs: at}, "[14:05:09] 🗑️  Board cleared"},
		{"session", taskboard.StateEvent{Key: taskboard.SessionKey, AtMs: at}, "[14:05:09] 🔑 Session updated"},
		{"logout", taskboard.StateEvent{Key: taskboard.SessionKey, Removed: true, AtMs: at}, "[14:05:09] 🔒 Logged out"},
		{"other key", taskboard.StateEvent{Key: "misc", AtMs: at}, "[14:05:09] wrote misc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatEvent(&tt.event))
		})
	}
}

func TestStreamStateEvents(t *testing.T) {
	client := setupClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	render := func(ctx context.Context, w io.Writer) error {
		fmt.Fprintln(w, "<board>")
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- StreamStateEvents(ctx, client, OutputFormatDefault, &out, render)
	}()

	// Keep writing until the subscriber has seen one, since the subscription
	// starts asynchronously.
	require.Eventually(t, func() bool {
		_ = client.SetItem(context.Background(), taskboard.AppStateKey, "{}")
		return strings.Contains(out.String(), "<board>")
	}, 2*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop after cancel")
	}

	assert.Contains(t, out.String(), "Board updated")
}

func TestStreamStateEvents_JSON(t *testing.T) {
	client := setupClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- StreamStateEvents(ctx, client, OutputFormatJSON, &out, nil)
	}()

	require.Eventually(t, func() bool {
		_ = client.SetItem(context.Background(), taskboard.SessionKey, "{}")
		return strings.Contains(out.String(), `"key":"authCurrentUser"`)
	}, 2*time.Second, 50*time.Millisecond)

	cancel()
	<-done
}

func TestStreamStateEvents_InvalidFormat(t *testing.T) {
	client := setupClient(t)
	err := StreamStateEvents(context.Background(), client, "xml", io.Discard, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
