package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domainErrors "github.com/kenjikellens/ivids-core/internal/errors"
	"github.com/kenjikellens/ivids-core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not finish")
	}
}

func TestWorker_RunsJobsInOrder(t *testing.T) {
	w := NewWorker(context.Background(), models.BusyPolicyQueue)
	defer w.Close()

	var (
		mu  sync.Mutex
		got []int
	)
	var last <-chan struct{}
	for i := 0; i < 10; i++ {
		i := i
		done, err := w.Submit("job", func(context.Context) {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
		require.NoError(t, err)
		last = done
	}
	waitDone(t, last)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
	assert.False(t, w.Busy())
}

func TestWorker_BusyPolicy(t *testing.T) {
	t.Run("queue accepts while busy", func(t *testing.T) {
		w := NewWorker(context.Background(), models.BusyPolicyQueue)
		defer w.Close()

		release := make(chan struct{})
		_, err := w.Submit("first", func(context.Context) { <-release })
		require.NoError(t, err)

		done, err := w.Submit("second", func(context.Context) {})
		require.NoError(t, err)
		assert.True(t, w.Busy())

		close(release)
		waitDone(t, done)
	})

	t.Run("reject refuses while busy", func(t *testing.T) {
		w := NewWorker(context.Background(), models.BusyPolicyReject)
		defer w.Close()

		release := make(chan struct{})
		first, err := w.Submit("first", func(context.Context) { <-release })
		require.NoError(t, err)

		_, err = w.Submit("second", func(context.Context) {})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainErrors.ErrOperationInFlight))

		close(release)
		waitDone(t, first)

		done, err := w.Submit("third", func(context.Context) {})
		require.NoError(t, err)
		waitDone(t, done)
	})

	t.Run("invalid policy falls back to queue", func(t *testing.T) {
		w := NewWorker(context.Background(), models.BusyPolicy("drop"))
		defer w.Close()
		assert.Equal(t, models.BusyPolicyQueue, w.policy)
	})
}

func TestWorker_Close(t *testing.T) {
	w := NewWorker(context.Background(), models.BusyPolicyQueue)

	started := make(chan struct{})
	var cancelled bool
	running, err := w.Submit("running", func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		cancelled = true
	})
	require.NoError(t, err)

	ran := false
	queued, err := w.Submit("queued", func(context.Context) { ran = true })
	require.NoError(t, err)

	<-started
	w.Close()

	waitDone(t, running)
	waitDone(t, queued)
	assert.True(t, cancelled)
	assert.False(t, ran)

	_, err = w.Submit("late", func(context.Context) {})
	assert.True(t, errors.Is(err, domainErrors.ErrUpdaterClosed))

	assert.NotPanics(t, w.Close)
}

func TestWorker_SurvivesPanickingJob(t *testing.T) {
	w := NewWorker(context.Background(), models.BusyPolicyQueue)
	defer w.Close()

	_, err := w.Submit("bad", func(context.Context) { panic("boom") })
	require.NoError(t, err)

	ok := false
	done, err := w.Submit("good", func(context.Context) { ok = true })
	require.NoError(t, err)
	waitDone(t, done)
	assert.True(t, ok)
}
