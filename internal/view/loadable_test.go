// ABOUTME: Tests for the Loadable fetch-state holder
// ABOUTME: Covers state transitions, retry after failure, and overlap guard

package view

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadable_InitialState(t *testing.T) {
	var l Loadable[[]string]

	value, state, err := l.Get()
	assert.Nil(t, value)
	assert.Equal(t, NotLoaded, state)
	assert.NoError(t, err)
}

func TestLoadable_SuccessfulLoad(t *testing.T) {
	var l Loadable[[]string]

	value, err := l.Load(context.Background(), func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, value)

	got, state, err := l.Get()
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, Loaded, state)
	assert.NoError(t, err)
}

func TestLoadable_FailedLoadThenRetry(t *testing.T) {
	var l Loadable[[]string]
	boom := errors.New("backend unavailable")

	_, err := l.Load(context.Background(), func(ctx context.Context) ([]string, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	_, state, gotErr := l.Get()
	assert.Equal(t, Failed, state)
	assert.ErrorIs(t, gotErr, boom)

	value, err := l.Load(context.Background(), func(ctx context.Context) ([]string, error) {
		return []string{"recovered"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"recovered"}, value)

	_, state, gotErr = l.Get()
	assert.Equal(t, Loaded, state)
	assert.NoError(t, gotErr)
}

func TestLoadable_OverlappingLoadIsNoOp(t *testing.T) {
	var l Loadable[int]

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		l.Load(context.Background(), func(ctx context.Context) (int, error) {
			close(entered)
			<-release
			return 42, nil
		})
	}()

	<-entered
	value, err := l.Load(context.Background(), func(ctx context.Context) (int, error) {
		t.Error("overlapping fetch should not run")
		return 0, nil
	})
	assert.NoError(t, err)
	assert.Zero(t, value)

	_, state, _ := l.Get()
	assert.Equal(t, Loading, state)

	close(release)
	<-done

	got, state, err := l.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, Loaded, state)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "not-loaded", NotLoaded.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", State(99).String())
}
