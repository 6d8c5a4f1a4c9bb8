package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/grvbrk/provideo_server/internal/mocks"
)

func TestViewAggregator_RunOnce(t *testing.T) {
	views := new(mocks.ViewEventStoreMock)
	videos := new(mocks.VideoStoreMock)
	agg := NewViewAggregator(views, videos, time.Minute, zerolog.Nop())

	counts := map[uuid.UUID]int64{uuid.New(): 4, uuid.New(): 1}
	views.On("CountViewsByVideo", mock.Anything).Return(counts, nil).Once()
	videos.On("SetViews", mock.Anything, counts).Return(nil).Once()

	n, err := agg.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	views.AssertExpectations(t)
	videos.AssertExpectations(t)
}

func TestViewAggregator_RunOnce_CountFailure(t *testing.T) {
	views := new(mocks.ViewEventStoreMock)
	videos := new(mocks.VideoStoreMock)
	agg := NewViewAggregator(views, videos, time.Minute, zerolog.Nop())

	views.On("CountViewsByVideo", mock.Anything).Return(nil, errors.New("clickhouse unavailable")).Once()

	_, err := agg.RunOnce(context.Background())
	assert.Error(t, err)
	videos.AssertNotCalled(t, "SetViews", mock.Anything, mock.Anything)
}

func TestViewAggregator_RunOnce_WriteFailure(t *testing.T) {
	views := new(mocks.ViewEventStoreMock)
	videos := new(mocks.VideoStoreMock)
	agg := NewViewAggregator(views, videos, time.Minute, zerolog.Nop())

	views.On("CountViewsByVideo", mock.Anything).Return(map[uuid.UUID]int64{}, nil).Once()
	videos.On("SetViews", mock.Anything, map[uuid.UUID]int64{}).Return(errors.New("deadlock")).Once()

	_, err := agg.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestViewAggregator_RunDisabled(t *testing.T) {
	views := new(mocks.ViewEventStoreMock)
	agg := NewViewAggregator(views, new(mocks.VideoStoreMock), 0, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		agg.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run with zero interval should return immediately")
	}
	views.AssertNotCalled(t, "CountViewsByVideo", mock.Anything)
}

func TestViewAggregator_RunTicksUntilCancelled(t *testing.T) {
	views := new(mocks.ViewEventStoreMock)
	videos := new(mocks.VideoStoreMock)
	agg := NewViewAggregator(views, videos, 10*time.Millisecond, zerolog.Nop())

	ran := make(chan struct{}, 16)
	views.On("CountViewsByVideo", mock.Anything).Return(map[uuid.UUID]int64{}, nil)
	videos.On("SetViews", mock.Anything, mock.Anything).Return(nil).Run(func(mock.Arguments) {
		select {
		case ran <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		agg.Run(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-ran:
		case <-time.After(2 * time.Second):
			t.Fatal("aggregator did not run")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("aggregator did not stop after cancel")
	}
}
