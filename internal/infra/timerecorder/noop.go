package timerecorder

import (
	"context"

	"github.com/KasumiMercury/primind-channel-timer/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.TimerEventRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordEvent(_ context.Context, _ domain.TimerEventRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
