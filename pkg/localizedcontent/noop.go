package localizedcontent

import (
	"context"

	"github.com/google/uuid"
)

// NoopEventSink is an event sink that does nothing.
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-op event sink.
func NewNoopEventSink() *NoopEventSink {
	return &NoopEventSink{}
}

func (s *NoopEventSink) GeneralCreated(ctx context.Context, family string, generalID uuid.UUID) error {
	return nil
}

func (s *NoopEventSink) GeneralUpdated(ctx context.Context, family string, generalID uuid.UUID) error {
	return nil
}

func (s *NoopEventSink) GeneralDeleted(ctx context.Context, family string, generalID uuid.UUID) error {
	return nil
}

func (s *NoopEventSink) TranslationCreated(ctx context.Context, family string, generalID uuid.UUID, locale Locale) error {
	return nil
}

func (s *NoopEventSink) TranslationUpdated(ctx context.Context, family string, generalID uuid.UUID, locale Locale) error {
	return nil
}

func (s *NoopEventSink) TranslationDeleted(ctx context.Context, family string, generalID uuid.UUID, locale Locale) error {
	return nil
}
