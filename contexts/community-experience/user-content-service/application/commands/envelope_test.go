package commands

import (
	"context"
	"testing"
	"time"

	"simpleq/internal/shared/events"
)

func TestBuildEnvelopeRejectsUnencodablePayload(t *testing.T) {
	envelope, err := buildEnvelope(
		context.Background(),
		"evt-1",
		events.TopicQuestionCreated,
		"question_id",
		"q-1",
		time.Now(),
		map[string]any{"bad": make(chan int)},
	)
	if err == nil {
		t.Fatal("expected marshal error")
	}
	if envelope.EventID != "" || envelope.Data != nil {
		t.Fatalf("expected zero envelope on error, got %+v", envelope)
	}
}

func TestBuildEnvelopeEncodesPayload(t *testing.T) {
	envelope, err := buildEnvelope(
		context.Background(),
		"evt-2",
		events.TopicQuestionCreated,
		"question_id",
		"q-2",
		time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		map[string]string{"question_id": "q-2"},
	)
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	if string(envelope.Data) != `{"question_id":"q-2"}` {
		t.Fatalf("unexpected payload %s", envelope.Data)
	}
	if envelope.SourceService != events.SourceUserContent || envelope.PartitionKey != "q-2" {
		t.Fatalf("unexpected envelope %+v", envelope)
	}
	if envelope.TraceID != "" {
		t.Fatalf("expected no trace id without a span, got %q", envelope.TraceID)
	}
}
