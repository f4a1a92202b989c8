package commands

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel/trace"

	"simpleq/contexts/community-experience/user-content-service/ports"
	contractsv1 "simpleq/contracts/gen/events/v1"
	"simpleq/internal/shared/events"
)

func buildEnvelope(
	ctx context.Context,
	eventID string,
	eventType string,
	partitionKeyPath string,
	partitionKey string,
	occurredAt time.Time,
	data any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	envelope := ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    events.SourceUserContent,
		SchemaVersion:    contractsv1.CurrentSchemaVersion,
		PartitionKeyPath: partitionKeyPath,
		PartitionKey:     partitionKey,
		Data:             payload,
	}
	if spanContext := trace.SpanFromContext(ctx).SpanContext(); spanContext.HasTraceID() {
		envelope.TraceID = spanContext.TraceID().String()
	}
	return envelope, nil
}
