package infrastructure

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"hellbingo/events"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// SourceService identifies this process in exported envelopes
const SourceService = "hellbingo"

// Envelope field names on the wire
const (
	fieldEventID       = "event_id"
	fieldEventType     = "event_type"
	fieldTimestamp     = "timestamp"
	fieldSourceService = "source_service"
	fieldPayload       = "payload"
)

// Envelope wraps an exported event with its identity and origin
type Envelope struct {
	EventID       string
	EventType     events.EventType
	Timestamp     time.Time
	SourceService string
	Payload       map[string]interface{}
}

// NewEnvelope wraps event, converting its JSON form into the payload
func NewEnvelope(event events.Event, now time.Time) (*Envelope, error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	payload := make(map[string]interface{})
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to convert event payload: %w", err)
	}

	return &Envelope{
		EventID:       uuid.New().String(),
		EventType:     event.Type(),
		Timestamp:     now.UTC(),
		SourceService: SourceService,
		Payload:       payload,
	}, nil
}

// Marshal encodes the envelope as a protobuf Struct in protojson form
func (e *Envelope) Marshal() ([]byte, error) {
	ts, err := protojson.Marshal(timestamppb.New(e.Timestamp))
	if err != nil {
		return nil, fmt.Errorf("failed to encode timestamp: %w", err)
	}
	tsString, err := strconv.Unquote(string(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to encode timestamp: %w", err)
	}

	st, err := structpb.NewStruct(map[string]interface{}{
		fieldEventID:       e.EventID,
		fieldEventType:     string(e.EventType),
		fieldTimestamp:     tsString,
		fieldSourceService: e.SourceService,
		fieldPayload:       e.Payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build event envelope: %w", err)
	}

	data, err := protojson.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event envelope: %w", err)
	}
	return data, nil
}

// UnmarshalEnvelope decodes an envelope produced by Marshal
func UnmarshalEnvelope(data []byte) (*Envelope, error) {
	var st structpb.Struct
	if err := protojson.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event envelope: %w", err)
	}
	fields := st.GetFields()

	eventType := fields[fieldEventType].GetStringValue()
	if eventType == "" {
		return nil, fmt.Errorf("event envelope has no %s", fieldEventType)
	}

	var ts timestamppb.Timestamp
	rawTS := strconv.Quote(fields[fieldTimestamp].GetStringValue())
	if err := protojson.Unmarshal([]byte(rawTS), &ts); err != nil {
		return nil, fmt.Errorf("invalid envelope timestamp: %w", err)
	}

	payload := map[string]interface{}{}
	if p := fields[fieldPayload].GetStructValue(); p != nil {
		payload = p.AsMap()
	}

	return &Envelope{
		EventID:       fields[fieldEventID].GetStringValue(),
		EventType:     events.EventType(eventType),
		Timestamp:     ts.AsTime(),
		SourceService: fields[fieldSourceService].GetStringValue(),
		Payload:       payload,
	}, nil
}

// DecodeEvent rebuilds the typed event carried by the envelope
func (e *Envelope) DecodeEvent() (events.Event, error) {
	raw, err := json.Marshal(e.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode payload: %w", err)
	}

	switch e.EventType {
	case events.EventTypeCampaignStarted:
		return decodeInto[events.CampaignStartedEvent](raw)
	case events.EventTypeNightStarted:
		return decodeInto[events.NightStartedEvent](raw)
	case events.EventTypeNumberDrawn:
		return decodeInto[events.NumberDrawnEvent](raw)
	case events.EventTypeRowCompleted:
		return decodeInto[events.RowCompletedEvent](raw)
	case events.EventTypePowerUpPurchased:
		return decodeInto[events.PowerUpPurchasedEvent](raw)
	case events.EventTypePowerUpUsed:
		return decodeInto[events.PowerUpUsedEvent](raw)
	case events.EventTypeNightResolved:
		return decodeInto[events.NightResolvedEvent](raw)
	case events.EventTypeCampaignEnded:
		return decodeInto[events.CampaignEndedEvent](raw)
	default:
		return nil, fmt.Errorf("unknown event type %q", e.EventType)
	}
}

func decodeInto[T events.Event](raw []byte) (events.Event, error) {
	var event T
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("failed to decode %T: %w", event, err)
	}
	return event, nil
}
