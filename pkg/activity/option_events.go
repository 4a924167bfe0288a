package activity

import (
	"strings"
	"time"
)

// ObjectTypeWidgetOption is the object type of every option event.
const ObjectTypeWidgetOption = "widget.option"

// OptionEventInput describes the fields of a widget option event.
type OptionEventInput struct {
	ActorID    string
	UserID     string
	TenantID   string
	Channel    string
	Session    string
	Path       string
	Value      any
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildOptionEvent constructs an event for the option at input.Path. The
// session and value are mirrored into metadata so sinks without dedicated
// columns keep them.
func BuildOptionEvent(verb string, input OptionEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Path != "" {
		metadata = ensureMetadata(metadata)
		metadata["path"] = input.Path
	}
	if input.Session != "" {
		metadata = ensureMetadata(metadata)
		metadata["session"] = input.Session
	}
	if input.Value != nil {
		metadata = ensureMetadata(metadata)
		metadata["value"] = input.Value
	}

	return Event{
		Verb:       strings.TrimSpace(verb),
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: ObjectTypeWidgetOption,
		ObjectID:   strings.TrimSpace(input.Path),
		Channel:    strings.TrimSpace(input.Channel),
		Session:    strings.TrimSpace(input.Session),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
