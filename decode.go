package optsync

import (
	"github.com/goliatone/go-optsync/internal/hydrate"
)

// DecodeOption configures Decode.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	component string
	session   string
	strict    bool
	useNumber bool
}

// DecodeStrict rejects options the target type has no field for.
func DecodeStrict() DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.strict = true
	}
}

// DecodeUseNumber decodes numbers held in untyped fields as json.Number.
func DecodeUseNumber() DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.useNumber = true
	}
}

// DecodeComponent names the component in decode errors.
func DecodeComponent(name string) DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.component = name
	}
}

// DecodeSession tags decode errors with a manager session.
func DecodeSession(id string) DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.session = id
	}
}

// Decode hydrates a flattened options object, as returned by
// GetNestedOptionsObjects, into T. integrationOptions and values without a
// JSON form, such as event handlers, are not decoded.
func Decode[T any](options map[string]any, opts ...DecodeOption) (T, error) {
	cfg := decodeConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	decoderOpts := []hydrate.DecoderOption[T]{}
	if cfg.strict {
		decoderOpts = append(decoderOpts, hydrate.WithDisallowUnknownFields[T]())
	}
	if cfg.useNumber {
		decoderOpts = append(decoderOpts, hydrate.WithUseNumber[T]())
	}

	payload, _ := withoutIntegrationOptions(options).(map[string]any)

	return hydrate.NewDecoder[T](decoderOpts...).Decode(hydrate.Context{
		Component: cfg.component,
		Session:   cfg.session,
	}, payload)
}

// DecodeManager hydrates the manager's current flattened options into T.
func DecodeManager[T any](m *Manager, stateUpdater any, opts ...DecodeOption) (T, error) {
	opts = append([]DecodeOption{DecodeSession(m.Session())}, opts...)
	return Decode[T](m.GetNestedOptionsObjects(stateUpdater), opts...)
}

// withoutIntegrationOptions copies value, leaving out integrationOptions at
// every level.
func withoutIntegrationOptions(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		if typed == nil {
			return typed
		}
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			if key == integrationOptionsKey {
				continue
			}
			out[key] = withoutIntegrationOptions(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = withoutIntegrationOptions(item)
		}
		return out
	default:
		return value
	}
}
