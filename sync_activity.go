package optsync

import "github.com/goliatone/go-optsync/pkg/activity"

const (
	verbOptionWritten  = "optsync.option.written"
	verbGuardArmed     = "optsync.guard.armed"
	verbGuardCancelled = "optsync.guard.cancelled"
	verbGuardFlushed   = "optsync.guard.flushed"
)

// WithActivityHooks attaches activity hooks notified of every write and guard
// transition. Hooks are cloned and nil entries dropped. Emission is enabled
// unless WithActivityConfig says otherwise.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *managerConfig) {
		cfg.activityHooks = normalized
	}
}

// WithActivityConfig controls activity emission defaults.
func WithActivityConfig(config activity.Config) Option {
	return func(cfg *managerConfig) {
		cfg.activityConfig = config
		cfg.activitySet = true
	}
}

// ActivityHooks returns a cloned slice of the configured activity hooks.
func (m *Manager) ActivityHooks() activity.Hooks {
	if m == nil {
		return nil
	}
	return cloneActivityHooks(m.cfg.activityHooks)
}

func (m *Manager) emitActivity(verb, path string, value any) {
	if !m.emitter.Enabled() {
		return
	}
	event := activity.BuildOptionEvent(verb, activity.OptionEventInput{
		Session: m.cfg.session,
		Path:    path,
		Value:   value,
	})
	if err := m.emitter.Emit(m.cfg.ctx, event); err != nil {
		m.logSync(SyncEvent{Kind: SyncEventKind(verb), Path: path, Err: err})
	}
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.ActivityHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}
