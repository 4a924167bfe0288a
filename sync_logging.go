package optsync

// SyncEventKind names what happened to an option path.
type SyncEventKind string

const (
	SyncEventWrite            SyncEventKind = "write"
	SyncEventGuardArmed       SyncEventKind = "guard.armed"
	SyncEventGuardCancelled   SyncEventKind = "guard.cancelled"
	SyncEventGuardFlushed     SyncEventKind = "guard.flushed"
	SyncEventChangeDropped    SyncEventKind = "change.dropped"
	SyncEventExpressionFailed SyncEventKind = "expression.failed"
)

// SyncEvent describes one synchronization step for logging.
type SyncEvent struct {
	Kind    SyncEventKind
	Session string
	Path    string
	Value   any
	Err     error
}

// SyncLogger records synchronization events.
type SyncLogger interface {
	LogSync(SyncEvent)
}

// SyncLoggerFunc adapts a function to SyncLogger.
type SyncLoggerFunc func(SyncEvent)

// LogSync implements SyncLogger.
func (f SyncLoggerFunc) LogSync(event SyncEvent) {
	if f != nil {
		f(event)
	}
}

type noopSyncLogger struct{}

func (noopSyncLogger) LogSync(SyncEvent) {}

// WithSyncLogger attaches a synchronization logger to the Manager.
func WithSyncLogger(logger SyncLogger) Option {
	return func(cfg *managerConfig) {
		if logger == nil {
			cfg.syncLogger = noopSyncLogger{}
			return
		}
		cfg.syncLogger = logger
	}
}

func (m *Manager) logSync(event SyncEvent) {
	event.Session = m.cfg.session
	m.cfg.syncLogger.LogSync(event)
}
