package optsync

import (
	"errors"

	"github.com/goliatone/go-optsync/pkg/activity"
	"github.com/google/uuid"
)

// ErrInstanceNotSet is the panic value raised when the manager writes to a
// widget before SetInstance was called.
var ErrInstanceNotSet = errors.New("optsync: widget instance not set")

// Manager synchronizes one widget instance's options with the element tree
// of one component mount. It is not safe for concurrent use: every call,
// including deferred guard tasks, must run on the host's UI loop.
type Manager struct {
	getter   OptionValueGetter
	widget   Widget
	nested   *Registry
	guards   *guardTable
	updating bool

	cfg        managerConfig
	emitter    *activity.Emitter
	evaluators map[string]Evaluator
	// rules caches the compiled expression of each full option path.
	rules map[string]*compiledExpression
}

// NewManager constructs a Manager reading top-level option values through
// getter.
func NewManager(getter OptionValueGetter, opts ...Option) *Manager {
	cfg := applyOptions(opts)
	if cfg.session == "" {
		cfg.session = uuid.NewString()
	}
	m := &Manager{
		getter:     getter,
		nested:     NewRegistry(),
		cfg:        cfg,
		emitter:    activity.NewEmitter(cfg.activityHooks, cfg.activityConfig),
		evaluators: map[string]Evaluator{},
		rules:      map[string]*compiledExpression{},
	}
	m.guards = newGuardTable(cfg.scheduler, m.flushGuard)
	return m
}

// SetInstance binds the widget the manager writes to.
func (m *Manager) SetInstance(widget Widget) {
	m.widget = widget
}

// Session returns the identifier attached to log and activity events.
func (m *Manager) Session() string {
	return m.cfg.session
}

// Registry exposes the top-level nested option registry.
func (m *Manager) Registry() *Registry {
	return m.nested
}

// ResetNestedElements drops every registered element entry ahead of a new
// registration pass.
func (m *Manager) ResetNestedElements() {
	m.nested.Reset()
}

// PendingGuards lists the option paths with a deferred write outstanding.
func (m *Manager) PendingGuards() []string {
	return m.guards.paths()
}

// Dispose cancels pending guards and releases the widget reference. The
// manager must not be used afterwards.
func (m *Manager) Dispose() {
	for _, path := range m.guards.paths() {
		m.guards.cancel(path)
	}
	clear(m.rules)
	m.widget = nil
}

func (m *Manager) instance() Widget {
	if m.widget == nil {
		panic(ErrInstanceNotSet)
	}
	return m.widget
}
