package optsync

import (
	"context"
	"time"

	"github.com/goliatone/go-optsync/pkg/activity"
)

// Widget is the imperative option surface of the wrapped widget instance.
type Widget interface {
	Option(name string, value any)
	BeginUpdate()
	EndUpdate()
}

// OptionValueGetter reads the current value of a top-level widget option.
type OptionValueGetter func(name string) any

// OptionChange is a widget-originated change notification. Name is the
// top-level option, FullName the complete changed path.
type OptionChange struct {
	Name     string
	FullName string
	Value    any
}

// SchemaFormat identifies the representation a schema document encodes.
type SchemaFormat string

const (
	// SchemaFormatDescriptors represents the flattened field descriptors.
	SchemaFormatDescriptors SchemaFormat = "descriptors"
)

// SchemaDocument encapsulates a generated schema output alongside its format
// identifier. Implementations must ensure Document is JSON-serialisable.
type SchemaDocument struct {
	Format   SchemaFormat
	Document any
}

// SchemaGenerator transforms a flattened options object into a schema
// document. Implementations must handle nil inputs by returning an empty
// schema document.
type SchemaGenerator interface {
	Generate(value any) (SchemaDocument, error)
}

// EvalContext carries the inputs a compiled expression is evaluated against.
type EvalContext struct {
	// Options holds the sibling options of the element declaring the
	// expression, keyed by option name.
	Options map[string]any
	Path    string
	Session string
	Now     time.Time
}

const (
	varPath    = "path"
	varSession = "session"
	varNow     = "now"
)

// variables returns the expression's variable bindings. Sibling options
// shadow path, session and now.
func (ctx EvalContext) variables() map[string]any {
	vars := make(map[string]any, len(ctx.Options)+3)
	vars[varPath] = ctx.Path
	vars[varSession] = ctx.Session
	if ctx.Now.IsZero() {
		vars[varNow] = time.Now()
	} else {
		vars[varNow] = ctx.Now
	}
	for name, value := range ctx.Options {
		vars[name] = value
	}
	return vars
}

// Evaluator compiles option expressions for one engine.
type Evaluator interface {
	Engine() string
	// Compile prepares source once. names lists, sorted, the sibling options
	// the program may reference.
	Compile(source string, names []string) (CompiledRule, error)
}

// CompiledRule is a prepared expression, evaluated once per write.
type CompiledRule interface {
	Evaluate(ctx EvalContext) (any, error)
}

// Option configures a Manager.
type Option func(*managerConfig)

type managerConfig struct {
	ctx             context.Context
	session         string
	scheduler       Scheduler
	separator       PropSeparator
	templates       TemplateExtractor
	evaluator       Evaluator
	programCache    ProgramCache
	functions       *FunctionRegistry
	evalLogger      EvaluatorLogger
	syncLogger      SyncLogger
	schemaGenerator SchemaGenerator
	activityHooks   activity.Hooks
	activityConfig  activity.Config
	activitySet     bool
}

func applyOptions(opts []Option) managerConfig {
	cfg := managerConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.ctx == nil {
		cfg.ctx = context.Background()
	}
	if cfg.scheduler == nil {
		cfg.scheduler = NewTaskQueue()
	}
	if cfg.separator == nil {
		cfg.separator = DefaultPropSeparator()
	}
	if cfg.templates == nil {
		cfg.templates = DefaultTemplateExtractor()
	}
	if cfg.evalLogger == nil {
		cfg.evalLogger = noopEvaluatorLogger{}
	}
	if cfg.syncLogger == nil {
		cfg.syncLogger = noopSyncLogger{}
	}
	if cfg.schemaGenerator == nil {
		cfg.schemaGenerator = DefaultSchemaGenerator()
	}
	if !cfg.activitySet {
		cfg.activityConfig = activity.Config{Enabled: len(cfg.activityHooks) > 0}
	}
	return cfg
}

// WithContext sets the context passed to activity hooks.
func WithContext(ctx context.Context) Option {
	return func(cfg *managerConfig) {
		cfg.ctx = ctx
	}
}

// WithSessionID overrides the generated session identifier attached to log
// and activity events.
func WithSessionID(id string) Option {
	return func(cfg *managerConfig) {
		cfg.session = id
	}
}

// WithScheduler configures the task queue used for deferred guard writes.
func WithScheduler(scheduler Scheduler) Option {
	return func(cfg *managerConfig) {
		cfg.scheduler = scheduler
	}
}

// WithPropSeparator replaces the default prop partitioning.
func WithPropSeparator(separator PropSeparator) Option {
	return func(cfg *managerConfig) {
		cfg.separator = separator
	}
}

// WithTemplateExtractor replaces the default template extraction.
func WithTemplateExtractor(extractor TemplateExtractor) Option {
	return func(cfg *managerConfig) {
		cfg.templates = extractor
	}
}

// WithEvaluator sets the evaluator used for expressions that do not name an
// engine.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *managerConfig) {
		cfg.evaluator = e
	}
}

// WithSchemaGenerator configures a custom schema generator implementation.
func WithSchemaGenerator(generator SchemaGenerator) Option {
	return func(cfg *managerConfig) {
		cfg.schemaGenerator = generator
	}
}
