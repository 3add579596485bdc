package meta

import (
	"log/slog"

	"github.com/coregx/polyregex/backend"
	"github.com/coregx/polyregex/flags"
	"github.com/coregx/polyregex/flavor"
	"github.com/coregx/polyregex/regex"
	"github.com/coregx/polyregex/validate"
)

// Engine validates patterns and creates lazily compiled Objects.
//
// Example:
//
//	engine, _ := meta.NewEngine(nil, meta.DefaultConfig())
//	obj, err := engine.Compile(regex.NewSource(`(\d+)-(\d+)`, ""))
//	if err != nil {
//	    // *regex.SyntaxError, *regex.UnsupportedFeatureError, ...
//	}
//	fmt.Println(obj.NumberOfCaptureGroups()) // 3
type Engine struct {
	compiler  backend.Compiler
	config    Config
	processor *flavor.Processor // nil for the default grammar
	log       *slog.Logger
}

// NewEngine creates an engine compiling through compiler. A nil compiler
// selects the native backend for the configured flavor.
func NewEngine(compiler backend.Compiler, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		compiler: compiler,
		config:   config,
		log:      config.logger(),
	}
	if config.Flavor != flavor.None {
		p, ok := flavor.Lookup(config.Flavor)
		if !ok {
			return nil, &ConfigError{Field: "Flavor", Message: "unknown flavor " + config.Flavor.String()}
		}
		e.processor = p
	}
	if e.compiler == nil {
		e.compiler = backend.NewNative(backend.NativeConfig{
			Flavor:       config.Flavor,
			MatchTimeout: config.MatchTimeout,
		})
	}
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Compiler returns the backend the engine compiles with.
func (e *Engine) Compiler() backend.Compiler {
	return e.compiler
}

// CompileOption adjusts a single Compile call.
type CompileOption func(*compileOptions)

type compileOptions struct {
	eager bool
}

// Eager overrides Config.RegressionTestMode for one Compile call.
func Eager(eager bool) CompileOption {
	return func(o *compileOptions) {
		o.eager = eager
	}
}

// Compile validates src and returns an uncompiled Object. In eager mode the
// backend runs immediately and its errors are returned here.
func (e *Engine) Compile(src regex.Source, opts ...CompileOption) (*Object, error) {
	o := compileOptions{eager: e.config.RegressionTestMode}
	for _, opt := range opts {
		opt(&o)
	}

	f, res, err := e.analyze(src)
	if err != nil {
		return nil, err
	}

	obj := newObject(e, src, f, res)
	if !o.eager {
		e.log.Debug("deferred compilation", "source", src.String())
		return obj, nil
	}

	e.log.Debug("eager compilation", "source", src.String())
	if _, err := obj.Matcher(); err != nil {
		return nil, err
	}
	return obj, nil
}

// Validate performs the checks of Compile without creating an object.
func (e *Engine) Validate(src regex.Source) error {
	_, _, err := e.analyze(src)
	return err
}

// analyze parses flags, validates the pattern and checks the feature set.
func (e *Engine) analyze(src regex.Source) (flags.Set, *validate.Result, error) {
	var (
		f   flags.Set
		res *validate.Result
		err error
	)
	if e.processor != nil {
		// a flavor owns its grammar; the feature set is not applied
		return e.processor.Analyze(src)
	}
	f, res, err = defaultAnalyze(src)
	if err != nil {
		return nil, nil, err
	}
	if err := e.config.Features.CheckSupport(src, res); err != nil {
		return nil, nil, err
	}
	return f, res, nil
}

func defaultAnalyze(src regex.Source) (flags.Set, *validate.Result, error) {
	f, err := flags.Parse(src)
	if err != nil {
		return nil, nil, err
	}
	res, err := validate.Validate(src, f)
	if err != nil {
		return nil, nil, err
	}
	return f, res, nil
}

// NewDispatcher creates an exec call site using the engine configuration.
func (e *Engine) NewDispatcher() *Dispatcher {
	return NewDispatcher(e.config)
}
