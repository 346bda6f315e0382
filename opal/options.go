// options.go — Parse's option table.
//
// The teacher keeps its public entry points (modules.go's ImportAST /
// ImportCode / ImportFile) small and documented, delegating to shared
// private implementation. This core follows the same shape: Options is a
// small struct with sensible defaults, and functional-option
// constructors (With...) are sugar over setting its fields directly —
// either style reaches the same entry point, Parse.
package opal

// Options configures one Parse call.
type Options struct {
	// File is the logical name used in error messages and the source-map
	// comment. Default "(file)".
	File string
	// SourceFile is the name shown in the file comment. Defaults to File.
	SourceFile string
	// MethodMissing emits method-missing-aware dispatch. Default true.
	MethodMissing bool
	// OptimizedOperators emits the inline numeric fast path for
	// < > <= >= + - * / == != . Default true.
	OptimizedOperators bool
	// ArityCheck emits runtime arity checks on methods. Default false.
	ArityCheck bool
	// ConstMissing routes ::Const through a runtime trap. Default true.
	ConstMissing bool
	// IRB rewrites top-level locals to persistent Opal.irb_vars. Default false.
	IRB bool
	// SourceMapEnabled annotates fragments with line markers and prepends
	// the source-map + file comments. Default true.
	SourceMapEnabled bool
	// Warner receives non-fatal diagnostics. Defaults to DefaultWarner.
	Warner Warner
}

// DefaultOptions returns this package's default Options.
func DefaultOptions() Options {
	return Options{
		File:               "(file)",
		MethodMissing:       true,
		OptimizedOperators:  true,
		ArityCheck:          false,
		ConstMissing:        true,
		IRB:                 false,
		SourceMapEnabled:    true,
	}
}

// Option mutates an Options in place; Parse applies them over
// DefaultOptions() in order.
type Option func(*Options)

func WithFile(name string) Option       { return func(o *Options) { o.File = name } }
func WithSourceFile(name string) Option { return func(o *Options) { o.SourceFile = name } }
func WithMethodMissing(b bool) Option   { return func(o *Options) { o.MethodMissing = b } }
func WithOptimizedOperators(b bool) Option {
	return func(o *Options) { o.OptimizedOperators = b }
}
func WithArityCheck(b bool) Option       { return func(o *Options) { o.ArityCheck = b } }
func WithConstMissing(b bool) Option     { return func(o *Options) { o.ConstMissing = b } }
func WithIRB(b bool) Option              { return func(o *Options) { o.IRB = b } }
func WithSourceMapEnabled(b bool) Option { return func(o *Options) { o.SourceMapEnabled = b } }
func WithWarner(w Warner) Option         { return func(o *Options) { o.Warner = w } }

func (o Options) resolved() Options {
	if o.SourceFile == "" {
		o.SourceFile = o.File
	}
	return o
}
