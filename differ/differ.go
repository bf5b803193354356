package differ

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/erraggy/apidiff/apidoc"
	"github.com/erraggy/apidiff/apierrors"
	"github.com/erraggy/apidiff/internal/options"
)

// Differ compares API description documents.
//
// The zero value is usable: it compares the default methods, matches
// parameters by name, uses one worker per CPU and skips the document-level
// collections. Use [New] for the usual defaults.
type Differ struct {
	// Methods are the method keys compared; nil means apidoc.DefaultMethods()
	Methods []string
	// CompareSchemas enables the schema-name delta
	CompareSchemas bool
	// CompareTags enables the document tag-name delta
	CompareTags bool
	// CompareServers enables the before/after server pair
	CompareServers bool
	// CompareResponses enables response status-code presence records
	CompareResponses bool
	// ParamIdentity selects how parameters are matched; "" means ParamIdentityName
	ParamIdentity ParamIdentity
	// Workers bounds the number of paths compared concurrently; <= 0 means GOMAXPROCS
	Workers int
	// Logger receives debug output; nil means no logging
	Logger apidoc.Logger
}

// New creates a Differ that compares paths, schemas, tags and servers for
// the default method set.
func New() *Differ {
	return &Differ{
		CompareSchemas: true,
		CompareTags:    true,
		CompareServers: true,
		ParamIdentity:  ParamIdentityName,
	}
}

func (d *Differ) methodSet() map[string]struct{} {
	methods := d.Methods
	if methods == nil {
		methods = apidoc.DefaultMethods()
	}
	set := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		set[strings.ToLower(m)] = struct{}{}
	}
	return set
}

func (d *Differ) methodList() []string {
	set := d.methodSet()
	list := make([]string, 0, len(set))
	for m := range set {
		list = append(list, m)
	}
	return list
}

func (d *Differ) paramIdentity() ParamIdentity {
	if d.ParamIdentity == "" {
		return ParamIdentityName
	}
	return d.ParamIdentity
}

func (d *Differ) workers() int {
	if d.Workers > 0 {
		return d.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (d *Differ) logger() apidoc.Logger {
	if d.Logger == nil {
		return apidoc.NopLogger{}
	}
	return d.Logger
}

// Option is a function that configures a diff operation
type Option func(*diffConfig) error

// diffConfig holds configuration for a diff operation
type diffConfig struct {
	// Input sources (exactly one source and one target must be set)
	sourceFilePath *string
	sourceDoc      *apidoc.Document
	targetFilePath *string
	targetDoc      *apidoc.Document

	differ Differ
}

// DiffWithOptions compares two documents using functional options.
// Input source selection and configuration are combined in a single call.
//
// Example:
//
//	result, err := differ.DiffWithOptions(
//	    differ.WithSourceFilePath("api-v1.json"),
//	    differ.WithTargetFilePath("api-v2.yaml"),
//	    differ.WithCompareServers(false),
//	)
func DiffWithOptions(opts ...Option) (*DiffResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("differ: invalid options: %w", err)
	}

	source := cfg.sourceDoc
	if cfg.sourceFilePath != nil {
		source, err = apidoc.ParseFile(*cfg.sourceFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse source: %w", apierrors.WithDocument(err, apierrors.DocumentOld))
		}
	}

	target := cfg.targetDoc
	if cfg.targetFilePath != nil {
		target, err = apidoc.ParseFile(*cfg.targetFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse target: %w", apierrors.WithDocument(err, apierrors.DocumentNew))
		}
	}

	d := cfg.differ
	return d.Diff(source, target)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*diffConfig, error) {
	cfg := &diffConfig{differ: *New()}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource("source",
		"must specify a source (use WithSourceFilePath or WithSourceDocument)",
		"must specify exactly one source",
		cfg.sourceFilePath != nil, cfg.sourceDoc != nil); err != nil {
		return nil, err
	}
	if err := options.ValidateSingleInputSource("target",
		"must specify a target (use WithTargetFilePath or WithTargetDocument)",
		"must specify exactly one target",
		cfg.targetFilePath != nil, cfg.targetDoc != nil); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithSourceFilePath specifies a JSON or YAML file as the source (old) document
func WithSourceFilePath(path string) Option {
	return func(cfg *diffConfig) error {
		cfg.sourceFilePath = &path
		return nil
	}
}

// WithSourceDocument specifies a decoded document as the source (old) document
func WithSourceDocument(doc *apidoc.Document) Option {
	return func(cfg *diffConfig) error {
		if doc == nil {
			return &apierrors.ConfigError{Option: "source", Message: "document is nil"}
		}
		cfg.sourceDoc = doc
		return nil
	}
}

// WithTargetFilePath specifies a JSON or YAML file as the target (new) document
func WithTargetFilePath(path string) Option {
	return func(cfg *diffConfig) error {
		cfg.targetFilePath = &path
		return nil
	}
}

// WithTargetDocument specifies a decoded document as the target (new) document
func WithTargetDocument(doc *apidoc.Document) Option {
	return func(cfg *diffConfig) error {
		if doc == nil {
			return &apierrors.ConfigError{Option: "target", Message: "document is nil"}
		}
		cfg.targetDoc = doc
		return nil
	}
}

// WithMethods sets the method keys to compare. Keys are lower-cased.
// Default: get, post, put, delete, patch
func WithMethods(methods ...string) Option {
	return func(cfg *diffConfig) error {
		if len(methods) == 0 {
			return &apierrors.ConfigError{Option: "methods", Message: "at least one method is required"}
		}
		list := make([]string, 0, len(methods))
		for _, m := range methods {
			m = strings.ToLower(strings.TrimSpace(m))
			if m == "" {
				return &apierrors.ConfigError{Option: "methods", Value: methods, Message: "method names must not be empty"}
			}
			list = append(list, m)
		}
		cfg.differ.Methods = list
		return nil
	}
}

// WithCompareSchemas enables or disables the schema-name delta
// Default: true
func WithCompareSchemas(enabled bool) Option {
	return func(cfg *diffConfig) error {
		cfg.differ.CompareSchemas = enabled
		return nil
	}
}

// WithCompareTags enables or disables the document tag-name delta
// Default: true
func WithCompareTags(enabled bool) Option {
	return func(cfg *diffConfig) error {
		cfg.differ.CompareTags = enabled
		return nil
	}
}

// WithCompareServers enables or disables the server comparison
// Default: true
func WithCompareServers(enabled bool) Option {
	return func(cfg *diffConfig) error {
		cfg.differ.CompareServers = enabled
		return nil
	}
}

// WithCompareResponses enables response status-code presence records
// Default: false
func WithCompareResponses(enabled bool) Option {
	return func(cfg *diffConfig) error {
		cfg.differ.CompareResponses = enabled
		return nil
	}
}

// WithParamIdentity selects how parameters are matched across versions
// Default: ParamIdentityName
func WithParamIdentity(identity ParamIdentity) Option {
	return func(cfg *diffConfig) error {
		id, err := ParseParamIdentity(string(identity))
		if err != nil {
			return err
		}
		cfg.differ.ParamIdentity = id
		return nil
	}
}

// WithWorkers bounds how many paths are compared concurrently.
// Default: runtime.GOMAXPROCS(0)
func WithWorkers(n int) Option {
	return func(cfg *diffConfig) error {
		if n < 1 {
			return &apierrors.ConfigError{Option: "workers", Value: n, Message: "must be at least 1"}
		}
		cfg.differ.Workers = n
		return nil
	}
}

// WithLogger sets the logger for debug output
// Default: no logging
func WithLogger(l apidoc.Logger) Option {
	return func(cfg *diffConfig) error {
		cfg.differ.Logger = l
		return nil
	}
}
