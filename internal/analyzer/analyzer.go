// Package analyzer runs the discovery pass over a Spring source tree: it reads
// and pools Java classes, records the type variables of every generic
// declaration, binds type arguments along superclass chains and assembles one
// Endpoint per mapped controller method.
package analyzer

import (
	"fmt"
	"time"

	"api-recon/internal/javaparser"
	"api-recon/internal/logger"
	"api-recon/internal/model"
	"api-recon/internal/typeschema"
)

// Diagnostic codes recorded by the discovery pass. Endpoint validation adds
// the model.Code* values.
const (
	CodeReadError          = "read_error"
	CodeParseError         = "parse_error"
	CodeDuplicateClass     = "duplicate_class"
	CodeInvalidSchema      = "invalid_schema"
	CodeInvalidBound       = "invalid_bound"
	CodeInvalidType        = "invalid_type"
	CodeTypeArguments      = "invalid_type_arguments"
	CodeUnresolvedVariable = "unresolved_type_variable"
	CodeUnsupportedMethod  = "unsupported_method"
	CodeInvalidEndpoint    = "invalid_endpoint"
)

// Config holds configuration for the analyzer
type Config struct {
	// RootDir is the root directory to analyze
	RootDir string

	// ExcludePatterns are glob patterns for files/directories to exclude
	ExcludePatterns []string

	// IncludeViews keeps methods of plain @Controller classes that render a
	// view instead of writing the response body
	IncludeViews bool

	// EncodingHints are charset labels tried, in order, for files that are
	// not valid UTF-8 (e.g., "euc-kr", "windows-949", "shift_jis")
	EncodingHints []string

	// TypeCacheSize is the number of parsed type expressions kept in memory
	TypeCacheSize int

	// SkipController reports whether a controller, by simple name, is left
	// out of the report. Nil keeps every controller.
	SkipController func(name string) bool
}

// DefaultConfig returns the default analyzer configuration
func DefaultConfig(rootDir string) *Config {
	return &Config{
		RootDir: rootDir,
		ExcludePatterns: []string{
			"**/test/**",
			"**/target/**",
			"**/build/**",
			"**/.git/**",
		},
		IncludeViews: false,
		EncodingHints: []string{
			"utf-8",
			"euc-kr",
		},
		TypeCacheSize: javaparser.DefaultCacheSize,
	}
}

// Analyzer accumulates parsed classes and turns them into a report.
// It is not safe for concurrent use.
type Analyzer struct {
	cfg      Config
	types    *javaparser.TypeParser
	pool     *ClassPool
	registry *typeschema.Registry
	report   *model.Report
}

// New creates an analyzer for cfg.
func New(cfg Config) (*Analyzer, error) {
	types, err := javaparser.NewTypeParser(cfg.TypeCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create type parser: %w", err)
	}
	return &Analyzer{
		cfg:      cfg,
		types:    types,
		pool:     NewClassPool(),
		registry: typeschema.NewRegistry(),
		report:   model.NewReport(),
	}, nil
}

// Pool returns the classes loaded so far.
func (a *Analyzer) Pool() *ClassPool { return a.pool }

// Registry returns the schemas built by Resolve.
func (a *Analyzer) Registry() *typeschema.Registry { return a.registry }

// LoadFile reads and parses one Java source file into the pool. Failures are
// recorded as diagnostics.
func (a *Analyzer) LoadFile(path string) {
	content, err := ReadFile(path, a.cfg.EncodingHints)
	if err != nil {
		logger.Warn("Failed to read file %s: %v", path, err)
		a.diag(model.SeverityError, CodeReadError, "", "", path, err)
		return
	}
	a.AddSource(path, content)
}

// AddSource parses Java source text as if read from path.
func (a *Analyzer) AddSource(path, content string) {
	jc, err := javaparser.ParseJavaFile(content)
	if err != nil {
		logger.LogParseError(path, err, "java source")
		a.diag(model.SeverityError, CodeParseError, "", "", path, err)
		return
	}
	if jc.Name == "" {
		logger.Debug("[ANALYZER] No type declaration in %s", path)
		return
	}
	if err := a.pool.Add(path, jc); err != nil {
		a.diag(model.SeverityWarning, CodeDuplicateClass, jc.FullName(), "", path, err)
	}
}

// Resolve builds the schemas of every pooled generic declaration, extracts
// the endpoints of every controller and returns the report.
func (a *Analyzer) Resolve() *model.Report {
	a.buildSchemas()
	a.extractEndpoints()

	s := a.report.Summary
	s.AnalysisDate = time.Now().Format("2006-01-02")
	s.TotalSchemas = a.registry.Len()
	s.TotalEndpoints = len(a.report.Endpoints)
	return a.report
}

// Analyze scans cfg.RootDir and runs the whole discovery pass.
func Analyze(cfg Config) (*model.Report, error) {
	files, err := ScanDirectory(cfg.RootDir, cfg.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	a, err := New(cfg)
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		a.LoadFile(path)
	}
	return a.Resolve(), nil
}

func (a *Analyzer) diag(sev model.Severity, code, scope, element, file string, err error) {
	a.report.AddDiagnostic(model.Diagnostic{
		Severity: sev,
		Code:     code,
		Scope:    scope,
		Element:  element,
		File:     file,
		Message:  err.Error(),
	})
}
