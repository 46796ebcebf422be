package model

import (
	"fmt"
	"sort"
)

// Report is the result of one discovery pass, handed to the exporters.
type Report struct {
	Summary     *Summary
	Endpoints   []*Endpoint
	Diagnostics []Diagnostic
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{
		Summary:     NewSummary(),
		Endpoints:   make([]*Endpoint, 0),
		Diagnostics: make([]Diagnostic, 0),
	}
}

// AddDiagnostic records a problem found during discovery.
func (r *Report) AddDiagnostic(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// ByController groups endpoints by controller, controllers sorted by name and
// endpoints by URI then method.
func (r *Report) ByController() []ControllerEndpoints {
	groups := make(map[string][]*Endpoint)
	for _, ep := range r.Endpoints {
		groups[ep.Controller()] = append(groups[ep.Controller()], ep)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]ControllerEndpoints, 0, len(names))
	for _, name := range names {
		eps := groups[name]
		sort.SliceStable(eps, func(i, j int) bool {
			if eps[i].uri.raw != eps[j].uri.raw {
				return eps[i].uri.raw < eps[j].uri.raw
			}
			return eps[i].method < eps[j].method
		})
		out = append(out, ControllerEndpoints{Controller: name, Endpoints: eps})
	}
	return out
}

// ControllerEndpoints is the endpoints of one controller.
type ControllerEndpoints struct {
	Controller string
	Endpoints  []*Endpoint
}

// Summary represents the system-level statistics for the Overview sheet
type Summary struct {
	// System Scale
	TotalControllers int
	TotalEndpoints   int
	TotalSchemas     int // generic declarations registered
	AnalysisDate     string

	// Per-controller stats
	ControllerStats []ControllerStat
}

// ControllerStat represents statistics for a single controller
type ControllerStat struct {
	Name        string // Controller class name
	Package     string // Package name
	BaseURL     string // Base request mapping URL
	MethodCount int    // Total number of mapped methods in this controller
	ApiCount    int    // Endpoints that made it into the report
	ViewCount   int    // Methods returning views (skipped unless configured)
	Skipped     int    // Methods dropped with a diagnostic
}

// NewSummary creates a new Summary instance
func NewSummary() *Summary {
	return &Summary{
		ControllerStats: make([]ControllerStat, 0),
	}
}

// AddControllerStat adds a controller statistic to the summary
func (s *Summary) AddControllerStat(stat ControllerStat) {
	s.ControllerStats = append(s.ControllerStats, stat)
}

// Severity of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Diagnostic is a problem found in the analyzed sources.
type Diagnostic struct {
	Severity Severity
	Code     string // e.g. "unresolved_type_variable"
	Scope    string // declaring class or method
	Element  string // endpoint or parameter the problem was found on
	File     string
	Message  string
}

func (d Diagnostic) String() string {
	loc := d.Scope
	if d.Element != "" {
		loc += "." + d.Element
	}
	return fmt.Sprintf("[%s] %s %s: %s", d.Severity, d.Code, loc, d.Message)
}
