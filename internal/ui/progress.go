package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
)

// Phase represents a stage in the analysis pipeline
type Phase string

const (
	PhaseScanning   Phase = "Scanning"
	PhaseParsing    Phase = "Parsing"
	PhaseResolving  Phase = "Resolving"
	PhaseGenerating Phase = "Generating"
)

// ProgressBar is one phase's bar
type ProgressBar struct {
	bar   *progressbar.ProgressBar
	phase Phase
	done  int
}

// NewProgressBar creates a bar for phase writing to output
func NewProgressBar(phase Phase, total int, output io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(output),
		progressbar.OptionSetDescription(fmt.Sprintf("[%s]", phase)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetPredictTime(true),
	)
	return &ProgressBar{bar: bar, phase: phase}
}

// Increment advances the bar by one
func (pb *ProgressBar) Increment() error {
	pb.done++
	return pb.bar.Add(1)
}

// Step shows item (a file path or exporter name) next to the phase and
// advances the bar
func (pb *ProgressBar) Step(item string) error {
	pb.bar.Describe(fmt.Sprintf("[%s] %s", pb.phase, filepath.Base(item)))
	return pb.Increment()
}

// Done returns the number of completed steps
func (pb *ProgressBar) Done() int { return pb.done }

// Finish completes the bar
func (pb *ProgressBar) Finish() error {
	return pb.bar.Finish()
}

// Pipeline runs bars for a fixed sequence of phases
type Pipeline struct {
	phases []Phase
	bars   []*ProgressBar
	output io.Writer
}

// NewPipeline creates a pipeline writing to stdout
func NewPipeline(phases []Phase) *Pipeline {
	return NewPipelineWithOutput(phases, os.Stdout)
}

// NewPipelineWithOutput creates a pipeline writing to output
func NewPipelineWithOutput(phases []Phase, output io.Writer) *Pipeline {
	return &Pipeline{
		phases: phases,
		bars:   make([]*ProgressBar, 0, len(phases)),
		output: output,
	}
}

// Disable discards all further output
func (p *Pipeline) Disable() {
	p.output = io.Discard
}

// Current returns the running phase, or "" before the first NextPhase
func (p *Pipeline) Current() Phase {
	if len(p.bars) == 0 {
		return ""
	}
	return p.bars[len(p.bars)-1].phase
}

// NextPhase finishes the running phase and starts the next one with total
// steps. It returns nil once every phase has run.
func (p *Pipeline) NextPhase(total int) *ProgressBar {
	p.Finish()
	if len(p.bars) >= len(p.phases) {
		return nil
	}
	bar := NewProgressBar(p.phases[len(p.bars)], total, p.output)
	p.bars = append(p.bars, bar)
	return bar
}

// Finish completes the running phase
func (p *Pipeline) Finish() {
	if len(p.bars) > 0 {
		p.bars[len(p.bars)-1].Finish()
	}
}

// PrintSummary prints message below the bars
func (p *Pipeline) PrintSummary(message string) {
	fmt.Fprintln(p.output, message)
}
