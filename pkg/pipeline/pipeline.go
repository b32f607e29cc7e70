// Package pipeline runs the processors over a snapshot of bindings.
package pipeline

import (
	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/logging"
	"github.com/redhat-developer/service-binding-properties/pkg/processor"
	"github.com/redhat-developer/service-binding-properties/pkg/properties"
)

// Recorder observes the outcome of a pass.
type Recorder interface {
	Observe(report processor.Report)
	Properties(n int)
}

// Pipeline invokes its processors one after the other against the same bindings
// and the same property map. Processors see, and may overwrite, what earlier
// ones wrote.
type Pipeline struct {
	processors []processor.Processor
	flatten    *flattener
	recorder   Recorder
	log        *logging.Log
}

// Process runs a single pass. It must not be called concurrently on the same props.
func (p *Pipeline) Process(bindings *binding.Bindings, props properties.Properties) []processor.Report {
	p.log.Debug("Processing bindings", "bindings", bindings.Len(), "processors", len(p.processors))

	if p.flatten != nil {
		p.flatten.apply(bindings, props)
	}

	reports := make([]processor.Report, 0, len(p.processors))
	for _, proc := range p.processors {
		report := proc.Process(bindings, props)
		if report.Disabled {
			p.log.Debug("Processor disabled", "kind", proc.Kind())
		} else if report.Bindings > 0 {
			p.log.Info("Mapped bindings", "kind", proc.Kind(), "bindings", report.Bindings)
		}
		if p.recorder != nil {
			p.recorder.Observe(report)
		}
		reports = append(reports, report)
	}

	if p.recorder != nil {
		p.recorder.Properties(len(props))
	}
	return reports
}

// Kinds returns the kinds of the processors in processing order.
func (p *Pipeline) Kinds() []string {
	kinds := make([]string, 0, len(p.processors))
	for _, proc := range p.processors {
		kinds = append(kinds, proc.Kind())
	}
	return kinds
}

// Processors returns the processors in processing order.
func (p *Pipeline) Processors() []processor.Processor {
	result := make([]processor.Processor, len(p.processors))
	copy(result, p.processors)
	return result
}
