package pipeline

import (
	"github.com/redhat-developer/service-binding-properties/pkg/logging"
	"github.com/redhat-developer/service-binding-properties/pkg/processor"
)

type builder struct {
	processors []processor.Processor
	flatten    *flattener
	recorder   Recorder
	log        *logging.Log
}

// Builder starts the configuration of a Pipeline.
func Builder() *builder {
	return &builder{}
}

// WithProcessors appends processors. They run in the order given.
func (b *builder) WithProcessors(processors ...processor.Processor) *builder {
	b.processors = append(b.processors, processors...)
	return b
}

// WithFlattening writes every binding entry as <prefix>.<binding name>.<key> before the processors run.
func (b *builder) WithFlattening(prefix string) *builder {
	b.flatten = &flattener{prefix: prefix}
	return b
}

// WithRecorder sets the recorder notified about each processor run.
func (b *builder) WithRecorder(r Recorder) *builder {
	b.recorder = r
	return b
}

// WithLogger sets the logger of the pipeline.
func (b *builder) WithLogger(l *logging.Log) *builder {
	b.log = l
	return b
}

func (b *builder) Build() *Pipeline {
	log := b.log
	if log == nil {
		log = logging.Logger("pipeline")
	}
	processors := make([]processor.Processor, len(b.processors))
	copy(processors, b.processors)
	return &Pipeline{
		processors: processors,
		flatten:    b.flatten,
		recorder:   b.recorder,
		log:        log,
	}
}
