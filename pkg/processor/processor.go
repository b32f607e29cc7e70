// Package processor maps the bindings of a single technology kind onto framework properties.
//
// Each kind has one Processor. Processors never fail: a secret missing some
// entries simply yields fewer properties, and a kind disabled by its guard
// yields none.
package processor

import (
	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/guard"
	"github.com/redhat-developer/service-binding-properties/pkg/logging"
	"github.com/redhat-developer/service-binding-properties/pkg/mapper"
	"github.com/redhat-developer/service-binding-properties/pkg/probe"
	"github.com/redhat-developer/service-binding-properties/pkg/properties"
)

//go:generate mockgen -destination=mocks/mocks_generated.go -package=mocks . Processor

// Processor contributes the properties of one binding kind.
type Processor interface {
	// Kind is the binding kind handled by the processor.
	Kind() string
	// Enabled reports whether the guard allows processing of the kind.
	Enabled() bool
	// Process writes the properties of every binding of the kind into props.
	Process(bindings *binding.Bindings, props properties.Properties) Report
}

// Report summarizes one Process call.
type Report struct {
	Kind     string
	Disabled bool
	Bindings int
}

var log = logging.Logger("processor")

// mapFunc maps a single binding. The mapper reads the binding secret and writes into props.
type mapFunc func(m *mapper.Mapper, props properties.Properties)

type kindProcessor struct {
	kind  string
	guard *guard.Guard
	apply mapFunc
}

var _ Processor = (*kindProcessor)(nil)

func newKindProcessor(kind string, g *guard.Guard, apply mapFunc) *kindProcessor {
	return &kindProcessor{kind: kind, guard: g, apply: apply}
}

func (p *kindProcessor) Kind() string {
	return p.kind
}

func (p *kindProcessor) Enabled() bool {
	return p.guard.Enabled(p.kind)
}

func (p *kindProcessor) Process(bindings *binding.Bindings, props properties.Properties) Report {
	report := Report{Kind: p.kind}
	if !p.Enabled() {
		log.Debug("Kind disabled, skipping", "kind", p.kind)
		report.Disabled = true
		return report
	}

	for _, b := range bindings.FilterBindings(p.kind) {
		log.Trace("Mapping binding", "kind", p.kind, "name", b.Name())
		p.apply(mapper.New(b.Secret(), props), props)
		report.Bindings++
	}
	return report
}

// Kinds of the default processors, in processing order.
const (
	Cassandra     = "Cassandra"
	Couchbase     = "Couchbase"
	DB2           = "DB2"
	Elasticsearch = "Elasticsearch"
	Kafka         = "Kafka"
	LDAP          = "LDAP"
	MongoDB       = "MongoDB"
	MySQL         = "MySQL"
	Neo4J         = "Neo4J"
	Oracle        = "Oracle"
	PostgreSQL    = "PostgreSQL"
	RabbitMQ      = "RabbitMQ"
	Redis         = "Redis"
	SQLServer     = "SQLServer"
	Wavefront     = "Wavefront"
)

// Defaults returns one processor per supported kind, ordered alphabetically by kind.
// The order is the order of the property writes, later processors win on shared keys.
func Defaults(g *guard.Guard, p probe.Func) []Processor {
	return []Processor{
		NewCassandra(g),
		NewCouchbase(g),
		NewDB2(g),
		NewElasticsearch(g),
		NewKafka(g),
		NewLDAP(g),
		NewMongoDB(g),
		NewMySQL(g, p),
		NewNeo4J(g),
		NewOracle(g, p),
		NewPostgreSQL(g, p),
		NewRabbitMQ(g),
		NewRedis(g),
		NewSQLServer(g),
		NewWavefront(g),
	}
}
