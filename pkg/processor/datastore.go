package processor

import (
	"github.com/redhat-developer/service-binding-properties/pkg/guard"
	"github.com/redhat-developer/service-binding-properties/pkg/mapper"
	"github.com/redhat-developer/service-binding-properties/pkg/properties"
)

// renames maps each secret key to the property of the same name below prefix.
func renames(prefix string, keys ...string) mapFunc {
	return func(m *mapper.Mapper, _ properties.Properties) {
		for _, k := range keys {
			m.From(k).To(prefix + "." + k)
		}
	}
}

// NewCassandra returns the processor of Cassandra bindings.
func NewCassandra(g *guard.Guard) Processor {
	return newKindProcessor(Cassandra, g, renames("spring.data.cassandra",
		"cluster-name",
		"compression",
		"contact-points",
		"keyspace-name",
		"password",
		"port",
		"ssl",
		"username",
	))
}

// NewCouchbase returns the processor of Couchbase bindings.
func NewCouchbase(g *guard.Guard) Processor {
	return newKindProcessor(Couchbase, g, renames("spring.couchbase",
		"bootstrap-hosts",
		"bucket.name",
		"bucket.password",
		"env.bootstrap.http-direct-port",
		"env.bootstrap.http-ssl-port",
		"password",
		"username",
	))
}

// NewElasticsearch returns the processor of Elasticsearch bindings.
// Endpoints and credentials are shared by the blocking and the reactive clients.
func NewElasticsearch(g *guard.Guard) Processor {
	return newKindProcessor(Elasticsearch, g, func(m *mapper.Mapper, _ properties.Properties) {
		m.From("endpoints").To("spring.data.elasticsearch.client.reactive.endpoints")
		m.From("password").To("spring.data.elasticsearch.client.reactive.password")
		m.From("use-ssl").To("spring.data.elasticsearch.client.reactive.use-ssl")
		m.From("username").To("spring.data.elasticsearch.client.reactive.username")
		m.From("password").To("spring.elasticsearch.rest.password")
		m.From("endpoints").To("spring.elasticsearch.rest.uris")
		m.From("username").To("spring.elasticsearch.rest.username")
	})
}

// NewMongoDB returns the processor of MongoDB bindings.
func NewMongoDB(g *guard.Guard) Processor {
	return newKindProcessor(MongoDB, g, renames("spring.data.mongodb",
		"authentication-database",
		"database",
		"grid-fs-database",
		"host",
		"password",
		"port",
		"uri",
		"username",
	))
}

// NewNeo4J returns the processor of Neo4J bindings.
func NewNeo4J(g *guard.Guard) Processor {
	return newKindProcessor(Neo4J, g, func(m *mapper.Mapper, _ properties.Properties) {
		m.From("password").To("spring.neo4j.authentication.password")
		m.From("uri").To("spring.neo4j.uri")
		m.From("username").To("spring.neo4j.authentication.username")
	})
}

// NewRedis returns the processor of Redis bindings.
func NewRedis(g *guard.Guard) Processor {
	return newKindProcessor(Redis, g, renames("spring.redis",
		"client-name",
		"cluster.max-redirects",
		"cluster.nodes",
		"database",
		"host",
		"password",
		"port",
		"sentinel.master",
		"sentinel.nodes",
		"ssl",
		"url",
	))
}

// NewLDAP returns the processor of LDAP bindings.
func NewLDAP(g *guard.Guard) Processor {
	return newKindProcessor(LDAP, g, renames("spring.ldap",
		"base",
		"password",
		"urls",
		"username",
	))
}

// NewWavefront returns the processor of Wavefront bindings.
func NewWavefront(g *guard.Guard) Processor {
	return newKindProcessor(Wavefront, g, renames("management.metrics.export.wavefront",
		"api-token",
		"uri",
	))
}
