package processor

import (
	"github.com/redhat-developer/service-binding-properties/pkg/guard"
	"github.com/redhat-developer/service-binding-properties/pkg/mapper"
	"github.com/redhat-developer/service-binding-properties/pkg/properties"
)

// NewKafka returns the processor of Kafka bindings. The bootstrap servers of the
// consumer, producer and streams clients are mapped independently of the shared ones.
func NewKafka(g *guard.Guard) Processor {
	return newKindProcessor(Kafka, g, func(m *mapper.Mapper, _ properties.Properties) {
		m.From("bootstrap-servers").To("spring.kafka.bootstrap-servers")
		m.From("consumer.bootstrap-servers").To("spring.kafka.consumer.bootstrap-servers")
		m.From("producer.bootstrap-servers").To("spring.kafka.producer.bootstrap-servers")
		m.From("streams.bootstrap-servers").To("spring.kafka.streams.bootstrap-servers")
	})
}

// NewRabbitMQ returns the processor of RabbitMQ bindings.
func NewRabbitMQ(g *guard.Guard) Processor {
	return newKindProcessor(RabbitMQ, g, func(m *mapper.Mapper, _ properties.Properties) {
		m.From("addresses").To("spring.rabbitmq.addresses")
		m.From("host").To("spring.rabbitmq.host")
		m.From("password").To("spring.rabbitmq.password")
		m.From("port").To("spring.rabbitmq.port")
		m.From("username").To("spring.rabbitmq.username")
		m.From("virtual-host").To("spring.rabbitmq.virtual-host")
	})
}
