package pipeline_test

import (
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/viper"

	"github.com/redhat-developer/service-binding-properties/pkg/binding"
	"github.com/redhat-developer/service-binding-properties/pkg/guard"
	"github.com/redhat-developer/service-binding-properties/pkg/logging"
	"github.com/redhat-developer/service-binding-properties/pkg/metrics"
	"github.com/redhat-developer/service-binding-properties/pkg/pipeline"
	"github.com/redhat-developer/service-binding-properties/pkg/probe"
	"github.com/redhat-developer/service-binding-properties/pkg/processor"
	"github.com/redhat-developer/service-binding-properties/pkg/processor/mocks"
	"github.com/redhat-developer/service-binding-properties/pkg/properties"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Pipeline", func() {
	var (
		mockCtrl     *gomock.Controller
		bindings     *binding.Bindings
		props        properties.Properties
		defProcessor = func(kind string) *mocks.MockProcessor {
			p := mocks.NewMockProcessor(mockCtrl)
			p.EXPECT().Kind().Return(kind).AnyTimes()
			return p
		}
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		var err error
		bindings, err = binding.NewBindings(binding.New("db", "MySQL", "bitnami", map[string]string{"username": "u"}))
		Expect(err).NotTo(HaveOccurred())
		props = properties.Properties{}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should invoke processors in registration order on the same bindings and properties", func() {
		p1 := defProcessor("First")
		p2 := defProcessor("Second")
		gomock.InOrder(
			p1.EXPECT().Process(bindings, props).DoAndReturn(func(_ *binding.Bindings, p properties.Properties) processor.Report {
				p["key"] = "first"
				return processor.Report{Kind: "First", Bindings: 1}
			}),
			p2.EXPECT().Process(bindings, props).DoAndReturn(func(_ *binding.Bindings, p properties.Properties) processor.Report {
				Expect(p).To(HaveKeyWithValue("key", "first"))
				p["key"] = "second"
				return processor.Report{Kind: "Second"}
			}),
		)

		reports := pipeline.Builder().WithLogger(logging.Discard()).WithProcessors(p1, p2).Build().Process(bindings, props)

		Expect(props).To(Equal(properties.Properties{"key": "second"}))
		Expect(reports).To(Equal([]processor.Report{{Kind: "First", Bindings: 1}, {Kind: "Second"}}))
	})

	It("should list kinds in processing order", func() {
		p := pipeline.Builder().WithProcessors(defProcessor("B"), defProcessor("A")).Build()
		Expect(p.Kinds()).To(Equal([]string{"B", "A"}))
		Expect(p.Processors()).To(HaveLen(2))
	})

	It("should flatten bindings before processors run", func() {
		p1 := defProcessor("First")
		p1.EXPECT().Process(bindings, props).DoAndReturn(func(_ *binding.Bindings, p properties.Properties) processor.Report {
			Expect(p).To(HaveKeyWithValue("k8s.bindings.db.type", "MySQL"))
			return processor.Report{Kind: "First"}
		})

		pipeline.Builder().WithFlattening("k8s.bindings").WithProcessors(p1).Build().Process(bindings, props)

		Expect(props).To(Equal(properties.Properties{
			"k8s.bindings.db.type":     "MySQL",
			"k8s.bindings.db.provider": "bitnami",
			"k8s.bindings.db.username": "u",
		}))
	})

	It("should report every processor run to the recorder", func() {
		p1 := defProcessor("MySQL")
		p1.EXPECT().Process(gomock.Any(), gomock.Any()).Return(processor.Report{Kind: "MySQL", Bindings: 1})
		p2 := defProcessor("Kafka")
		p2.EXPECT().Process(gomock.Any(), gomock.Any()).Return(processor.Report{Kind: "Kafka", Disabled: true})

		reg := prometheus.NewRegistry()
		recorder, err := metrics.NewRecorder(reg)
		Expect(err).NotTo(HaveOccurred())

		pipeline.Builder().WithRecorder(recorder).WithProcessors(p1, p2).Build().Process(bindings, props)

		count, err := testutil.GatherAndCount(reg,
			"service_binding_properties_bindings_processed_total",
			"service_binding_properties_processors_disabled_total")
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(2))
	})

	It("should treat missing bindings as empty", func() {
		p := pipeline.Builder().WithProcessors(processor.Defaults(nil, probe.None)...).Build()
		reports := p.Process(nil, props)
		Expect(props).To(BeEmpty())
		Expect(reports).To(HaveLen(len(processor.Defaults(nil, nil))))
	})

	Context("with the default processors", func() {
		var defaults *pipeline.Pipeline

		BeforeEach(func() {
			v := viper.New()
			v.Set("bindings.kafka.enabled", false)
			defaults = pipeline.Builder().WithProcessors(processor.Defaults(guard.New(v), probe.None)...).Build()
		})

		It("should map every enabled kind", func() {
			bs, err := binding.NewBindings(
				binding.New("db", "MySQL", "", map[string]string{"host": "h", "port": "5432", "database": "d", "username": "u", "password": "p"}),
				binding.New("kafka", "Kafka", "", map[string]string{"bootstrap-servers": "k:9092"}),
				binding.New("cache", "Redis", "", map[string]string{"host": "r"}),
			)
			Expect(err).NotTo(HaveOccurred())

			reports := defaults.Process(bs, props)

			Expect(props).To(HaveKeyWithValue("spring.datasource.url", "jdbc:mysql://h:5432/d"))
			Expect(props).To(HaveKeyWithValue("spring.datasource.username", "u"))
			Expect(props).To(HaveKeyWithValue("spring.datasource.password", "p"))
			Expect(props).To(HaveKeyWithValue("spring.redis.host", "r"))
			Expect(props).NotTo(HaveKey("spring.kafka.bootstrap-servers"))
			Expect(reports).To(ContainElement(processor.Report{Kind: "Kafka", Disabled: true}))
		})

		It("should produce identical output on repeated passes", func() {
			bs, err := binding.NewBindings(binding.New("db", "PostgreSQL", "", map[string]string{"host": "h", "port": "5432", "database": "d"}))
			Expect(err).NotTo(HaveOccurred())

			first, second := properties.Properties{}, properties.Properties{}
			defaults.Process(bs, first)
			defaults.Process(bs, second)
			Expect(first).To(Equal(second))
		})
	})
})
