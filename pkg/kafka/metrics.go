package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ProducerMetrics counts publish outcomes per topic.
type ProducerMetrics struct {
	published *prometheus.CounterVec
	failed    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewProducerMetrics creates the producer collectors and registers them with reg.
func NewProducerMetrics(reg prometheus.Registerer) *ProducerMetrics {
	factory := promauto.With(reg)
	return &ProducerMetrics{
		published: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kafka_producer_messages_published_total",
			Help: "Total number of Kafka messages written successfully",
		}, []string{"topic", "event_type"}),
		failed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kafka_producer_messages_failed_total",
			Help: "Total number of Kafka messages that could not be written",
		}, []string{"topic", "event_type"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kafka_producer_write_duration_seconds",
			Help:    "Duration of Kafka writes in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"topic"}),
	}
}

func (m *ProducerMetrics) observe(topic, eventType string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(topic).Observe(seconds)
	if err != nil {
		m.failed.WithLabelValues(topic, eventType).Inc()
		return
	}
	m.published.WithLabelValues(topic, eventType).Inc()
}
