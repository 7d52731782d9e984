package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "javadocs"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg             *prom.Registry
	requestDuration *prom.HistogramVec
	topicViews      *prom.CounterVec
	topicNotFound   prom.Counter
	navigations     *prom.CounterVec
	liveViews       prom.Gauge
	contentReloads  *prom.CounterVec
	topics          prom.Gauge
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder constructs the metrics and registers them, with the
// Go runtime and process collectors, on reg. A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		requestDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests by route pattern and status",
			Buckets:   prom.DefBuckets,
		}, []string{"route", "status"}),
		topicViews: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "topic_views_total",
			Help:      "Rendered topic pages by category",
		}, []string{"category"}),
		topicNotFound: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "topic_not_found_total",
			Help:      "Requests for unknown topic slugs",
		}),
		navigations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "navigations_total",
			Help:      "Navigation state route changes by source",
		}, []string{"source"}),
		liveViews: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "live_views",
			Help:      "Open live navigation connections",
		}),
		contentReloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "content_reloads_total",
			Help:      "Content reloads by result",
		}, []string{"result"}),
		topics: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "topics",
			Help:      "Topics in the served dataset",
		}),
	}
	reg.MustRegister(
		pr.requestDuration, pr.topicViews, pr.topicNotFound, pr.navigations,
		pr.liveViews, pr.contentReloads, pr.topics,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return pr
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (p *PrometheusRecorder) ObserveRequest(route string, status int, d time.Duration) {
	if p == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	p.requestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncTopicView(category string) {
	if p == nil {
		return
	}
	if category == "" {
		category = "none"
	}
	p.topicViews.WithLabelValues(category).Inc()
}

func (p *PrometheusRecorder) IncTopicNotFound() {
	if p == nil {
		return
	}
	p.topicNotFound.Inc()
}

func (p *PrometheusRecorder) IncNavigation(source NavigationSource) {
	if p == nil {
		return
	}
	p.navigations.WithLabelValues(string(source)).Inc()
}

func (p *PrometheusRecorder) AddLiveViews(delta int) {
	if p == nil {
		return
	}
	p.liveViews.Add(float64(delta))
}

func (p *PrometheusRecorder) IncContentReload(result ResultLabel) {
	if p == nil {
		return
	}
	p.contentReloads.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetTopics(n int) {
	if p == nil {
		return
	}
	p.topics.Set(float64(n))
}
