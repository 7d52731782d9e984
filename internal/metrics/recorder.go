// Package metrics records service counters. The Prometheus implementation is
// served on /metrics; NoopRecorder is used when metrics are disabled.
package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultInvalid ResultLabel = "invalid"
	ResultFailed  ResultLabel = "failed"
)

// NavigationSource tells where a navigation came from.
type NavigationSource string

const (
	SourcePage NavigationSource = "page"
	SourceLive NavigationSource = "live"
)

// Recorder defines observability hooks. All methods must be safe to call on
// a nil *PrometheusRecorder.
type Recorder interface {
	ObserveRequest(route string, status int, d time.Duration)
	IncTopicView(category string)
	IncTopicNotFound()
	IncNavigation(source NavigationSource)
	AddLiveViews(delta int)
	IncContentReload(result ResultLabel)
	SetTopics(n int)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveRequest(string, int, time.Duration) {}
func (NoopRecorder) IncTopicView(string)                       {}
func (NoopRecorder) IncTopicNotFound()                         {}
func (NoopRecorder) IncNavigation(NavigationSource)            {}
func (NoopRecorder) AddLiveViews(int)                          {}
func (NoopRecorder) IncContentReload(ResultLabel)              {}
func (NoopRecorder) SetTopics(int)                             {}
