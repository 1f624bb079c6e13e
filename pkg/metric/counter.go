// Package metric exposes the Prometheus counters of the block service.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// RenderTotalName counts block renders by outcome.
	RenderTotalName = "currentmenu_render_total"

	// OutcomeLabel is the label of RenderTotalName.
	OutcomeLabel = "outcome"
)

type IncrementalCounter interface {
	Increment(val ...string)
}

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// NewCounterWithRegistry creates a counter vector and registers it with reg.
// It panics if a counter with the same name is already registered.
func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// NewRenderCounter registers the render outcome counter with reg.
func NewRenderCounter(reg prometheus.Registerer) *Counter {
	return NewCounterWithRegistry(reg, RenderTotalName, "Number of current menu block renders by outcome.", OutcomeLabel)
}

// GetHandlerForRegistry returns an HTTP handler for serving Prometheus metrics from a custom registry.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
