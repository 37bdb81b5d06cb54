// Package instrument provides objfs.Content decorators that add structured
// logging and Prometheus metrics around remote calls.
//
// The decorators change nothing about call semantics: no retry, no
// batching, no caching. They only observe.
package instrument

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	objfs "github.com/Jumpaku/go-objfs"
)

// WithLogging wraps content so that every remote call is logged: successes
// at debug level, failures at error level.
func WithLogging(content objfs.Content, log *zap.Logger) objfs.Content {
	return &loggingContent{inner: content, log: log}
}

type loggingContent struct {
	inner objfs.Content
	log   *zap.Logger
}

func (c *loggingContent) Properties(id objfs.ObjectID, keys []objfs.PropertyKey) (objfs.PropertyBag, error) {
	start := time.Now()
	bag, err := c.inner.Properties(id, keys)
	if err != nil {
		c.log.Error("property fetch failed",
			zap.String("object_id", string(id)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, err
	}
	c.log.Debug("fetched properties",
		zap.String("object_id", string(id)),
		zap.Int("keys", len(keys)),
		zap.Duration("elapsed", time.Since(start)))
	return bag, nil
}

func (c *loggingContent) EnumerateChildren(id objfs.ObjectID) (objfs.ChildEnumerator, error) {
	start := time.Now()
	enum, err := c.inner.EnumerateChildren(id)
	if err != nil {
		c.log.Error("enumeration failed to start",
			zap.String("object_id", string(id)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, err
	}
	c.log.Debug("started enumeration", zap.String("object_id", string(id)))
	return &loggingEnumerator{
		inner: enum,
		log:   c.log.With(zap.String("object_id", string(id))),
	}, nil
}

type loggingEnumerator struct {
	inner objfs.ChildEnumerator
	log   *zap.Logger
	count int
}

func (e *loggingEnumerator) Next() (objfs.ObjectID, error) {
	id, err := e.inner.Next()
	switch {
	case err == objfs.Done:
		e.log.Debug("enumeration exhausted", zap.Int("children", e.count))
	case err != nil:
		e.log.Error("enumeration failed to advance", zap.Error(err))
	default:
		e.count++
	}
	return id, err
}

// WithMetrics wraps content so that every remote call is counted and timed
// with Prometheus collectors registered on reg.
func WithMetrics(content objfs.Content, reg prometheus.Registerer) objfs.Content {
	factory := promauto.With(reg)
	return &metricsContent{
		inner: content,
		calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "objfs_remote_calls_total",
				Help: "Total number of remote calls issued",
			},
			[]string{"op", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "objfs_remote_call_duration_seconds",
				Help:    "Remote call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
	}
}

type metricsContent struct {
	inner    objfs.Content
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func (c *metricsContent) observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.calls.WithLabelValues(op, status).Inc()
	c.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (c *metricsContent) Properties(id objfs.ObjectID, keys []objfs.PropertyKey) (objfs.PropertyBag, error) {
	start := time.Now()
	bag, err := c.inner.Properties(id, keys)
	c.observe("properties", start, err)
	return bag, err
}

func (c *metricsContent) EnumerateChildren(id objfs.ObjectID) (objfs.ChildEnumerator, error) {
	start := time.Now()
	enum, err := c.inner.EnumerateChildren(id)
	c.observe("enumerate", start, err)
	if err != nil {
		return nil, err
	}
	return &metricsEnumerator{inner: enum, content: c}, nil
}

type metricsEnumerator struct {
	inner   objfs.ChildEnumerator
	content *metricsContent
}

func (e *metricsEnumerator) Next() (objfs.ObjectID, error) {
	start := time.Now()
	id, err := e.inner.Next()
	if err == objfs.Done {
		// Exhaustion is a normal advance, not a failure.
		e.content.observe("advance", start, nil)
	} else {
		e.content.observe("advance", start, err)
	}
	return id, err
}
