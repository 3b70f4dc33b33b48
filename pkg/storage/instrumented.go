// Copyright © 2018 One Concern

package storage

import (
	"context"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// InstrumentOption configures an instrumented store
type InstrumentOption func(*instrumentedStore)

// WithLogger logs every storage operation at debug level
func WithLogger(l *zap.Logger) InstrumentOption {
	return func(i *instrumentedStore) {
		if l != nil {
			i.logs = l
		}
	}
}

// WithRegisterer counts storage operations and measures their latency.
// A registerer serves a single instrumented store.
func WithRegisterer(reg prometheus.Registerer) InstrumentOption {
	return func(i *instrumentedStore) {
		factory := promauto.With(reg)
		i.operations = factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "revmon",
			Subsystem: "storage",
			Name:      "operations_total",
			Help:      "Storage operations, by operation and outcome.",
		}, []string{"operation", "outcome"})
		i.latency = factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "revmon",
			Subsystem: "storage",
			Name:      "operation_duration_seconds",
			Help:      "Latency of storage operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"})
	}
}

// Instrument decorates a store with logs and metrics
func Instrument(store Store, opts ...InstrumentOption) Store {
	i := &instrumentedStore{
		store: store,
		logs:  zap.NewNop(),
	}
	for _, apply := range opts {
		apply(i)
	}
	i.logs = i.logs.With(zap.Stringer("store", store))
	return i
}

type instrumentedStore struct {
	store      Store
	logs       *zap.Logger
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

func (i *instrumentedStore) observe(operation string, start time.Time, err error, fields ...zap.Field) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		fields = append(fields, zap.Error(err))
	}
	i.logs.Debug("storage "+operation, fields...)
	if i.operations == nil {
		return
	}
	i.operations.WithLabelValues(operation, outcome).Inc()
	i.latency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (i *instrumentedStore) Has(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	has, err := i.store.Has(ctx, key)
	i.observe("has", start, err, zap.String("key", key))
	return has, err
}

func (i *instrumentedStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	start := time.Now()
	rdr, err := i.store.Get(ctx, key)
	i.observe("get", start, err, zap.String("key", key))
	return rdr, err
}

func (i *instrumentedStore) Put(ctx context.Context, key string, rdr io.Reader, exclusive bool) error {
	start := time.Now()
	err := i.store.Put(ctx, key, rdr, exclusive)
	i.observe("put", start, err, zap.String("key", key), zap.Bool("exclusive", exclusive))
	return err
}

func (i *instrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := i.store.Delete(ctx, key)
	i.observe("delete", start, err, zap.String("key", key))
	return err
}

func (i *instrumentedStore) Keys(ctx context.Context) ([]string, error) {
	start := time.Now()
	keys, err := i.store.Keys(ctx)
	i.observe("keys", start, err, zap.Int("count", len(keys)))
	return keys, err
}

func (i *instrumentedStore) Clear(ctx context.Context) error {
	start := time.Now()
	err := i.store.Clear(ctx)
	i.observe("clear", start, err)
	return err
}

func (i *instrumentedStore) String() string {
	return i.store.String()
}
