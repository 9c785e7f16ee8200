package server

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zalepa/ridership/ridership"
)

type metrics struct {
	files       *prometheus.CounterVec
	batches     prometheus.Counter
	comparisons prometheus.Counter
	exports     *prometheus.CounterVec
	ingest      prometheus.Histogram
	stored      prometheus.GaugeFunc
}

func newMetrics(reg prometheus.Registerer, store *batchStore) *metrics {
	m := &metrics{
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ridership",
			Name:      "files_total",
			Help:      "Uploaded files by ingestion outcome.",
		}, []string{"outcome"}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ridership",
			Name:      "batches_total",
			Help:      "Upload batches received.",
		}),
		comparisons: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ridership",
			Name:      "comparisons_total",
			Help:      "Comparison tables computed.",
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ridership",
			Name:      "exports_total",
			Help:      "Exports rendered by format.",
		}, []string{"format"}),
		ingest: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ridership",
			Name:      "ingest_duration_seconds",
			Help:      "Time to decode, parse and merge one batch.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		stored: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "ridership",
			Name:      "batches_stored",
			Help:      "Batches currently held in memory.",
		}, func() float64 { return float64(store.len()) }),
	}
	reg.MustRegister(m.files, m.batches, m.comparisons, m.exports, m.ingest, m.stored)
	return m
}

// outcome classifies a file-level ingestion error for the files_total label.
func outcome(err error) string {
	var (
		de *ridership.DecodeError
		pe *ridership.ParseError
		ee *ridership.EmptyDatasetError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &de):
		return "decode_error"
	case errors.As(err, &pe):
		return "parse_error"
	case errors.As(err, &ee):
		return "empty"
	}
	return "error"
}
