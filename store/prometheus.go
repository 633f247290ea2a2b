package store

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusConfig is a config of the Prometheus metrics provided by the store.
//
// An instance can be created only by the [Prometheus] function. The zero value is invalid.
type PrometheusConfig struct {
	// Namespace of the metrics.
	Namespace string
	// Subsystem of the metrics.
	Subsystem string
	// Options for the snapshots gauge.
	Snapshots prometheus.GaugeOpts
	// Options for the stored items gauge.
	Items prometheus.GaugeOpts
	// Options for the saved snapshots counter.
	SnapshotsSaved prometheus.CounterOpts
	// Options for the loaded snapshots counter.
	SnapshotsLoaded prometheus.CounterOpts
	// Options for the deleted snapshots counter.
	SnapshotsDeleted prometheus.CounterOpts
	// Options for the save errors counter.
	SaveErrors prometheus.CounterOpts
	// Options for the busy errors counter.
	BusyErrors prometheus.CounterOpts
	// Options for the save duration histogram.
	SaveDuration prometheus.HistogramOpts

	registerer prometheus.Registerer
}

// Prometheus returns a [PrometheusConfig] with the provided registerer. If registerer is nil,
// metrics will not be registered. Many default parameters can be configured by passing
// configuration functions.
func Prometheus(
	registerer prometheus.Registerer,
	configFuncs ...func(c *PrometheusConfig),
) *PrometheusConfig {
	const (
		namespace = "constvec"
		subsystem = "store"
	)

	c := PrometheusConfig{
		registerer: registerer,
		Namespace:  namespace,
		Subsystem:  subsystem,
		Snapshots: prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "snapshots",
			Help:      "Number of snapshots in store",
		},
		Items: prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "items",
			Help:      "Number of items across all snapshots in store",
		},
		SnapshotsSaved: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "snapshots_saved",
			Help:      "Number of saved snapshots",
		},
		SnapshotsLoaded: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "snapshots_loaded",
			Help:      "Number of loaded snapshots",
		},
		SnapshotsDeleted: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "snapshots_deleted",
			Help:      "Number of deleted snapshots",
		},
		SaveErrors: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "save_errors",
			Help:      "Number of errors occurred during saving",
		},
		BusyErrors: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "busy_errors",
			Help:      "Number of operations that found the database busy",
		},
		SaveDuration: prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "save_duration_seconds",
			Help:      "Duration of saving, including encoding",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		},
	}

	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}

	return &c
}

func (c *PrometheusConfig) metrics() *metrics {
	m := metrics{
		snapshots:        prometheus.NewGauge(c.Snapshots),
		items:            prometheus.NewGauge(c.Items),
		snapshotsSaved:   prometheus.NewCounter(c.SnapshotsSaved),
		snapshotsLoaded:  prometheus.NewCounter(c.SnapshotsLoaded),
		snapshotsDeleted: prometheus.NewCounter(c.SnapshotsDeleted),
		saveErrors:       prometheus.NewCounter(c.SaveErrors),
		busyErrors:       prometheus.NewCounter(c.BusyErrors),
		saveDuration:     prometheus.NewHistogram(c.SaveDuration),
	}

	if c.registerer != nil {
		c.registerer.MustRegister(
			m.snapshots,
			m.items,
			m.snapshotsSaved,
			m.snapshotsLoaded,
			m.snapshotsDeleted,
			m.saveErrors,
			m.busyErrors,
			m.saveDuration,
		)
	}

	return &m
}

type metrics struct {
	snapshots        prometheus.Gauge
	items            prometheus.Gauge
	snapshotsSaved   prometheus.Counter
	snapshotsLoaded  prometheus.Counter
	snapshotsDeleted prometheus.Counter
	saveErrors       prometheus.Counter
	busyErrors       prometheus.Counter
	saveDuration     prometheus.Histogram
}
