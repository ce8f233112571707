package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Write Queue Metrics
var (
	QueueTasks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameQueueTasks,
			Help:      HelpTextQueueTasks,
		},
		[]string{LabelStatus},
	)

	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameQueueDepth,
			Help:      HelpTextQueueDepth,
		},
	)
)

// Record Metrics
var (
	RecordsSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameRecordsSaved,
			Help:      HelpTextRecordsSaved,
		},
		[]string{LabelKind},
	)

	RecordsPurged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameRecordsPurged,
			Help:      HelpTextRecordsPurged,
		},
		[]string{LabelKind},
	)

	RecordsRestored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameRecordsRestored,
			Help:      HelpTextRecordsRestored,
		},
		[]string{LabelKind},
	)
)

// View Metrics
var (
	ViewSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameViewSessions,
			Help:      HelpTextViewSessions,
		},
	)

	ViewPushes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameViewPushes,
			Help:      HelpTextViewPushes,
		},
		[]string{LabelMode},
	)
)
