package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "agrimanage_"

	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	cropMutations *prometheus.CounterVec
	notifications *prometheus.CounterVec
	calculations  *prometheus.CounterVec

	collaboratorRequests *prometheus.CounterVec
	collaboratorLatency  *prometheus.HistogramVec

	exports *prometheus.CounterVec
)

// Init registers the metrics on reg (prometheus.DefaultRegisterer when nil).
// Only the first call has an effect.
func Init(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		cropMutations = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "crop_mutations_total",
				Help: "Record store mutations by operation and result",
			},
			[]string{"op", "result"},
		)
		notifications = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "notifications_total",
				Help: "Notifications pushed by kind",
			},
			[]string{"kind"},
		)
		calculations = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "calculations_total",
				Help: "Fertilizer calculations by result",
			},
			[]string{"result"},
		)
		collaboratorRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "collaborator_requests_total",
				Help: "Weather and market collaborator calls by result",
			},
			[]string{"collaborator", "result"},
		)
		collaboratorLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "collaborator_latency_seconds",
				Help:    "Weather and market collaborator latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"collaborator"},
		)
		exports = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exports_total",
				Help: "Crop exports by format and result",
			},
			[]string{"format", "result"},
		)
		reg.MustRegister(cropMutations, notifications, calculations, collaboratorRequests, collaboratorLatency, exports)
	})
}

// IncCropMutation counts one add/update/remove/import.
func IncCropMutation(op, result string) {
	if cropMutations != nil {
		cropMutations.WithLabelValues(op, orDefault(result, ResultSuccess)).Inc()
	}
}

func IncNotification(kind string) {
	if notifications != nil {
		notifications.WithLabelValues(orDefault(kind, "info")).Inc()
	}
}

func IncCalculation(result string) {
	if calculations != nil {
		calculations.WithLabelValues(orDefault(result, ResultSuccess)).Inc()
	}
}

// ObserveCollaborator records one weather/market call.
func ObserveCollaborator(name, result string, d time.Duration) {
	if name == "" {
		name = "unknown"
	}
	if collaboratorRequests != nil {
		collaboratorRequests.WithLabelValues(name, orDefault(result, ResultSuccess)).Inc()
	}
	if collaboratorLatency != nil {
		collaboratorLatency.WithLabelValues(name).Observe(d.Seconds())
	}
}

func IncExport(format, result string) {
	if exports != nil {
		exports.WithLabelValues(orDefault(format, "unknown"), orDefault(result, ResultSuccess)).Inc()
	}
}

// Result maps an error to a result label.
func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
