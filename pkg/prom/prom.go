package prom

import (
	"sync"
	"time"

	xhttp "github.com/pkaveh/loyalty-gateway/pkg/http"
	"github.com/pkaveh/loyalty-gateway/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const (
	SystemAccrual  = "accrual"
	SystemNotifier = "notifier"
)

var (
	registerOnce sync.Once
	namespace    = "loyalty"

	// MetricSystemEnabled gates all recording; Create flips it on.
	MetricSystemEnabled = false

	accrualsTotal   *prometheus.CounterVec
	accrualDuration prometheus.Histogram
	notifierEvents  *prometheus.CounterVec
)

// Create registers the service metrics. host and env become constant
// labels on every series.
func Create(host string, env string, nameSpace string) error {
	if nameSpace != "" {
		namespace = nameSpace
	}

	constLabels := prometheus.Labels{
		"env":      env,
		"instance": host,
	}

	var err error
	registerOnce.Do(func() {
		accrualsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   SystemAccrual,
			Name:        "purchases_total",
			Help:        "Accepted purchase scans, partitioned by reward outcome.",
			ConstLabels: constLabels,
		}, []string{"reward"})

		accrualDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   SystemAccrual,
			Name:        "duration_seconds",
			Help:        "Time spent applying one purchase to the ledger.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		})

		notifierEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   SystemNotifier,
			Name:        "events_total",
			Help:        "Accrual events applied to the live counters.",
			ConstLabels: constLabels,
		}, []string{"reward"})

		for _, c := range []prometheus.Collector{accrualsTotal, accrualDuration, notifierEvents} {
			if e := prometheus.Register(c); e != nil && err == nil {
				err = e
			}
		}

		if err == nil {
			MetricSystemEnabled = true
		}
	})

	return err
}

// ObserveAccrual records one committed purchase.
func ObserveAccrual(d time.Duration, rewardEarned bool) {
	if !MetricSystemEnabled {
		return
	}
	accrualsTotal.WithLabelValues(rewardLabel(rewardEarned)).Inc()
	accrualDuration.Observe(d.Seconds())
}

// IncNotifierEvent records one event applied by the notifier.
func IncNotifierEvent(rewardEarned bool) {
	if !MetricSystemEnabled {
		return
	}
	notifierEvents.WithLabelValues(rewardLabel(rewardEarned)).Inc()
}

func rewardLabel(rewardEarned bool) string {
	if rewardEarned {
		return "earned"
	}
	return "none"
}

// ListenAndServer exposes the metrics endpoint on its own port.
func ListenAndServer(port string, url string) {
	hh := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	s := xhttp.CreateServer()
	s.GET(url, hh)
	logger.Info("[metrics-server] listening...", "url", url)
	if err := s.ListenAndServe(port); err != nil {
		logger.Panic("[metrics-server] http listen error", "error", err)
	}
}
