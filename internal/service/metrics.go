package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/spot-api/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the RED collectors shared by the service decorators.
type Metrics struct {
	reqs *prometheus.CounterVec
	errs *prometheus.CounterVec
	durs *prometheus.HistogramVec
}

// NewMetrics creates the service collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	const namespace = "spot"
	const subsystem = "service"

	m := &Metrics{
		reqs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "call_total",
			Help:      "Number of calls to application services",
		}, []string{"service", "method"}),
		errs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "error_total",
			Help:      "Number of errors returned by application services, by error kind",
		}, []string{"service", "method", "kind"}),
		durs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "duration_seconds",
			Help:      "Duration of application service calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "method"}),
	}

	reg.MustRegister(m.reqs, m.errs, m.durs)
	return m
}

// CallCounter exposes the call counter vector.
func (m *Metrics) CallCounter() *prometheus.CounterVec { return m.reqs }

// ErrorCounter exposes the error counter vector.
func (m *Metrics) ErrorCounter() *prometheus.CounterVec { return m.errs }

// ErrorKind classifies err into a low-cardinality label value.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}

func (m *Metrics) record(service, method string) func(error) error {
	start := time.Now()
	return func(err error) error {
		m.reqs.WithLabelValues(service, method).Inc()
		if err != nil {
			m.errs.WithLabelValues(service, method, ErrorKind(err)).Inc()
		}
		m.durs.WithLabelValues(service, method).Observe(time.Since(start).Seconds())
		return err
	}
}

type placeServiceMetrics struct {
	m    *Metrics
	next PlaceService
}

// NewPlaceServiceMetrics decorates next with call metrics.
func NewPlaceServiceMetrics(next PlaceService, m *Metrics) PlaceService {
	return &placeServiceMetrics{m: m, next: next}
}

func (mw *placeServiceMetrics) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	rec := mw.m.record("place", "search")
	res, err := mw.next.Search(ctx, q)
	return res, rec(err)
}

func (mw *placeServiceMetrics) GetDetail(ctx context.Context, placeID, requesterID uuid.UUID) (*PlaceDetail, error) {
	rec := mw.m.record("place", "get_detail")
	res, err := mw.next.GetDetail(ctx, placeID, requesterID)
	return res, rec(err)
}

type reviewServiceMetrics struct {
	m    *Metrics
	next ReviewService
}

// NewReviewServiceMetrics decorates next with call metrics.
func NewReviewServiceMetrics(next ReviewService, m *Metrics) ReviewService {
	return &reviewServiceMetrics{m: m, next: next}
}

func (mw *reviewServiceMetrics) SubmitReview(
	ctx context.Context,
	userID uuid.UUID,
	in SubmitReviewInput,
) (*SubmitReviewResult, error) {
	rec := mw.m.record("review", "submit")
	res, err := mw.next.SubmitReview(ctx, userID, in)
	return res, rec(err)
}
