package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersRegistered prometheus.Counter
	Logins          prometheus.Counter
	ContactsCreated prometheus.Counter
	ContactsUpdated prometheus.Counter
	ContactsDeleted prometheus.Counter
	RequestLatency  *prometheus.HistogramVec
}

// New creates all metrics and registers them on the given registry. Using an
// injected registry (rather than promauto's default) keeps tests free of
// duplicate-registration panics.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		UsersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contacthub_users_registered_total",
			Help: "Total number of users registered.",
		}),
		Logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contacthub_logins_total",
			Help: "Total number of successful logins.",
		}),
		ContactsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contacthub_contacts_created_total",
			Help: "Total number of contacts created.",
		}),
		ContactsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contacthub_contacts_updated_total",
			Help: "Total number of contacts updated.",
		}),
		ContactsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contacthub_contacts_deleted_total",
			Help: "Total number of contacts deleted.",
		}),
		RequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "contacthub_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
	reg.MustRegister(
		m.UsersRegistered,
		m.Logins,
		m.ContactsCreated,
		m.ContactsUpdated,
		m.ContactsDeleted,
		m.RequestLatency,
	)
	return m
}
