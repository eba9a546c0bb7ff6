package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shop_agenda",
			Name:      "bookings_created_total",
			Help:      "Count of bookings admitted, by initial status.",
		},
		[]string{"status"},
	)

	bookingConflict = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shop_agenda",
			Name:      "booking_conflicts_total",
			Help:      "Count of booking attempts rejected because the slot was taken.",
		},
	)

	bookingTransition = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shop_agenda",
			Name:      "booking_transitions_total",
			Help:      "Count of booking status transitions, by action.",
		},
		[]string{"action"},
	)

	availabilityRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shop_agenda",
			Name:      "availability_requests_total",
			Help:      "Count of availability queries served.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			bookingCreated,
			bookingConflict,
			bookingTransition,
			availabilityRequests,
		)
	})
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncBookingConflict() {
	bookingConflict.Inc()
}

func IncBookingTransition(action string) {
	bookingTransition.WithLabelValues(action).Inc()
}

func IncAvailabilityRequest() {
	availabilityRequests.Inc()
}
