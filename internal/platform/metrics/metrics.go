// Package metrics exposes Prometheus counters for the booking engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReservationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spa_reservations_created_total",
		Help: "Total number of reservations created.",
	})

	ReservationsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spa_reservations_cancelled_total",
		Help: "Total number of reservations cancelled.",
	})

	BookingConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spa_booking_conflicts_total",
		Help: "Booking attempts rejected by a validation conflict, by kind.",
	}, []string{"kind"})

	SlotQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spa_slot_queries_total",
		Help: "Total number of availability slot queries served.",
	})

	NoShowsMarked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spa_no_show_candidates_total",
		Help: "Overdue confirmed reservations flagged by the background sweep.",
	})
)
