package jobs

import (
	"time"

	"github.com/sirupsen/logrus"

	"reservation-server/repositories"
	"reservation-server/services"
)

// BookingExpiryJob auto-declines pending bookings whose start date has
// passed without an admin decision.
type BookingExpiryJob struct {
	bookings  repositories.BookingStore
	occupancy *services.OccupancyService
	interval  time.Duration
	stopChan  chan bool
}

// NewBookingExpiryJob creates a new booking expiry job
func NewBookingExpiryJob(bookings repositories.BookingStore, occupancy *services.OccupancyService) *BookingExpiryJob {
	return &BookingExpiryJob{
		bookings:  bookings,
		occupancy: occupancy,
		interval:  time.Hour,
		stopChan:  make(chan bool),
	}
}

// Start begins the booking expiry job
func (j *BookingExpiryJob) Start() {
	go j.run()
	logrus.Info("Booking expiry job started")
}

// Stop stops the booking expiry job
func (j *BookingExpiryJob) Stop() {
	j.stopChan <- true
	logrus.Info("Booking expiry job stopped")
}

func (j *BookingExpiryJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.declineStaleBookings()
		case <-j.stopChan:
			return
		}
	}
}

// declineStaleBookings declines pending bookings whose requested start
// date passed. Going through the occupancy service keeps the payment
// and notification side effects consistent with an admin decline.
func (j *BookingExpiryJob) declineStaleBookings() {
	stale, err := j.bookings.ListStalePending(time.Now())
	if err != nil {
		logrus.WithError(err).Error("Failed to check stale bookings")
		return
	}
	if len(stale) == 0 {
		return
	}

	logrus.WithField("count", len(stale)).Info("Declining stale pending bookings")

	for _, booking := range stale {
		if _, err := j.occupancy.DeclineBooking(booking.ID); err != nil {
			logrus.WithError(err).WithField("booking_id", booking.ID).Error("Failed to decline stale booking")
			continue
		}
	}
}
