// Package rider contains the RiderProfile entity: the delivery-side record
// of a user who carries orders. The profile aggregates completed deliveries
// and a running average rating; both are fed by delivery-completion events.
package rider

import (
	"errors"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/pkg/errs"
	"campusfood/internal/pkg/guard"
)

const (
	minRating = 1
	maxRating = 5
)

// ErrRiderProfileIsNotConstructed is returned when using an improperly
// initialized RiderProfile.
var ErrRiderProfileIsNotConstructed = errors.New("RiderProfile must be created via NewRiderProfile or RestoreRiderProfile constructor")

// RiderProfile is keyed by the rider's user ID. It carries the aggregate
// counters shown on the rider dashboard.
type RiderProfile struct {
	// userID is the rider's user account, also the profile identity
	userID kernel.UUID
	// totalDeliveries counts completed deliveries
	totalDeliveries int
	// rating is the running average over reviews, 0 when unrated
	rating float64
	// ratingCount is how many reviews the average is built from
	ratingCount int
	// guard ensures the profile was properly constructed
	guard guard.ConstructorGuard
}

// NewRiderProfile creates an empty profile for a rider user.
func NewRiderProfile(userID kernel.UUID) (*RiderProfile, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	return &RiderProfile{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// RestoreRiderProfile reconstructs a profile from persistent storage.
func RestoreRiderProfile(userID kernel.UUID, totalDeliveries int, rating float64, ratingCount int) (*RiderProfile, error) {
	p, err := NewRiderProfile(userID)
	if err != nil {
		return nil, err
	}

	if totalDeliveries < 0 {
		return nil, errs.NewValueIsInvalidError("totalDeliveries")
	}
	if rating < 0 || rating > maxRating || ratingCount < 0 {
		return nil, errs.NewValueIsOutOfRangeError("rating", rating, 0, maxRating)
	}

	p.totalDeliveries = totalDeliveries
	p.rating = rating
	p.ratingCount = ratingCount
	return p, nil
}

// Validate ensures the profile was created through a constructor.
func (p *RiderProfile) Validate() error {
	if p == nil {
		return ErrRiderProfileIsNotConstructed
	}
	return p.guard.Validate(ErrRiderProfileIsNotConstructed)
}

// UserID returns the rider's user account ID.
func (p *RiderProfile) UserID() kernel.UUID {
	return p.userID
}

// TotalDeliveries returns the completed-delivery counter.
func (p *RiderProfile) TotalDeliveries() int {
	return p.totalDeliveries
}

// Rating returns the running average rating, 0 when unrated.
func (p *RiderProfile) Rating() float64 {
	return p.rating
}

// RatingCount returns how many reviews the average is built from.
func (p *RiderProfile) RatingCount() int {
	return p.ratingCount
}

// RecordDelivery increments the completed-delivery counter.
// Called when an order the rider carries reaches delivered.
func (p *RiderProfile) RecordDelivery() {
	p.totalDeliveries++
}

// RecordRating folds a customer review into the running average.
func (p *RiderProfile) RecordRating(value int) error {
	if value < minRating || value > maxRating {
		return errs.NewValueIsOutOfRangeError("rating", value, minRating, maxRating)
	}

	total := p.rating*float64(p.ratingCount) + float64(value)
	p.ratingCount++
	p.rating = total / float64(p.ratingCount)
	return nil
}
