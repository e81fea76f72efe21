// Package riderrepo provides data transfer objects and mapping functions
// for rider profile persistence.
package riderrepo

import (
	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderProfileDTO represents the database structure for persisting rider
// profiles. Keyed by the rider's user ID.
type RiderProfileDTO struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TotalDeliveries int
	Rating          float64
	RatingCount     int
}

// TableName specifies the database table name for rider profiles.
func (RiderProfileDTO) TableName() string {
	return "rider_profiles"
}

// fromDomain converts a rider profile to its database representation.
func fromDomain(profile *rider.RiderProfile) RiderProfileDTO {
	return RiderProfileDTO{
		UserID:          profile.UserID().Bytes(),
		TotalDeliveries: profile.TotalDeliveries(),
		Rating:          profile.Rating(),
		RatingCount:     profile.RatingCount(),
	}
}

// toDomain converts a database DTO to a rider profile using RestoreRiderProfile.
func toDomain(dto RiderProfileDTO) (*rider.RiderProfile, error) {
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	return rider.RestoreRiderProfile(userID, dto.TotalDeliveries, dto.Rating, dto.RatingCount)
}
