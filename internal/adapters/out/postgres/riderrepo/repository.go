package riderrepo

import (
	"context"
	"errors"

	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/rider"
	"campusfood/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRiderRepository implements RiderRepository using GORM.
type GormRiderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRiderRepository creates a new GORM rider profile repository.
func NewGormRiderRepository(db *gorm.DB, tracker aggregateTracker) *GormRiderRepository {
	return &GormRiderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new rider profile to the database.
func (r *GormRiderRepository) Add(ctx context.Context, profile *rider.RiderProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	dto := fromDomain(profile)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(profile.UserID(), profile)
	return nil
}

// Update saves an existing rider profile to the database.
func (r *GormRiderRepository) Update(ctx context.Context, profile *rider.RiderProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	dto := fromDomain(profile)
	result := r.db.WithContext(ctx).Model(&RiderProfileDTO{}).
		Where("user_id = ?", dto.UserID).
		Select("TotalDeliveries", "Rating", "RatingCount").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("rider", profile.UserID().String())
	}

	r.tracker.TrackAggregate(profile.UserID(), profile)
	return nil
}

// Get retrieves a rider profile by the rider's user ID.
func (r *GormRiderRepository) Get(ctx context.Context, userID kernel.UUID) (*rider.RiderProfile, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto RiderProfileDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider", userID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
