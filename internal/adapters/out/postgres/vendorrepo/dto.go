// Package vendorrepo provides data transfer objects and mapping functions
// for vendor persistence.
package vendorrepo

import (
	"campusfood/internal/core/domain/model/kernel"
	"campusfood/internal/core/domain/model/vendor"

	"github.com/google/uuid"
)

// VendorDTO represents the database structure for persisting vendors.
type VendorDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index"`
	Name        string
	Location    string
	IsActive    bool
	Rating      float64
	RatingCount int
}

// TableName specifies the database table name for vendor entities.
func (VendorDTO) TableName() string {
	return "vendors"
}

// fromDomain converts a vendor entity to its database representation.
func fromDomain(entity *vendor.Vendor) VendorDTO {
	return VendorDTO{
		ID:          entity.ID().Bytes(),
		OwnerID:     entity.OwnerID().Bytes(),
		Name:        entity.Name(),
		Location:    entity.Location(),
		IsActive:    entity.IsActive(),
		Rating:      entity.Rating(),
		RatingCount: entity.RatingCount(),
	}
}

// toDomain converts a database DTO to a vendor entity using RestoreVendor.
func toDomain(dto VendorDTO) (*vendor.Vendor, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return vendor.RestoreVendor(id, ownerID, dto.Name, dto.Location, dto.IsActive, dto.Rating, dto.RatingCount)
}
