// Package locationrepo persists pickup locations with GORM.
package locationrepo

import (
	"bakery/internal/core/domain/model/pickup"
)

// LocationDTO is the database row behind a pickup location. The name carries
// a unique index so duplicate locations surface as a constraint violation.
type LocationDTO struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	Version int64  `gorm:"not null"`
	Name    string `gorm:"size:255;not null;uniqueIndex"`
}

// TableName overrides GORM's default naming to use "pickup_locations".
func (LocationDTO) TableName() string {
	return "pickup_locations"
}

func fromDomain(l *pickup.Location) LocationDTO {
	return LocationDTO{
		ID:      l.ID(),
		Version: l.Version(),
		Name:    l.Name(),
	}
}

// ToDomain rebuilds the domain entity from its row. Exported because the
// order repository reuses it when loading order pickup locations.
func ToDomain(dto LocationDTO) *pickup.Location {
	return pickup.Restore(dto.ID, dto.Version, dto.Name)
}
