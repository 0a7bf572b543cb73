package locationrepo

import (
	"context"
	"errors"

	"bakery/internal/core/domain/model/pickup"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLocationRepository implements ports.PickupLocationRepository using GORM.
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GORM pickup location repository.
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID retrieves a pickup location by ID.
func (r *GormLocationRepository) FindByID(ctx context.Context, id int64) (*pickup.Location, error) {
	var dto LocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pickupLocation", id)
		}
		return nil, err
	}
	return ToDomain(dto), nil
}

// Save creates the location when it is new, otherwise updates it guarded by
// the stored version.
func (r *GormLocationRepository) Save(ctx context.Context, l *pickup.Location) (*pickup.Location, error) {
	dto := fromDomain(l)
	db := r.db.WithContext(ctx)

	if l.IsNew() {
		dto.Version = 0
		if err := db.Create(&dto).Error; err != nil {
			return nil, translateSaveError(err)
		}
		return ToDomain(dto), nil
	}

	next := dto
	next.Version = dto.Version + 1
	result := db.Model(&LocationDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"version": next.Version,
			"name":    next.Name,
		})
	if result.Error != nil {
		return nil, translateSaveError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewConcurrentModificationError("pickupLocation", dto.ID, dto.Version)
	}
	return ToDomain(next), nil
}

// Delete removes a pickup location by ID.
func (r *GormLocationRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&LocationDTO{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("pickupLocation", id)
	}
	return nil
}

// Count returns the total number of pickup locations.
func (r *GormLocationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&LocationDTO{}).Count(&count).Error
	return count, err
}

// FindPage returns one page of pickup locations ordered by name.
func (r *GormLocationRepository) FindPage(ctx context.Context, page ports.Page) ([]*pickup.Location, error) {
	return r.find(r.db.WithContext(ctx), page)
}

// FindAnyMatching returns a page of pickup locations whose name contains the
// filter text, case-insensitively.
func (r *GormLocationRepository) FindAnyMatching(ctx context.Context, filter string, page ports.Page) ([]*pickup.Location, error) {
	db := r.db.WithContext(ctx).Where("name ILIKE ?", "%"+filter+"%")
	return r.find(db, page)
}

// CountAnyMatching counts under the same rule as FindAnyMatching.
func (r *GormLocationRepository) CountAnyMatching(ctx context.Context, filter string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&LocationDTO{}).
		Where("name ILIKE ?", "%"+filter+"%").
		Count(&count).Error
	return count, err
}

func (r *GormLocationRepository) find(db *gorm.DB, page ports.Page) ([]*pickup.Location, error) {
	var dtos []LocationDTO
	err := db.Model(&LocationDTO{}).
		Order("name").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	locations := make([]*pickup.Location, 0, len(dtos))
	for _, dto := range dtos {
		locations = append(locations, ToDomain(dto))
	}
	return locations, nil
}

func translateSaveError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictErrorWithCause("pickup location name already exists", err)
	}
	return err
}
