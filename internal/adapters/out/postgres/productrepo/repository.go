package productrepo

import (
	"context"
	"errors"

	"bakery/internal/core/domain/model/product"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID retrieves a product by ID.
func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*product.Product, error) {
	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id)
		}
		return nil, err
	}
	return ToDomain(dto), nil
}

// Save creates the product when it is new, otherwise updates it guarded by
// the stored version.
func (r *GormProductRepository) Save(ctx context.Context, p *product.Product) (*product.Product, error) {
	dto := fromDomain(p)
	db := r.db.WithContext(ctx)

	if p.IsNew() {
		dto.Version = 0
		if err := db.Create(&dto).Error; err != nil {
			return nil, translateSaveError(err)
		}
		return ToDomain(dto), nil
	}

	next := dto
	next.Version = dto.Version + 1
	result := db.Model(&ProductDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"version": next.Version,
			"name":    next.Name,
			"price":   next.Price,
		})
	if result.Error != nil {
		return nil, translateSaveError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewConcurrentModificationError("product", dto.ID, dto.Version)
	}
	return ToDomain(next), nil
}

// Delete removes a product by ID.
func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&ProductDTO{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", id)
	}
	return nil
}

// Count returns the total number of products.
func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ProductDTO{}).Count(&count).Error
	return count, err
}

// FindPage returns one page of products ordered by name.
func (r *GormProductRepository) FindPage(ctx context.Context, page ports.Page) ([]*product.Product, error) {
	return r.find(r.db.WithContext(ctx), page)
}

// FindAnyMatching returns a page of products whose name contains the filter
// text, case-insensitively.
func (r *GormProductRepository) FindAnyMatching(ctx context.Context, filter string, page ports.Page) ([]*product.Product, error) {
	db := r.db.WithContext(ctx).Where("name ILIKE ?", contains(filter))
	return r.find(db, page)
}

// CountAnyMatching counts under the same rule as FindAnyMatching.
func (r *GormProductRepository) CountAnyMatching(ctx context.Context, filter string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("name ILIKE ?", contains(filter)).
		Count(&count).Error
	return count, err
}

func (r *GormProductRepository) find(db *gorm.DB, page ports.Page) ([]*product.Product, error) {
	var dtos []ProductDTO
	err := db.Model(&ProductDTO{}).
		Order("name").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	products := make([]*product.Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, ToDomain(dto))
	}
	return products, nil
}

func translateSaveError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictErrorWithCause("product name already exists", err)
	}
	return err
}

func contains(filter string) string {
	return "%" + filter + "%"
}
