package userrepo

import (
	"context"
	"errors"

	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID retrieves an account by ID.
func (r *GormUserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id)
		}
		return nil, err
	}
	return ToDomain(dto), nil
}

// FindByEmail retrieves an account by its exact email.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", email)
		}
		return nil, err
	}
	return ToDomain(dto), nil
}

// Save creates the account when it is new, otherwise updates it guarded by
// the stored version.
func (r *GormUserRepository) Save(ctx context.Context, u *user.User) (*user.User, error) {
	dto := fromDomain(u)
	db := r.db.WithContext(ctx)

	if u.IsNew() {
		dto.Version = 0
		if err := db.Create(&dto).Error; err != nil {
			return nil, translateSaveError(err)
		}
		return ToDomain(dto), nil
	}

	next := dto
	next.Version = dto.Version + 1
	result := db.Model(&UserDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"version":       next.Version,
			"email":         next.Email,
			"password_hash": next.PasswordHash,
			"first_name":    next.FirstName,
			"last_name":     next.LastName,
			"role":          next.Role,
			"locked":        next.Locked,
		})
	if result.Error != nil {
		return nil, translateSaveError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewConcurrentModificationError("user", dto.ID, dto.Version)
	}
	return ToDomain(next), nil
}

// Delete removes an account by ID.
func (r *GormUserRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&UserDTO{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", id)
	}
	return nil
}

// Count returns the total number of accounts.
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&UserDTO{}).Count(&count).Error
	return count, err
}

// FindPage returns one page of accounts ordered by email.
func (r *GormUserRepository) FindPage(ctx context.Context, page ports.Page) ([]*user.User, error) {
	return r.find(r.db.WithContext(ctx), page)
}

// FindAnyMatching returns a page of accounts whose email, name or role
// contains the filter text, case-insensitively.
func (r *GormUserRepository) FindAnyMatching(ctx context.Context, filter string, page ports.Page) ([]*user.User, error) {
	return r.find(r.filtered(ctx, filter), page)
}

// CountAnyMatching counts under the same rule as FindAnyMatching.
func (r *GormUserRepository) CountAnyMatching(ctx context.Context, filter string) (int64, error) {
	var count int64
	err := r.filtered(ctx, filter).Model(&UserDTO{}).Count(&count).Error
	return count, err
}

func (r *GormUserRepository) filtered(ctx context.Context, filter string) *gorm.DB {
	pattern := "%" + filter + "%"
	return r.db.WithContext(ctx).
		Where("email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ? OR role ILIKE ?",
			pattern, pattern, pattern, pattern)
}

func (r *GormUserRepository) find(db *gorm.DB, page ports.Page) ([]*user.User, error) {
	var dtos []UserDTO
	err := db.Model(&UserDTO{}).
		Order("email").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		users = append(users, ToDomain(dto))
	}
	return users, nil
}

func translateSaveError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictErrorWithCause("user email already exists", err)
	}
	return err
}
