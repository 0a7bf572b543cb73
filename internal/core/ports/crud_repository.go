package ports

import (
	"context"

	"bakery/internal/core/domain/model/pickup"
	"bakery/internal/core/domain/model/product"
	"bakery/internal/core/domain/model/user"
)

// CrudRepository is the persistence contract shared by every simple entity.
// Save performs a compare-and-swap on the entity version: creating when the
// entity is new, otherwise updating only if the stored version matches, and
// failing with a ConcurrentModificationError on a stale version.
type CrudRepository[T any] interface {
	// FindByID retrieves an entity, failing with ObjectNotFoundError when absent.
	FindByID(ctx context.Context, id int64) (T, error)

	// Save persists the entity and returns it with refreshed id and version.
	// Unique-constraint violations surface as a ConflictError.
	Save(ctx context.Context, entity T) (T, error)

	// Delete removes the entity, failing with ObjectNotFoundError when absent.
	Delete(ctx context.Context, id int64) error

	// Count returns the total number of entities.
	Count(ctx context.Context) (int64, error)

	// FindPage returns one unfiltered page of entities.
	FindPage(ctx context.Context, page Page) ([]T, error)
}

// FilterableRepository adds the case-insensitive "contains" filter over the
// entity's designated searchable field(s). An empty filter behaves like the
// unfiltered variants.
type FilterableRepository[T any] interface {
	CrudRepository[T]

	// FindAnyMatching returns a page of entities whose searchable fields
	// contain the filter text, case-insensitively.
	FindAnyMatching(ctx context.Context, filter string, page Page) ([]T, error)

	// CountAnyMatching counts under the same rule as FindAnyMatching.
	CountAnyMatching(ctx context.Context, filter string) (int64, error)
}

// ProductRepository searches products by name.
type ProductRepository interface {
	FilterableRepository[*product.Product]
}

// UserRepository searches users across email, first name, last name and role.
type UserRepository interface {
	FilterableRepository[*user.User]

	// FindByEmail retrieves an account by its exact email,
	// failing with ObjectNotFoundError when absent.
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// PickupLocationRepository searches pickup locations by name.
type PickupLocationRepository interface {
	FilterableRepository[*pickup.Location]
}
