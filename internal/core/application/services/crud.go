package services

import (
	"context"

	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/ports"
)

// validatable is the domain-entity side of the CRUD contract: every managed
// entity checks its own field constraints.
type validatable interface {
	Validate() error
}

// CrudService is the application contract shared by the simple catalog
// entities. The acting user is threaded through mutations so that concrete
// services can enforce per-entity permission rules.
type CrudService[T validatable] interface {
	// Load retrieves an entity, failing with ObjectNotFoundError when absent.
	Load(ctx context.Context, id int64) (T, error)

	// Save validates and persists the entity inside one transaction,
	// returning it with refreshed id and version.
	Save(ctx context.Context, actor *user.User, entity T) (T, error)

	// Delete removes the entity inside one transaction.
	Delete(ctx context.Context, actor *user.User, id int64) error

	// Count returns the total number of entities.
	Count(ctx context.Context) (int64, error)

	// CreateNew returns a fresh unsaved entity.
	CreateNew(actor *user.User) T
}

// FilterableCrudService adds the case-insensitive "contains" search to the
// CRUD contract.
type FilterableCrudService[T validatable] interface {
	CrudService[T]

	// FindAnyMatching returns a page of entities matching the filter. An
	// empty filter matches everything.
	FindAnyMatching(ctx context.Context, filter string, page ports.Page) ([]T, error)

	// CountAnyMatching counts under the same rule as FindAnyMatching.
	CountAnyMatching(ctx context.Context, filter string) (int64, error)
}

// crudService is the shared implementation behind the concrete catalog
// services. Each call creates its own unit of work; mutations run inside a
// transaction, reads go straight to the database.
type crudService[T validatable] struct {
	uowFactory ports.UnitOfWorkFactory
	repository func(ports.UnitOfWork) ports.FilterableRepository[T]
	newEntity  func() T
}

func (s *crudService[T]) Load(ctx context.Context, id int64) (T, error) {
	uow := s.uowFactory.Create()
	return s.repository(uow).FindByID(ctx, id)
}

func (s *crudService[T]) Save(ctx context.Context, actor *user.User, entity T) (T, error) {
	var zero T
	if err := entity.Validate(); err != nil {
		return zero, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return zero, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	saved, err := s.repository(uow).Save(ctx, entity)
	if err != nil {
		return zero, err
	}
	if err := uow.Commit(ctx); err != nil {
		return zero, err
	}
	return saved, nil
}

func (s *crudService[T]) Delete(ctx context.Context, actor *user.User, id int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := s.repository(uow).Delete(ctx, id); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (s *crudService[T]) Count(ctx context.Context) (int64, error) {
	uow := s.uowFactory.Create()
	return s.repository(uow).Count(ctx)
}

func (s *crudService[T]) CreateNew(actor *user.User) T {
	return s.newEntity()
}

func (s *crudService[T]) FindAnyMatching(ctx context.Context, filter string, page ports.Page) ([]T, error) {
	uow := s.uowFactory.Create()
	if filter == "" {
		return s.repository(uow).FindPage(ctx, page)
	}
	return s.repository(uow).FindAnyMatching(ctx, filter, page)
}

func (s *crudService[T]) CountAnyMatching(ctx context.Context, filter string) (int64, error) {
	uow := s.uowFactory.Create()
	if filter == "" {
		return s.repository(uow).Count(ctx)
	}
	return s.repository(uow).CountAnyMatching(ctx, filter)
}
