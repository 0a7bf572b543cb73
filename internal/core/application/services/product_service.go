package services

import (
	"context"
	"errors"

	"bakery/internal/core/domain/model/product"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"
)

// DuplicateProductMessage is shown when a product name collides with an
// existing one.
const DuplicateProductMessage = "There is already a product with that name. " +
	"Please select a unique name for the product."

// ProductService manages the product catalog.
type ProductService struct {
	crudService[*product.Product]
}

// NewProductService creates a ProductService backed by the given unit of
// work factory.
func NewProductService(uowFactory ports.UnitOfWorkFactory) (*ProductService, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	return &ProductService{
		crudService: crudService[*product.Product]{
			uowFactory: uowFactory,
			repository: func(uow ports.UnitOfWork) ports.FilterableRepository[*product.Product] {
				return uow.ProductRepository()
			},
			newEntity: product.New,
		},
	}, nil
}

// Save persists the product, translating a name collision into a
// user-facing conflict message.
func (s *ProductService) Save(ctx context.Context, actor *user.User, p *product.Product) (*product.Product, error) {
	saved, err := s.crudService.Save(ctx, actor, p)
	if errors.Is(err, errs.ErrConflict) {
		return nil, errs.NewConflictErrorWithCause(DuplicateProductMessage, err)
	}
	return saved, err
}
