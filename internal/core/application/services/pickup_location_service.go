package services

import (
	"context"
	"errors"

	"bakery/internal/core/domain/model/pickup"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"
)

// DuplicateLocationMessage is shown when a pickup location name collides
// with an existing one.
const DuplicateLocationMessage = "There is already a pickup location with that name. " +
	"Please select a unique name for the location."

// PickupLocationService manages the places an order can be picked up from.
type PickupLocationService struct {
	crudService[*pickup.Location]
}

// NewPickupLocationService creates a PickupLocationService backed by the
// given unit of work factory.
func NewPickupLocationService(uowFactory ports.UnitOfWorkFactory) (*PickupLocationService, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	return &PickupLocationService{
		crudService: crudService[*pickup.Location]{
			uowFactory: uowFactory,
			repository: func(uow ports.UnitOfWork) ports.FilterableRepository[*pickup.Location] {
				return uow.PickupLocationRepository()
			},
			newEntity: pickup.New,
		},
	}, nil
}

// Save persists the location. A name collision surfaces as a user-facing
// conflict message.
func (s *PickupLocationService) Save(ctx context.Context, actor *user.User, l *pickup.Location) (*pickup.Location, error) {
	saved, err := s.crudService.Save(ctx, actor, l)
	if errors.Is(err, errs.ErrConflict) {
		return nil, errs.NewConflictErrorWithCause(DuplicateLocationMessage, err)
	}
	return saved, err
}

// GetDefault returns the location preselected for new orders, which is the
// first one on the unfiltered list. Fails with ObjectNotFoundError when no
// locations exist.
func (s *PickupLocationService) GetDefault(ctx context.Context) (*pickup.Location, error) {
	locations, err := s.FindAnyMatching(ctx, "", ports.PageOf(0, 1))
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, errs.NewObjectNotFoundError("pickupLocation", "default")
	}
	return locations[0], nil
}
