package services

import (
	"context"
	"errors"
	"strings"

	"bakery/internal/core/domain/model/user"
	"bakery/internal/core/ports"
	"bakery/internal/pkg/errs"
)

// User-facing messages for the permission rules on user management.
const (
	ModifyLockedUserNotPermitted = "User has been locked and cannot be modified or deleted"
	DeletingSelfNotPermitted     = "You cannot delete your own account"

	// DuplicateUserMessage is shown when an email collides with an
	// existing account.
	DuplicateUserMessage = "There is already a user with that email. " +
		"Please select a unique email for the user."
)

// UserService manages staff accounts. Locked accounts cannot be modified or
// deleted, and no account can delete itself.
type UserService struct {
	crudService[*user.User]
}

// NewUserService creates a UserService backed by the given unit of work
// factory.
func NewUserService(uowFactory ports.UnitOfWorkFactory) (*UserService, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	return &UserService{
		crudService: crudService[*user.User]{
			uowFactory: uowFactory,
			repository: func(uow ports.UnitOfWork) ports.FilterableRepository[*user.User] {
				return uow.UserRepository()
			},
			newEntity: user.New,
		},
	}, nil
}

// Save persists the account after normalizing the email to lower case.
// Locked accounts are rejected, and an email collision surfaces as a
// user-facing conflict message.
func (s *UserService) Save(ctx context.Context, actor *user.User, u *user.User) (*user.User, error) {
	if err := s.throwIfLocked(ctx, u); err != nil {
		return nil, err
	}
	u.SetEmail(strings.ToLower(u.Email()))

	saved, err := s.crudService.Save(ctx, actor, u)
	if errors.Is(err, errs.ErrConflict) {
		return nil, errs.NewConflictErrorWithCause(DuplicateUserMessage, err)
	}
	return saved, err
}

// Delete removes the account. Deleting a locked account or the acting
// user's own account is not permitted.
func (s *UserService) Delete(ctx context.Context, actor *user.User, id int64) error {
	if actor != nil && actor.ID() == id {
		return errs.NewPermissionDeniedError(DeletingSelfNotPermitted)
	}

	target, err := s.Load(ctx, id)
	if err != nil {
		return err
	}
	if target.IsLocked() {
		return errs.NewPermissionDeniedError(ModifyLockedUserNotPermitted)
	}

	return s.crudService.Delete(ctx, actor, id)
}

// FindByEmail retrieves the account with the exact email, normalized to
// lower case.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	uow := s.uowFactory.Create()
	return uow.UserRepository().FindByEmail(ctx, strings.ToLower(email))
}

// throwIfLocked rejects modifications to accounts whose stored record is
// locked. New accounts pass through.
func (s *UserService) throwIfLocked(ctx context.Context, u *user.User) error {
	if u.IsNew() {
		return nil
	}
	stored, err := s.Load(ctx, u.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if stored.IsLocked() {
		return errs.NewPermissionDeniedError(ModifyLockedUserNotPermitted)
	}
	return nil
}
