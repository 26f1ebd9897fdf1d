package shared

import (
	"context"

	"github.com/oklog/ulid/v2"

	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
)

type UserCheckerService struct {
	userService UserChecker
}

func NewUserCheckerService(userService UserChecker) *UserCheckerService {
	return &UserCheckerService{userService: userService}
}

func (s *UserCheckerService) EnsureUserExists(ctx context.Context, userID ulid.ULID) error {
	if s.userService == nil {
		return appErrors.ErrInternalServer
	}

	if err := s.userService.Exists(ctx, userID); err != nil {
		return appErrors.ErrUserNotFound.WithError(err)
	}

	return nil
}
