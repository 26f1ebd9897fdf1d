package card

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/robsonsvicero/financassimples/internal/domain/shared"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

type Service struct {
	Repository  Repository
	UserChecker *shared.UserCheckerService
}

func NewService(repo Repository, userChecker *shared.UserCheckerService) *Service {
	return &Service{Repository: repo, UserChecker: userChecker}
}

type CreateCardRequest struct {
	UserId     ulid.ULID
	Name       string
	ClosingDay int
	DueDay     int
	Color      string
}

type UpdateCardRequest struct {
	Name       *string
	ClosingDay *int
	DueDay     *int
	Color      *string
}

func (s *Service) CreateCard(ctx context.Context, req *CreateCardRequest) (*CreditCard, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}
	if err := validateCycleDay("closing_day", req.ClosingDay); err != nil {
		return nil, err
	}
	if err := validateCycleDay("due_day", req.DueDay); err != nil {
		return nil, err
	}

	now := time.Now()
	entity := &CreditCard{
		Id:         pkg.GenerateULIDObject(),
		UserId:     req.UserId,
		Name:       name,
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
		Color:      req.Color,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.Repository.Create(ctx, entity); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return entity, nil
}

func (s *Service) UpdateCard(ctx context.Context, cardID, userID ulid.ULID, req *UpdateCardRequest) (*CreditCard, error) {
	entity, err := s.GetCardById(ctx, cardID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, appErrors.NewValidationError("name", "não pode ser vazio")
		}
		entity.Name = name
	}

	if req.ClosingDay != nil {
		if err := validateCycleDay("closing_day", *req.ClosingDay); err != nil {
			return nil, err
		}
		entity.ClosingDay = *req.ClosingDay
	}

	if req.DueDay != nil {
		if err := validateCycleDay("due_day", *req.DueDay); err != nil {
			return nil, err
		}
		entity.DueDay = *req.DueDay
	}

	if req.Color != nil {
		entity.Color = *req.Color
	}

	entity.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, entity); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return entity, nil
}

// DeleteCard remove apenas o cartão. As transações ligadas a ele permanecem e
// passam a ser agregadas sob o marcador de cartão removido.
func (s *Service) DeleteCard(ctx context.Context, cardID, userID ulid.ULID) error {
	if _, err := s.GetCardById(ctx, cardID, userID); err != nil {
		return err
	}
	return s.Repository.Delete(ctx, cardID, userID)
}

func (s *Service) GetCardById(ctx context.Context, cardID, userID ulid.ULID) (*CreditCard, error) {
	entity, err := s.Repository.GetByIdAndUser(ctx, cardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrCardNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return entity, nil
}

func (s *Service) ListCards(ctx context.Context, userID ulid.ULID) ([]*CreditCard, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	cards, err := s.Repository.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return cards, nil
}

func validateCycleDay(field string, day int) error {
	if day < 1 || day > 31 {
		return appErrors.NewValidationError(field, "deve estar entre 1 e 31")
	}
	return nil
}
