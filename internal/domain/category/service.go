package category

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/robsonsvicero/financassimples/internal/domain/shared"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/logger"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

type Service struct {
	Repository  Repository
	UserChecker *shared.UserCheckerService
}

func NewService(repo Repository, userChecker *shared.UserCheckerService) *Service {
	return &Service{Repository: repo, UserChecker: userChecker}
}

type CreateCategoryRequest struct {
	UserId ulid.ULID
	Name   string
	Icon   string
	Color  string
	Kind   Kind
}

func (s *Service) Create(ctx context.Context, req *CreateCategoryRequest) (*Category, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	name := shared.NormalizeName(req.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "é obrigatório")
	}
	kind := req.Kind
	if kind == "" {
		kind = KindExpense
	}
	if !kind.IsValid() {
		return nil, appErrors.NewValidationError("type", "deve ser EXPENSE, INCOME ou BOTH")
	}

	if existing, err := s.Repository.GetByNameAndUser(ctx, name, req.UserId); err == nil && existing != nil {
		return nil, appErrors.ErrConflict.WithDetails(map[string]interface{}{"name": name})
	}

	now := pkg.SetTimestamps()
	entity := &Category{
		Id:        pkg.GenerateULIDObject(),
		UserId:    req.UserId,
		Name:      name,
		Icon:      req.Icon,
		Color:     req.Color,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repository.Create(ctx, entity); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return nil, appErrors.ErrConflict.WithDetails(map[string]interface{}{"name": name})
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	return entity, nil
}

func (s *Service) Update(ctx context.Context, userID, categoryID ulid.ULID, name, icon, color string) (*Category, error) {
	entity, err := s.GetById(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		entity.Name = shared.NormalizeName(name)
	}
	if icon != "" {
		entity.Icon = icon
	}
	if color != "" {
		entity.Color = color
	}
	entity.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, entity); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return nil, appErrors.ErrConflict.WithDetails(map[string]interface{}{"name": entity.Name})
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	return entity, nil
}

func (s *Service) Delete(ctx context.Context, userID, categoryID ulid.ULID) error {
	if _, err := s.GetById(ctx, categoryID, userID); err != nil {
		return err
	}

	if err := s.Repository.Delete(ctx, categoryID, userID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) GetById(ctx context.Context, categoryID, userID ulid.ULID) (*Category, error) {
	entity, err := s.Repository.GetByIdAndUser(ctx, categoryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrCategoryNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return entity, nil
}

func (s *Service) List(ctx context.Context, userID ulid.ULID) ([]*Category, error) {
	categories, err := s.Repository.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return categories, nil
}

// EnsureDefaults cria as categorias padrão para contas que ainda não têm
// nenhuma. Contas com qualquer categoria ficam como estão: o usuário pode ter
// excluído padrões de propósito.
func (s *Service) EnsureDefaults(ctx context.Context, userID ulid.ULID) error {
	count, err := s.Repository.CountByUser(ctx, userID)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}
	if count > 0 {
		return nil
	}

	now := pkg.SetTimestamps()
	defaults := make([]*Category, 0, len(DefaultCategories))
	for _, def := range DefaultCategories {
		defaults = append(defaults, &Category{
			Id:        pkg.GenerateULIDObject(),
			UserId:    userID,
			Name:      def.Name,
			Icon:      def.Icon,
			Color:     def.Color,
			Kind:      def.Kind,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := s.Repository.CreateBatch(ctx, defaults); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	logger.Info().
		Str("user_id", userID.String()).
		Int("count", len(defaults)).
		Msg("Categorias padrão criadas")

	return nil
}
