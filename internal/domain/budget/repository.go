package budget

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, budget *Budget) error
	Update(ctx context.Context, budget *Budget) error
	Delete(ctx context.Context, budgetID, userID ulid.ULID) error
	GetByIdAndUser(ctx context.Context, budgetID, userID ulid.ULID) (*Budget, error)
	GetByCategoryAndPeriod(ctx context.Context, userID, categoryID ulid.ULID, year, month int) (*Budget, error)
	ListByUserAndPeriod(ctx context.Context, userID ulid.ULID, year, month int) ([]*Budget, error)
}
