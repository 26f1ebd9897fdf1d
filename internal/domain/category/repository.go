package category

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, category *Category) error
	CreateBatch(ctx context.Context, categories []*Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, categoryID, userID ulid.ULID) error
	GetByIdAndUser(ctx context.Context, categoryID, userID ulid.ULID) (*Category, error)
	GetByNameAndUser(ctx context.Context, name string, userID ulid.ULID) (*Category, error)
	ListByUser(ctx context.Context, userID ulid.ULID) ([]*Category, error)
	CountByUser(ctx context.Context, userID ulid.ULID) (int64, error)
}
