package card

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, card *CreditCard) error
	Update(ctx context.Context, card *CreditCard) error
	Delete(ctx context.Context, cardID, userID ulid.ULID) error
	GetByIdAndUser(ctx context.Context, cardID, userID ulid.ULID) (*CreditCard, error)
	ListByUser(ctx context.Context, userID ulid.ULID) ([]*CreditCard, error)
}
