package transaction

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/robsonsvicero/financassimples/internal/pkg"
)

type ListFilter struct {
	Search string
	Type   Types
}

type Repository interface {
	Create(ctx context.Context, transaction *Transaction) error
	CreateBatch(ctx context.Context, transactions []*Transaction) error
	Update(ctx context.Context, transaction *Transaction) error
	Delete(ctx context.Context, transactionID, userID ulid.ULID) error
	GetByIdAndUser(ctx context.Context, transactionID, userID ulid.ULID) (*Transaction, error)
	ListByUser(ctx context.Context, userID ulid.ULID, filter *ListFilter) ([]*Transaction, error)
	ListPaged(ctx context.Context, userID ulid.ULID, filter *ListFilter, pagination *pkg.PaginationParams) ([]*Transaction, int64, error)

	// Escritas pontuais usadas pelos lotes do motor de faturas: cada registro
	// é gravado individualmente para que uma falha parcial seja reportável.
	SetPaid(ctx context.Context, transactionID, userID ulid.ULID, isPaid bool) error
	SetDueDate(ctx context.Context, transactionID, userID ulid.ULID, dueDate time.Time) error
}
