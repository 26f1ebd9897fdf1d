package shared

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type UserChecker interface {
	Exists(ctx context.Context, userID ulid.ULID) error
}

// CategorySeeder quebra o ciclo entre auth e category: o cadastro de um novo
// usuário dispara a criação das categorias padrão sem importar o pacote.
type CategorySeeder interface {
	EnsureDefaults(ctx context.Context, userID ulid.ULID) error
}
