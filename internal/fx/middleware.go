package fx

import (
	"go.uber.org/fx"

	"github.com/robsonsvicero/financassimples/config"
	"github.com/robsonsvicero/financassimples/internal/domain/user"
	"github.com/robsonsvicero/financassimples/internal/middleware"
)

var MiddlewareModule = fx.Module("middleware",
	fx.Provide(
		newJwtService,
	),
)

func newJwtService(cfg *config.Config, userSvc *user.Service) *middleware.JwtService {
	return middleware.NewJwtService(cfg.JWT, userSvc)
}
