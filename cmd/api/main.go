package main

import (
	appfx "github.com/robsonsvicero/financassimples/internal/fx"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
