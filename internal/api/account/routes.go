package account

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

func InitializeRoutes(app *fiber.App, svc *Service) {
	ctx := context.Background()
	app.Post("/accounts", CreateAccountHandler(ctx, svc))
	app.Get("/accounts", GetAccountsHandler(ctx, svc))
	app.Get("/accounts/:id/balance", GetBalanceHandler(ctx, svc))
}
