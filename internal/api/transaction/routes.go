package transaction

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

func InitializeRoutes(app *fiber.App, svc *Service) {
	ctx := context.Background()
	app.Post("/transactions", CreateTransactionHandler(ctx, svc))
	app.Get("/transactions/:id", GetTransactionHandler(ctx, svc))
	app.Get("/accounts/:id/transactions", GetHistoryHandler(ctx, svc))
}
