package api

import (
	"github.com/gofiber/fiber/v3"

	"bankingapi/internal/api/account"
	"bankingapi/internal/api/transaction"
	"bankingapi/internal/store"
)

func InitializeRoutes(app *fiber.App, st store.Store) {
	accounts := account.NewService(st)
	transfers := transaction.NewService(st, accounts)

	account.InitializeRoutes(app, accounts)
	transaction.InitializeRoutes(app, transfers)
}
