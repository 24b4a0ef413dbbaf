package account

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"bankingapi/internal/helper"
)

func CreateAccountHandler(ctx context.Context, svc *Service) fiber.Handler {
	return func(c fiber.Ctx) error {
		// Parse create account schema
		var req = CreateAccountSchema{}
		if err := c.Bind().Body(&req); err != nil {
			return fiber.ErrBadRequest
		}

		created, err := svc.Create(ctx, req.Balance)
		if err != nil {
			if errors.Is(err, ErrInvalidBalance) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			slog.Error("Account creation failed", "error", err)
			return err
		}

		return c.JSON(CreateAccountResponseSchema{
			Id:      created.Id,
			Balance: created.Balance,
		})
	}
}

func GetBalanceHandler(ctx context.Context, svc *Service) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.ErrBadRequest
		}

		balance, err := svc.Balance(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			slog.Error("Balance lookup failed", "account", id, "error", err)
			return err
		}

		return c.JSON(balance)
	}
}

func GetAccountsHandler(ctx context.Context, svc *Service) fiber.Handler {
	return func(c fiber.Ctx) error {
		pagination := helper.GetPagination[AccountListItemSchema](c)

		accounts, total, err := svc.List(ctx, pagination.Page, pagination.Size)
		if err != nil {
			slog.Error("Account listing failed", "error", err)
			return err
		}
		pagination.Total = &total

		for _, a := range accounts {
			pagination.Items = append(pagination.Items, AccountListItemSchema{
				Id:      a.Id,
				Balance: a.Balance,
				Version: a.Version,
			})
		}

		return c.JSON(pagination)
	}
}
