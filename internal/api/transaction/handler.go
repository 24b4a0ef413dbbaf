package transaction

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"bankingapi/internal/api/account"
	"bankingapi/internal/helper"
)

func CreateTransactionHandler(ctx context.Context, svc *Service) fiber.Handler {
	return func(c fiber.Ctx) error {
		// Parse create transaction schema
		var req = CreateTransactionSchema{}
		if err := c.Bind().Body(&req); err != nil {
			return fiber.ErrBadRequest
		}
		if err := helper.ValidateInput(&req); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		created, err := svc.Create(ctx, *req.Amount, *req.From, *req.To)
		if err != nil {
			return transferError(c, err)
		}

		return c.JSON(created)
	}
}

// transferError maps the closed error set to client-visible outcomes:
// invalid requests to 400, an exhausted retry budget to 409, everything
// unclassified to Fiber's 500 handling.
func transferError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, account.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, account.ErrNotFound),
		errors.Is(err, account.ErrInvalidBalance):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	slog.Error("Transfer failed", "error", err)
	return err
}

func GetTransactionHandler(ctx context.Context, svc *Service) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.ErrBadRequest
		}

		t, err := svc.Get(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			return err
		}

		return c.JSON(t)
	}
}

func GetHistoryHandler(ctx context.Context, svc *Service) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.ErrBadRequest
		}

		history, err := svc.History(ctx, id)
		if err != nil {
			if errors.Is(err, account.ErrNotFound) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": err.Error(),
				})
			}
			slog.Error("History lookup failed", "account", id, "error", err)
			return err
		}

		return c.JSON(fiber.Map{
			"transactions": history,
		})
	}
}
