package reaction

import (
	"github.com/gofiber/fiber/v2"

	"github.com/uzak0209/echo/internal/auth"
	"github.com/uzak0209/echo/internal/errs"
	"github.com/uzak0209/echo/internal/model"
)

func RegisterRoutes(app fiber.Router, svc *Service, requireAccess fiber.Handler) {
	app.Put("/posts/:id/reactions", requireAccess, func(c *fiber.Ctx) error {
		var body struct {
			Kind string `json:"kind"`
		}
		if err := c.BodyParser(&body); err != nil || body.Kind == "" {
			return fiber.NewError(fiber.StatusBadRequest, "kind required")
		}
		kind, err := model.ParseReactionKind(body.Kind)
		if err != nil {
			return fiber.NewError(errs.Status(err), errs.Public(err))
		}
		if err := svc.Add(c.Context(), c.Params("id"), auth.UserID(c), kind); err != nil {
			return fiber.NewError(errs.Status(err), errs.Public(err))
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	app.Delete("/posts/:id/reactions", requireAccess, func(c *fiber.Ctx) error {
		var kind *model.ReactionKind
		if raw := c.Query("kind"); raw != "" {
			parsed, err := model.ParseReactionKind(raw)
			if err != nil {
				return fiber.NewError(errs.Status(err), errs.Public(err))
			}
			kind = &parsed
		}
		if err := svc.Remove(c.Context(), c.Params("id"), auth.UserID(c), kind); err != nil {
			return fiber.NewError(errs.Status(err), errs.Public(err))
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	app.Get("/posts/:id/reactions", func(c *fiber.Ctx) error {
		counts, err := svc.CountsByPost(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(errs.Status(err), errs.Public(err))
		}
		return c.JSON(counts)
	})

	app.Get("/me/latest-reaction", requireAccess, func(c *fiber.Ctx) error {
		kind, err := svc.LatestForOwner(c.Context(), auth.UserID(c))
		if err != nil {
			return fiber.NewError(errs.Status(err), errs.Public(err))
		}
		return c.JSON(fiber.Map{"kind": kind})
	})

	app.Get("/me/expression", requireAccess, func(c *fiber.Ctx) error {
		state, err := svc.ExpressionState(c.Context(), auth.UserID(c))
		if err != nil {
			return fiber.NewError(errs.Status(err), errs.Public(err))
		}
		return c.JSON(state)
	})
}
