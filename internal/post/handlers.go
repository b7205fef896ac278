package post

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/uzak0209/echo/internal/auth"
	"github.com/uzak0209/echo/internal/errs"
)

type createRequest struct {
	Content  string  `json:"content"`
	ImageURL *string `json:"image_url"`
}

func RegisterRoutes(r fiber.Router, svc *Service, defaultTimelineLimit int, requireAccess fiber.Handler) {
	r.Post("/", requireAccess, func(c *fiber.Ctx) error {
		var req createRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		created, err := svc.Create(c.Context(), auth.UserID(c), req.Content, req.ImageURL)
		if err != nil {
			return fiber.NewError(errs.Status(err), errs.Public(err))
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Get("/timeline", requireAccess, func(c *fiber.Ctx) error {
		limit := defaultTimelineLimit
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "limit must be a positive integer")
			}
			limit = parsed
		}
		posts, err := svc.Timeline(c.Context(), auth.UserID(c), limit)
		if err != nil {
			return fiber.NewError(errs.Status(err), errs.Public(err))
		}
		return c.JSON(posts)
	})

	r.Get("/mine", requireAccess, func(c *fiber.Ctx) error {
		posts, err := svc.MyPosts(c.Context(), auth.UserID(c))
		if err != nil {
			return fiber.NewError(errs.Status(err), errs.Public(err))
		}
		return c.JSON(posts)
	})

	r.Post("/:id/view", requireAccess, func(c *fiber.Ctx) error {
		viewed, err := svc.RegisterView(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(errs.Status(err), errs.Public(err))
		}
		return c.JSON(fiber.Map{"viewed": viewed})
	})
}
