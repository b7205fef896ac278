package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/uzak0209/echo/internal/errs"
)

type signupRequest struct {
	DisplayName string  `json:"display_name"`
	Password    string  `json:"password"`
	AvatarURL   *string `json:"avatar_url"`
}

type loginRequest struct {
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

func RegisterRoutes(r fiber.Router, svc *Service, requireAccess fiber.Handler) {
	r.Post("/signup", func(c *fiber.Ctx) error {
		var req signupRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		creds, err := svc.Signup(c.Context(), req.DisplayName, req.Password, req.AvatarURL)
		if err != nil {
			return fiber.NewError(errs.Status(err), errs.Public(err))
		}
		setRefreshCookie(c, creds.RefreshToken)
		return c.Status(fiber.StatusCreated).JSON(creds)
	})

	r.Post("/login", func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil || req.DisplayName == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "display_name and password required")
		}
		creds, err := svc.Login(c.Context(), req.DisplayName, req.Password)
		if err != nil {
			return fiber.NewError(errs.Status(err), errs.Public(err))
		}
		setRefreshCookie(c, creds.RefreshToken)
		return c.JSON(creds)
	})

	r.Post("/refresh", func(c *fiber.Ctx) error {
		presented := c.Cookies("refresh_token")
		if presented == "" {
			var body struct {
				RefreshToken string `json:"refresh_token"`
			}
			if err := c.BodyParser(&body); err == nil {
				presented = body.RefreshToken
			}
		}
		if presented == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "refresh token required")
		}

		access, err := svc.Refresh(c.Context(), presented)
		if err != nil {
			return fiber.NewError(errs.Status(err), errs.Public(err))
		}
		return c.JSON(fiber.Map{"access_token": access})
	})

	r.Post("/logout", requireAccess, func(c *fiber.Ctx) error {
		if err := svc.Logout(c.Context(), UserID(c)); err != nil {
			return fiber.NewError(errs.Status(err), errs.Public(err))
		}
		clearRefreshCookie(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/stream-token", requireAccess, func(c *fiber.Ctx) error {
		token, err := svc.StreamToken(UserID(c))
		if err != nil {
			return fiber.NewError(errs.Status(err), errs.Public(err))
		}
		return c.JSON(fiber.Map{
			"stream_token": token,
			"expires_in":   StreamTokenTTLSeconds(),
		})
	})
}

func setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(refreshTokenTTL.Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
