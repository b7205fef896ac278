package stream

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/uzak0209/echo/internal/auth"
	"github.com/uzak0209/echo/internal/errs"
)

const pingInterval = 15 * time.Second

// RegisterRoutes wires the two event streams. Credentials are resolved
// before the websocket upgrade: a bad token is an HTTP rejection, never a
// stream that opens and then errors.
func RegisterRoutes(r fiber.Router, posts *Topic[PostEvent], reactions *ReactionTopics, streamAuth *auth.StreamAuth) {
	authenticate := func(c *fiber.Ctx) error {
		subject, err := streamAuth.Resolve(auth.CredentialsFromCtx(c))
		if err != nil {
			return fiber.NewError(errs.Status(err), errs.Public(err))
		}
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		c.Locals("subject", subject)
		return c.Next()
	}

	r.Get("/posts", authenticate, websocket.New(func(c *websocket.Conn) {
		serve(c, posts.Subscribe())
	}))

	r.Get("/reactions", authenticate, websocket.New(func(c *websocket.Conn) {
		subject, _ := c.Locals("subject").(string)
		serve(c, reactions.Subscribe(subject))
	}))
}

// serve pushes events to one client until it disconnects, interleaving
// ping frames so intermediaries do not drop the idle connection.
func serve[T any](conn *websocket.Conn, sub *Subscription[T]) {
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case env, ok := <-sub.C:
			if !ok {
				return
			}
			if env.Gap {
				// messages were lost; keep streaming
				continue
			}
			payload, err := json.Marshal(env.Event)
			if err != nil {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
