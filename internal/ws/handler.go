package ws

import (
	"log"
	"net/http"
	"strings"
	"time"

	"career-ready/internal/config"
	"career-ready/internal/delivery/http/middleware"
	"career-ready/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	jwt      jwt.Service
	cfg      config.WSConfig
	upgrader websocket.Upgrader
	logger   *log.Logger
}

func NewHandler(hub *Hub, jwtSvc jwt.Service, cfg config.WSConfig, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		hub: hub,
		jwt: jwtSvc,
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/ws", h.Handle)
}

// Handle authenticates the ?token= query parameter before upgrading; browsers
// cannot set an Authorization header on a WebSocket handshake.
func (h *Handler) Handle(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Service unavailable", nil, nil)
	}

	userID, err := h.authenticate(c.Query("token"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	}

	upgrade := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Printf("WS upgrade error | user_id=%s err=%v", userID, err)
			return
		}

		client := NewClient(h.hub, conn, userID, h.cfg.SendBuffer, h.cfg.PingInterval)
		if !h.hub.Register(client) {
			h.logger.Printf("WS rejected | user_id=%s reason=hub_stopped", userID)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			_ = conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	})

	return upgrade(c)
}

func (h *Handler) authenticate(token string) (uuid.UUID, error) {
	token = strings.TrimSpace(token)
	if token == "" || h.jwt == nil {
		return uuid.Nil, jwt.ErrTokenInvalid
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		return uuid.Nil, err
	}
	if claims.UserID == uuid.Nil {
		return uuid.Nil, jwt.ErrTokenInvalid
	}
	return claims.UserID, nil
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(strings.ToLower(o), "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := strings.TrimRight(strings.ToLower(r.Header.Get("Origin")), "/")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
