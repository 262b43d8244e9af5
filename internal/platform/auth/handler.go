package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hims/hims/pkg/wire"
)

// Handler serves the sign-in endpoint.
type Handler struct {
	issuer Issuer
}

func NewHandler(secret []byte, ttl time.Duration) *Handler {
	return &Handler{issuer: Issuer{Secret: secret, TTL: ttl}}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
}

// Login checks the credentials and returns a bearer token.
func (h *Handler) Login(c echo.Context) error {
	var req wire.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if !Authenticate(req.Username, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := h.issuer.IssueToken(req.Username, []string{"admin"})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not issue token")
	}

	return c.JSON(http.StatusOK, wire.LoginResponse{
		Token:     token,
		ExpiresIn: int(h.issuer.TTL.Seconds()),
	})
}
