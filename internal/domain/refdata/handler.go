package refdata

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hims/hims/pkg/wire"
)

// Handler serves the admin dropdown endpoint. Rows go out with the field
// names the dropdown table declares for the type, so every list keeps the
// shape its consumers were built against.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/admin/:dropdownType", h.List)
}

func (h *Handler) List(c echo.Context) error {
	dropdownType := c.Param("dropdownType")
	spec, ok := wire.DropdownSpecs[dropdownType]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown dropdown type")
	}

	values, err := h.repo.ListByType(c.Request().Context(), dropdownType)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load reference data")
	}

	rows := make([]map[string]any, 0, len(values))
	for _, v := range values {
		rows = append(rows, map[string]any{
			spec.IDField:   v.ItemID,
			spec.NameField: v.Name,
		})
	}
	return c.JSON(http.StatusOK, rows)
}
