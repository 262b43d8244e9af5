package patient

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hims/hims/pkg/wire"
)

// Handler exposes the patient master over REST. The write endpoints address
// records through the request body — PUT and DELETE carry no path id — which
// is what the registration clients expect.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/patient", h.List)
	g.GET("/patient/:id", h.Get)
	g.POST("/patient", h.Create)
	g.PUT("/patient", h.Update)
	g.DELETE("/patient", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	hospitalID, _ := strconv.Atoi(c.QueryParam("hospitalId"))

	patients, err := h.svc.List(c.Request().Context(), hospitalID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list patients")
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	hospitalID, _ := strconv.Atoi(c.QueryParam("hospitalId"))

	detail, err := h.svc.Get(c.Request().Context(), id, hospitalID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load patient")
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) Create(c echo.Context) error {
	var dto wire.PatientCreate
	if err := c.Bind(&dto); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ack, err := h.svc.Create(c.Request().Context(), &dto)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not register patient")
	}
	return c.JSON(http.StatusCreated, ack)
}

func (h *Handler) Update(c echo.Context) error {
	var dto wire.PatientUpdate
	if err := c.Bind(&dto); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ack, err := h.svc.Update(c.Request().Context(), &dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not update patient")
	}
	return c.JSON(http.StatusOK, ack)
}

func (h *Handler) Delete(c echo.Context) error {
	var dto wire.PatientDelete
	if err := c.Bind(&dto); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.Delete(c.Request().Context(), &dto); err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not delete patient")
	}
	return c.JSON(http.StatusOK, wire.Ack{Message: "patient deleted"})
}
