package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/olivecrm/olivecrm/internal/server/barrels"
	"github.com/olivecrm/olivecrm/internal/server/models"
)

type BarrelHandler struct {
	barrels *barrels.Service
}

func NewBarrelHandler(barrelService *barrels.Service) *BarrelHandler {
	return &BarrelHandler{barrels: barrelService}
}

type barrelRequest struct {
	BarrelNumber  string     `json:"barrel_number" validate:"required"`
	Capacity      float64    `json:"capacity" validate:"gt=0"`
	CurrentVolume float64    `json:"current_volume" validate:"gte=0"`
	FillingDate   *time.Time `json:"filling_date,omitempty"`
	EmptyingDate  *time.Time `json:"emptying_date,omitempty"`
	Location      string     `json:"location"`
	Notes         string     `json:"notes,omitempty"`
}

type barrelResponse struct {
	ID                int64      `json:"id"`
	BarrelNumber      string     `json:"barrel_number"`
	Capacity          float64    `json:"capacity"`
	CurrentVolume     float64    `json:"current_volume"`
	AvailableCapacity float64    `json:"available_capacity"`
	FillingDate       *time.Time `json:"filling_date,omitempty"`
	EmptyingDate      *time.Time `json:"emptying_date,omitempty"`
	Location          string     `json:"location"`
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func toBarrelResponse(b *models.Barrel) barrelResponse {
	return barrelResponse{
		ID:                b.ID,
		BarrelNumber:      b.BarrelNumber,
		Capacity:          b.Capacity,
		CurrentVolume:     b.CurrentVolume,
		AvailableCapacity: b.AvailableCapacity(),
		FillingDate:       b.FillingDate,
		EmptyingDate:      b.EmptyingDate,
		Location:          b.Location,
		Notes:             b.Notes,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func (r *barrelRequest) toModel() *models.Barrel {
	return &models.Barrel{
		BarrelNumber:  r.BarrelNumber,
		Capacity:      r.Capacity,
		CurrentVolume: r.CurrentVolume,
		FillingDate:   r.FillingDate,
		EmptyingDate:  r.EmptyingDate,
		Location:      r.Location,
		Notes:         r.Notes,
	}
}

func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *BarrelHandler) List(c echo.Context) error {
	params := listParams(c)
	items, total, err := h.barrels.List(c.Request().Context(), params)
	if err != nil {
		return err
	}

	results := make([]barrelResponse, 0, len(items))
	for i := range items {
		results = append(results, toBarrelResponse(&items[i]))
	}
	return c.JSON(http.StatusOK, paginate(c, params, total, results))
}

func (h *BarrelHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	barrel, err := h.barrels.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBarrelResponse(barrel))
}

func (h *BarrelHandler) Create(c echo.Context) error {
	var req barrelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	barrel, err := h.barrels.Create(c.Request().Context(), req.toModel())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toBarrelResponse(barrel))
}

func (h *BarrelHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req barrelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	barrel := req.toModel()
	barrel.ID = id
	updated, err := h.barrels.Update(c.Request().Context(), barrel)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBarrelResponse(updated))
}

func (h *BarrelHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.barrels.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BarrelHandler) Statistics(c echo.Context) error {
	stats, err := h.barrels.Statistics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
