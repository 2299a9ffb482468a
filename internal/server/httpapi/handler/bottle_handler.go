package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/olivecrm/olivecrm/internal/server/bottles"
	"github.com/olivecrm/olivecrm/internal/server/models"
)

type BottleHandler struct {
	bottles *bottles.Service
}

func NewBottleHandler(bottleService *bottles.Service) *BottleHandler {
	return &BottleHandler{bottles: bottleService}
}

type bottleRequest struct {
	Name        string  `json:"name" validate:"required"`
	Type        string  `json:"type"`
	Volume      string  `json:"volume"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	SKU         string  `json:"sku"`
	Description string  `json:"description,omitempty"`
}

type bottleResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Volume      string    `json:"volume"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	SKU         string    `json:"sku"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toBottleResponse(b *models.Bottle) bottleResponse {
	return bottleResponse{
		ID:          b.ID,
		Name:        b.Name,
		Type:        b.Type,
		Volume:      b.Volume,
		Price:       b.Price,
		Stock:       b.Stock,
		SKU:         b.SKU,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (r *bottleRequest) toModel() *models.Bottle {
	return &models.Bottle{
		Name:        r.Name,
		Type:        r.Type,
		Volume:      r.Volume,
		Price:       r.Price,
		Stock:       r.Stock,
		SKU:         r.SKU,
		Description: r.Description,
	}
}

func (h *BottleHandler) List(c echo.Context) error {
	params := listParams(c)
	items, total, err := h.bottles.List(c.Request().Context(), params)
	if err != nil {
		return err
	}

	results := make([]bottleResponse, 0, len(items))
	for i := range items {
		results = append(results, toBottleResponse(&items[i]))
	}
	return c.JSON(http.StatusOK, paginate(c, params, total, results))
}

func (h *BottleHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	bottle, err := h.bottles.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBottleResponse(bottle))
}

func (h *BottleHandler) Create(c echo.Context) error {
	var req bottleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	bottle, err := h.bottles.Create(c.Request().Context(), req.toModel())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toBottleResponse(bottle))
}

func (h *BottleHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req bottleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	bottle := req.toModel()
	bottle.ID = id
	updated, err := h.bottles.Update(c.Request().Context(), bottle)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBottleResponse(updated))
}

func (h *BottleHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := h.bottles.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
