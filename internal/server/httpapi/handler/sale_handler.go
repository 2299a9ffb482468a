package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/olivecrm/olivecrm/internal/server/models"
	"github.com/olivecrm/olivecrm/internal/server/sales"
)

type SaleHandler struct {
	sales *sales.Service
}

func NewSaleHandler(saleService *sales.Service) *SaleHandler {
	return &SaleHandler{sales: saleService}
}

type saleRequest struct {
	CustomerName  string     `json:"customer_name" validate:"required"`
	Product       string     `json:"product" validate:"required"`
	Quantity      float64    `json:"quantity" validate:"gt=0"`
	Price         float64    `json:"price" validate:"gte=0"`
	Discount      float64    `json:"discount" validate:"gte=0"`
	Tax           float64    `json:"tax" validate:"gte=0"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method"`
	OrderDate     time.Time  `json:"order_date"`
	DeliveryDate  *time.Time `json:"delivery_date,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// salePatchRequest leaves absent fields untouched, so every field is
// optional here; the service re-validates the merged result.
type salePatchRequest struct {
	CustomerName  string     `json:"customer_name"`
	Product       string     `json:"product"`
	Quantity      float64    `json:"quantity"`
	Price         float64    `json:"price"`
	Discount      float64    `json:"discount"`
	Tax           float64    `json:"tax"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method"`
	DeliveryDate  *time.Time `json:"delivery_date,omitempty"`
	Notes         string     `json:"notes"`
}

type saleResponse struct {
	ID            string     `json:"id"`
	CustomerName  string     `json:"customer_name"`
	Product       string     `json:"product"`
	Quantity      float64    `json:"quantity"`
	Price         float64    `json:"price"`
	Discount      float64    `json:"discount,omitempty"`
	Tax           float64    `json:"tax,omitempty"`
	Total         float64    `json:"total"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	OrderDate     time.Time  `json:"order_date"`
	DeliveryDate  *time.Time `json:"delivery_date,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toSaleResponse(s *models.Sale) saleResponse {
	return saleResponse{
		ID:            s.ID,
		CustomerName:  s.CustomerName,
		Product:       s.Product,
		Quantity:      s.Quantity,
		Price:         s.Price,
		Discount:      s.Discount,
		Tax:           s.Tax,
		Total:         s.Total,
		Status:        s.Status,
		PaymentMethod: s.PaymentMethod,
		OrderDate:     s.OrderDate,
		DeliveryDate:  s.DeliveryDate,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (h *SaleHandler) List(c echo.Context) error {
	params := listParams(c)
	items, total, err := h.sales.List(c.Request().Context(), params)
	if err != nil {
		return err
	}

	results := make([]saleResponse, 0, len(items))
	for i := range items {
		results = append(results, toSaleResponse(&items[i]))
	}
	return c.JSON(http.StatusOK, paginate(c, params, total, results))
}

func (h *SaleHandler) Get(c echo.Context) error {
	sale, err := h.sales.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSaleResponse(sale))
}

func (h *SaleHandler) Create(c echo.Context) error {
	var req saleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sale, err := h.sales.Create(c.Request().Context(), &models.Sale{
		CustomerName:  req.CustomerName,
		Product:       req.Product,
		Quantity:      req.Quantity,
		Price:         req.Price,
		Discount:      req.Discount,
		Tax:           req.Tax,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		OrderDate:     req.OrderDate,
		DeliveryDate:  req.DeliveryDate,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toSaleResponse(sale))
}

func (h *SaleHandler) Patch(c echo.Context) error {
	var req salePatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sale, err := h.sales.Patch(c.Request().Context(), c.Param("id"), &models.Sale{
		CustomerName:  req.CustomerName,
		Product:       req.Product,
		Quantity:      req.Quantity,
		Price:         req.Price,
		Discount:      req.Discount,
		Tax:           req.Tax,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		DeliveryDate:  req.DeliveryDate,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSaleResponse(sale))
}

func (h *SaleHandler) Delete(c echo.Context) error {
	if err := h.sales.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SaleHandler) Summary(c echo.Context) error {
	summary, err := h.sales.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
