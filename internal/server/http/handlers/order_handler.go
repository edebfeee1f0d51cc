package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/avoronov/ordermart/internal/domain/errors"
	"github.com/avoronov/ordermart/internal/domain/model"
	"github.com/avoronov/ordermart/internal/server/http/dto"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request body"))
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), req.CustomerName, req.TotalAmount, req.Currency)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyCustomerName),
			errors.Is(err, domainErrors.ErrInvalidAmount),
			errors.Is(err, domainErrors.ErrUnsupportedCurrency),
			errors.Is(err, domainErrors.ErrOrderDateInFuture):
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, dto.Fail("internal error"))
		}
		return
	}

	c.JSON(http.StatusCreated, dto.OK(toOrderResponse(*order)))
}

// List handles GET /api/orders. Cancelled orders are excluded.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Fail("internal error"))
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, dto.OK(response))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("order not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Fail("internal error"))
		return
	}

	c.JSON(http.StatusOK, dto.OK(toOrderResponse(*order)))
}

// Cancel handles PUT /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.facade.CancelOrder(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.Fail("order not found"))
		case errors.Is(err, domainErrors.ErrOrderCompleted):
			c.JSON(http.StatusConflict, dto.Fail(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, dto.Fail("internal error"))
		}
		return
	}

	c.JSON(http.StatusOK, dto.OK(toOrderResponse(*order)))
}

func orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid order id"))
		return 0, false
	}
	return id, true
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:                        order.ID,
		CustomerName:              order.CustomerName,
		OrderDate:                 order.OrderDate,
		TotalAmount:               order.TotalAmount,
		Currency:                  order.Currency,
		Status:                    string(order.Status),
		Priority:                  order.Priority,
		TotalAmountInBaseCurrency: order.BaseAmount,
	}
}
