// internal/interfaces/http/handlers/order.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/ui"
	"github.com/your-org/storefront/internal/pkg/pdf"
	"github.com/your-org/storefront/internal/store"
)

// OrderHandler handles checkout, order history and receipts
type OrderHandler struct {
	*SessionHandler
	pdfService *pdf.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(base *SessionHandler, pdfService *pdf.Service) *OrderHandler {
	return &OrderHandler{
		SessionHandler: base,
		pdfService:     pdfService,
	}
}

// PlaceOrderRequest represents a checkout of the session cart
type PlaceOrderRequest struct {
	AddressID     string `json:"address_id"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// UpdateOrderStatusRequest represents a status change
type UpdateOrderStatusRequest struct {
	Status order.Status `json:"status" binding:"required"`
}

// PlaceOrder handles POST /orders. The order is stored only once the session
// holding it is saved, so a failed session save never leaves a stored order
// behind a cart that still holds its items.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	state, ok := h.update(c, func(_ context.Context, st *store.Store) error {
		next, err := st.Dispatch(store.PlaceOrder{AddressID: req.AddressID, PaymentMethod: req.PaymentMethod})
		if err != nil {
			return err
		}
		_, err = st.Dispatch(store.Notify{
			Type:    ui.NotificationSuccess,
			Message: fmt.Sprintf("Order %s placed", next.Orders.Orders[0].Number),
		})
		return err
	})
	if !ok {
		return
	}

	placed := state.Orders.Orders[0]
	fields := logrus.Fields{
		"order_id":     placed.ID,
		"order_number": placed.Number,
		"user_id":      placed.UserID,
		"total":        placed.TotalAmount,
	}
	if err := h.orders.SaveOrder(c.Request.Context(), placed); err != nil {
		// The session keeps the order; the next status change stores it again
		h.logger.WithFields(fields).WithError(err).Error("❌ Failed to store placed order")
		h.respondError(c, err)
		return
	}
	h.logger.WithFields(fields).Info("🛒 Order placed")

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    placed,
	})
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	state, ok := h.view(c)
	if !ok {
		return
	}

	page, err := queryInt(c, "page", 1)
	if err != nil {
		h.respondError(c, err)
		return
	}
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	orders := state.Orders.Orders
	total := len(orders)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data": gin.H{
			"orders": orders[start:end],
			"recent": store.RecentOrders(state),
			"pagination": gin.H{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": (total + limit - 1) / limit,
			},
		},
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, ok := h.findOrder(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}

// UpdateOrderStatus handles PUT /orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	id := c.Param("id")
	state, ok := h.update(c, func(ctx context.Context, st *store.Store) error {
		next, err := st.Dispatch(store.UpdateOrderStatus{ID: id, Status: req.Status})
		if err != nil {
			return err
		}
		updated, _ := store.OrderByID(next, id)
		return h.orders.SaveOrder(ctx, updated)
	})
	if !ok {
		return
	}

	updated, _ := store.OrderByID(state, id)
	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"data":    updated,
	})
}

// CancelOrder handles POST /orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id := c.Param("id")
	state, ok := h.update(c, func(ctx context.Context, st *store.Store) error {
		current, found := store.OrderByID(st.Snapshot(), id)
		if !found {
			return domain.NotFound("order.Cancel", id)
		}
		if !current.CanBeCancelled() {
			return domain.InvalidState("order.Cancel", id, fmt.Sprintf("order is %s", current.Status))
		}
		next, err := st.Dispatch(store.UpdateOrderStatus{ID: id, Status: order.StatusCancelled})
		if err != nil {
			return err
		}
		cancelled, _ := store.OrderByID(next, id)
		return h.orders.SaveOrder(ctx, cancelled)
	})
	if !ok {
		return
	}

	cancelled, _ := store.OrderByID(state, id)
	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
		"data":    cancelled,
	})
}

// GetReceipt handles GET /orders/:id/receipt. ?format=html returns the
// rendered receipt instead of the PDF.
func (h *OrderHandler) GetReceipt(c *gin.Context) {
	o, ok := h.findOrder(c)
	if !ok {
		return
	}

	if c.Query("format") == "html" {
		html, err := h.pdfService.RenderHTML(o)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return
	}

	pdfBuffer, err := h.pdfService.GenerateReceipt(o)
	if err != nil {
		h.respondError(c, fmt.Errorf("failed to generate receipt for order %s: %w", o.Number, err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", o.Number))
	c.Header("Content-Length", strconv.Itoa(pdfBuffer.Len()))
	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())
}

func (h *OrderHandler) findOrder(c *gin.Context) (order.Order, bool) {
	state, ok := h.view(c)
	if !ok {
		return order.Order{}, false
	}

	o, found := store.OrderByID(state, c.Param("id"))
	if !found {
		h.respondError(c, domain.NotFound("order.Get", c.Param("id")))
		return order.Order{}, false
	}
	return o, true
}
