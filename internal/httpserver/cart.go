package httpserver

import (
	"log"
	"net/http"

	"storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity"`
}

// cartResponse decorates the cart with read-time totals so the client can
// render without a second round trip.
type cartResponse struct {
	ID         string            `json:"id,omitempty"`
	Items      []domain.CartLine `json:"items"`
	TotalCents int64             `json:"totalCents"`
	LineCount  int               `json:"lineCount"`
}

func toCartResponse(cart *domain.Cart) cartResponse {
	items := cart.Lines
	if items == nil {
		items = []domain.CartLine{}
	}
	return cartResponse{
		ID:         cart.ID,
		Items:      items,
		TotalCents: cart.TotalCents(),
		LineCount:  cart.LineCount(),
	}
}

func getCartHandler(svc cartService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		cart, err := svc.GetCart(c.Request.Context(), u.ID)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func addItemHandler(svc cartService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		cart, err := svc.AddItem(c.Request.Context(), u.ID, req.ProductID, req.Quantity)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func updateItemHandler(svc cartService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required", "field": "quantity"})
			return
		}
		cart, err := svc.UpdateItemQuantity(c.Request.Context(), u.ID, c.Param("productID"), *req.Quantity)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func removeItemHandler(svc cartService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		cart, err := svc.RemoveItem(c.Request.Context(), u.ID, c.Param("productID"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}
