package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quickbites/storefront/internal/catalog"
	"github.com/quickbites/storefront/internal/metrics"
	"github.com/quickbites/storefront/internal/models"
	"github.com/quickbites/storefront/internal/services"
	"github.com/quickbites/storefront/internal/store"
)

// APIHandler handles all API requests
type APIHandler struct {
	catalog   *catalog.Catalog
	cart      *store.CartStore
	favorites *store.FavoritesStore
	history   *store.SearchHistoryStore
	orders    *store.OrderStore
	checkout  *services.CheckoutService
	reg       *metrics.Registry
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(cat *catalog.Catalog, cart *store.CartStore, favorites *store.FavoritesStore,
	history *store.SearchHistoryStore, orders *store.OrderStore,
	checkout *services.CheckoutService, reg *metrics.Registry) *APIHandler {
	if cat == nil || cart == nil || favorites == nil || history == nil ||
		orders == nil || checkout == nil || reg == nil {
		panic("handlers: NewAPIHandler requires all stores and services")
	}
	return &APIHandler{
		catalog:   cat,
		cart:      cart,
		favorites: favorites,
		history:   history,
		orders:    orders,
		checkout:  checkout,
		reg:       reg,
	}
}

// SetupRoutes configures all API routes
func (h *APIHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/foods", h.ListFoods)
		api.GET("/foods/popular", h.GetPopularFoods)
		api.GET("/foods/:id", h.GetFood)
		api.GET("/categories", h.ListCategories)

		api.GET("/cart", h.GetCart)
		api.POST("/cart/items", h.AddToCart)
		api.PUT("/cart/items/:id", h.UpdateCartItem)
		api.DELETE("/cart/items/:id", h.RemoveFromCart)
		api.DELETE("/cart", h.ClearCart)

		api.GET("/favorites", h.ListFavorites)
		api.POST("/favorites/:id", h.AddFavorite)
		api.DELETE("/favorites/:id", h.RemoveFavorite)
		api.DELETE("/favorites", h.ClearFavorites)

		api.GET("/search/history", h.GetSearchHistory)
		api.POST("/search/history", h.AddSearch)
		api.DELETE("/search/history", h.ClearSearchHistory)
		api.GET("/search/popular", h.GetPopularSearches)

		api.POST("/checkout", h.Checkout)

		api.GET("/orders", h.ListOrders)
		api.GET("/orders/:id", h.GetOrder)
		api.POST("/orders/:id/cancel", h.CancelOrder)
		api.POST("/orders/:id/reorder", h.Reorder)
		api.DELETE("/orders", h.ClearOrderHistory)
	}

	router.GET("/metrics", gin.WrapH(h.reg.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// ListFoods handles catalog browsing: the full list, a category filter or a
// text search. A search query also lands in the search history.
func (h *APIHandler) ListFoods(c *gin.Context) {
	var items []models.FoodItem
	switch {
	case c.Query("q") != "":
		query := c.Query("q")
		items = h.catalog.Search(query)
		h.history.Add(query)
	case c.Query("category") != "":
		items = h.catalog.ListByCategory(c.Query("category"))
	default:
		items = h.catalog.ListAll()
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// GetPopularFoods handles requests for the highest rated items
func (h *APIHandler) GetPopularFoods(c *gin.Context) {
	items := h.catalog.Popular()
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// GetFood handles requests for a single catalog item
func (h *APIHandler) GetFood(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	item, ok := h.catalog.GetByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item":        item,
		"in_cart":     h.cart.Contains(id),
		"is_favorite": h.favorites.Contains(id),
	})
}

// ListCategories handles requests for the browsable category list
func (h *APIHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.Categories()})
}

// GetCart returns the cart lines together with the current checkout quote
func (h *APIHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"lines": h.cart.Lines(),
		"quote": h.checkout.Quote(),
	})
}

// AddToCart adds one unit of a catalog item to the cart
func (h *APIHandler) AddToCart(c *gin.Context) {
	var input struct {
		ItemID int `json:"item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, ok := h.catalog.GetByID(input.ItemID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	h.cart.Add(item)
	h.reg.CartAdds.Inc()
	c.JSON(http.StatusOK, gin.H{
		"message":    "item added to cart",
		"item_count": h.cart.ItemCount(),
	})
}

// UpdateCartItem sets a cart line's quantity exactly; zero or less removes
// the line.
func (h *APIHandler) UpdateCartItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var input struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.cart.UpdateQuantity(id, *input.Quantity)
	c.JSON(http.StatusOK, gin.H{
		"message":    "cart updated",
		"item_count": h.cart.ItemCount(),
	})
}

// RemoveFromCart removes a line from the cart
func (h *APIHandler) RemoveFromCart(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	h.cart.Remove(id)
	c.JSON(http.StatusOK, gin.H{"message": "item removed from cart"})
}

// ClearCart empties the cart
func (h *APIHandler) ClearCart(c *gin.Context) {
	h.cart.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

// ListFavorites returns the favorited items in insertion order
func (h *APIHandler) ListFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"favorites": h.favorites.Items(),
		"count":     h.favorites.Count(),
	})
}

// AddFavorite favorites a catalog item; repeats are idempotent
func (h *APIHandler) AddFavorite(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	item, ok := h.catalog.GetByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	h.favorites.Add(item)
	c.JSON(http.StatusOK, gin.H{
		"message": "item added to favorites",
		"count":   h.favorites.Count(),
	})
}

// RemoveFavorite unfavorites an item; absent ids are a no-op
func (h *APIHandler) RemoveFavorite(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	h.favorites.Remove(id)
	c.JSON(http.StatusOK, gin.H{
		"message": "item removed from favorites",
		"count":   h.favorites.Count(),
	})
}

// ClearFavorites empties the favorites set
func (h *APIHandler) ClearFavorites(c *gin.Context) {
	h.favorites.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "favorites cleared"})
}

// GetSearchHistory returns recent searches, most recent first
func (h *APIHandler) GetSearchHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"recent": h.history.Recent()})
}

// AddSearch records a search query in the history
func (h *APIHandler) AddSearch(c *gin.Context) {
	var input struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.history.Add(input.Query)
	c.JSON(http.StatusOK, gin.H{"recent": h.history.Recent()})
}

// ClearSearchHistory empties the search history
func (h *APIHandler) ClearSearchHistory(c *gin.Context) {
	h.history.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "search history cleared"})
}

// GetPopularSearches returns the fixed popular search list
func (h *APIHandler) GetPopularSearches(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"popular": h.history.Popular()})
}

// Checkout converts the cart into an order and clears the cart
func (h *APIHandler) Checkout(c *gin.Context) {
	var input struct {
		DeliveryAddress string `json:"delivery_address" binding:"required"`
		PaymentMethod   string `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.checkout.PlaceOrder(input.DeliveryAddress, input.PaymentMethod)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) || errors.Is(err, services.ErrEmptyAddress) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error placing order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	order, _ := h.orders.GetByID(id)
	c.JSON(http.StatusCreated, gin.H{
		"order_id":           id,
		"estimated_delivery": order.EstimatedDelivery,
		"total":              order.Total,
	})
}

// ListOrders returns the order history, most recent first
func (h *APIHandler) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"orders": h.orders.Orders(),
		"count":  h.orders.Count(),
	})
}

// GetOrder returns a single order by id
func (h *APIHandler) GetOrder(c *gin.Context) {
	order, ok := h.orders.GetByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder cancels a non-terminal order and stops its pending transitions
func (h *APIHandler) CancelOrder(c *gin.Context) {
	err := h.orders.Cancel(c.Param("id"))
	switch {
	case errors.Is(err, store.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, store.ErrOrderTerminal):
		c.JSON(http.StatusConflict, gin.H{"error": "Order can no longer be cancelled"})
	case err != nil:
		log.Printf("Error cancelling order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "order cancelled"})
	}
}

// Reorder adds a past order's lines back into the cart. Items that have
// left the catalog are skipped. The order store only reports the lines;
// the cart mutation happens here.
func (h *APIHandler) Reorder(c *gin.Context) {
	lines := h.orders.Reorder(c.Param("id"))
	if lines == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	added := 0
	for _, line := range lines {
		item, ok := h.catalog.GetByID(line.ItemID)
		if !ok {
			continue
		}
		if current, exists := h.cart.Get(item.ID); exists {
			h.cart.UpdateQuantity(item.ID, current.Quantity+line.Quantity)
		} else {
			h.cart.Add(item)
			if line.Quantity > 1 {
				h.cart.UpdateQuantity(item.ID, line.Quantity)
			}
		}
		h.reg.CartAdds.Inc()
		added++
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "order items added to cart",
		"added_lines": added,
		"item_count":  h.cart.ItemCount(),
	})
}

// ClearOrderHistory drops all orders and their pending transitions
func (h *APIHandler) ClearOrderHistory(c *gin.Context) {
	h.orders.ClearHistory()
	c.JSON(http.StatusOK, gin.H{"message": "order history cleared"})
}
