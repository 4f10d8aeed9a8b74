package httpserver

import (
	"context"
	"log"
	"time"

	"storefront/internal/domain"
	"storefront/internal/service/catalog"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the services the router depends on.
type Deps struct {
	CatalogSvc catalogService
	CartSvc    cartService
	AccountSvc accountService
}

type catalogService interface {
	Search(ctx context.Context, in catalog.SearchInput) (*domain.ProductPage, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type cartService interface {
	AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error)
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
}

type accountService interface {
	Signup(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	SessionTTLSeconds() int
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), requestIDMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/signup", signupHandler(deps.AccountSvc, logger))
	router.POST("/login", loginHandler(deps.AccountSvc, logger))

	router.GET("/products", listProductsHandler(deps.CatalogSvc, logger))
	router.GET("/products/:id", getProductHandler(deps.CatalogSvc, logger))

	cart := router.Group("/cart", authMiddleware(deps.AccountSvc, logger))
	cart.GET("", getCartHandler(deps.CartSvc, logger))
	cart.POST("/items", addItemHandler(deps.CartSvc, logger))
	cart.PUT("/items/:productID", updateItemHandler(deps.CartSvc, logger))
	cart.DELETE("/items/:productID", removeItemHandler(deps.CartSvc, logger))

	return router, nil
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
