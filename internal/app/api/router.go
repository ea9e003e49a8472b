package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/johithjpr-lab/ecommerce-platform/internal/shared/auth"
)

// RouterDeps carries the wired handlers and the token verifier.
type RouterDeps struct {
	Orders      *OrdersAPI
	Tracking    *TrackingAPI
	Payments    *PaymentsAPI
	Verifier    auth.Verifier
	ServiceName string
}

// NewRouter builds the gin engine with tracing, auth, and all routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(deps.ServiceName))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authenticated := auth.Middleware(deps.Verifier)
	adminOnly := auth.RequireAdmin()

	orders := router.Group("/orders", authenticated)
	{
		orders.POST("", deps.Orders.PlaceOrder)
		orders.GET("", deps.Orders.ListOrders)
		orders.GET("/:id", deps.Orders.GetOrder)
		orders.PUT("/:id/status", adminOnly, deps.Orders.UpdateStatus)
		orders.GET("/admin/all", adminOnly, deps.Orders.ListAllOrders)
	}

	tracking := router.Group("/tracking")
	{
		// Tracking-number lookup is public; the number is the capability.
		tracking.GET("/track/:trackingNumber", deps.Tracking.TrackByNumber)
		tracking.GET("/order/:orderId", authenticated, deps.Tracking.GetByOrder)
		tracking.PUT("/:id/location", authenticated, adminOnly, deps.Tracking.UpdateLocation)
		tracking.GET("/admin/all", authenticated, adminOnly, deps.Tracking.ListAll)
	}

	payments := router.Group("/payments")
	{
		payments.GET("/methods", deps.Payments.ListMethods)
		payments.GET("/wallet", authenticated, deps.Payments.GetWallet)
		payments.POST("/wallet/add", authenticated, deps.Payments.AddFunds)
		payments.POST("/stripe/create-intent", authenticated, deps.Payments.CreateIntent)
	}

	return router
}
