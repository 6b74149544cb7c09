package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Dineep4/QuickBite/internal/adapter/http/middleware"
	"github.com/Dineep4/QuickBite/internal/logging"
)

func NewRouter(oh *OrderHandler, mh *MenuHandler, sh *StaffHandler, ch *ContactHandler, auth *middleware.StaffAuth) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics())
	r.Use(middleware.Logging(logging.New("http")))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/staff/login", sh.Login)
	r.POST("/contact", ch.Create)

	menu := r.Group("/menu")
	{
		menu.GET("/all", mh.All)
		menu.POST("/add", auth.Require(), mh.Add)
		menu.PUT("/update/:id", auth.Require(), mh.Update)
		menu.DELETE("/delete/:id", auth.Require(), mh.Delete)
	}

	orders := r.Group("/orders")
	{
		orders.POST("/place", oh.PlaceOrder)
		orders.GET("/me/:studentId", oh.MyOrders)
		orders.GET("/all", auth.Require(), oh.AllOrders)
		orders.PATCH("/status/:id", auth.Require(), oh.UpdateStatus)
		orders.GET("/stats/today", oh.StatsToday)
		orders.GET("/stats/pending", oh.StatsPending)
	}

	return r
}
