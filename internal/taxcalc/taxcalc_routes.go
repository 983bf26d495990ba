package taxcalc

import (
	"go-taxcalc/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Calculations are anonymous; each client IP gets 10 req/s with a burst of 20.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	calculate := r.Group("/calculate")
	calculate.Use(middleware.RateLimitByIP(rate.Limit(10), 20))
	{
		calculate.POST("/paye", handler.CalculatePAYE)
		calculate.POST("/vat", handler.CalculateVAT)
		calculate.POST("/nis", handler.CalculateNIS)
		calculate.POST("/salary", handler.CalculateSalary)
	}

	r.GET("/tax-rates", handler.GetTaxRates)
}
