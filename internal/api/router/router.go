package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/compressyourphoto/phototools/internal/api/handlers/billing"
	"github.com/compressyourphoto/phototools/internal/middleware"
)

func Setup(h *billing.Handler) *ginext.Engine {
	r := ginext.New()

	r.Use(middleware.CORSMiddleware())
	r.Use(ginext.Logger())
	r.Use(ginext.Recovery())

	api := r.Group("/api")

	api.POST("/create-checkout-session", h.CreateCheckoutSession) // hosted checkout page URL
	api.POST("/webhook", h.Webhook)                               // payment provider callbacks

	return r
}
