package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/shopcore/admin-service/internal/platform/logger"
	"github.com/shopcore/admin-service/internal/port/http/handler"
	"github.com/shopcore/admin-service/internal/port/http/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Purchase *handler.PurchaseHandler
}

func NewRouter(h Handlers, log logger.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger(log))

	r.Post("/api/auth/signup", h.Auth.Signup)
	r.Post("/api/auth/login", h.Auth.Login)
	r.Post("/api/auth/logout", h.Auth.Logout)
	r.Get("/api/auth/me", h.Auth.CurrentUser)

	r.Get("/api/users", h.User.List)
	r.Get("/api/users/{id}", h.User.Get)
	r.Put("/api/users/{id}", h.User.Update)
	r.Delete("/api/users/{id}", h.User.Delete)
	r.Get("/api/users/{id}/receipt", h.User.Receipt)
	r.Post("/api/users/{id}/purchases/{productID}/remove", h.User.RemovePurchaseLine)

	r.Get("/api/products", h.Catalog.List)
	r.Post("/api/products", h.Catalog.Create)
	r.Get("/api/products/{id}", h.Catalog.Get)
	r.Put("/api/products/{id}", h.Catalog.Update)
	r.Delete("/api/products/{id}", h.Catalog.Delete)
	r.Post("/api/products/images", h.Catalog.UploadImage)

	r.Get("/api/cart/{userID}", h.Cart.Get)
	r.Post("/api/cart/{userID}/items", h.Cart.AddItem)
	r.Put("/api/cart/{userID}/items/{productID}", h.Cart.UpdateQuantity)
	r.Delete("/api/cart/{userID}/items/{productID}", h.Cart.RemoveItem)
	r.Delete("/api/cart/{userID}", h.Cart.Clear)
	r.Post("/api/cart/{userID}/ack", h.Cart.AckNewItem)
	r.Post("/api/cart/{userID}/checkout", h.Purchase.Checkout)

	r.Get("/api/purchase/products", h.Purchase.ProductsNearPostalCode)
	r.Post("/api/purchase", h.Purchase.Purchase)

	return r
}
