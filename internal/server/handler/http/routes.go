package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tastybites/tastybites-client/internal/server/middleware"
)

// NewRouter constructs the dev server's HTTP handler. Public routes cover
// auth bootstrapping, the menu, and the contact form; everything else sits
// behind bearer authentication, and /api/admin additionally behind the
// admin-role check. This server-side role check is the authoritative one;
// the client's local role gate only saves round trips.
func NewRouter(
	auth *AuthHandler,
	catalog *CatalogHandler,
	shop *ShopHandler,
	notify *NotifyHandler,
	admin *AdminHandler,
	jwtSecret string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/login", auth.Login)
		r.Post("/auth/register", auth.Register)
		r.Post("/auth/verify-signup-otp", auth.VerifySignupOTP)
		r.Post("/auth/forgot-password", auth.ForgotPassword)
		r.Post("/auth/reset-password", auth.ResetPassword)
		r.Get("/menu", catalog.Menu)
		r.Get("/menu/categories", catalog.Categories)
		r.Post("/contact", notify.Contact)

		// Authenticated group
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(jwtSecret))

			r.Get("/auth/profile", auth.Profile)
			r.Put("/auth/profile", auth.UpdateProfile)
			r.Post("/auth/change-password", auth.ChangePassword)
			r.Post("/auth/addresses", auth.AddAddress)
			r.Put("/auth/addresses/{id}", auth.UpdateAddress)
			r.Delete("/auth/addresses/{id}", auth.DeleteAddress)

			r.Get("/cart", shop.Cart)
			r.Post("/cart", shop.AddCartItem)
			r.Put("/cart/{itemId}", shop.UpdateCartItem)
			r.Delete("/cart/{itemId}", shop.RemoveCartItem)

			r.Get("/favorites", shop.Favorites)
			r.Post("/favorites", shop.AddFavorite)
			r.Delete("/favorites/{itemId}", shop.RemoveFavorite)

			r.Get("/orders", shop.Orders)
			r.Post("/orders", shop.PlaceOrder)

			r.Get("/notifications", notify.Inbox)
			r.Post("/notifications/read-all", notify.MarkAllRead)
			r.Post("/notifications/{id}/read", notify.MarkRead)
			r.Delete("/notifications", notify.Clear)
			r.Delete("/notifications/{id}", notify.Delete)
			r.Put("/notifications/preferences", auth.UpdatePreferences)

			// Admin namespace
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Get("/users", admin.ListUsers)
				r.Put("/users/{id}", admin.UpdateUser)
				r.Delete("/users/{id}", admin.DeleteUser)

				r.Get("/orders", shop.AllOrders)
				r.Put("/orders/{id}/status", shop.UpdateOrderStatus)

				r.Post("/menu", catalog.AddMenuItem)
				r.Put("/menu/{id}", catalog.UpdateMenuItem)
				r.Delete("/menu/{id}", catalog.DeleteMenuItem)

				r.Post("/categories", catalog.AddCategory)
				r.Put("/categories/{id}", catalog.UpdateCategory)
				r.Delete("/categories/{id}", catalog.DeleteCategory)

				r.Get("/contact-messages", notify.ContactMessages)
				r.Delete("/contact-messages/{id}", notify.DeleteContactMessage)

				r.Post("/notifications", notify.Broadcast)
				r.Get("/notifications", notify.BroadcastHistory)
			})
		})
	})

	return r
}
