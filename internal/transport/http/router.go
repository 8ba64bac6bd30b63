package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/winston1234564757/Smartfix-sub000/internal/domain"
)

type Services struct {
	Checkout interface {
		OrderPlacer
		OrderAdmin
	}
	Inventory interface {
		CatalogReader
		InventoryManager
	}
	Intake interface {
		IntakeCreator
		IntakeAdmin
	}
	Auth AdminAuthenticator
}

// NewRouter wires the public storefront routes and the JWT-gated admin
// routes.
func NewRouter(svcs Services, jwtSecret []byte, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(CORS(corsOrigins))

	r.Get("/health", HealthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", HandleListProducts(svcs.Inventory))
		r.Get("/products/{id}", HandleGetProduct(svcs.Inventory))

		r.Group(func(r chi.Router) {
			r.Use(OptionalUser(jwtSecret))
			r.Post("/orders", HandlePlaceOrder(svcs.Checkout))
		})
		r.Get("/orders/{id}", HandleGetOrder(svcs.Checkout))
		r.Post("/orders/{id}/cancel", HandleCancelOrder(svcs.Checkout))

		r.Post("/repairs", HandleBookRepair(svcs.Intake))
		r.Post("/trade-ins", HandleSubmitTradeIn(svcs.Intake))
		r.Post("/requests", HandleSubmitRequest(svcs.Intake))

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", HandleAdminLogin(svcs.Auth))

			r.Group(func(r chi.Router) {
				r.Use(AdminAuth(jwtSecret))

				r.Get("/products", HandleAdminListProducts(svcs.Inventory))
				r.Post("/products", HandleAdminCreateProduct(svcs.Inventory))
				r.Put("/products/{id}", HandleAdminUpdateProduct(svcs.Inventory))
				r.Patch("/products/{id}/status", HandleAdminSetProductStatus(svcs.Inventory))

				r.Get("/orders", HandleAdminListOrders(svcs.Checkout))
				r.Patch("/orders/{id}/status", HandleAdminSetOrderStatus(svcs.Checkout))
				r.Delete("/orders/{id}", HandleAdminDeleteOrder(svcs.Checkout))

				r.Get("/repairs", HandleAdminListRepairs(svcs.Intake))
				r.Patch("/repairs/{id}/status", HandleAdminSetIntakeStatus(svcs.Intake, domain.KindRepair))
				r.Get("/trade-ins", HandleAdminListTradeIns(svcs.Intake))
				r.Patch("/trade-ins/{id}/status", HandleAdminSetIntakeStatus(svcs.Intake, domain.KindTradeIn))
				r.Get("/requests", HandleAdminListRequests(svcs.Intake))
				r.Patch("/requests/{id}/status", HandleAdminSetIntakeStatus(svcs.Intake, domain.KindRequest))
			})
		})
	})

	r.NotFound(NotFoundHandler().ServeHTTP)

	return r
}
