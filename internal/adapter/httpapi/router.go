package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"

	custommw "github.com/rajasharmaa/dttt/internal/adapter/httpapi/middleware"
	"github.com/rajasharmaa/dttt/internal/platform/logger"
	"github.com/rajasharmaa/dttt/internal/platform/metrics"
	"github.com/rajasharmaa/dttt/internal/session"
	"github.com/rajasharmaa/dttt/internal/usecase"
)

// RouterDeps carries everything the router needs wired.
type RouterDeps struct {
	Auth      *usecase.AuthUsecase
	Products  *usecase.ProductUsecase
	Inquiries *usecase.InquiryUsecase
	Sessions  session.Store
	Mongo     *mongo.Client
	Metrics   *metrics.Manager // optional
	Logger    *logger.Logger

	ServiceName    string
	Environment    string
	AllowedOrigins []string
	SecureCookies  bool
	DevMode        bool
}

// NewRouter builds the full route tree: CORS -> logging -> metrics ->
// session resolution, then public routes, then the user- and admin-guarded
// groups.
func NewRouter(deps RouterDeps) *chi.Mux {
	rs := newResponder(deps.Logger, deps.DevMode)

	authHandler := NewAuthHandler(deps.Auth, deps.Metrics, rs, deps.SecureCookies)
	userHandler := NewUserHandler(deps.Auth, rs)
	productHandler := NewProductHandler(deps.Products, rs)
	inquiryHandler := NewInquiryHandler(deps.Inquiries, deps.Metrics, rs)
	adminHandler := NewAdminHandler(deps.Inquiries, deps.Metrics, rs)
	healthHandler := NewHealthHandler(deps.Mongo, deps.ServiceName, deps.Environment, rs)

	r := chi.NewRouter()
	r.Use(custommw.CORS(deps.AllowedOrigins))
	r.Use(custommw.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(custommw.Instrument(deps.Metrics))
	}
	r.Use(custommw.SessionResolver(deps.Sessions, deps.Logger))

	// Public routes.
	r.Get("/api/health", healthHandler.Health)
	r.Get("/api/info", healthHandler.Info)
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/logout", authHandler.Logout)
	r.Get("/api/auth/status", authHandler.Status)
	r.Get("/api/products", productHandler.List)
	r.Get("/api/products/category/{category}", productHandler.ListByCategory)
	r.Get("/api/products/{id}", productHandler.GetByID)
	r.Post("/api/inquiries", inquiryHandler.Create)

	// Routes requiring an authenticated user.
	r.Group(func(authRouter chi.Router) {
		authRouter.Use(custommw.RequireUser)

		authRouter.Get("/api/user/inquiries", inquiryHandler.ListMine)
		authRouter.Get("/api/users/{id}", userHandler.GetUser)
		authRouter.Put("/api/users/{id}", userHandler.UpdateUser)
	})

	// Routes requiring an authenticated admin.
	r.Group(func(adminRouter chi.Router) {
		adminRouter.Use(custommw.RequireAdmin)

		adminRouter.Get("/api/admin/inquiries", adminHandler.ListInquiries)
		adminRouter.Put("/api/admin/inquiries/{id}", adminHandler.UpdateInquiry)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rs.writeJSON(w, http.StatusNotFound, errorBody{
			Error:   "Not Found",
			Message: "Cannot " + r.Method + " " + r.URL.Path,
		})
	})

	return r
}
