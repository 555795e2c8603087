package routes

import (
	"net/http"

	"github.com/Rakhulsr/go-catalog/app/apperrors"
	"github.com/Rakhulsr/go-catalog/app/configs"
	"github.com/Rakhulsr/go-catalog/app/handlers"
	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/middlewares"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/Rakhulsr/go-catalog/app/utils/format"
	"github.com/Rakhulsr/go-catalog/app/utils/renderer"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers on top of db and
// returns the complete API handler, middleware included.
func NewRouter(db *gorm.DB, env configs.ENV) http.Handler {
	rnd := renderer.New(env.AppEnv == "development")
	validate := helpers.NewValidator()
	currency := format.NewCurrency(env.StoreCurrency, env.StoreCurrencySymbol)

	productRepo := repositories.NewProductRepository(db)
	collectionRepo := repositories.NewCollectionRepository(db)
	megaMenuRepo := repositories.NewMegaMenuRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	productHandler := handlers.NewProductHandler(services.NewProductService(productRepo, validate), currency, rnd)
	collectionHandler := handlers.NewCollectionHandler(services.NewCollectionService(collectionRepo, validate), rnd)
	megaMenuHandler := handlers.NewMegaMenuHandler(services.NewMegaMenuService(megaMenuRepo, validate), rnd)
	orderHandler := handlers.NewOrderHandler(
		services.NewOrderService(db, productRepo, orderRepo, paymentRepo, validate, env.StoreCurrency),
		rnd,
	)
	systemHandler := handlers.NewSystemHandler(db, currency, rnd)

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = rnd.JSON(w, http.StatusNotFound, map[string]interface{}{
			"error": map[string]string{"code": string(apperrors.KindNotFound), "message": "route not found"},
		})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = rnd.JSON(w, http.StatusMethodNotAllowed, map[string]interface{}{
			"error": map[string]string{"code": "method_not_allowed", "message": r.Method + " is not allowed here"},
		})
	})

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", systemHandler.Health).Methods("GET")
	api.HandleFunc("/currency", systemHandler.Currency).Methods("GET")

	// literal segments first so they never reach the id routes
	api.HandleFunc("/products/categories", productHandler.Categories).Methods("GET")
	api.HandleFunc("/products/brands", productHandler.Brands).Methods("GET")
	api.HandleFunc("/products/featured", productHandler.SetFeatured).Methods("POST")
	api.HandleFunc("/products", productHandler.Products).Methods("GET")
	api.HandleFunc("/products", productHandler.Create).Methods("POST")
	api.HandleFunc("/products/{id}", productHandler.ProductDetail).Methods("GET")
	api.HandleFunc("/products/{id}", productHandler.Update).Methods("PUT")
	api.HandleFunc("/products/{id}", productHandler.Delete).Methods("DELETE")

	api.HandleFunc("/collections", collectionHandler.Collections).Methods("GET")
	api.HandleFunc("/collections", collectionHandler.Create).Methods("POST")
	api.HandleFunc("/collections/{id}/products", collectionHandler.AttachProducts).Methods("POST")
	api.HandleFunc("/collections/{id}/products", collectionHandler.DetachProducts).Methods("DELETE")
	api.HandleFunc("/collections/{id}", collectionHandler.Update).Methods("PUT")
	api.HandleFunc("/collections/{id}", collectionHandler.Delete).Methods("DELETE")
	api.HandleFunc("/collections/{slug}", collectionHandler.CollectionBySlug).Methods("GET")

	api.HandleFunc("/mega-menu", megaMenuHandler.Active).Methods("GET")
	api.HandleFunc("/mega-menu/all", megaMenuHandler.All).Methods("GET")
	api.HandleFunc("/mega-menu/{collectionId}", megaMenuHandler.Upsert).Methods("PUT")
	api.HandleFunc("/mega-menu/{collectionId}", megaMenuHandler.Remove).Methods("DELETE")

	api.HandleFunc("/orders", orderHandler.Create).Methods("POST")
	api.HandleFunc("/orders/{id}", orderHandler.Detail).Methods("GET")
	api.HandleFunc("/orders/{id}/payments", orderHandler.RecordPayment).Methods("POST")

	origins := env.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposedHeaders: []string{middlewares.RequestIDHeader, "Location"},
	})

	return middlewares.RequestLogger(middlewares.Recoverer(rnd)(c.Handler(router)))
}
