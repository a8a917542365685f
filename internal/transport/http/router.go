package http

import (
	"net/http"

	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/api"
	websocketTransport "github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/transport/websocket"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/web"
	"golang.org/x/time/rate"
)

// RouterConfig carries the settings of the HTTP surface
type RouterConfig struct {
	// BasePath prefixes the product routes, e.g. /api
	BasePath string
	CORS     *CORSConfig
	// Limiter bounds the total request rate; nil disables limiting
	Limiter *rate.Limiter
}

// NewRouter binds the routes and wraps them in the middleware chain. From
// the outside in: recovery, logging, CORS, compression, JSON syntax check,
// rate limiting, form decoding.
func NewRouter(
	ph *ProductHandler,
	wsh *websocketTransport.Handler,
	logger hclog.Logger,
	cfg RouterConfig,
) (http.Handler, error) {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, MessageResponse{Message: MessageNotFound})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, MessageResponse{Message: "method not allowed"})
	})

	mw := NewMiddleware(logger, cfg.CORS, cfg.Limiter)

	products := cfg.BasePath + "/products"
	product := products + "/{id}"

	router.HandleFunc(products, ph.GetProducts).Methods(http.MethodGet)

	// Routes carrying a product body
	postRouter := router.Methods(http.MethodPost).Subrouter()
	postRouter.HandleFunc(products, ph.CreateProduct)
	postRouter.Use(mw.ProductInputMiddleware)

	putRouter := router.Methods(http.MethodPut).Subrouter()
	putRouter.HandleFunc(product, ph.UpdateProduct)
	putRouter.Use(mw.ProductInputMiddleware)

	router.HandleFunc(product, ph.DeleteProduct).Methods(http.MethodDelete)

	// Live product events for the UI
	router.HandleFunc("/ws", wsh.HandleWebSocket).Methods(http.MethodGet)

	// API documentation
	router.HandleFunc("/swagger.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(api.Spec)
	}).Methods(http.MethodGet)
	redoc := middleware.Redoc(middleware.RedocOpts{SpecURL: "/swagger.yaml"}, nil)
	router.Handle("/docs", redoc).Methods(http.MethodGet)

	// UI
	ui, err := web.Handler(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	router.Handle("/", ui).Methods(http.MethodGet)

	var h http.Handler = router
	h = mw.FormBodyMiddleware(h)
	h = mw.RateLimitMiddleware(h)
	h = mw.JSONBodyMiddleware(h)
	h = mw.CompressionMiddleware(h)
	h = mw.CORSMiddleware(h)
	h = mw.LoggingMiddleware(h)
	h = mw.RecoveryMiddleware(h)

	return h, nil
}
