package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/domain"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/service"
)

// Response messages
const (
	MessageFieldsRequired = "all fields required"
	MessageInvalidProduct = "invalid product data"
	MessageInvalidJSON    = "invalid JSON"
	MessageNotFound       = "not found"
	MessageNoProducts     = "no products found"
	MessageDeleted        = "deleted"
	MessageCreateFailed   = "create failed"
	MessageListFailed     = "list failed"
	MessageUpdateFailed   = "update failed"
	MessageDeleteFailed   = "delete failed"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *domain.Validation
	logger         hclog.Logger
}

func NewProductHandler(ps service.ProductService, v *domain.Validation, log hclog.Logger) *ProductHandler {
	return &ProductHandler{
		productService: ps,
		validator:      v,
		logger:         log,
	}
}

// GetProducts handles GET /products
//
// swagger:route GET /products products listProducts
//
// Returns all products. An empty inventory is reported with a message and
// an empty list.
//
// Responses:
//
//	200: productsResponse
//	500: listErrorResponse
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.GetProducts(r.Context())
	if err != nil {
		h.logger.Error("Error getting products", "error", err)
		writeJSON(w, http.StatusInternalServerError, ListErrorResponse{
			Message: MessageListFailed,
			Error:   domain.ErrPersistence.Error(),
		})
		return
	}

	if len(products) == 0 {
		writeJSON(w, http.StatusOK, EmptyListResponse{
			Message:  MessageNoProducts,
			Products: []*domain.Product{},
		})
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// CreateProduct handles POST /products
//
// swagger:route POST /products products createProduct
//
// Adds a new product.
//
// Responses:
//
//	201: productResponse
//	400: messageResponse
//	500: messageResponse
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	input, ok := productInput(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: MessageInvalidProduct})
		return
	}

	if errs := h.validator.Validate(&input); len(errs) > 0 {
		h.logger.Debug("Rejected product", "missing", errs.Fields())
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: MessageFieldsRequired})
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), input)
	if err != nil {
		h.logger.Error("Error adding product", "error", err)
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: MessageCreateFailed})
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/{id}
//
// swagger:route PUT /products/{id} products updateProduct
//
// Overwrites the supplied fields of an existing product and returns the
// updated product.
//
// Responses:
//
//	200: productResponse
//	400: messageResponse
//	404: messageResponse
//	500: messageResponse
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	input, ok := productInput(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, MessageResponse{Message: MessageInvalidProduct})
		return
	}

	product, err := h.productService.UpdateProduct(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeJSON(w, http.StatusNotFound, MessageResponse{Message: MessageNotFound})
			return
		}
		h.logger.Error("Error updating product", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: MessageUpdateFailed})
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/{id}
//
// swagger:route DELETE /products/{id} products deleteProduct
//
// Deletes a product.
//
// Responses:
//
//	200: messageResponse
//	404: messageResponse
//	500: messageResponse
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	_, err := h.productService.DeleteProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeJSON(w, http.StatusNotFound, MessageResponse{Message: MessageNotFound})
			return
		}
		h.logger.Error("Error deleting product", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: MessageDeleteFailed})
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: MessageDeleted})
}

// productInput retrieves the decoded product fields from the context
func productInput(r *http.Request) (domain.ProductInput, bool) {
	input, ok := r.Context().Value(ContextKeyProduct).(domain.ProductInput)
	return input, ok
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
