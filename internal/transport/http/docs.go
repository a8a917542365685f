// Package classification of Inventory API
//
// # Documentation for Inventory API
//
// Schemes: http
// BasePath: /api
// Version: 1.0.0
//
// Consumes:
// - application/json
// - application/x-www-form-urlencoded
//
// Produces:
// - application/json
//
// swagger:meta
package http

import "github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/domain"

// Generic message returned as the body of errors and of a deletion
// swagger:response messageResponse
type messageResponseWrapper struct {
	// Description of the outcome
	// in: body
	Body MessageResponse
}

// Failure to list the products
// swagger:response listErrorResponse
type listErrorResponseWrapper struct {
	// in: body
	Body ListErrorResponse
}

// A list of products
// swagger:response productsResponse
type productsResponseWrapper struct {
	// All current products
	// in: body
	Body []domain.Product
}

// Data structure representing a single product
// swagger:response productResponse
type productResponseWrapper struct {
	// A single product
	// in: body
	Body domain.Product
}

// swagger:parameters deleteProduct updateProduct
type productIDParamsWrapper struct {
	// The ID of the product
	// in: path
	// required: true
	ID string `json:"id"`
}

// swagger:parameters createProduct updateProduct
type productBodyParamsWrapper struct {
	// Product fields. All are required on create; on update only the
	// supplied fields are changed.
	// in: body
	// required: true
	Body domain.ProductInput
}

// MessageResponse defines the structure for API messages and errors
//
// swagger:model
type MessageResponse struct {
	// The message
	//
	// required: true
	Message string `json:"message"`
}

// ListErrorResponse is returned when the products cannot be read
//
// swagger:model
type ListErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// EmptyListResponse is returned when there are no products
//
// swagger:model
type EmptyListResponse struct {
	Message  string            `json:"message"`
	Products []*domain.Product `json:"products"`
}
