package domain

// Product represents an inventory item
//
// swagger:model
type Product struct {
	// The ID of the product, generated by the store
	//
	// required: true
	// example: 6650f1c2a4b5e3d2c1b0a987
	ID string `json:"id"`

	// The name of the product
	//
	// required: true
	// example: Pen
	Name string `json:"name"`

	// The unit price of the product
	//
	// required: true
	// example: 1.5
	Price float64 `json:"price"`

	// The number of units in stock
	//
	// required: true
	// example: 10
	Quantity int `json:"quantity"`

	// The description of the product
	//
	// required: true
	// example: blue pen
	Description string `json:"description"`
}

// ProductInput carries the client supplied fields of a create or update
// request. A nil field was not supplied (absent or JSON null).
type ProductInput struct {
	Name        *string  `json:"name" validate:"required,min=1"`
	Price       *float64 `json:"price" validate:"required"`
	Quantity    *int     `json:"quantity" validate:"required"`
	Description *string  `json:"description" validate:"required,min=1"`
}

// Product builds a new product from a validated input. Fields that were
// not supplied are left at their zero value.
func (in ProductInput) Product() *Product {
	p := &Product{}
	in.Apply(p)
	return p
}

// Apply overwrites the fields of p that are set in the input.
func (in ProductInput) Apply(p *Product) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
}

// IsEmpty reports whether no field is set.
func (in ProductInput) IsEmpty() bool {
	return in.Name == nil && in.Price == nil && in.Quantity == nil && in.Description == nil
}
