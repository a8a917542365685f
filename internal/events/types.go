package events

type ProductAdded struct {
	ProductID string `json:"product_id"`
}

type ProductUpdated struct {
	ProductID string `json:"product_id"`
}

type ProductDeleted struct {
	ProductID string `json:"product_id"`
}
