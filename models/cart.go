package models

// SelectedOption is a human-readable variant descriptor such as size or color.
type SelectedOption struct {
	Name  string `json:"name" bson:"name"`
	Value string `json:"value" bson:"value"`
}

// LineItem is one cart entry. Key is the identity used for merge decisions:
// the variant ID when the product has variants, the product ID otherwise.
// Quantity is always >= 1; a quantity reduced to zero removes the item.
type LineItem struct {
	Key       string           `json:"key" bson:"key"`
	ProductID string           `json:"productId" bson:"productid"`
	Title     string           `json:"title" bson:"title"`
	Price     float64          `json:"price" bson:"price"`
	Quantity  int              `json:"quantity" bson:"quantity"`
	Options   []SelectedOption `json:"options,omitempty" bson:"options,omitempty"`
}

// CartDocument is the persisted cart representation: the ordered line-item
// list for one cart ID. It must round-trip losslessly.
type CartDocument struct {
	CartID string     `json:"cartId" bson:"cartid"`
	Items  []LineItem `json:"items" bson:"items"`
}
