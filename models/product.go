package models

// Product is an immutable catalog entry. Owned by the catalog data source;
// the cart/checkout code treats it as read-only.
type Product struct {
	ProductID   string   `json:"id" bson:"productid"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Handle      string   `json:"handle" bson:"handle"`
	Price       float64  `json:"price" bson:"price"`
	Images      []string `json:"images" bson:"images"`
	Category    []string `json:"category" bson:"category"`
	AgeRange    []string `json:"ageRange" bson:"ageRange"`
	InStock     bool     `json:"inStock" bson:"inStock"`
	ShopifyID   int64    `json:"shopifyId,omitempty" bson:"shopifyid,omitempty"`
}
