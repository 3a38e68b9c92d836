package model

// CartItem is one row in the shopping cart, joined with its product.
type CartItem struct {
	ID         string  `json:"id"`
	ProductID  string  `json:"product_id"`
	Qty        int     `json:"qty"`
	Total      float64 `json:"total"`
	FinalTotal float64 `json:"final_total"`
	Product    Product `json:"product"`
}

// Cart is the full cart state as returned by the remote service.
type Cart struct {
	Carts      []CartItem `json:"carts"`
	Total      float64    `json:"total"`
	FinalTotal float64    `json:"final_total"`
}

// OrderUser is the buyer contact block of an order submission.
type OrderUser struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Tel     string `json:"tel"`
	Address string `json:"address"`
}

// Order is submitted against the current cart contents.
type Order struct {
	User    OrderUser `json:"user"`
	Message string    `json:"message,omitempty"`
}
