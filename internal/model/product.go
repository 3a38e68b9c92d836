package model

// Product is the catalog item managed by the admin panel and sold on the
// storefront. Field names follow the remote API's JSON wire format.
type Product struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	OriginPrice int      `json:"origin_price"`
	Price       int      `json:"price"`
	Unit        string   `json:"unit"`
	Description string   `json:"description,omitempty"`
	Content     string   `json:"content,omitempty"`
	IsEnabled   int      `json:"is_enabled"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	ImagesURL   []string `json:"imagesUrl,omitempty"`
}

// Enabled reports whether the product is visible on the storefront.
// The remote service encodes the flag as 0/1.
func (p Product) Enabled() bool { return p.IsEnabled != 0 }
