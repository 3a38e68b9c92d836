package model

// Pagination describes the position of one page inside a paginated listing.
// Invariants (maintained by the remote service, re-checked in tests):
// HasPre == CurrentPage > 1, HasNext == CurrentPage < TotalPages.
type Pagination struct {
	TotalPages  int    `json:"total_pages"`
	CurrentPage int    `json:"current_page"`
	HasPre      bool   `json:"has_pre"`
	HasNext     bool   `json:"has_next"`
	Category    string `json:"category,omitempty"`
}
