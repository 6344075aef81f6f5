package model

// Category is a top-level taxonomy record used for filtering and display
type Category struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	ProviderCount int64  `json:"provider_count"`
}

// Subcategory belongs to exactly one category
type Subcategory struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
}
