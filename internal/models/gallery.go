package models

// GalleryDesign is a pre-made artwork customers can pick instead of
// uploading their own.
type GalleryDesign struct {
	BaseModel
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	IsActive    bool   `json:"is_active"`
}

// PriceSetting is an admin-editable per-size unit price. Sizes absent from
// the table fall back to the compiled-in defaults.
type PriceSetting struct {
	BaseModel
	BottleType string `gorm:"uniqueIndex" json:"bottle_type"`
	UnitPrice  int64  `json:"unit_price"`
	IsActive   bool   `json:"is_active"`
}
