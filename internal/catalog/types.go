package catalog

import "encoding/json"

// RawProduct is the loosely-shaped product payload the upstream commerce API
// returns. Ambiguous fields stay as json.RawMessage until classification;
// nothing here is guaranteed present.
type RawProduct struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	SKU         string `json:"sku"`
	Status      string `json:"status"`

	// string entries, identifier strings, or objects with url/imageUrl/path
	Images json.RawMessage `json:"images"`

	// bare id, plain name, or populated object
	Brand   json.RawMessage `json:"brand"`
	BrandID string          `json:"brandId"`

	// array of ids, names, or populated objects
	Categories json.RawMessage `json:"categories"`
	Category   string          `json:"category"`

	Pricing       *Pricing `json:"pricing"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	SalePrice     *float64 `json:"salePrice"`

	Inventory     []InventoryRecord `json:"inventory"`
	InStock       *bool             `json:"inStock"`
	StockQuantity int               `json:"stockQuantity"`

	// string entries or labeled objects
	Colors json.RawMessage `json:"colors"`

	Attributes     []AttributeRecord `json:"attributes"`
	AvailableSizes []string          `json:"availableSizes"`
	Sizes          []string          `json:"sizes"`
	SizeChart      *SizeChart        `json:"sizeChart"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Pricing is the upstream's normalized pricing record. When present it takes
// full precedence over the flat legacy price fields.
type Pricing struct {
	BasePrice float64  `json:"basePrice"`
	SalePrice *float64 `json:"salePrice"`
}

// InventoryRecord is one per-location/per-size stock entry.
type InventoryRecord struct {
	CurrentStock  int    `json:"currentStock"`
	ReservedStock int    `json:"reservedStock"`
	Size          string `json:"size"`
}

// AttributeRecord is one entry of the upstream's attribute list. Only color
// attributes are consulted during normalization.
type AttributeRecord struct {
	Attribute struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"attribute"`
	Value        string `json:"value"`
	DisplayValue string `json:"displayValue"`
}

// SizeChart holds size entries that arrive either as strings or as objects
// with a size field.
type SizeChart struct {
	Sizes json.RawMessage `json:"sizes"`
}

// Product is the canonical, UI-ready product view model. Constructed fresh on
// every fetch; never cached or mutated in place. SalePrice is retained so a
// second normalization pass reproduces the same result.
type Product struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	SKU         string `json:"sku,omitempty"`
	Status      string `json:"status,omitempty"`

	Images []string `json:"images"`

	Brand   string `json:"brand"`
	BrandID string `json:"brandId,omitempty"`

	Categories []string `json:"categories"`
	Category   string   `json:"category,omitempty"`

	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	SalePrice     *float64 `json:"salePrice,omitempty"`
	IsSale        bool     `json:"isSale"`

	InStock       bool `json:"inStock"`
	StockQuantity int  `json:"stockQuantity"`

	Colors         []string `json:"colors,omitempty"`
	AvailableSizes []string `json:"availableSizes,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Category is the upstream category record, passed through unnormalized.
type Category struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Parent      string          `json:"parent,omitempty"`
	Children    json.RawMessage `json:"children,omitempty"`
	IsActive    bool            `json:"isActive"`
	SortOrder   int             `json:"sortOrder,omitempty"`
	CreatedAt   string          `json:"createdAt,omitempty"`
	UpdatedAt   string          `json:"updatedAt,omitempty"`
}

// Brand is the upstream brand record, passed through unnormalized.
type Brand struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Country     string `json:"country,omitempty"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Page is the upstream's paginated response envelope.
type Page[T any] struct {
	Data       []T  `json:"data"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// FilterOptions is the upstream's facet summary for building filter UIs.
type FilterOptions struct {
	Categories []struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"categories"`
	Brands []struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"brands"`
	Sizes      []string `json:"sizes"`
	Colors     []string `json:"colors"`
	PriceRange struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"priceRange"`
}

// Customer is the storefront customer profile returned by the upstream
// auth endpoints.
type Customer struct {
	ID        string          `json:"_id"`
	UserID    string          `json:"userId,omitempty"`
	FirstName string          `json:"firstName,omitempty"`
	LastName  string          `json:"lastName,omitempty"`
	Email     string          `json:"email,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	User      json.RawMessage `json:"user,omitempty"`
	Addresses json.RawMessage `json:"addresses,omitempty"`
}

// LoginRequest is the credentials payload forwarded to the upstream.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the registration payload forwarded to the upstream.
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Phone     string `json:"phone,omitempty"`
}
