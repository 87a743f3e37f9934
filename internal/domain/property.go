package domain

import (
	"strings"
	"time"
	"unicode"
)

type PropertyType string

const (
	PropertyTypeOffice    PropertyType = "office"
	PropertyTypeRetail    PropertyType = "retail"
	PropertyTypeWarehouse PropertyType = "warehouse"
	PropertyTypeLand      PropertyType = "land"
	PropertyTypeShowroom  PropertyType = "showroom"
)

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeOffice, PropertyTypeRetail, PropertyTypeWarehouse, PropertyTypeLand, PropertyTypeShowroom:
		return true
	}
	return false
}

type ListingType string

const (
	ListingTypeSale ListingType = "sale"
	ListingTypeRent ListingType = "rent"
)

func (t ListingType) Valid() bool {
	return t == ListingTypeSale || t == ListingTypeRent
}

type PropertyStatus string

const (
	PropertyStatusDraft      PropertyStatus = "draft"
	PropertyStatusAvailable  PropertyStatus = "available"
	PropertyStatusUnderOffer PropertyStatus = "under_offer"
	PropertyStatusSold       PropertyStatus = "sold"
	PropertyStatusLeased     PropertyStatus = "leased"
)

func (s PropertyStatus) Valid() bool {
	switch s {
	case PropertyStatusDraft, PropertyStatusAvailable, PropertyStatusUnderOffer, PropertyStatusSold, PropertyStatusLeased:
		return true
	}
	return false
}

// Public reports whether the listing may be shown on the marketing site.
func (s PropertyStatus) Public() bool {
	return s != PropertyStatusDraft
}

type Property struct {
	ID              int64          `json:"id"`
	ReferenceCode   string         `json:"reference_code"`
	Title           string         `json:"title"`
	Slug            string         `json:"slug"`
	Description     string         `json:"description"`
	DescriptionHTML string         `json:"description_html"`
	Type            PropertyType   `json:"type"`
	Listing         ListingType    `json:"listing"`
	Status          PropertyStatus `json:"status"`
	Area            string         `json:"area"`
	Address         string         `json:"address"`
	SizeSqft        float64        `json:"size_sqft"`
	PriceAED        float64        `json:"price_aed"`
	Latitude        *float64       `json:"latitude"`
	Longitude       *float64       `json:"longitude"`
	Amenities       []string       `json:"amenities"`
	Images          []string       `json:"images"`
	Featured        bool           `json:"featured"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (p *Property) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}

type PropertyInput struct {
	Title       string         `json:"title" validate:"required,max=200"`
	Description string         `json:"description"`
	Type        PropertyType   `json:"type" validate:"required"`
	Listing     ListingType    `json:"listing" validate:"required"`
	Status      PropertyStatus `json:"status"`
	Area        string         `json:"area" validate:"required"`
	Address     string         `json:"address"`
	SizeSqft    float64        `json:"size_sqft" validate:"gte=0"`
	PriceAED    float64        `json:"price_aed" validate:"gte=0"`
	Latitude    *float64       `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64       `json:"longitude" validate:"omitempty,longitude"`
	Amenities   []string       `json:"amenities"`
	Images      []string       `json:"images" validate:"dive,url"`
	Featured    bool           `json:"featured"`
}

type UpdatePropertyRequest struct {
	Title       *string         `json:"title" validate:"omitempty,max=200"`
	Description *string         `json:"description"`
	Type        *PropertyType   `json:"type"`
	Listing     *ListingType    `json:"listing"`
	Status      *PropertyStatus `json:"status"`
	Area        *string         `json:"area"`
	Address     *string         `json:"address"`
	SizeSqft    *float64        `json:"size_sqft" validate:"omitempty,gte=0"`
	PriceAED    *float64        `json:"price_aed" validate:"omitempty,gte=0"`
	Latitude    *float64        `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64        `json:"longitude" validate:"omitempty,longitude"`
	Amenities   []string        `json:"amenities"`
	Images      []string        `json:"images" validate:"omitempty,dive,url"`
	Featured    *bool           `json:"featured"`
}

type PropertyFilters struct {
	Type       *PropertyType
	Listing    *ListingType
	Statuses   []PropertyStatus
	Area       string
	MinPrice   *float64
	MaxPrice   *float64
	MinSize    *float64
	MaxSize    *float64
	Featured   *bool
	PublicOnly bool
	Pagination
}

type NearbyProperty struct {
	*Property
	DistanceKm float64 `json:"distance_km"`
}

// Slugify builds a URL-safe slug: lower-case ASCII letters and digits joined by single dashes.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
