package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/vfg2006/property-leads-api/infrastructure/repository"
	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/log"
	"github.com/vfg2006/property-leads-api/pkg/utils"
	"github.com/vfg2006/property-leads-api/pkg/validation"
)

const (
	ReferencePrefix = "PRP"
	maxSlugAttempts = 20
)

type NearbyQuery struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
	Limit     int
}

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type PropertyService interface {
	Create(ctx context.Context, input *domain.PropertyInput) (*domain.Property, error)
	Update(ctx context.Context, id int64, req *domain.UpdatePropertyRequest) (*domain.Property, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Property, error)
	GetPublic(ctx context.Context, slug string) (*domain.Property, error)
	List(ctx context.Context, filters domain.PropertyFilters) (*domain.Page[*domain.Property], error)
	Nearby(ctx context.Context, query NearbyQuery) ([]domain.NearbyProperty, error)
}

type Service struct {
	propertyRepo repository.PropertyRepository
}

func NewService(propertyRepo repository.PropertyRepository) PropertyService {
	return &Service{
		propertyRepo: propertyRepo,
	}
}

func (s *Service) Create(ctx context.Context, input *domain.PropertyInput) (*domain.Property, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := validation.Struct(input); err != nil {
		return nil, invalid(err)
	}

	if input.Status == "" {
		input.Status = domain.PropertyStatusDraft
	}
	if err := checkEnums(input.Type, input.Listing, input.Status); err != nil {
		return nil, err
	}
	if (input.Latitude == nil) != (input.Longitude == nil) {
		return nil, NewListingError(ErrInvalidLocation, apiErrors.ErrInvalidFormat, "latitude and longitude go together")
	}

	html, err := renderDescription(input.Description)
	if err != nil {
		return nil, NewListingError(ErrInvalidRequest, apiErrors.ErrInvalidFormat, "description")
	}

	reference, err := utils.GenerateReference(ReferencePrefix)
	if err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, input.Title, reference)
	if err != nil {
		return nil, err
	}

	property, err := s.propertyRepo.Create(ctx, &domain.Property{
		ReferenceCode:   reference,
		Title:           input.Title,
		Slug:            slug,
		Description:     input.Description,
		DescriptionHTML: html,
		Type:            input.Type,
		Listing:         input.Listing,
		Status:          input.Status,
		Area:            strings.TrimSpace(input.Area),
		Address:         strings.TrimSpace(input.Address),
		SizeSqft:        input.SizeSqft,
		PriceAED:        input.PriceAED,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		Amenities:       nonNil(input.Amenities),
		Images:          nonNil(input.Images),
		Featured:        input.Featured,
	})
	if errors.Is(err, repository.ErrConflict) {
		return nil, NewListingError(ErrSlugTaken, apiErrors.ErrConflict, slug)
	}
	if err != nil {
		return nil, databaseError(err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"property_id":        property.ID,
		"property_reference": property.ReferenceCode,
	}).Info("property created")

	return property, nil
}

// uniqueSlug derives the slug from the title, numbering it on collisions.
// After maxSlugAttempts it falls back to the reference code.
func (s *Service) uniqueSlug(ctx context.Context, title, reference string) (string, error) {
	base := domain.Slugify(title)
	if base == "" {
		return strings.ToLower(reference), nil
	}

	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		exists, err := s.propertyRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", databaseError(err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	return base + "-" + strings.ToLower(reference), nil
}

func (s *Service) Update(ctx context.Context, id int64, req *domain.UpdatePropertyRequest) (*domain.Property, error) {
	if err := validation.Struct(req); err != nil {
		return nil, invalid(err)
	}

	property, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, NewListingError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "title")
		}
		property.Title = title
	}
	if req.Description != nil {
		html, err := renderDescription(*req.Description)
		if err != nil {
			return nil, NewListingError(ErrInvalidRequest, apiErrors.ErrInvalidFormat, "description")
		}
		property.Description = *req.Description
		property.DescriptionHTML = html
	}
	if req.Type != nil {
		property.Type = *req.Type
	}
	if req.Listing != nil {
		property.Listing = *req.Listing
	}
	if req.Status != nil {
		property.Status = *req.Status
	}
	if req.Area != nil {
		property.Area = strings.TrimSpace(*req.Area)
	}
	if req.Address != nil {
		property.Address = strings.TrimSpace(*req.Address)
	}
	if req.SizeSqft != nil {
		property.SizeSqft = *req.SizeSqft
	}
	if req.PriceAED != nil {
		property.PriceAED = *req.PriceAED
	}
	if req.Latitude != nil {
		property.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		property.Longitude = req.Longitude
	}
	if req.Amenities != nil {
		property.Amenities = req.Amenities
	}
	if req.Images != nil {
		property.Images = req.Images
	}
	if req.Featured != nil {
		property.Featured = *req.Featured
	}

	if err := checkEnums(property.Type, property.Listing, property.Status); err != nil {
		return nil, err
	}

	err = s.propertyRepo.Update(ctx, property)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, notFound(id)
	case errors.Is(err, repository.ErrConflict):
		return nil, NewListingError(ErrSlugTaken, apiErrors.ErrConflict, property.Slug)
	case err != nil:
		return nil, databaseError(err)
	}

	return property, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.propertyRepo.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound(id)
	case errors.Is(err, repository.ErrConflict):
		return NewListingError(ErrPropertyInUse, apiErrors.ErrConflict, id)
	case err != nil:
		return databaseError(err)
	}

	log.ForContext(ctx).WithField("property_id", id).Info("property deleted")
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, databaseError(err)
	}

	return property, nil
}

// GetPublic looks a listing up by slug, hiding drafts.
func (s *Service) GetPublic(ctx context.Context, slug string) (*domain.Property, error) {
	property, err := s.propertyRepo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound(slug)
	}
	if err != nil {
		return nil, databaseError(err)
	}

	if !property.Status.Public() {
		return nil, notFound(slug)
	}

	return property, nil
}

func (s *Service) List(ctx context.Context, filters domain.PropertyFilters) (*domain.Page[*domain.Property], error) {
	filters.Pagination = filters.Pagination.Normalize()

	if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MinPrice > *filters.MaxPrice {
		return nil, NewListingError(ErrInvalidRequest, apiErrors.ErrInvalidFormat, "min_price > max_price")
	}
	if filters.MinSize != nil && filters.MaxSize != nil && *filters.MinSize > *filters.MaxSize {
		return nil, NewListingError(ErrInvalidRequest, apiErrors.ErrInvalidFormat, "min_size > max_size")
	}

	items, total, err := s.propertyRepo.List(ctx, filters)
	if err != nil {
		return nil, databaseError(err)
	}

	return domain.NewPage(items, total, filters.Pagination), nil
}

func (s *Service) Nearby(ctx context.Context, query NearbyQuery) ([]domain.NearbyProperty, error) {
	if query.Latitude < -90 || query.Latitude > 90 || query.Longitude < -180 || query.Longitude > 180 {
		return nil, NewListingError(ErrInvalidLocation, apiErrors.ErrInvalidFormat, nil)
	}
	if query.RadiusKm <= 0 {
		query.RadiusKm = DefaultRadiusKm
	}
	if query.RadiusKm > MaxRadiusKm {
		query.RadiusKm = MaxRadiusKm
	}
	if query.Limit <= 0 || query.Limit > domain.MaxPageSize {
		query.Limit = DefaultNearby
	}

	properties, err := s.propertyRepo.ListAvailableWithLocation(ctx)
	if err != nil {
		return nil, databaseError(err)
	}

	center := orb.Point{query.Longitude, query.Latitude}
	return withinRadius(properties, center, query.RadiusKm, query.Limit), nil
}

func checkEnums(t domain.PropertyType, l domain.ListingType, st domain.PropertyStatus) error {
	switch {
	case !t.Valid():
		return NewListingError(ErrInvalidRequest, apiErrors.ErrInvalidFormat, "type")
	case !l.Valid():
		return NewListingError(ErrInvalidRequest, apiErrors.ErrInvalidFormat, "listing")
	case !st.Valid():
		return NewListingError(ErrInvalidRequest, apiErrors.ErrInvalidFormat, "status")
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
