package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/property-leads-api/infrastructure/repository"
	"github.com/vfg2006/property-leads-api/infrastructure/repository/mocks"
	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockPropertyRepository) {
	t.Helper()
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPropertyRepository(ctrl)
	return NewService(repo).(*Service), repo
}

func ptr[T any](v T) *T {
	return &v
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	input := func() *domain.PropertyInput {
		return &domain.PropertyInput{
			Title:       "  Grade A Office, DIFC  ",
			Description: "**Fitted** unit\n\n<script>alert(1)</script>",
			Type:        domain.PropertyTypeOffice,
			Listing:     domain.ListingTypeRent,
			Area:        "DIFC",
			SizeSqft:    2400,
			PriceAED:    480000,
		}
	}

	t.Run("renders markdown and numbers the slug", func(t *testing.T) {
		svc, repo := newTestService(t)

		repo.EXPECT().SlugExists(ctx, "grade-a-office-difc").Return(true, nil)
		repo.EXPECT().SlugExists(ctx, "grade-a-office-difc-2").Return(false, nil)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Property) (*domain.Property, error) {
			assert.Equal(t, "Grade A Office, DIFC", p.Title)
			assert.Equal(t, "grade-a-office-difc-2", p.Slug)
			assert.Regexp(t, `^PRP-[A-Z2-9]{8}$`, p.ReferenceCode)
			assert.Equal(t, domain.PropertyStatusDraft, p.Status)
			assert.Contains(t, p.DescriptionHTML, "<strong>Fitted</strong>")
			assert.NotContains(t, p.DescriptionHTML, "<script>")
			assert.NotNil(t, p.Amenities)
			p.ID = 10
			return p, nil
		})

		property, err := svc.Create(ctx, input())
		require.NoError(t, err)
		assert.Equal(t, int64(10), property.ID)
	})

	t.Run("missing title", func(t *testing.T) {
		svc, _ := newTestService(t)
		in := input()
		in.Title = " "

		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})

	t.Run("unknown type", func(t *testing.T) {
		svc, _ := newTestService(t)
		in := input()
		in.Type = "villa"

		_, err := svc.Create(ctx, in)
		var listingErr *ListingError
		require.ErrorAs(t, err, &listingErr)
		assert.Equal(t, apiErrors.ErrInvalidFormat, listingErr.Code)
		assert.Equal(t, "type", listingErr.Details)
	})

	t.Run("half a coordinate", func(t *testing.T) {
		svc, _ := newTestService(t)
		in := input()
		in.Latitude = ptr(25.2)

		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidLocation)
	})

	t.Run("slug race", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().SlugExists(ctx, gomock.Any()).Return(false, nil)
		repo.EXPECT().Create(ctx, gomock.Any()).Return(nil, repository.ErrConflict)

		_, err := svc.Create(ctx, input())
		assert.ErrorIs(t, err, ErrSlugTaken)
	})
}

func TestUniqueSlug_FallsBackToReference(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)
	repo.EXPECT().SlugExists(ctx, gomock.Any()).Return(true, nil).Times(maxSlugAttempts)

	slug, err := svc.uniqueSlug(ctx, "Retail Unit", "PRP-ABCDEFGH")
	require.NoError(t, err)
	assert.Equal(t, "retail-unit-prp-abcdefgh", slug)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("patches the given fields", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().GetByID(ctx, int64(3)).Return(&domain.Property{
			ID: 3, Title: "Warehouse", Slug: "warehouse", Type: domain.PropertyTypeWarehouse,
			Listing: domain.ListingTypeSale, Status: domain.PropertyStatusDraft, PriceAED: 100,
		}, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		property, err := svc.Update(ctx, 3, &domain.UpdatePropertyRequest{
			Status:      ptr(domain.PropertyStatusAvailable),
			Description: ptr("Near _Jebel Ali_ port"),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.PropertyStatusAvailable, property.Status)
		assert.Equal(t, "warehouse", property.Slug)
		assert.Equal(t, float64(100), property.PriceAED)
		assert.Contains(t, property.DescriptionHTML, "<em>Jebel Ali</em>")
	})

	t.Run("invalid status", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().GetByID(ctx, int64(3)).Return(&domain.Property{
			ID: 3, Type: domain.PropertyTypeWarehouse, Listing: domain.ListingTypeSale, Status: domain.PropertyStatusDraft,
		}, nil)

		_, err := svc.Update(ctx, 3, &domain.UpdatePropertyRequest{Status: ptr(domain.PropertyStatus("archived"))})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().GetByID(ctx, int64(3)).Return(nil, repository.ErrNotFound)

		_, err := svc.Update(ctx, 3, &domain.UpdatePropertyRequest{})
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		repoErr error
		want    error
	}{
		{name: "deleted", repoErr: nil, want: nil},
		{name: "missing", repoErr: repository.ErrNotFound, want: ErrPropertyNotFound},
		{name: "referenced", repoErr: repository.ErrConflict, want: ErrPropertyInUse},
		{name: "database", repoErr: errors.New("boom"), want: ErrDatabaseOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)
			repo.EXPECT().Delete(ctx, int64(8)).Return(tt.repoErr)

			err := svc.Delete(ctx, 8)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetPublic(t *testing.T) {
	ctx := context.Background()

	t.Run("hides drafts", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().GetBySlug(ctx, "retail-unit").Return(&domain.Property{Slug: "retail-unit", Status: domain.PropertyStatusDraft}, nil)

		_, err := svc.GetPublic(ctx, "Retail-Unit")
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("returns sold listings", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().GetBySlug(ctx, "retail-unit").Return(&domain.Property{Slug: "retail-unit", Status: domain.PropertyStatusSold}, nil)

		property, err := svc.GetPublic(ctx, "retail-unit")
		require.NoError(t, err)
		assert.Equal(t, domain.PropertyStatusSold, property.Status)
	})
}

func TestList_RejectsInvertedRanges(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.List(context.Background(), domain.PropertyFilters{MinPrice: ptr(500.0), MaxPrice: ptr(100.0)})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestNearby(t *testing.T) {
	ctx := context.Background()

	difc := &domain.Property{ID: 1, Title: "DIFC", Latitude: ptr(25.2138), Longitude: ptr(55.2819)}
	businessBay := &domain.Property{ID: 2, Title: "Business Bay", Latitude: ptr(25.1850), Longitude: ptr(55.2650)}
	jlt := &domain.Property{ID: 3, Title: "JLT", Latitude: ptr(25.0693), Longitude: ptr(55.1417)}
	noCoords := &domain.Property{ID: 4, Title: "Unknown"}

	t.Run("orders by distance within radius", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().ListAvailableWithLocation(ctx).Return([]*domain.Property{jlt, businessBay, noCoords, difc}, nil)

		nearby, err := svc.Nearby(ctx, NearbyQuery{Latitude: 25.2048, Longitude: 55.2708, RadiusKm: 10})
		require.NoError(t, err)
		require.Len(t, nearby, 2)
		assert.Equal(t, int64(1), nearby[0].ID)
		assert.Equal(t, int64(2), nearby[1].ID)
		assert.Less(t, nearby[0].DistanceKm, 2.0)
		assert.Greater(t, nearby[1].DistanceKm, 2.0)
	})

	t.Run("limit", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.EXPECT().ListAvailableWithLocation(ctx).Return([]*domain.Property{jlt, businessBay, difc}, nil)

		nearby, err := svc.Nearby(ctx, NearbyQuery{Latitude: 25.2048, Longitude: 55.2708, RadiusKm: 50, Limit: 1})
		require.NoError(t, err)
		require.Len(t, nearby, 1)
		assert.Equal(t, int64(1), nearby[0].ID)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Nearby(ctx, NearbyQuery{Latitude: 95, Longitude: 55})
		assert.ErrorIs(t, err, ErrInvalidLocation)
	})
}
