package listing

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/pkg/utils"
)

const (
	DefaultRadiusKm = 5
	MaxRadiusKm     = 100
	DefaultNearby   = 20
)

// withinRadius keeps the properties whose great-circle distance to center is
// at most radiusKm, closest first.
func withinRadius(properties []*domain.Property, center orb.Point, radiusKm float64, limit int) []domain.NearbyProperty {
	radius := radiusKm * 1000
	bound := geo.NewBoundAroundPoint(center, radius)

	nearby := make([]domain.NearbyProperty, 0)
	for _, p := range properties {
		if !p.HasLocation() {
			continue
		}

		point := orb.Point{*p.Longitude, *p.Latitude}
		if !bound.Contains(point) {
			continue
		}

		meters := geo.Distance(center, point)
		if meters > radius {
			continue
		}

		nearby = append(nearby, domain.NearbyProperty{
			Property:   p,
			DistanceKm: utils.RoundWithTwoDecimalPlace(meters / 1000),
		})
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	if limit > 0 && len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby
}
