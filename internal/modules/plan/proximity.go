// README: Proximity filter over catalog venues; radius policy belongs to the matcher.
package plan

import (
	"github.com/CodeCary80/obviousplan/internal/modules/catalog"
	"github.com/CodeCary80/obviousplan/internal/types"
)

// VenueDistance annotates a venue with its computed distance from an origin.
type VenueDistance struct {
	Venue      catalog.Venue
	DistanceKm float64
}

// filterByProximity keeps venues with coordinates within radiusKm of origin
// and returns them nearest first. Venues without a coordinate pair are
// discarded; ties keep catalog order.
func filterByProximity(venues []catalog.Venue, origin types.Point, radiusKm float64) []VenueDistance {
	var out []VenueDistance
	for _, v := range venues {
		if !v.HasLocation() {
			continue
		}
		d := haversineKm(origin.Lat, origin.Lng, *v.Lat, *v.Lng)
		if d <= radiusKm {
			out = append(out, VenueDistance{Venue: v, DistanceKm: d})
		}
	}
	sortByDistance(out, func(vd VenueDistance) float64 { return vd.DistanceKm })
	return out
}
