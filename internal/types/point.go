// README: Common coordinate value object used across modules.
package types

// Point is a WGS84 coordinate pair in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// InRange reports whether the point lies within valid coordinate ranges
// (lat [-90,90], lng [-180,180]).
func (p Point) InRange() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}
