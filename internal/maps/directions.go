// Package maps wraps Google Maps helpers: shareable directions links and a
// geocoding client for catalog coordinate backfill.
package maps

import (
	"fmt"
	"net/url"

	"github.com/CodeCary80/obviousplan/internal/types"
)

const (
	directionsBaseURL = "https://www.google.com/maps/dir/"
	searchBaseURL     = "https://www.google.com/maps/search/"
)

// DirectionsURL builds a Google Maps directions link between two addresses.
// With no origin it degrades to a search link for the destination.
func DirectionsURL(fromAddress, toAddress string) string {
	if fromAddress != "" {
		return directionsBaseURL + url.PathEscape(fromAddress) + "/" + url.PathEscape(toAddress)
	}
	return searchBaseURL + url.PathEscape(toAddress)
}

// DirectionsURLFromCoords builds a directions link between coordinate
// pairs. With no origin it degrades to a search link for the destination.
func DirectionsURLFromCoords(from *types.Point, to types.Point) string {
	if from != nil {
		return fmt.Sprintf("%s%f,%f/%f,%f", directionsBaseURL, from.Lat, from.Lng, to.Lat, to.Lng)
	}
	return fmt.Sprintf("%s%f,%f", searchBaseURL, to.Lat, to.Lng)
}
