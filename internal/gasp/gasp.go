// Package gasp holds the settings a GASP scraper is started with. The scraper
// itself runs on scraperwiki, this side only checks it has what it needs.
package gasp

import "errors"

var (
	ErrMissingAPIKey     = errors.New("gasp: missing sunlight api key")
	ErrMissingBioguideID = errors.New("gasp: missing bioguide id")
)

// Helper identifies one member of congress for the sunlight API.
type Helper struct {
	APIKey     string
	BioguideID string
}

func NewHelper(apiKey, bioguideID string) (Helper, error) {
	if apiKey == "" {
		return Helper{}, ErrMissingAPIKey
	}
	if bioguideID == "" {
		return Helper{}, ErrMissingBioguideID
	}
	return Helper{APIKey: apiKey, BioguideID: bioguideID}, nil
}
