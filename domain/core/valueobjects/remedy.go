package valueobjects

import (
	"errors"
	"net/url"
	"strings"
)

// DefaultRemedySearchURL is the retail search template remedy names are appended to
const DefaultRemedySearchURL = "https://www.cvs.com/search?searchTerm="

// RemedyEntry is an over-the-counter product suggestion
type RemedyEntry struct {
	Name         string `json:"name" validate:"required"`
	PurchaseLink string `json:"link" validate:"required,url"`
	Description  string `json:"description"`
}

// NewRemedyEntry builds a remedy whose link points at the default search URL
func NewRemedyEntry(name, description string) RemedyEntry {
	return RemedyEntry{
		Name:         name,
		PurchaseLink: PurchaseLinkFor(name),
		Description:  description,
	}
}

// Validate checks the remedy carries a name and a link
func (r RemedyEntry) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("remedy name cannot be empty")
	}
	if r.PurchaseLink == "" {
		return errors.New("remedy link cannot be empty")
	}
	return nil
}

// PurchaseLinkFor builds the default search link for a remedy name
func PurchaseLinkFor(name string) string {
	return BuildSearchLink(DefaultRemedySearchURL, name)
}

// BuildSearchLink appends the component-encoded name to base
func BuildSearchLink(base, name string) string {
	return base + EncodeURIComponent(name)
}

// componentSafe lists the characters url.QueryEscape escapes but a URI
// component encoder leaves alone.
var componentSafe = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s the way browsers encode a URI
// component: only A-Z a-z 0-9 - _ . ! ~ * ' ( ) pass through and spaces become %20.
func EncodeURIComponent(s string) string {
	return componentSafe.Replace(url.QueryEscape(s))
}
