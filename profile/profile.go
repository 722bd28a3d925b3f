// Package profile defines the record types produced by the LinkedIn scrapers.
package profile

import (
	"errors"
	"fmt"
)

// Common errors returned by the scraping packages.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoCookies        = errors.New("no cookies available")
	ErrProfileNotFound  = errors.New("profile not found")
)

// ScrapeError is a fatal orchestration failure that aborts a scrape.
// Per-section extraction failures are not ScrapeErrors; they degrade to
// empty fields and are reported alongside the partial record.
type ScrapeError struct {
	URL string
	Err error
}

func (e *ScrapeError) Error() string {
	return fmt.Sprintf("scrape %s: %v", e.URL, e.Err)
}

func (e *ScrapeError) Unwrap() error { return e.Err }

// Experience is one work-history entry. Date fields hold whatever text
// appeared on the page, split on separators; they are not calendar values.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Experience struct {
	Title       string // position title
	Company     string // institution name
	CompanyURL  string `json:",omitempty"`
	From        string `json:",omitempty"`
	To          string `json:",omitempty"`
	Duration    string `json:",omitempty"`
	Location    string `json:",omitempty"`
	Description string `json:",omitempty"`
}

// Education is one education entry.
type Education struct {
	School      string
	Degree      string `json:",omitempty"`
	SchoolURL   string `json:",omitempty"`
	From        string `json:",omitempty"`
	To          string `json:",omitempty"`
	Description string `json:",omitempty"`
}

// Interest is a followed company, school, group, newsletter, or influencer.
type Interest struct {
	Name     string
	Category string // "company", "school", "group", "newsletter", or "influencer"
	URL      string `json:",omitempty"`
}

// Accomplishment is one entry from a details sub-page such as
// certifications, honors, or publications.
type Accomplishment struct {
	Category      string
	Title         string
	Issuer        string `json:",omitempty"`
	IssuedDate    string `json:",omitempty"`
	CredentialID  string `json:",omitempty"`
	CredentialURL string `json:",omitempty"`
}

// Contact is one entry from the contact-info overlay dialog.
type Contact struct {
	Type  string // "linkedin", "email", "website", "phone", "birthday", or "address"
	Value string
	Label string `json:",omitempty"`
}

// Person aggregates everything extracted from one profile page.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Person struct {
	URL        string
	Name       string
	Location   string `json:",omitempty"`
	About      string `json:",omitempty"`
	OpenToWork bool   `json:",omitempty"`

	Experiences     []Experience     `json:",omitempty"`
	Educations      []Education      `json:",omitempty"`
	Interests       []Interest       `json:",omitempty"`
	Accomplishments []Accomplishment `json:",omitempty"`
	Contacts        []Contact        `json:",omitempty"`
}

// Company aggregates the fields extracted from a company about page.
type Company struct {
	URL          string
	Name         string
	Tagline      string `json:",omitempty"`
	About        string `json:",omitempty"`
	Website      string `json:",omitempty"`
	Industry     string `json:",omitempty"`
	Size         string `json:",omitempty"`
	Headquarters string `json:",omitempty"`
	Founded      string `json:",omitempty"`
}
