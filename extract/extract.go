// Package extract turns raw text fragments and rendered HTML from LinkedIn
// profile pages into typed records. The in-page collector scripts only gather
// anchor hrefs and their text fragments; all grouping, layout classification,
// and date splitting happens here so the heuristics stay unit-testable.
package extract

import (
	"regexp"
	"strings"

	"github.com/stickerdaniel/linkedin-scraper/profile"
)

// ParseWorkTimes splits a work-history date string into from, to, and
// duration. Empty fields mean the corresponding part was absent.
//
//	"2000 - Present · 26 yrs 1 mo" -> ("2000", "Present", "26 yrs 1 mo")
//	"Jan 2020 - Dec 2022"          -> ("Jan 2020", "Dec 2022", "")
//	""                             -> ("", "", "")
func ParseWorkTimes(s string) (from, to, duration string) {
	if s == "" {
		return "", "", ""
	}

	times := s
	if idx := strings.Index(s, "·"); idx >= 0 {
		times = s[:idx]
		duration = strings.TrimSpace(s[idx+len("·"):])
	}
	times = strings.TrimSpace(times)

	if left, right, ok := strings.Cut(times, " - "); ok {
		return strings.TrimSpace(left), strings.TrimSpace(right), duration
	}
	return times, "", duration
}

var educationDatesRE = regexp.MustCompile(`\s*[-–]\s*`)

// ParseEducationTimes splits an education date string into from and to.
// A single token is treated as both the start and end year.
//
//	"1973 - 1977" -> ("1973", "1977")
//	"2015"        -> ("2015", "2015")
//	""            -> ("", "")
func ParseEducationTimes(s string) (from, to string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}

	parts := educationDatesRE.Split(s, -1)
	if len(parts) >= 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return s, s
}

// RawEntry mirrors one anchor captured by an in-page collector script:
// the anchor's destination and its text fragments in DOM order.
type RawEntry struct {
	Href  string   `json:"href"`
	Parts []string `json:"parts"`
}

// Entry is the ordered text fragments of one anchor.
type Entry []string

// Group is all entries sharing one destination URL. Entries sharing an href
// may be multiple roles at one company or school.
type Group struct {
	Href    string
	Entries []Entry
}

// GroupByHref buckets raw entries by destination URL, preserving first-seen
// order so repeated runs over an unchanged DOM yield identical output.
func GroupByHref(raw []RawEntry) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, r := range raw {
		if len(r.Parts) == 0 {
			continue
		}
		i, ok := index[r.Href]
		if !ok {
			i = len(groups)
			index[r.Href] = i
			groups = append(groups, Group{Href: r.Href})
		}
		groups[i].Entries = append(groups[i].Entries, Entry(r.Parts))
	}
	return groups
}

// GroupKind classifies how the entries of one href group relate.
type GroupKind int

const (
	// GroupFlat means each entry is a standalone record.
	GroupFlat GroupKind = iota
	// GroupNested means the first entry is a company or institution summary
	// and the remaining entries are individual roles under it.
	GroupNested
)

// durationOnlyRE matches a bare tenure string such as "3 yrs 2 mos". A first
// entry whose second field is duration-only is a company summary line, not a
// role.
var durationOnlyRE = regexp.MustCompile(`^\d+\s+(?:yr|yrs|mo|mos)(?:\s+\d+\s+(?:yr|yrs|mo|mos))?$`)

// ClassifyGroup decides whether a group holds nested positions (multiple
// roles at one employer) or independent entries.
func ClassifyGroup(entries []Entry) GroupKind {
	if len(entries) > 1 && len(entries[0]) >= 2 && durationOnlyRE.MatchString(entries[0][1]) {
		return GroupNested
	}
	return GroupFlat
}

// EntryLayout names the page-layout variant implied by how many text
// fragments one entry carries. The site has shipped at least two DOM
// generations for the same logical entry; fragment count is the observable
// difference.
type EntryLayout int

const (
	// LayoutSparse is title plus dates only.
	LayoutSparse EntryLayout = iota
	// LayoutNoLocation is title, company, dates.
	LayoutNoLocation
	// LayoutFull is title, company, dates, location.
	LayoutFull
)

// ClassifyEntryLayout maps a fragment count onto a layout variant. Entries
// with fewer than three fragments classify as sparse.
func ClassifyEntryLayout(e Entry) EntryLayout {
	switch {
	case len(e) >= 4:
		return LayoutFull
	case len(e) == 3:
		return LayoutNoLocation
	default:
		return LayoutSparse
	}
}

// ExperiencesFromGroups assembles work-history records from href groups.
// Nested groups expand into one record per role, all sharing the summary
// entry's company name. Duplicates are not removed.
func ExperiencesFromGroups(groups []Group) []profile.Experience {
	var out []profile.Experience
	for _, g := range groups {
		switch ClassifyGroup(g.Entries) {
		case GroupNested:
			company := g.Entries[0][0]
			for _, e := range g.Entries[1:] {
				if len(e) == 0 {
					continue
				}
				exp := profile.Experience{
					Title:      e[0],
					Company:    company,
					CompanyURL: g.Href,
				}
				if len(e) > 1 {
					exp.From, exp.To, exp.Duration = ParseWorkTimes(e[1])
				}
				if len(e) > 2 {
					exp.Location = e[2]
				}
				out = append(out, exp)
			}
		case GroupFlat:
			for _, e := range g.Entries {
				if len(e) < 2 {
					continue
				}
				exp := profile.Experience{
					Title:      e[0],
					CompanyURL: g.Href,
				}
				switch ClassifyEntryLayout(e) {
				case LayoutFull:
					exp.Company = e[1]
					exp.From, exp.To, exp.Duration = ParseWorkTimes(e[2])
					exp.Location = e[3]
				case LayoutNoLocation:
					exp.Company = e[1]
					exp.From, exp.To, exp.Duration = ParseWorkTimes(e[2])
				case LayoutSparse:
					exp.From, exp.To, exp.Duration = ParseWorkTimes(e[1])
				}
				out = append(out, exp)
			}
		}
	}
	return out
}

var yearRE = regexp.MustCompile(`\d{4}`)

// EducationsFromGroups assembles education records from href groups. The
// second fragment is a degree unless it contains a year, in which case it is
// the date range.
func EducationsFromGroups(groups []Group) []profile.Education {
	var out []profile.Education
	for _, g := range groups {
		for _, e := range g.Entries {
			if len(e) == 0 {
				continue
			}
			edu := profile.Education{
				School:    e[0],
				SchoolURL: g.Href,
			}
			var dates string
			switch {
			case len(e) >= 3:
				edu.Degree = e[1]
				dates = e[2]
			case len(e) == 2 && yearRE.MatchString(e[1]):
				dates = e[1]
			case len(e) == 2:
				edu.Degree = e[1]
			}
			edu.From, edu.To = ParseEducationTimes(dates)
			out = append(out, edu)
		}
	}
	return out
}

// RawInterest mirrors one followed-entity anchor captured in-page.
type RawInterest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// connectionSuffixRE strips trailing connection-degree markers such as
// "· 3rd+" from interest names.
var connectionSuffixRE = regexp.MustCompile(`\s*·\s*\d+\w*\+?$`)

// CleanInterestName normalizes a followed-entity display name.
func CleanInterestName(name string) string {
	return strings.TrimSpace(connectionSuffixRE.ReplaceAllString(name, ""))
}

// InterestCategory classifies a followed entity by its URL path segment.
func InterestCategory(rawURL string) string {
	switch {
	case strings.Contains(rawURL, "/company/"):
		return "company"
	case strings.Contains(rawURL, "/school/"):
		return "school"
	case strings.Contains(rawURL, "/groups/"):
		return "group"
	case strings.Contains(rawURL, "/newsletters/"):
		return "newsletter"
	default:
		return "influencer"
	}
}

// InterestsFromRaw assembles interest records, dropping names that are too
// short or too long to be real entity names.
func InterestsFromRaw(raw []RawInterest) []profile.Interest {
	var out []profile.Interest
	for _, r := range raw {
		name := CleanInterestName(r.Name)
		if len(name) <= 2 || len(name) >= 150 {
			continue
		}
		out = append(out, profile.Interest{
			Name:     name,
			Category: InterestCategory(r.URL),
			URL:      r.URL,
		})
	}
	return out
}

// RawAccomplishment mirrors one details-page item: its visible text spans in
// order plus an optional credential link.
type RawAccomplishment struct {
	Spans         []string `json:"spans"`
	CredentialURL string   `json:"credentialUrl"`
}

var monthNames = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

func containsMonth(s string) bool {
	for _, m := range monthNames {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// AccomplishmentFromSpans classifies an item's first five text spans into
// title, issuer, date, and credential fields. Optional fields shift span
// positions between items, so classification is by content pattern rather
// than fixed index. Returns false when no usable title was found.
func AccomplishmentFromSpans(category string, raw RawAccomplishment) (profile.Accomplishment, bool) {
	acc := profile.Accomplishment{
		Category:      category,
		CredentialURL: raw.CredentialURL,
	}

	spans := raw.Spans
	if len(spans) > 5 {
		spans = spans[:5]
	}
	for i, text := range spans {
		text = strings.TrimSpace(text)
		if text == "" || len(text) > 500 {
			continue
		}
		switch {
		case i == 0:
			acc.Title = text
		case strings.Contains(text, "Issued by"):
			issuer, date, _ := strings.Cut(text, "·")
			acc.Issuer = strings.TrimSpace(strings.ReplaceAll(issuer, "Issued by", ""))
			if date != "" {
				acc.IssuedDate = strings.TrimSpace(date)
			}
		case strings.Contains(text, "Issued ") && acc.IssuedDate == "":
			acc.IssuedDate = strings.ReplaceAll(text, "Issued ", "")
		case strings.Contains(text, "Credential ID"):
			acc.CredentialID = strings.TrimSpace(strings.ReplaceAll(text, "Credential ID", ""))
		case i == 1 && acc.Issuer == "":
			acc.Issuer = text
		case containsMonth(text) && acc.IssuedDate == "":
			date, _, _ := strings.Cut(text, "·")
			acc.IssuedDate = strings.TrimSpace(date)
		}
	}

	if acc.Title == "" || len(acc.Title) > 200 {
		return profile.Accomplishment{}, false
	}
	return acc, true
}

// AccomplishmentsFromRaw assembles one category's records, deduplicating by
// title within the category.
func AccomplishmentsFromRaw(category string, raw []RawAccomplishment) []profile.Accomplishment {
	seen := make(map[string]bool)
	var out []profile.Accomplishment
	for _, r := range raw {
		acc, ok := AccomplishmentFromSpans(category, r)
		if !ok || seen[acc.Title] {
			continue
		}
		seen[acc.Title] = true
		out = append(out, acc)
	}
	return out
}

// RawContact mirrors one entry collected from the contact-info dialog.
// Link entries carry Href and Text; entries matched from the dialog's
// flattened text (birthday, phone, address) arrive pre-typed.
type RawContact struct {
	Href  string `json:"href"`
	Text  string `json:"text"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

var contactLabelRE = regexp.MustCompile(`\(([^)]+)\)`)

// ContactsFromRaw classifies dialog entries into typed contact records.
// Links are classified by scheme and path; anything else is dropped.
func ContactsFromRaw(raw []RawContact) []profile.Contact {
	var out []profile.Contact
	for _, r := range raw {
		if r.Type != "" {
			out = append(out, profile.Contact{Type: r.Type, Value: r.Value})
			continue
		}

		text := r.Text
		var label string
		if m := contactLabelRE.FindStringSubmatch(text); m != nil {
			label = m[1]
			text = strings.TrimSpace(strings.Replace(text, m[0], "", 1))
		}

		switch {
		case strings.Contains(r.Href, "/in/"):
			out = append(out, profile.Contact{Type: "linkedin", Value: r.Href, Label: label})
		case strings.Contains(r.Href, "mailto:"):
			value := strings.Replace(r.Href, "mailto:", "", 1)
			out = append(out, profile.Contact{Type: "email", Value: value, Label: label})
		case strings.HasPrefix(r.Href, "http"):
			out = append(out, profile.Contact{Type: "website", Value: text, Label: label})
		}
	}
	return out
}

// UniqueTexts deduplicates text collected from nested elements, where a
// parent's text content repeats each child's. A fragment is dropped when it
// is empty, overlong, or overlaps an already-kept fragment.
func UniqueTexts(texts []string) []string {
	var out []string
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" || len(t) >= 200 {
			continue
		}
		overlap := false
		for _, kept := range out {
			if kept == t || (len(kept) > 3 && (strings.Contains(kept, t) || strings.Contains(t, kept))) {
				overlap = true
				break
			}
		}
		if !overlap {
			out = append(out, t)
		}
	}
	return out
}
