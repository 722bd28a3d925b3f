package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/stickerdaniel/linkedin-scraper/extract"
	"github.com/stickerdaniel/linkedin-scraper/htmlutil"
	"github.com/stickerdaniel/linkedin-scraper/profile"
	"github.com/stickerdaniel/linkedin-scraper/progress"
)

const mainWaitTimeout = 10 * time.Second

// accomplishmentSections maps details sub-page paths to record categories.
var accomplishmentSections = []struct {
	Path     string
	Category string
}{
	{"certifications", "certification"},
	{"honors", "honor"},
	{"publications", "publication"},
	{"patents", "patent"},
	{"courses", "course"},
	{"projects", "project"},
	{"languages", "language"},
	{"organizations", "organization"},
}

// Result is the outcome of a person scrape: the assembled record plus any
// per-section failures. A failed section leaves its fields empty rather than
// aborting the scrape.
type Result struct {
	Person   *profile.Person
	Failures []SectionError
}

// PersonScraper scrapes one person profile at a time over a Page.
type PersonScraper struct {
	page     Page
	logger   *slog.Logger
	reporter progress.Reporter
}

// Option configures a scraper.
type Option func(*PersonScraper)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *PersonScraper) { s.logger = logger }
}

// WithReporter sets a progress observer.
func WithReporter(r progress.Reporter) Option {
	return func(s *PersonScraper) { s.reporter = r }
}

// NewPersonScraper creates a scraper bound to a page.
func NewPersonScraper(page Page, opts ...Option) *PersonScraper {
	s := &PersonScraper{
		page:     page,
		logger:   slog.Default(),
		reporter: progress.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape fetches a person profile. Navigation and authentication failures
// abort with an error; section failures accumulate on the result.
func (s *PersonScraper) Scrape(ctx context.Context, profileURL string) (*Result, error) {
	s.reporter.Start("person", profileURL)

	// Trailing slash keeps relative sub-page resolution stable.
	profileURL = strings.TrimRight(profileURL, "/") + "/"

	res, err := s.scrape(ctx, profileURL)
	if err != nil {
		s.reporter.Error(err)
		return nil, err
	}
	s.reporter.Complete("person", res.Person)
	return res, nil
}

func (s *PersonScraper) scrape(ctx context.Context, profileURL string) (*Result, error) {
	if err := s.openProfile(ctx, profileURL); err != nil {
		return nil, &profile.ScrapeError{URL: profileURL, Err: err}
	}
	s.reporter.Progress("Navigated to profile", 10)

	if err := s.checkAuthenticated(ctx); err != nil {
		return nil, err
	}

	res := &Result{Person: &profile.Person{URL: profileURL}}

	name, location := s.nameAndLocation(ctx, res)
	res.Person.Name = name
	res.Person.Location = location
	s.reporter.Progress(fmt.Sprintf("Got name: %s", name), 20)

	res.Person.OpenToWork = s.openToWork(ctx, res)
	s.reporter.Progress("Checked open to work", 25)

	res.Person.About = s.about(ctx, res)
	s.reporter.Progress("Got about section", 30)

	// Lazy sections render on scroll.
	if err := s.page.ScrollToBottom(ctx, 3, 500*time.Millisecond); err != nil {
		s.logger.Debug("scroll failed", "error", err)
	}

	// Sections that fall back to a details sub-page leave the tab there;
	// the next main-page section must return first.
	onProfile := true

	res.Person.Experiences = s.experiences(ctx, profileURL, res, &onProfile)
	s.reporter.Progress(fmt.Sprintf("Got %d experiences", len(res.Person.Experiences)), 50)

	res.Person.Educations = s.educations(ctx, profileURL, res, &onProfile)
	s.reporter.Progress(fmt.Sprintf("Got %d educations", len(res.Person.Educations)), 60)

	res.Person.Interests = s.interests(ctx, profileURL, res, &onProfile)
	s.reporter.Progress(fmt.Sprintf("Got %d interests", len(res.Person.Interests)), 70)

	res.Person.Accomplishments = s.accomplishments(ctx, profileURL, res)
	s.reporter.Progress(fmt.Sprintf("Got %d accomplishments", len(res.Person.Accomplishments)), 85)

	res.Person.Contacts = s.contacts(ctx, profileURL, res)
	s.reporter.Progress(fmt.Sprintf("Got %d contacts", len(res.Person.Contacts)), 95)

	s.reporter.Progress("Scraping complete", 100)
	return res, nil
}

// openProfile navigates to a profile page and waits for its main content.
func (s *PersonScraper) openProfile(ctx context.Context, pageURL string) error {
	if err := s.page.Navigate(ctx, pageURL); err != nil {
		return err
	}
	return s.page.WaitVisible(ctx, "main", mainWaitTimeout)
}

// checkAuthenticated fails the scrape when the session was rejected. The
// site redirects unauthenticated visitors to an auth wall or login page.
func (s *PersonScraper) checkAuthenticated(ctx context.Context) error {
	loc, err := s.page.URL(ctx)
	if err != nil {
		return fmt.Errorf("read page location: %w", err)
	}
	for _, marker := range []string{"authwall", "/login", "/uas/", "/checkpoint/"} {
		if strings.Contains(loc, marker) {
			return profile.ErrNotAuthenticated
		}
	}
	// Removed or mistyped profiles redirect to the not-found page.
	if strings.Contains(loc, "/404") {
		return profile.ErrProfileNotFound
	}
	return nil
}

// fail records a section failure and moves on.
func (s *PersonScraper) fail(res *Result, section string, err error) {
	s.logger.Warn("section failed", "section", section, "error", err)
	res.Failures = append(res.Failures, SectionError{Section: section, Err: err})
}

func (s *PersonScraper) nameAndLocation(ctx context.Context, res *Result) (name, location string) {
	if err := s.page.Evaluate(ctx, jsHeadlineName, &name); err != nil {
		s.fail(res, "name", err)
	}
	if name == "" {
		// New layout: the h1 is gone, but the page title carries the name.
		title, err := s.page.Title(ctx)
		if err != nil {
			s.fail(res, "name", err)
		}
		if title == "" {
			// Tab title unavailable; read it out of the document instead.
			if html, herr := s.page.OuterHTML(ctx, "html"); herr == nil {
				title = htmlutil.Title(html)
			}
		}
		name = htmlutil.NameFromTitle(title)
	}
	if name == "" {
		name = "Unknown"
	}

	if err := s.page.Evaluate(ctx, jsLocation, &location); err != nil {
		s.fail(res, "location", err)
	}
	return name, location
}

func (s *PersonScraper) openToWork(ctx context.Context, res *Result) bool {
	var open bool
	if err := s.page.Evaluate(ctx, jsOpenToWork, &open); err != nil {
		s.fail(res, "open_to_work", err)
		return false
	}
	return open
}

func (s *PersonScraper) about(ctx context.Context, res *Result) string {
	var about string
	if err := s.page.Evaluate(ctx, jsAbout, &about); err != nil {
		s.fail(res, "about", err)
		return ""
	}
	if about == "" {
		// The about box may not have rendered; the profile's meta
		// description carries the summary text.
		if html, err := s.page.OuterHTML(ctx, "html"); err == nil {
			about = htmlutil.Description(html)
		}
	}
	return about
}

// returnToProfile brings the tab back to the main profile page when a
// previous section left it on a details sub-page.
func (s *PersonScraper) returnToProfile(ctx context.Context, profileURL string, onProfile *bool) error {
	if *onProfile {
		return nil
	}
	if err := s.openProfile(ctx, profileURL); err != nil {
		return err
	}
	*onProfile = true
	return nil
}

// openDetails navigates to a details sub-page, scrolling it fully rendered.
func (s *PersonScraper) openDetails(ctx context.Context, profileURL, path string) error {
	detailsURL, err := resolveURL(profileURL, path)
	if err != nil {
		return err
	}
	if err := s.openProfile(ctx, detailsURL); err != nil {
		return err
	}
	return s.page.ScrollToBottom(ctx, 5, 500*time.Millisecond)
}

func (s *PersonScraper) experiences(ctx context.Context, profileURL string, res *Result, onProfile *bool) []profile.Experience {
	if err := s.returnToProfile(ctx, profileURL, onProfile); err != nil {
		s.fail(res, "experiences", err)
		return nil
	}

	var raw []extract.RawEntry
	if err := s.page.Evaluate(ctx, sectionEntriesJS("Experience"), &raw); err != nil {
		s.fail(res, "experiences", err)
		return nil
	}
	if exps := extract.ExperiencesFromGroups(extract.GroupByHref(raw)); len(exps) > 0 {
		return exps
	}

	// Fallback: the rendered details sub-page, walked statically. Used at
	// most once and its output is taken as-is.
	if err := s.openDetails(ctx, profileURL, "details/experience/"); err != nil {
		s.fail(res, "experiences", err)
		return nil
	}
	*onProfile = false

	html, err := s.page.OuterHTML(ctx, "main")
	if err != nil {
		s.fail(res, "experiences", err)
		return nil
	}
	exps, err := extract.ExperiencesFromHTML(html)
	if err != nil {
		s.fail(res, "experiences", err)
		return nil
	}
	return exps
}

func (s *PersonScraper) educations(ctx context.Context, profileURL string, res *Result, onProfile *bool) []profile.Education {
	if err := s.returnToProfile(ctx, profileURL, onProfile); err != nil {
		s.fail(res, "educations", err)
		return nil
	}

	var raw []extract.RawEntry
	if err := s.page.Evaluate(ctx, sectionEntriesJS("Education"), &raw); err != nil {
		s.fail(res, "educations", err)
		return nil
	}
	if edus := extract.EducationsFromGroups(extract.GroupByHref(raw)); len(edus) > 0 {
		return edus
	}

	if err := s.openDetails(ctx, profileURL, "details/education/"); err != nil {
		s.fail(res, "educations", err)
		return nil
	}
	*onProfile = false

	html, err := s.page.OuterHTML(ctx, "main")
	if err != nil {
		s.fail(res, "educations", err)
		return nil
	}
	edus, err := extract.EducationsFromHTML(html)
	if err != nil {
		s.fail(res, "educations", err)
		return nil
	}
	return edus
}

func (s *PersonScraper) interests(ctx context.Context, profileURL string, res *Result, onProfile *bool) []profile.Interest {
	if err := s.returnToProfile(ctx, profileURL, onProfile); err != nil {
		s.fail(res, "interests", err)
		return nil
	}

	var raw []extract.RawInterest
	if err := s.page.Evaluate(ctx, jsInterestEntries, &raw); err != nil {
		s.fail(res, "interests", err)
		return nil
	}
	if ints := extract.InterestsFromRaw(raw); len(ints) > 0 {
		return ints
	}

	if err := s.openDetails(ctx, profileURL, "details/interests/"); err != nil {
		s.fail(res, "interests", err)
		return nil
	}
	*onProfile = false

	html, err := s.page.OuterHTML(ctx, "main")
	if err != nil {
		s.fail(res, "interests", err)
		return nil
	}
	ints, err := extract.InterestsFromHTML(html)
	if err != nil {
		s.fail(res, "interests", err)
		return nil
	}
	return ints
}

func (s *PersonScraper) accomplishments(ctx context.Context, profileURL string, res *Result) []profile.Accomplishment {
	var out []profile.Accomplishment
	for _, section := range accomplishmentSections {
		accs, err := s.accomplishmentCategory(ctx, profileURL, section.Path, section.Category)
		if err != nil {
			s.fail(res, "accomplishments/"+section.Category, err)
			continue
		}
		out = append(out, accs...)
	}
	return out
}

func (s *PersonScraper) accomplishmentCategory(ctx context.Context, profileURL, path, category string) ([]profile.Accomplishment, error) {
	detailsURL, err := resolveURL(profileURL, "details/"+path+"/")
	if err != nil {
		return nil, err
	}
	if err := s.openProfile(ctx, detailsURL); err != nil {
		return nil, err
	}

	var empty bool
	if err := s.page.Evaluate(ctx, jsEmptyDetails, &empty); err != nil {
		return nil, err
	}
	if empty {
		return nil, nil
	}

	var raw []extract.RawAccomplishment
	if err := s.page.Evaluate(ctx, jsAccomplishmentItems, &raw); err != nil {
		return nil, err
	}
	return extract.AccomplishmentsFromRaw(category, raw), nil
}

func (s *PersonScraper) contacts(ctx context.Context, profileURL string, res *Result) []profile.Contact {
	overlayURL, err := resolveURL(profileURL, "overlay/contact-info/")
	if err != nil {
		s.fail(res, "contacts", err)
		return nil
	}
	if err := s.page.Navigate(ctx, overlayURL); err != nil {
		s.fail(res, "contacts", err)
		return nil
	}
	if err := s.page.Sleep(ctx, time.Second); err != nil {
		s.fail(res, "contacts", err)
		return nil
	}

	var raw []extract.RawContact
	if err := s.page.Evaluate(ctx, jsContactInfo, &raw); err != nil {
		s.fail(res, "contacts", err)
		return nil
	}
	return extract.ContactsFromRaw(raw)
}

// resolveURL joins a relative sub-page path onto a profile URL.
func resolveURL(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse profile url: %w", err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse sub-page path: %w", err)
	}
	return b.ResolveReference(r).String(), nil
}
