package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/stickerdaniel/linkedin-scraper/profile"
	"github.com/stickerdaniel/linkedin-scraper/progress"
)

// jsCompanyAbout reads the company about page: name and tagline from the top
// card, the overview paragraph, and the labeled definition-list facts.
const jsCompanyAbout = `(() => {
	const result = { name: '', tagline: '', about: '', website: '',
		industry: '', size: '', headquarters: '', founded: '' };
	const h1 = document.querySelector('h1');
	if (h1) result.name = h1.textContent.trim();
	const tagline = document.querySelector('p.org-top-card-summary__tagline');
	if (tagline) result.tagline = tagline.textContent.trim();
	for (const h2 of document.querySelectorAll('h2')) {
		if (h2.textContent.trim() !== 'Overview') continue;
		const section = h2.closest('section');
		const p = section ? section.querySelector('p') : null;
		if (p) result.about = p.textContent.trim();
		break;
	}
	for (const dt of document.querySelectorAll('main dl dt')) {
		const label = dt.textContent.trim().toLowerCase();
		let dd = dt.nextElementSibling;
		while (dd && dd.tagName !== 'DD') dd = dd.nextElementSibling;
		if (!dd) continue;
		const value = dd.textContent.trim().split('\n')[0].trim();
		if (label.includes('website')) result.website = value;
		else if (label.includes('industry')) result.industry = value;
		else if (label.includes('company size')) result.size = value;
		else if (label.includes('headquarters')) result.headquarters = value;
		else if (label.includes('founded')) result.founded = value;
	}
	return result;
})()`

// companyFacts mirrors the jsCompanyAbout result shape.
type companyFacts struct {
	Name         string `json:"name"`
	Tagline      string `json:"tagline"`
	About        string `json:"about"`
	Website      string `json:"website"`
	Industry     string `json:"industry"`
	Size         string `json:"size"`
	Headquarters string `json:"headquarters"`
	Founded      string `json:"founded"`
}

// CompanyScraper scrapes company about pages over a Page.
type CompanyScraper struct {
	page     Page
	logger   *slog.Logger
	reporter progress.Reporter
}

// NewCompanyScraper creates a scraper bound to a page.
func NewCompanyScraper(page Page, opts ...Option) *CompanyScraper {
	ps := NewPersonScraper(page, opts...)
	return &CompanyScraper{page: page, logger: ps.logger, reporter: ps.reporter}
}

// Scrape fetches a company record from the about sub-page.
func (s *CompanyScraper) Scrape(ctx context.Context, companyURL string) (*profile.Company, error) {
	s.reporter.Start("company", companyURL)

	companyURL = strings.TrimRight(companyURL, "/") + "/"
	aboutURL, err := resolveURL(companyURL, "about/")
	if err != nil {
		s.reporter.Error(err)
		return nil, err
	}

	company, err := s.scrape(ctx, companyURL, aboutURL)
	if err != nil {
		s.reporter.Error(err)
		return nil, err
	}
	s.reporter.Complete("company", company)
	return company, nil
}

func (s *CompanyScraper) scrape(ctx context.Context, companyURL, aboutURL string) (*profile.Company, error) {
	if err := s.page.Navigate(ctx, aboutURL); err != nil {
		return nil, &profile.ScrapeError{URL: companyURL, Err: err}
	}
	if err := s.page.WaitVisible(ctx, "main", mainWaitTimeout); err != nil {
		return nil, &profile.ScrapeError{URL: companyURL, Err: err}
	}
	s.reporter.Progress("Navigated to company page", 20)

	loc, err := s.page.URL(ctx)
	if err != nil {
		return nil, fmt.Errorf("read page location: %w", err)
	}
	if strings.Contains(loc, "authwall") || strings.Contains(loc, "/login") {
		return nil, profile.ErrNotAuthenticated
	}
	if strings.Contains(loc, "/404") {
		return nil, profile.ErrProfileNotFound
	}

	var facts companyFacts
	if err := s.page.Evaluate(ctx, jsCompanyAbout, &facts); err != nil {
		return nil, &profile.ScrapeError{URL: companyURL, Err: err}
	}
	s.reporter.Progress("Read company facts", 60)

	if facts.Name == "" {
		// The scripted read came back empty; walk the rendered HTML instead.
		html, err := s.page.OuterHTML(ctx, "main")
		if err != nil {
			return nil, &profile.ScrapeError{URL: companyURL, Err: err}
		}
		facts, err = companyFromHTML(html)
		if err != nil {
			return nil, &profile.ScrapeError{URL: companyURL, Err: err}
		}
	}

	s.logger.InfoContext(ctx, "company scraped", "name", facts.Name, "url", companyURL)
	s.reporter.Progress("Scraping complete", 100)

	return &profile.Company{
		URL:          companyURL,
		Name:         facts.Name,
		Tagline:      facts.Tagline,
		About:        facts.About,
		Website:      facts.Website,
		Industry:     facts.Industry,
		Size:         facts.Size,
		Headquarters: facts.Headquarters,
		Founded:      facts.Founded,
	}, nil
}

// companyFromHTML extracts company facts from rendered about-page HTML.
func companyFromHTML(html string) (companyFacts, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return companyFacts{}, err
	}

	var facts companyFacts
	facts.Name = strings.TrimSpace(doc.Find("h1").First().Text())
	facts.Tagline = strings.TrimSpace(doc.Find("p.org-top-card-summary__tagline").First().Text())

	doc.Find("h2").EachWithBreak(func(_ int, h2 *goquery.Selection) bool {
		if strings.TrimSpace(h2.Text()) != "Overview" {
			return true
		}
		facts.About = strings.TrimSpace(h2.Closest("section").Find("p").First().Text())
		return false
	})

	doc.Find("dl dt").Each(func(_ int, dt *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(dt.Text()))
		value := strings.TrimSpace(dt.NextFiltered("dd").Text())
		if idx := strings.IndexByte(value, '\n'); idx >= 0 {
			value = strings.TrimSpace(value[:idx])
		}
		switch {
		case strings.Contains(label, "website"):
			facts.Website = value
		case strings.Contains(label, "industry"):
			facts.Industry = value
		case strings.Contains(label, "company size"):
			facts.Size = value
		case strings.Contains(label, "headquarters"):
			facts.Headquarters = value
		case strings.Contains(label, "founded"):
			facts.Founded = value
		}
	})

	return facts, nil
}
