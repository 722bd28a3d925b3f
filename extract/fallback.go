package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/stickerdaniel/linkedin-scraper/profile"
)

// Old-layout structural selectors. The details sub-pages render entries as
// paged list items wrapping a profile-component-entity div whose first child
// is the company logo link and whose second child holds the text spans.
const (
	entitySelector    = `div[data-view-name="profile-component-entity"]`
	pagedItemSelector = `.pvs-list__paged-list-item`
	listSelector      = `.pvs-list__container`
	ariaTextSelector  = `span[aria-hidden="true"]`
)

// detailItems enumerates entry list items from a details sub-page document,
// preferring the paged-list markers and falling back to plain list items
// under main.
func detailItems(doc *goquery.Document) *goquery.Selection {
	items := doc.Find(listSelector).First().Find(pagedItemSelector)
	if items.Length() > 0 {
		return items
	}
	return doc.Find("main ul > li, main ol > li")
}

// ariaText returns the first aria-hidden span text under sel, skipping the
// visually-hidden duplicate the page renders next to it.
func ariaText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Find(ariaTextSelector).First().Text())
}

// ExperiencesFromHTML walks an old-layout experience details page. Each item
// maps to one record, unless a nested paged list sits at the detail block's
// second child, in which case it yields one record per role under a shared
// employer.
func ExperiencesFromHTML(html string) ([]profile.Experience, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var out []profile.Experience
	detailItems(doc).Each(func(_ int, item *goquery.Selection) {
		out = append(out, experiencesFromItem(item)...)
	})
	return out, nil
}

func experiencesFromItem(item *goquery.Selection) []profile.Experience {
	entity := item.Find(entitySelector).First()
	if entity.Length() == 0 {
		if exp, ok := experienceFromLinkPair(item); ok {
			return []profile.Experience{exp}
		}
		return nil
	}

	children := entity.Children()
	if children.Length() < 2 {
		return nil
	}

	// Child 0 is the logo link, child 1 the detail block.
	companyURL, _ := children.Eq(0).Find("a").First().Attr("href")
	detail := children.Eq(1)
	detailChildren := detail.Children()
	if detailChildren.Length() == 0 {
		return nil
	}

	if detailChildren.Length() > 1 && detailChildren.Eq(1).Find(listSelector).Length() > 0 {
		return nestedExperiences(companyURL, detailChildren)
	}

	spans := outerSpans(detailChildren.Eq(0))
	if spans == nil {
		return nil
	}

	exp := profile.Experience{CompanyURL: companyURL}
	texts := make(Entry, spans.Length())
	spans.Each(func(i int, s *goquery.Selection) { texts[i] = ariaText(s) })

	if len(texts) < 1 {
		return nil
	}
	exp.Title = texts[0]
	switch ClassifyEntryLayout(texts) {
	case LayoutFull:
		exp.Company = texts[1]
		exp.From, exp.To, exp.Duration = ParseWorkTimes(texts[2])
		exp.Location = texts[3]
	case LayoutNoLocation:
		exp.Company = texts[1]
		exp.From, exp.To, exp.Duration = ParseWorkTimes(texts[2])
	case LayoutSparse:
		if len(texts) > 1 {
			exp.Company = texts[1]
		}
	}
	if detailChildren.Length() > 1 {
		exp.Description = strings.TrimSpace(detailChildren.Eq(1).Text())
	}
	return []profile.Experience{exp}
}

// experienceFromLinkPair handles items without an entity div: the first link
// is the company logo, the second carries the text fragments.
func experienceFromLinkPair(item *goquery.Selection) (profile.Experience, bool) {
	links := item.Find("a")
	if links.Length() < 2 {
		return profile.Experience{}, false
	}

	companyURL, _ := links.Eq(0).Attr("href")
	detail := links.Eq(1)

	var texts []string
	detail.Find(ariaTextSelector).Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, s.Text())
	})
	unique := UniqueTexts(texts)
	if len(unique) < 2 {
		return profile.Experience{}, false
	}

	exp := profile.Experience{
		Title:      unique[0],
		Company:    unique[1],
		CompanyURL: companyURL,
	}
	if len(unique) > 2 {
		exp.From, exp.To, exp.Duration = ParseWorkTimes(unique[2])
	}
	if len(unique) > 3 {
		exp.Location = unique[3]
	}
	return exp, true
}

func nestedExperiences(companyURL string, detailChildren *goquery.Selection) []profile.Experience {
	spans := outerSpans(detailChildren.Eq(0))
	if spans == nil || spans.Length() == 0 {
		return nil
	}
	company := ariaText(spans.Eq(0))

	var out []profile.Experience
	nested := detailChildren.Eq(1).Find(listSelector).First()
	nested.Find(pagedItemSelector).Each(func(_ int, role *goquery.Selection) {
		link := role.Find("a").First()
		linkChildren := link.Children()
		if linkChildren.Length() == 0 {
			return
		}
		roleSpans := outerSpans(linkChildren.Eq(0))
		if roleSpans == nil || roleSpans.Length() == 0 {
			return
		}

		exp := profile.Experience{
			Title:      ariaText(roleSpans.Eq(0)),
			Company:    company,
			CompanyURL: companyURL,
		}
		if roleSpans.Length() > 1 {
			exp.From, exp.To, exp.Duration = ParseWorkTimes(ariaText(roleSpans.Eq(1)))
		}
		if roleSpans.Length() > 2 {
			exp.Location = ariaText(roleSpans.Eq(2))
		}
		if linkChildren.Length() > 1 {
			exp.Description = strings.TrimSpace(linkChildren.Eq(1).Text())
		}
		out = append(out, exp)
	})
	return out
}

// outerSpans descends the fixed structural offsets from a detail block's
// first child down to the row of outer spans holding the entry's fields.
func outerSpans(firstDetail *goquery.Selection) *goquery.Selection {
	nested := firstDetail.Children()
	if nested.Length() == 0 {
		return nil
	}
	return nested.Eq(0).Children()
}

// EducationsFromHTML walks an old-layout education details page.
func EducationsFromHTML(html string) ([]profile.Education, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var out []profile.Education
	detailItems(doc).Each(func(_ int, item *goquery.Selection) {
		if edu, ok := educationFromItem(item); ok {
			out = append(out, edu)
		}
	})
	return out, nil
}

func educationFromItem(item *goquery.Selection) (profile.Education, bool) {
	entity := item.Find(entitySelector).First()
	if entity.Length() == 0 {
		return educationFromLinkPair(item)
	}

	children := entity.Children()
	if children.Length() < 2 {
		return profile.Education{}, false
	}

	schoolURL, _ := children.Eq(0).Find("a").First().Attr("href")
	detailChildren := children.Eq(1).Children()
	if detailChildren.Length() == 0 {
		return profile.Education{}, false
	}

	spans := outerSpans(detailChildren.Eq(0))
	if spans == nil || spans.Length() == 0 {
		return profile.Education{}, false
	}

	edu := profile.Education{
		School:    ariaText(spans.Eq(0)),
		SchoolURL: schoolURL,
	}
	var dates string
	switch spans.Length() {
	case 3:
		edu.Degree = ariaText(spans.Eq(1))
		dates = ariaText(spans.Eq(2))
	case 2:
		dates = ariaText(spans.Eq(1))
	}
	edu.From, edu.To = ParseEducationTimes(dates)
	if detailChildren.Length() > 1 {
		edu.Description = strings.TrimSpace(detailChildren.Eq(1).Text())
	}
	return edu, edu.School != ""
}

func educationFromLinkPair(item *goquery.Selection) (profile.Education, bool) {
	links := item.Find("a")
	if links.Length() == 0 {
		return profile.Education{}, false
	}

	schoolURL, _ := links.Eq(0).Attr("href")
	detail := links.Eq(0)
	if links.Length() > 1 {
		detail = links.Eq(1)
	}

	var texts []string
	detail.Find(ariaTextSelector).Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, s.Text())
	})
	unique := UniqueTexts(texts)
	if len(unique) == 0 {
		return profile.Education{}, false
	}

	edu := profile.Education{School: unique[0], SchoolURL: schoolURL}
	var dates string
	switch {
	case len(unique) >= 3:
		edu.Degree = unique[1]
		dates = unique[2]
	case len(unique) == 2 && yearRE.MatchString(unique[1]):
		dates = unique[1]
	case len(unique) == 2:
		edu.Degree = unique[1]
	}
	edu.From, edu.To = ParseEducationTimes(dates)
	return edu, true
}

// InterestsFromHTML walks an old-layout interests details page, classifying
// each linked entity by its URL.
func InterestsFromHTML(html string) ([]profile.Interest, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var raw []RawInterest
	detailItems(doc).Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a").First()
		if link.Length() == 0 {
			return
		}
		href, _ := link.Attr("href")
		if href == "" || strings.Contains(href, "#") {
			return
		}

		var texts []string
		item.Find(ariaTextSelector).Each(func(_ int, s *goquery.Selection) {
			texts = append(texts, s.Text())
		})
		unique := UniqueTexts(texts)
		if len(unique) == 0 {
			return
		}
		raw = append(raw, RawInterest{Name: unique[0], URL: href})
	})
	return InterestsFromRaw(raw), nil
}
