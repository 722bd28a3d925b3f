package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stickerdaniel/linkedin-scraper/profile"
)

func TestParseWorkTimes(t *testing.T) {
	tests := []struct {
		input    string
		from     string
		to       string
		duration string
	}{
		{"2000 - Present · 26 yrs 1 mo", "2000", "Present", "26 yrs 1 mo"},
		{"Jan 2020 - Dec 2022 · 2 yrs", "Jan 2020", "Dec 2022", "2 yrs"},
		{"Jan 2020 - Dec 2022", "Jan 2020", "Dec 2022", ""},
		{"2015 - Present", "2015", "Present", ""},
		{"2019", "2019", "", ""},
		{"", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			from, to, duration := ParseWorkTimes(tt.input)
			if from != tt.from || to != tt.to || duration != tt.duration {
				t.Errorf("ParseWorkTimes(%q) = (%q, %q, %q), want (%q, %q, %q)",
					tt.input, from, to, duration, tt.from, tt.to, tt.duration)
			}
		})
	}
}

func TestParseEducationTimes(t *testing.T) {
	tests := []struct {
		input string
		from  string
		to    string
	}{
		{"1973 - 1977", "1973", "1977"},
		{"1973 – 1977", "1973", "1977"}, // en-dash variant
		{"2015", "2015", "2015"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			from, to := ParseEducationTimes(tt.input)
			if from != tt.from || to != tt.to {
				t.Errorf("ParseEducationTimes(%q) = (%q, %q), want (%q, %q)",
					tt.input, from, to, tt.from, tt.to)
			}
		})
	}
}

func TestClassifyGroup(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    GroupKind
	}{
		{
			name: "company summary followed by roles",
			entries: []Entry{
				{"Acme Corp", "3 yrs 2 mos"},
				{"Engineer", "Jan 2020 - Present · 3 yrs"},
			},
			want: GroupNested,
		},
		{
			name:    "single standalone entry",
			entries: []Entry{{"Engineer", "Acme Corp", "2020 - Present"}},
			want:    GroupFlat,
		},
		{
			name: "two standalone entries sharing an href",
			entries: []Entry{
				{"Engineer", "Acme Corp", "2020 - 2021"},
				{"Manager", "Acme Corp", "2021 - Present"},
			},
			want: GroupFlat,
		},
		{
			name: "years only duration",
			entries: []Entry{
				{"Acme Corp", "3 yrs"},
				{"Engineer", "2020 - Present"},
			},
			want: GroupNested,
		},
		{
			name: "date range is not duration-only",
			entries: []Entry{
				{"Engineer", "Jan 2020 - Present"},
				{"Manager", "Jan 2010 - Dec 2019"},
			},
			want: GroupFlat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyGroup(tt.entries); got != tt.want {
				t.Errorf("ClassifyGroup() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExperiencesFromGroupsNested(t *testing.T) {
	groups := []Group{{
		Href: "https://www.linkedin.com/company/acme/",
		Entries: []Entry{
			{"Acme Corp", "3 yrs 2 mos"},
			{"Engineer", "Jan 2020 - Present · 3 yrs", "Berlin, Germany"},
			{"Junior Engineer", "Jan 2019 - Dec 2019 · 1 yr"},
		},
	}}

	want := []profile.Experience{
		{
			Title:      "Engineer",
			Company:    "Acme Corp",
			CompanyURL: "https://www.linkedin.com/company/acme/",
			From:       "Jan 2020",
			To:         "Present",
			Duration:   "3 yrs",
			Location:   "Berlin, Germany",
		},
		{
			Title:      "Junior Engineer",
			Company:    "Acme Corp",
			CompanyURL: "https://www.linkedin.com/company/acme/",
			From:       "Jan 2019",
			To:         "Dec 2019",
			Duration:   "1 yr",
		},
	}

	got := ExperiencesFromGroups(groups)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExperiencesFromGroups() mismatch (-want +got):\n%s", diff)
	}
}

func TestExperiencesFromGroupsFlat(t *testing.T) {
	groups := []Group{{
		Href:    "https://www.linkedin.com/company/acme/",
		Entries: []Entry{{"Engineer", "Acme Corp", "2020 - Present"}},
	}}

	want := []profile.Experience{{
		Title:      "Engineer",
		Company:    "Acme Corp",
		CompanyURL: "https://www.linkedin.com/company/acme/",
		From:       "2020",
		To:         "Present",
	}}

	got := ExperiencesFromGroups(groups)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExperiencesFromGroups() mismatch (-want +got):\n%s", diff)
	}
}

func TestExperiencesFromGroupsLayouts(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  profile.Experience
	}{
		{
			name:  "four fragments include location",
			entry: Entry{"Engineer", "Acme", "2020 - 2022", "Remote"},
			want: profile.Experience{
				Title: "Engineer", Company: "Acme",
				From: "2020", To: "2022", Location: "Remote",
				CompanyURL: "u",
			},
		},
		{
			name:  "three fragments omit location",
			entry: Entry{"Engineer", "Acme", "2020 - 2022"},
			want: profile.Experience{
				Title: "Engineer", Company: "Acme",
				From: "2020", To: "2022",
				CompanyURL: "u",
			},
		},
		{
			name:  "two fragments are title and dates",
			entry: Entry{"Engineer", "2020 - 2022"},
			want: profile.Experience{
				Title: "Engineer",
				From:  "2020", To: "2022",
				CompanyURL: "u",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExperiencesFromGroups([]Group{{Href: "u", Entries: []Entry{tt.entry}}})
			if diff := cmp.Diff([]profile.Experience{tt.want}, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Assembly from an unchanged collector output must be deterministic.
func TestGroupByHrefDeterministic(t *testing.T) {
	raw := []RawEntry{
		{Href: "a", Parts: []string{"Acme Corp", "3 yrs"}},
		{Href: "b", Parts: []string{"Engineer", "Beta Inc", "2018 - 2020"}},
		{Href: "a", Parts: []string{"Engineer", "2020 - Present"}},
	}

	first := ExperiencesFromGroups(GroupByHref(raw))
	for range 10 {
		again := ExperiencesFromGroups(GroupByHref(raw))
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("assembly not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestEducationsFromGroups(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    profile.Education
	}{
		{
			name:    "school, degree, and dates",
			entries: []Entry{{"MIT", "BSc Computer Science", "1973 - 1977"}},
			want: profile.Education{
				School: "MIT", Degree: "BSc Computer Science",
				From: "1973", To: "1977", SchoolURL: "u",
			},
		},
		{
			name:    "second fragment with year is dates",
			entries: []Entry{{"MIT", "2015"}},
			want:    profile.Education{School: "MIT", From: "2015", To: "2015", SchoolURL: "u"},
		},
		{
			name:    "second fragment without year is degree",
			entries: []Entry{{"MIT", "BSc Computer Science"}},
			want:    profile.Education{School: "MIT", Degree: "BSc Computer Science", SchoolURL: "u"},
		},
		{
			name:    "school only",
			entries: []Entry{{"MIT"}},
			want:    profile.Education{School: "MIT", SchoolURL: "u"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EducationsFromGroups([]Group{{Href: "u", Entries: tt.entries}})
			if diff := cmp.Diff([]profile.Education{tt.want}, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCleanInterestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Acme Corp · 3rd+", "Acme Corp"},
		{"Jane Doe · 2nd", "Jane Doe"},
		{"Plain Name", "Plain Name"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CleanInterestName(tt.input); got != tt.want {
				t.Errorf("CleanInterestName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInterestCategory(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.linkedin.com/company/acme/", "company"},
		{"https://www.linkedin.com/school/mit/", "school"},
		{"https://www.linkedin.com/groups/12345/", "group"},
		{"https://www.linkedin.com/newsletters/weekly-9876/", "newsletter"},
		{"https://www.linkedin.com/in/famous-person/", "influencer"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := InterestCategory(tt.url); got != tt.want {
				t.Errorf("InterestCategory(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestInterestsFromRawFiltersNames(t *testing.T) {
	raw := []RawInterest{
		{Name: "OK", URL: "https://www.linkedin.com/company/x/"}, // too short
		{Name: "Acme Corp · 3rd+", URL: "https://www.linkedin.com/company/acme/"},
	}

	want := []profile.Interest{{
		Name:     "Acme Corp",
		Category: "company",
		URL:      "https://www.linkedin.com/company/acme/",
	}}

	got := InterestsFromRaw(raw)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("InterestsFromRaw() mismatch (-want +got):\n%s", diff)
	}
}

func TestAccomplishmentFromSpans(t *testing.T) {
	tests := []struct {
		name string
		raw  RawAccomplishment
		want profile.Accomplishment
		ok   bool
	}{
		{
			name: "issuer and date on one span",
			raw: RawAccomplishment{Spans: []string{
				"Cloud Architect Certification",
				"Issued by Example Cloud · Mar 2021",
				"Credential ID ABC-123",
			}},
			want: profile.Accomplishment{
				Category:     "certification",
				Title:        "Cloud Architect Certification",
				Issuer:       "Example Cloud",
				IssuedDate:   "Mar 2021",
				CredentialID: "ABC-123",
			},
			ok: true,
		},
		{
			name: "positional issuer with separate issued date",
			raw: RawAccomplishment{Spans: []string{
				"Patent for widget assembly",
				"US Patent Office",
				"Issued Jun 2019",
			}},
			want: profile.Accomplishment{
				Category:   "certification",
				Title:      "Patent for widget assembly",
				Issuer:     "US Patent Office",
				IssuedDate: "Jun 2019",
			},
			ok: true,
		},
		{
			name: "month-name span becomes date",
			raw: RawAccomplishment{Spans: []string{
				"Conference Talk",
				"GopherCon",
				"Nov 2023 · Berlin",
			}},
			want: profile.Accomplishment{
				Category:   "certification",
				Title:      "Conference Talk",
				Issuer:     "GopherCon",
				IssuedDate: "Nov 2023",
			},
			ok: true,
		},
		{
			name: "empty title rejected",
			raw:  RawAccomplishment{Spans: []string{""}},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AccomplishmentFromSpans("certification", tt.raw)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAccomplishmentsFromRawDedupesByTitle(t *testing.T) {
	raw := []RawAccomplishment{
		{Spans: []string{"Cert A", "Issuer One"}},
		{Spans: []string{"Cert A", "Issuer Two"}},
		{Spans: []string{"Cert B"}},
	}

	got := AccomplishmentsFromRaw("certification", raw)
	if len(got) != 2 {
		t.Fatalf("got %d accomplishments, want 2", len(got))
	}
	if got[0].Title != "Cert A" || got[1].Title != "Cert B" {
		t.Errorf("titles = %q, %q", got[0].Title, got[1].Title)
	}
	if got[0].Issuer != "Issuer One" {
		t.Errorf("first occurrence should win, got issuer %q", got[0].Issuer)
	}
}

func TestContactsFromRaw(t *testing.T) {
	raw := []RawContact{
		{Href: "https://www.linkedin.com/in/johndoe", Text: "johndoe"},
		{Href: "mailto:john@example.com", Text: "john@example.com"},
		{Href: "https://example.com", Text: "example.com (Personal)"},
		{Type: "birthday", Value: "April 1"},
		{Type: "phone", Value: "+49 151 1234567"},
		{Href: "ftp://ignored", Text: "ignored"},
	}

	want := []profile.Contact{
		{Type: "linkedin", Value: "https://www.linkedin.com/in/johndoe"},
		{Type: "email", Value: "john@example.com"},
		{Type: "website", Value: "example.com", Label: "Personal"},
		{Type: "birthday", Value: "April 1"},
		{Type: "phone", Value: "+49 151 1234567"},
	}

	got := ContactsFromRaw(raw)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ContactsFromRaw() mismatch (-want +got):\n%s", diff)
	}
}

func TestUniqueTexts(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "parent text repeats child text",
			input: []string{"Engineer at Acme", "Engineer at Acme", "Acme"},
			want:  []string{"Engineer at Acme"},
		},
		{
			name:  "independent fragments survive",
			input: []string{"Engineer", "2020 - Present", "Berlin"},
			want:  []string{"Engineer", "2020 - Present", "Berlin"},
		},
		{
			name:  "blank and oversize dropped",
			input: []string{"  ", string(make([]byte, 250)), "Engineer"},
			want:  []string{"Engineer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UniqueTexts(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("UniqueTexts() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
