package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/talentsift/shl-recommender/internal/util"
)

const (
	defaultCatalogURL = "https://www.shl.com/solutions/products/product-catalog/"
	defaultUserAgent  = "Mozilla/5.0 (compatible; shl-recommender/1.0; +https://github.com/talentsift/shl-recommender)"
	// Scrape fetches carry an explicit timeout; the catalog site is slow.
	scrapeTimeout = 30 * time.Second
	// Delay between detail-page fetches to avoid tripping rate limits.
	detailDelay = time.Second
)

var (
	remoteCues   = regexp.MustCompile(`(?i)remote\s+testing|online\s+testing|virtual\s+assessment|test\s+remotely|remote\s+proctoring|digital\s+delivery`)
	adaptiveCues = regexp.MustCompile(`(?i)adaptive\s+testing|item\s+response\s+theory|computer[-\s]adaptive|adaptive\s+format|adaptive\s+algorithm|\bIRT\b`)
	durationCues = regexp.MustCompile(`(?i)(\d+)\s*(minutes?|mins?|hours?|hrs?)`)
)

// Scraper fetches and parses the public SHL product catalog. It also resolves
// job-description URLs into plain text for the recommendation pipeline.
type Scraper struct {
	logger      *zap.Logger
	HTTPClient  *http.Client
	UserAgent   string
	CatalogURL  string
	DetailDelay time.Duration
}

func NewScraper(logger *zap.Logger) *Scraper {
	return &Scraper{
		logger:     logger,
		CatalogURL: defaultCatalogURL,
		HTTPClient: &http.Client{
			Timeout: scrapeTimeout,
		},
		UserAgent:   defaultUserAgent,
		DetailDelay: detailDelay,
	}
}

// FetchCatalog scrapes the product catalog page and enriches each entry from
// its detail page. When the page yields no parseable entries the built-in
// fallback catalog is returned instead of an error.
func (s *Scraper) FetchCatalog(ctx context.Context) (*Assessments, error) {
	html, err := s.fetch(ctx, s.CatalogURL)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	rows, err := parseCatalogRows(html, s.CatalogURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if len(rows) == 0 {
		s.logger.Warn("no catalog entries parsed, using built-in fallback catalog")
		return FallbackAssessments(), nil
	}

	var items []*Assessment
	cfg := &mapstructure.DecoderConfig{
		Result:  &items,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(rows); err != nil {
		return nil, fmt.Errorf("decode catalog rows: %w", err)
	}

	s.logger.Info("parsed catalog entries", zap.Int("count", len(items)))

	for _, item := range items {
		if item.URL == "" {
			continue
		}
		if err := s.enrich(ctx, item); err != nil {
			s.logger.Debug("detail page enrichment failed",
				zap.String("url", item.URL),
				zap.Error(err),
			)
		}
		if err := util.WaitFor(ctx, s.DetailDelay); err != nil {
			return nil, err
		}
	}

	assessments := &Assessments{Items: items}
	assessments.Normalize()

	return assessments, nil
}

// ExtractText resolves a job-description URL into clean page text.
func (s *Scraper) ExtractText(ctx context.Context, pageURL string) (string, error) {
	html, err := s.fetch(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	doc.Find("script, style, noscript, nav, header, footer, form").Remove()

	return collapseWhitespace(doc.Find("body").Text()), nil
}

// enrich fills remote/adaptive/duration/test-type fields from the detail page.
func (s *Scraper) enrich(ctx context.Context, item *Assessment) error {
	html, err := s.fetch(ctx, item.URL)
	if err != nil {
		return err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return err
	}

	doc.Find("script, style, noscript").Remove()
	text := doc.Find("body").Text()

	if item.RemoteTesting == "" && remoteCues.MatchString(text) {
		item.RemoteTesting = SupportYes
	}
	if item.AdaptiveSupport == "" && adaptiveCues.MatchString(text) {
		item.AdaptiveSupport = SupportYes
	}
	if item.Duration == "" {
		if m := durationCues.FindString(text); m != "" {
			if minutes, ok := ParseDurationMinutes(m); ok {
				item.Duration = formatMinutes(minutes)
			}
		}
	}
	if item.TestType == "" {
		if testType := ClassifyTestType(text); testType != TestTypeUnknown {
			item.TestType = testType
		}
	}

	return nil
}

func (s *Scraper) fetch(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}

	req.Header.Set("User-Agent", s.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	s.logger.Debug("make request", zap.String("url", target))

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// parseCatalogRows extracts name/url/description triples from the catalog
// page. The markup has changed several times; the selectors go from most to
// least specific and finish with plain link analysis.
func parseCatalogRows(html, baseURL string) ([]map[string]any, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	seen := make(map[string]bool)

	add := func(name, href, desc string) {
		name = strings.TrimSpace(name)
		abs := resolveURL(base, href)
		if name == "" || abs == "" || seen[abs] {
			return
		}
		seen[abs] = true
		rows = append(rows, map[string]any{
			"name":        name,
			"url":         abs,
			"description": strings.TrimSpace(desc),
		})
	}

	cards := doc.Find(".product-item, .catalog-item, .assessment-card, .product-card, article, .card")
	if cards.Length() == 0 {
		cards = doc.Find(`div[class*="product"], div[class*="assessment"]`)
	}

	cards.Each(func(_ int, el *goquery.Selection) {
		link := el.Find("a[href]").First()
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		name := el.Find("h1, h2, h3, h4, h5, h6").First().Text()
		if strings.TrimSpace(name) == "" {
			name = link.Text()
		}
		add(name, href, el.Find("p").First().Text())
	})

	if len(rows) == 0 {
		doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
			href, _ := link.Attr("href")
			if !strings.Contains(href, "/product") && !strings.Contains(href, "/assessment") {
				return
			}
			add(link.Text(), href, "")
		})
	}

	return rows, nil
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme == "" || abs.Host == "" {
		return ""
	}
	return abs.String()
}

var whitespacePattern = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
