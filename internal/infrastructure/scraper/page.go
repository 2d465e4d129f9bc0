package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/scrape"
)

// Pages without a recognizable deadline get this grace window so they still
// surface in rankings instead of silently disappearing.
const fallbackPageDeadline = 30 * 24 * time.Hour

var pageDeadlineExprs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Deadline:\s*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`),
	regexp.MustCompile(`(?i)Ends on\s*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`),
	regexp.MustCompile(`(?i)Submission deadline:\s*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`),
}

// PageScraper extracts minimal metadata (title, deadline) from an arbitrary
// hackathon landing page. Covers events hosted outside Devpost.
type PageScraper struct {
	client *http.Client
	logger *slog.Logger
}

func NewPageScraper(client *http.Client, logger *slog.Logger) *PageScraper {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &PageScraper{client: client, logger: logger}
}

// Name identifies the strategy inside the registry.
func (p *PageScraper) Name() string {
	return "page"
}

// Scrape fetches the single page named by the url option.
func (p *PageScraper) Scrape(ctx context.Context, req scrape.Request) ([]domain.Hackathon, error) {
	pageURL := strings.TrimSpace(req.Options["url"])
	if pageURL == "" {
		return nil, fmt.Errorf("source %s: url option is required", req.SourceName)
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	h, err := p.ScrapeURL(ctx, pageURL, now)
	if err != nil {
		return nil, err
	}
	return []domain.Hackathon{h}, nil
}

// ScrapeURL extracts one hackathon from a landing page. The og:title meta
// tag wins over the <title> element; a missing deadline falls back to thirty
// days from now.
func (p *PageScraper) ScrapeURL(ctx context.Context, pageURL string, now time.Time) (domain.Hackathon, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Hackathon{}, fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return domain.Hackathon{}, fmt.Errorf("parse page: %w", err)
	}

	title := extractTitle(doc)
	if title == "" {
		return domain.Hackathon{}, fmt.Errorf("no usable title on %s", pageURL)
	}

	deadline, ok := extractPageDeadline(doc.Text())
	if !ok {
		deadline = now.Add(fallbackPageDeadline)
		p.warn("no deadline on page, defaulting to 30 days out", "url", pageURL, "title", title)
	}

	return domain.Hackathon{
		ID:       pageURL,
		Name:     title,
		URL:      pageURL,
		Deadline: deadline,
		Location: "Online",
		Tags:     []string{"External"},
	}, nil
}

func (p *PageScraper) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if title := strings.TrimSpace(og); title != "" {
			return title
		}
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func extractPageDeadline(text string) (time.Time, bool) {
	for _, expr := range pageDeadlineExprs {
		m := expr.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if t, err := parseDate(m[1]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
