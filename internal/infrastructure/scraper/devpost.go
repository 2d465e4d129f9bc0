package scraper

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/TruthStack/hackathon-deadline-tracker/internal/domain"
	"github.com/TruthStack/hackathon-deadline-tracker/internal/scrape"
)

const (
	devpostBaseURL = "https://devpost.com"

	// Devpost serves a bot-detection page to unknown clients, so requests
	// carry a plain browser user agent.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Matches "City, Country" shapes; the optional Featured prefix comes from
// promoted challenge cards.
var locationExpr = regexp.MustCompile(`(?:Featured\s+)?([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s*(?:[A-Z][a-z]+|[A-Z]{2,})\s*(?:,\s*[A-Z][a-z]+)?)`)

// DevpostScraper crawls a profile's challenges pages and extracts the
// hackathons the account is registered for.
type DevpostScraper struct {
	client   *http.Client
	baseURL  string
	maxPages int
}

// NewDevpostScraper wires an HTTP client; pagination stops after three pages.
func NewDevpostScraper(client *http.Client) *DevpostScraper {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &DevpostScraper{client: client, baseURL: devpostBaseURL, maxPages: 3}
}

// Name identifies the strategy inside the registry.
func (d *DevpostScraper) Name() string {
	return "devpost"
}

// Scrape walks the profile's challenge pages and returns deduplicated
// hackathons whose deadline is still ahead, earliest deadline first.
func (d *DevpostScraper) Scrape(ctx context.Context, req scrape.Request) ([]domain.Hackathon, error) {
	username := strings.TrimSpace(req.Options["username"])
	if username == "" {
		return nil, fmt.Errorf("source %s: devpost username is not configured", req.SourceName)
	}

	collected := make([]domain.Hackathon, 0)
	seen := map[string]struct{}{}

	for page := 1; page <= d.maxPages; page++ {
		doc, err := d.fetchDocument(ctx, d.pageURL(username, page))
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		pageHackathons := d.extractHackathons(doc)
		if len(pageHackathons) == 0 {
			break
		}
		for _, h := range pageHackathons {
			if _, ok := seen[h.ID]; ok {
				continue
			}
			seen[h.ID] = struct{}{}
			collected = append(collected, h)
		}
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	active := make([]domain.Hackathon, 0, len(collected))
	for _, h := range collected {
		if h.Deadline.After(now) {
			active = append(active, h)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].Deadline.Before(active[j].Deadline)
	})

	return active, nil
}

func (d *DevpostScraper) pageURL(username string, page int) string {
	u := fmt.Sprintf("%s/%s/challenges", d.baseURL, username)
	if page > 1 {
		u = fmt.Sprintf("%s?page=%d", u, page)
	}
	return u
}

func (d *DevpostScraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("devpost returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func (d *DevpostScraper) extractHackathons(doc *goquery.Document) []domain.Hackathon {
	var collected []domain.Hackathon

	doc.Find(`a[href*="ref_content"]`).Each(func(_ int, link *goquery.Selection) {
		if h, ok := d.parseChallengeLink(link); ok {
			collected = append(collected, h)
		}
	})

	return collected
}

// parseChallengeLink turns one challenge card anchor into a hackathon. Cards
// without a recognizable deadline are dropped here; navigation links never
// make it past the length check.
func (d *DevpostScraper) parseChallengeLink(link *goquery.Selection) (domain.Hackathon, bool) {
	fullText := collapseSpace(link.Text())
	if len(fullText) < 20 {
		return domain.Hackathon{}, false
	}
	if strings.Contains(fullText, "Browse hackathons") || strings.Contains(fullText, "Host a hackathon") {
		return domain.Hackathon{}, false
	}

	href, _ := link.Attr("href")
	if href == "" || !strings.Contains(href, "ref_content") {
		return domain.Hackathon{}, false
	}
	challengeURL := d.cleanURL(href)

	name := strings.TrimSpace(link.Find("h2, h5, h3").First().Text())
	if name == "" {
		name = strings.TrimSpace(strings.TrimPrefix(firstLine(link.Text()), "Featured"))
	}
	if len(name) < 3 {
		return domain.Hackathon{}, false
	}

	deadline, ok := ParseDeadline(fullText)
	if !ok {
		return domain.Hackathon{}, false
	}

	return domain.Hackathon{
		ID:       challengeURL,
		Name:     name,
		URL:      challengeURL,
		Deadline: deadline,
		Prize:    ParsePrize(fullText),
		Location: parseLocation(fullText),
	}, true
}

// cleanURL strips tracking query parameters and absolutizes relative hrefs.
func (d *DevpostScraper) cleanURL(href string) string {
	href = strings.SplitN(href, "?", 2)[0]
	if !strings.HasPrefix(href, "http") {
		href = d.baseURL + href
	}
	return href
}

func parseLocation(text string) string {
	if strings.Contains(text, "Online") {
		return "Online"
	}
	if m := locationExpr.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return "Unknown"
}

// collapseSpace joins all whitespace runs (including newlines between HTML
// nodes) into single spaces so the text patterns can match across elements.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
