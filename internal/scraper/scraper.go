package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/chromedp/chromedp"

	"github.com/Anishcapital/Arbitrage/internal/pkg/config"
)

const (
	defaultGroupSelector   = "div.game-markets-group"
	defaultHeadingSelector = ".game-markets-group-header__name"
	defaultUserAgent       = "Mozilla/5.0 (Linux; Android 10; Pixel 2) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36"
)

var (
	slugPattern     = regexp.MustCompile(`\d+-(.+)$`)
	fileNamePattern = regexp.MustCompile(`[^a-z0-9. ]+`)
)

// marketBlock is one market section as read off the page.
type marketBlock struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Scraper captures bookmaker event pages into the event-folder /
// market-file text layout the matching stage consumes: one folder per
// event, one .txt per market whose body alternates outcome label and
// odds lines.
type Scraper struct {
	cfg config.ScraperConfig
}

func New(cfg config.ScraperConfig) *Scraper {
	if cfg.GroupSelector == "" {
		cfg.GroupSelector = defaultGroupSelector
	}
	if cfg.HeadingSelector == "" {
		cfg.HeadingSelector = defaultHeadingSelector
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return &Scraper{cfg: cfg}
}

// Run captures every event URL in the links file. One failed link is
// logged and skipped; only an unreadable links file aborts the run.
func (s *Scraper) Run(ctx context.Context) error {
	links, err := readLinks(s.cfg.LinksFile)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		return fmt.Errorf("no event links in %s", s.cfg.LinksFile)
	}
	if err := os.MkdirAll(s.cfg.OutputRoot, 0o755); err != nil {
		return fmt.Errorf("failed to create output root: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(s.cfg.UserAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	for i, link := range links {
		slog.Info("capturing event page", "index", i+1, "total", len(links), "url", link)
		if err := s.captureEvent(browserCtx, link); err != nil {
			slog.Warn("failed to capture event page", "url", link, "error", err)
		}
	}
	return nil
}

func (s *Scraper) captureEvent(ctx context.Context, link string) error {
	event := EventNameFromURL(link)
	dir := filepath.Join(s.cfg.OutputRoot, event)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create event folder: %w", err)
	}

	pageCtx, cancel := context.WithTimeout(ctx, s.cfg.PageTimeout)
	defer cancel()

	var blocks []marketBlock
	err := chromedp.Run(pageCtx,
		chromedp.Navigate(link),
		chromedp.Sleep(s.cfg.SettleDelay),
		// Odds blocks render lazily; scroll the page out before reading.
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(s.cfg.SettleDelay),
		chromedp.Evaluate(s.collectScript(), &blocks),
	)
	if err != nil {
		return fmt.Errorf("failed to read market blocks: %w", err)
	}

	saved := 0
	for _, block := range blocks {
		name := marketFileName(block.Name)
		if name == "" || strings.TrimSpace(block.Text) == "" {
			continue
		}
		path := filepath.Join(dir, name+".txt")
		if err := os.WriteFile(path, []byte(block.Text), 0o644); err != nil {
			slog.Warn("failed to save market file", "path", path, "error", err)
			continue
		}
		saved++
	}
	slog.Info("event captured", "event", event, "markets", saved)
	return nil
}

// collectScript returns the JS that reads every market block's heading
// and inner text off the page.
func (s *Scraper) collectScript() string {
	return fmt.Sprintf(`Array.from(document.querySelectorAll(%q)).map(function(block) {
		var heading = block.querySelector(%q);
		return {
			name: heading ? heading.innerText : "",
			text: block.innerText
		};
	})`, s.cfg.GroupSelector, s.cfg.HeadingSelector)
}

// EventNameFromURL derives the event folder name from the URL slug.
// Bookmaker event URLs end in "<id>-<team-a>-<team-b>"; the id is
// dropped and hyphens become spaces.
func EventNameFromURL(link string) string {
	last := link
	if u, err := url.Parse(link); err == nil {
		path := strings.TrimRight(u.Path, "/")
		if idx := strings.LastIndex(path, "/"); idx >= 0 {
			last = path[idx+1:]
		} else {
			last = path
		}
	}
	if m := slugPattern.FindStringSubmatch(last); m != nil {
		return strings.ReplaceAll(m[1], "-", " ")
	}
	return marketFileName(last)
}

// marketFileName normalizes a scraped heading into a safe file name.
func marketFileName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = fileNamePattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func readLinks(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read links file: %w", err)
	}
	var links []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			links = append(links, line)
		}
	}
	return links, nil
}
