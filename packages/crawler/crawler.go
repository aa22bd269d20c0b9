package crawler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"langid/packages/domain"
	"langid/packages/registry"
)

const defaultMaxBodyBytes = 2 << 20

type Crawler struct {
	client   *http.Client
	limiter  *rate.Limiter
	maxBytes int64
}

// New returns a crawler whose requests are paced to perSecond fetches; zero or
// less means unpaced.
func New(timeout time.Duration, perSecond float64) *Crawler {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Crawler{
		client:   &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(limit, 1),
		maxBytes: defaultMaxBodyBytes,
	}
}

// Fetch downloads rawURL, transcodes the body to UTF-8 and derives detection
// hints from the URL, the response headers and the document.
func (c *Crawler) Fetch(ctx context.Context, rawURL string) (*domain.FetchedPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	slog.Debug("Starting fetch", "url", rawURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; langid/1.0)")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Debug("Fetch returned bad status code", "url", rawURL, "status_code", resp.StatusCode)
		return nil, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	page := &domain.FetchedPage{
		FinalURL:    resp.Request.URL.String(),
		ContentType: contentType,
	}
	page.Hints.TopLevelDomain = TopLevelDomain(resp.Request.URL)
	page.Hints.ContentLanguage = strings.TrimSpace(resp.Header.Get("Content-Language"))

	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch {
	case mediaType == "" || strings.Contains(mediaType, "html"):
	case strings.HasPrefix(mediaType, "text/"):
		page.PlainText = true
	default:
		slog.Debug("Content-Type is not text", "url", rawURL, "content_type", contentType)
		page.IsNonText = true
		return page, nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, err
	}

	_, label, _ := charset.DetermineEncoding(raw, contentType)
	if enc, ok := registry.EncodingFromLabel(label); ok {
		page.Hints.Encoding = enc.Name()
	}
	utf8Reader, err := charset.NewReaderLabel(label, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("transcode %s body: %w", label, err)
	}
	page.Body, err = io.ReadAll(utf8Reader)
	if err != nil {
		return nil, fmt.Errorf("transcode %s body: %w", label, err)
	}

	if !page.PlainText {
		c.readDocumentHints(page)
	}
	return page, nil
}

// readDocumentHints fills in the declared document language, and the
// Content-Language meta value when the header was absent.
func (c *Crawler) readDocumentHints(page *domain.FetchedPage) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		slog.Debug("Failed to parse document for hints", "url", page.FinalURL, "error", err)
		return
	}

	if lang, ok := doc.Find("html").First().Attr("lang"); ok {
		page.Hints.Language = DeclaredLanguage(lang)
	}

	if page.Hints.ContentLanguage == "" {
		doc.Find("meta[http-equiv]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			equiv, _ := s.Attr("http-equiv")
			if !strings.EqualFold(strings.TrimSpace(equiv), "content-language") {
				return true
			}
			content, _ := s.Attr("content")
			page.Hints.ContentLanguage = strings.TrimSpace(content)
			return false
		})
	}
}

// DeclaredLanguage normalizes a BCP 47 tag such as "en-GB" to a hintable
// registry code. Unusable tags yield "" so that sloppy markup never turns
// into a hint error.
func DeclaredLanguage(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	if l, ok := registry.LanguageFromCode(tag); ok && l != registry.Unknown && !l.IsExtended() {
		return l.Code()
	}
	t, err := language.Parse(tag)
	if err != nil {
		return ""
	}
	base, _ := t.Base()
	l, ok := registry.LanguageFromCode(base.String())
	if !ok || l == registry.Unknown || l.IsExtended() {
		return ""
	}
	if l == registry.Chinese {
		if script, _ := t.Script(); script.String() == "Hant" {
			return registry.ChineseTraditional.Code()
		}
	}
	return l.Code()
}

// TopLevelDomain returns the last label of the host's public suffix, e.g.
// "jp" for www.example.co.jp. IP hosts have none.
func TopLevelDomain(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}
	suffix, _ := publicsuffix.PublicSuffix(host)
	if i := strings.LastIndexByte(suffix, '.'); i >= 0 {
		suffix = suffix[i+1:]
	}
	return suffix
}
