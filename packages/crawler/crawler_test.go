package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchTranscodesAndDerivesHints(t *testing.T) {
	// "Café crème" in windows-1252.
	body := append([]byte(`<html lang="fr-CA"><head><title>x</title></head><body><p>Caf`), 0xe9)
	body = append(body, []byte(` cr`)...)
	body = append(body, 0xe8)
	body = append(body, []byte(`me</p></body></html>`)...)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1252")
		w.Header().Set("Content-Language", "fr")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	page, err := New(time.Second, 0).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, page.PlainText)
	assert.False(t, page.IsNonText)
	assert.Contains(t, string(page.Body), "Café crème")
	assert.Equal(t, "fr", page.Hints.Language)
	assert.Equal(t, "fr", page.Hints.ContentLanguage)
	assert.Equal(t, "MSFT_CP1252", page.Hints.Encoding)
	assert.Empty(t, page.Hints.TopLevelDomain)
}

func TestFetchReadsMetaContentLanguage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><meta charset="utf-8">` +
			`<meta http-equiv="Content-Language" content="mi, en"></head><body>Kia ora</body></html>`))
	}))
	defer srv.Close()

	page, err := New(time.Second, 0).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "mi, en", page.Hints.ContentLanguage)
	assert.Empty(t, page.Hints.Language)
	assert.Equal(t, "UTF8", page.Hints.Encoding)
}

func TestFetchPlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("<not markup> just words"))
	}))
	defer srv.Close()

	page, err := New(time.Second, 0).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, page.PlainText)
	assert.Equal(t, "<not markup> just words", string(page.Body))
}

func TestFetchSkipsNonText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer srv.Close()

	page, err := New(time.Second, 0).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, page.IsNonText)
	assert.Empty(t, page.Body)
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	_, err := New(time.Second, 0).Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "bad status code: 410")
}

func TestFetchHonorsContextWhileRateLimited(t *testing.T) {
	c := New(time.Second, 0.001)
	require.True(t, c.limiter.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.Fetch(ctx, "http://example.invalid/")
	assert.Error(t, err)
}

func TestTopLevelDomain(t *testing.T) {
	cases := map[string]string{
		"https://www.example.co.jp/a": "jp",
		"http://blog.example.com":     "com",
		"https://example.id/":         "id",
		"http://127.0.0.1:8080/":      "",
		"http://[::1]/":               "",
	}
	for raw, want := range cases {
		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, want, TopLevelDomain(u), raw)
	}
}

func TestDeclaredLanguage(t *testing.T) {
	cases := map[string]string{
		"en-GB":   "en",
		"pt-BR":   "pt",
		"zh-Hant": "zh-Hant",
		"zh-TW":   "zh-Hant",
		"zh-CN":   "zh",
		"chr":     "",
		"":        "",
		"%%":      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, DeclaredLanguage(in), in)
	}
}
