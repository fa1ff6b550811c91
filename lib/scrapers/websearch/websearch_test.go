package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const resultsPage = `
<html><body>
<div class="result">
	<a class="result__a" href="https://acme.example.com/about">Acme Corp - About Us</a>
	<span class="result__snippet">Acme Corp is a leading provider of industrial anvils with offices in Bangalore and Pune.</span>
</div>
<div class="result">
	<a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.linkedin.com%2Fcompany%2Facme">Acme Corp | LinkedIn</a>
	<span class="result__snippet">Acme Corp | 10,001+ followers on LinkedIn.</span>
</div>
<div class="result">
	<a class="result__a">no href, skipped</a>
</div>
</body></html>`

func TestSearch(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.Equal(t, "acme corp", r.URL.Query().Get("q"))
		w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL, CacheTtl: time.Minute})

	results, err := client.Search(context.Background(), "acme corp")
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.Equal(t, "Acme Corp - About Us", results[0].Title)
	require.Equal(t, "https://acme.example.com/about", results[0].Href)
	require.Contains(t, results[0].Snippet, "Bangalore")

	// the redirect wrapper is unwrapped
	require.Equal(t, "https://www.linkedin.com/company/acme", results[1].Href)

	// second identical query is served from the page cache
	_, err = client.Search(context.Background(), "acme corp")
	require.NoError(t, err)
	require.Equal(t, 1, requests)
}

func TestSearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	_, err := client.Search(context.Background(), "acme corp")
	require.Error(t, err)
}
