package websearch

import (
	"bytes"
	"fmt"
	"net/url"
	"time"

	"context"

	"gcctracker-backend/lib/htmlutil"
	"gcctracker-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/mazen160/go-random"
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:124.0) Gecko/20100101 Firefox/124.0",
}

func randomUserAgent() string {
	idx, err := random.IntRange(0, len(userAgents))
	if err != nil {
		return userAgents[0]
	}
	return userAgents[idx]
}

// Result is one organic search hit.
type Result struct {
	Title   string
	Href    string
	Snippet string
}

type ClientOptions struct {
	// BaseUrl of the html results endpoint, defaults to the
	// duckduckgo html frontend. Tests point this at a local server.
	BaseUrl string
	// CacheTtl bounds how long a result page is reused before the
	// engine is hit again for the same query.
	CacheTtl time.Duration
}

type Client struct {
	http  *resty.Client
	cache *expirable.LRU[string, []Result]
}

func NewClient(opts ClientOptions) *Client {
	if opts.BaseUrl == "" {
		opts.BaseUrl = "https://html.duckduckgo.com/html/"
	}
	if opts.CacheTtl <= 0 {
		opts.CacheTtl = time.Minute * 15
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", randomUserAgent())
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/websearch/http")

	return &Client{
		http:  client,
		cache: expirable.NewLRU[string, []Result](2048, nil, opts.CacheTtl),
	}
}

// Search scrapes the organic results for a query. Non-200 responses
// are returned as errors, the caller decides whether that is fatal.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if cached, hit := c.cache.Get(query); hit {
		return cached, nil
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		Get("")
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("search returned status %d", res.StatusCode())
	}

	results, err := parseResults(res.Body())
	if err != nil {
		return nil, err
	}

	c.cache.Add(query, results)
	return results, nil
}

func parseResults(body []byte) ([]Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	var results []Result
	doc.Find("div.result").Each(func(_ int, div *goquery.Selection) {
		anchors := htmlutil.GetAnchors(div.Find("a.result__a").First())
		if len(anchors) == 0 {
			return
		}
		results = append(results, Result{
			Title:   anchors[0].Name,
			Href:    cleanHref(anchors[0].Href),
			Snippet: htmlutil.CleanText(div.Find(".result__snippet").First()),
		})
	})
	return results, nil
}

// the html frontend wraps hrefs in a redirect with the target in the
// uddg query parameter
func cleanHref(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
