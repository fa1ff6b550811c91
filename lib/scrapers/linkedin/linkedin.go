package linkedin

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"gcctracker-backend/lib/htmlutil"
	"gcctracker-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// CompanyProfile is the information scraped from a public company
// "about" page. Fields are empty when the page does not expose them.
type CompanyProfile struct {
	Name        string
	Url         string
	Website     string
	Description string
	Locations   []string
}

type ClientOptions struct {
	// BaseUrl defaults to the public linkedin site, tests override it.
	BaseUrl string
}

type Client struct {
	baseUrl *url.URL
	http    *resty.Client
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = "https://www.linkedin.com"
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/linkedin/http")

	return &Client{
		baseUrl: baseUrl,
		http:    client,
	}, nil
}

// Slugify derives the company page slug linkedin would use for a
// display name, e.g. "Tata Consultancy Services" -> "tata-consultancy-services".
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// CompanyProfile fetches and parses the public about page for a
// company slug.
func (c *Client) CompanyProfile(ctx context.Context, slug string) (CompanyProfile, error) {
	if slug == "" {
		return CompanyProfile{}, fmt.Errorf("empty company slug")
	}

	res, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/company/%s/about/", url.PathEscape(slug)))
	if err != nil {
		return CompanyProfile{}, err
	}
	if res.IsError() {
		return CompanyProfile{}, fmt.Errorf("company page returned status %d", res.StatusCode())
	}

	profile, err := parseCompanyPage(res.Body())
	if err != nil {
		return CompanyProfile{}, err
	}
	profile.Url = c.baseUrl.JoinPath("company", slug).String()
	return profile, nil
}

func parseCompanyPage(body []byte) (CompanyProfile, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		return CompanyProfile{}, err
	}

	profile := CompanyProfile{
		Name:        htmlutil.CleanText(doc.Find("h1").First()),
		Description: htmlutil.CleanText(doc.Find(`[data-test-id="about-us__description"]`).First()),
	}

	website := doc.Find(`[data-test-id="about-us__website"] a`).First()
	if href, ok := website.Attr("href"); ok {
		profile.Website = href
	} else {
		profile.Website = htmlutil.CleanText(website)
	}

	doc.Find(`[data-test-id="locations__list-item"]`).Each(func(_ int, li *goquery.Selection) {
		loc := htmlutil.CleanText(li)
		if loc != "" {
			profile.Locations = append(profile.Locations, loc)
		}
	})

	return profile, nil
}
