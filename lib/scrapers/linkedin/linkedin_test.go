package linkedin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const aboutPage = `
<html><body>
<h1>Acme Corp</h1>
<p data-test-id="about-us__description">
	Acme Corp is a leading provider of industrial anvils, rockets and
	tunnel paint, serving discerning coyotes worldwide since 1949.
</p>
<dl>
	<dd data-test-id="about-us__website"><a href="https://acme.example.com">acme.example.com</a></dd>
</dl>
<ul>
	<li data-test-id="locations__list-item">Bangalore, Karnataka</li>
	<li data-test-id="locations__list-item">Pune, Maharashtra</li>
</ul>
</body></html>`

func TestCompanyProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/company/acme-corp/about/", r.URL.Path)
		w.Write([]byte(aboutPage))
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	profile, err := client.CompanyProfile(context.Background(), "acme-corp")
	require.NoError(t, err)

	require.Equal(t, "Acme Corp", profile.Name)
	require.Equal(t, "https://acme.example.com", profile.Website)
	require.Contains(t, profile.Description, "industrial anvils")
	require.Equal(t, []string{"Bangalore, Karnataka", "Pune, Maharashtra"}, profile.Locations)
	require.Equal(t, server.URL+"/company/acme-corp", profile.Url)
}

func TestCompanyProfileNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	_, err = client.CompanyProfile(context.Background(), "nope")
	require.Error(t, err)
}

func TestSlugify(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Tata Consultancy Services", "tata-consultancy-services"},
		{"Acme  Corp.", "acme-corp"},
		{"  Acme ", "acme"},
		{"", ""},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, Slugify(test.input))
	}
}
