// client.go sets up the session shared by every step of a push: one resty
// client, one cookie jar and the browser-like headers scraperwiki expects.

package scraperwiki

import (
	"bytes"
	"fmt"
	"net/url"
	"swdeploy/internal/components/assert"
	"swdeploy/internal/components/chrono"
	"swdeploy/internal/components/telemetry"
	"swdeploy/internal/restyutil"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	cookiejar "github.com/juju/persistent-cookiejar"
	"go.opentelemetry.io/otel"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

const DefaultBaseUrl = "https://scraperwiki.com"

const (
	report_client_fetch_homepage  = "client.fetch-homepage"
	report_client_login           = "client.login"
	report_client_fetch_edit_page = "client.fetch-edit-page"
	report_client_submit_save     = "client.submit-save"
	report_client_save_cookies    = "client.save-cookies"
)

var tracer = otel.Tracer("swdeploy/scrapers/scraperwiki")

var defaultHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-us,en;q=0.5",
	"Connection":      "keep-alive",
	"User-Agent":      "Mozilla/5.0 (X11; Ubuntu; Linux i686; rv:10.0.2) Gecko/20100101 Firefox/10.0.2",
}

type ClientOptions struct {
	BaseUrl string
	// CookieFile is where the session cookies are loaded from and saved to,
	// an empty string keeps them in memory.
	CookieFile string
	// CloudflareBypass wraps the transport with cloudflare-bp-go.
	CloudflareBypass bool
	// RequestsPerSecond caps outgoing requests, 0 means unlimited.
	RequestsPerSecond float64
	Timeout           time.Duration

	// Dump receives every full http exchange when non-nil.
	Dump restyutil.InstrumentOutput
	Time chrono.API
	Tel  telemetry.API
}

// Client is the scraperwiki session, it is not safe for concurrent use.
type Client struct {
	BaseUrl *url.URL

	http       *resty.Client
	jar        *cookiejar.Jar
	cookieFile string
	time       chrono.API
	tel        telemetry.API
}

func NewClient(opts ClientOptions) (*Client, error) {
	assert.NotNil(opts.Time, "time api")
	assert.NotNil(opts.Tel, "telemetry api")

	tel := telemetry.NewScopedAPI("scraperwiki", opts.Tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 30
	}

	jar, err := cookiejar.New(&cookiejar.Options{
		Filename:         opts.CookieFile,
		NoPersist:        opts.CookieFile == "",
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		return nil, fmt.Errorf("load cookie jar: %w", err)
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(baseUrl.String())
	httpClient.SetCookieJar(jar)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	httpClient.SetHeaders(defaultHeaders)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	httpClient.SetTimeout(opts.Timeout)

	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, "swdeploy/scrapers/scraperwiki/http", tel, opts.Dump)

	return &Client{
		BaseUrl:    baseUrl,
		http:       httpClient,
		jar:        jar,
		cookieFile: opts.CookieFile,
		time:       opts.Time,
		tel:        tel,
	}, nil
}

// SessionCookie returns the value of the named cookie the session holds for
// the base url.
func (c *Client) SessionCookie(name string) (string, bool) {
	for _, cookie := range c.jar.Cookies(c.BaseUrl) {
		if cookie.Name == name {
			return cookie.Value, true
		}
	}
	return "", false
}

// SaveCookies writes the jar to the cookie file, it is a no-op for in-memory
// sessions.
func (c *Client) SaveCookies() error {
	if c.cookieFile == "" {
		return nil
	}
	err := c.jar.Save()
	if err != nil {
		c.tel.ReportWarning(report_client_save_cookies, err, c.cookieFile)
		return fmt.Errorf("save cookies to %s: %w", c.cookieFile, err)
	}
	return nil
}

func parseDocument(res *resty.Response) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse html from %s: %w", res.Request.URL, err)
	}
	return doc, nil
}
