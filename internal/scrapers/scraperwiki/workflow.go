package scraperwiki

import (
	"context"
	"fmt"
	"os"
	"swdeploy/internal/credentials"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var meter = otel.Meter("swdeploy/scrapers/scraperwiki")
var pushCounter, _ = meter.Int64Counter(
	"swdeploy.pushes",
	metric.WithDescription("scraper pushes by outcome"),
)

func (c *Client) fail(span trace.Span, id string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	c.tel.ReportBroken(id, err)
}

// fetchDocument sends req and parses the response as html.
func (c *Client) fetchDocument(ctx context.Context, span trace.Span, reportId string, req Request) (*resty.Response, *goquery.Document, error) {
	res, err := c.do(ctx, req)
	if err != nil {
		c.fail(span, reportId, err)
		return nil, nil, err
	}
	doc, err := parseDocument(res)
	if err != nil {
		c.fail(span, reportId, err)
		return res, nil, err
	}
	return res, doc, nil
}

func (c *Client) fetchHomepage(ctx context.Context) (*resty.Response, *goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "FetchHomepage")
	defer span.End()

	res, doc, err := c.fetchDocument(ctx, span, report_client_fetch_homepage, homepageRequest())
	if err != nil {
		return res, nil, fmt.Errorf("scraperwiki: fetch homepage: %w", err)
	}
	return res, doc, nil
}

// FetchHomepage loads the homepage, which also seeds the session cookies.
func (c *Client) FetchHomepage(ctx context.Context) (*goquery.Document, error) {
	_, doc, err := c.fetchHomepage(ctx)
	return doc, err
}

// Login posts the login form with the csrf token scraped from the homepage.
// It fails with ErrLoginFailed when scraperwiki serves the login form again.
func (c *Client) Login(ctx context.Context, token string, creds credentials.Credentials) (*resty.Response, error) {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()
	span.SetAttributes(attribute.String("username", creds.Username))

	res, doc, err := c.fetchDocument(ctx, span, report_client_login, loginRequest(c.BaseUrl, token, creds))
	if err != nil {
		return res, fmt.Errorf("scraperwiki: login: %w", err)
	}
	if loginRejected(doc) {
		span.SetStatus(codes.Error, ErrLoginFailed.Error())
		return res, fmt.Errorf("scraperwiki: login as %s: %w", creds.Username, ErrLoginFailed)
	}
	return res, nil
}

func (c *Client) fetchEditPage(ctx context.Context, name string) (*resty.Response, *goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "FetchEditPage")
	defer span.End()
	span.SetAttributes(attribute.String("scraper", name))

	res, doc, err := c.fetchDocument(ctx, span, report_client_fetch_edit_page, editPageRequest(name))
	if err != nil {
		return res, nil, fmt.Errorf("scraperwiki: fetch editor of %s: %w", name, err)
	}
	return res, doc, nil
}

// FetchEditPage loads the editor of the named scraper.
func (c *Client) FetchEditPage(ctx context.Context, name string) (*goquery.Document, error) {
	_, doc, err := c.fetchEditPage(ctx, name)
	return doc, err
}

// SubmitSave saves code as the new source of the scraper described by fields.
// The request is only sent once fields and the session's csrf cookie are
// known to be present.
func (c *Client) SubmitSave(ctx context.Context, fields HiddenFields, code string) (*resty.Response, error) {
	ctx, span := tracer.Start(ctx, "SubmitSave")
	defer span.End()

	csrfToken, ok := c.SessionCookie(csrfCookieName)
	if !ok {
		err := &MissingTokenError{Source: "no " + csrfCookieName + " cookie in session"}
		c.fail(span, report_client_submit_save, err)
		return nil, fmt.Errorf("scraperwiki: save: %w", err)
	}
	req, err := saveRequest(c.BaseUrl, fields, code, csrfToken, c.time.Now())
	if err != nil {
		c.fail(span, report_client_submit_save, err)
		return nil, fmt.Errorf("scraperwiki: save: %w", err)
	}

	res, err := c.do(ctx, req)
	if err != nil {
		c.fail(span, report_client_submit_save, err)
		return nil, fmt.Errorf("scraperwiki: save: %w", err)
	}
	return res, nil
}

// StepReport describes one step of a push, Status is 0 for steps that made no
// request.
type StepReport struct {
	Name     string
	Status   int
	Duration time.Duration
}

type PushReport struct {
	Scraper string
	Steps   []StepReport
}

type stepRecorder struct {
	report *PushReport
	start  time.Time
}

func (r *stepRecorder) begin() {
	r.start = time.Now()
}

func (r *stepRecorder) end(name string, res *resty.Response) {
	status := 0
	if res != nil {
		status = res.StatusCode()
	}
	r.report.Steps = append(r.report.Steps, StepReport{
		Name:     name,
		Status:   status,
		Duration: time.Since(r.start),
	})
}

// Push replaces the source of scraper `name` with the contents of the file at
// `path`: homepage -> csrf token -> login -> editor -> hidden fields -> save.
// The first failing step aborts the push. Session cookies are saved to the
// cookie file whatever the outcome.
func (c *Client) Push(ctx context.Context, creds credentials.Credentials, name, path string) (report PushReport, err error) {
	ctx, span := tracer.Start(ctx, "Push")
	defer span.End()
	span.SetAttributes(attribute.String("scraper", name))

	report = PushReport{Scraper: name}
	rec := &stepRecorder{report: &report}

	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "failure"
			span.SetStatus(codes.Error, err.Error())
		}
		pushCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))

		// a failed save is already reported, it must not mask the push result
		_ = c.SaveCookies()
	}()

	rec.begin()
	res, home, err := c.fetchHomepage(ctx)
	if err != nil {
		return report, err
	}
	token, err := ExtractCsrfToken(home)
	if err != nil {
		return report, fmt.Errorf("scraperwiki: homepage: %w", err)
	}
	rec.end("homepage", res)

	rec.begin()
	res, err = c.Login(ctx, token, creds)
	if err != nil {
		return report, err
	}
	rec.end("login", res)

	rec.begin()
	res, editor, err := c.fetchEditPage(ctx, name)
	if err != nil {
		return report, err
	}
	fields := ExtractHiddenFields(editor)
	rec.end("editor", res)

	rec.begin()
	code, err := os.ReadFile(path)
	if err != nil {
		return report, fmt.Errorf("read source %s: %w", path, err)
	}
	rec.end("read source", nil)

	rec.begin()
	res, err = c.SubmitSave(ctx, fields, string(code))
	if err != nil {
		return report, err
	}
	rec.end("save", res)

	return report, nil
}
