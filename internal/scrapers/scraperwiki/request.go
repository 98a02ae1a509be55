package scraperwiki

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/go-resty/resty/v2"
)

// Request describes one call of the workflow. Building it is kept apart from
// sending it so every step can be checked without a server.
type Request struct {
	// Announce is logged before the request is sent.
	Announce string
	// Done is logged after a successful response, it may be empty.
	Done string

	Method string
	Path   string
	Header map[string]string

	// Form is sent url-encoded with a form content type. Body is sent
	// as-is, with whatever content type Header declares.
	Form url.Values
	Body string
}

type executor func(ctx context.Context, req Request) (*resty.Response, error)

// announce logs around exec.
func announce(ctx context.Context, req Request, exec executor) (*resty.Response, error) {
	slog.InfoContext(ctx, req.Announce)
	res, err := exec(ctx, req)
	if err != nil {
		return res, err
	}
	if req.Done != "" {
		slog.InfoContext(ctx, req.Done)
	}
	return res, nil
}

func (c *Client) execute(ctx context.Context, req Request) (*resty.Response, error) {
	r := c.http.R().
		SetContext(ctx).
		SetHeaders(req.Header)
	if req.Form != nil {
		r.SetFormDataFromValues(req.Form)
	} else if req.Body != "" {
		r.SetBody(req.Body)
	}

	res, err := r.Execute(req.Method, req.Path)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return res, &StatusError{
			Method:     req.Method,
			Url:        res.Request.URL,
			StatusCode: res.StatusCode(),
			Status:     res.Status(),
		}
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, req Request) (*resty.Response, error) {
	return announce(ctx, req, c.execute)
}
