package scraperwiki

import (
	"net/http"
	"net/url"
	"strings"
	"swdeploy/internal/credentials"
	"time"
)

func homepageRequest() Request {
	return Request{
		Announce: "Connecting to scraperwiki...",
		Method:   http.MethodGet,
		Path:     "/",
	}
}

func loginRequest(base *url.URL, token string, creds credentials.Credentials) Request {
	form := url.Values{}
	form.Set(csrfTokenField, token)
	form.Set("login", loginAction)
	form.Set("password", creds.Password)
	form.Set(loginUserField, creds.Username)

	return Request{
		Announce: "Authenticating...",
		Method:   http.MethodPost,
		Path:     "/login/",
		Header: map[string]string{
			"Referer": absolute(base, "/"),
		},
		Form: form,
	}
}

func editPath(name string) string {
	return "/scrapers/" + url.PathEscape(name) + "/edit/"
}

func editPageRequest(name string) Request {
	return Request{
		Announce: "Loading current scraper...",
		Method:   http.MethodGet,
		Path:     editPath(name),
	}
}

// saveRequest fails with a *MissingFieldError when fields lack anything the
// editor save endpoint needs.
func saveRequest(base *url.URL, fields HiddenFields, code, csrfToken string, now time.Time) (Request, error) {
	f, err := fields.saveFields()
	if err != nil {
		return Request{}, err
	}

	// the endpoint wants a form-encoded body despite the json content type
	body := url.Values{}
	body.Set("code", code)
	body.Set("commit_message", commitMessage)
	body.Set("earliesteditor", now.UTC().Format(editorTimestamp))
	body.Set("guid", f.guid)
	body.Set("language", f.language)
	body.Set("title", f.title)
	body.Set("wiki_type", f.wikiType)

	return Request{
		Announce: "Pushing new scraper...",
		Done:     "Scraper saved.",
		Method:   http.MethodPost,
		Path:     "/handle_editor_save/",
		Header: map[string]string{
			"Content-Type":     "application/json; charset=UTF-8",
			"Pragma":           "no-cache",
			"Referer":          absolute(base, editPath(f.title)),
			"X-Csrftoken":      csrfToken,
			"X-Requested-With": "XMLHttpRequest",
		},
		Body: body.Encode(),
	}, nil
}

func absolute(base *url.URL, path string) string {
	return strings.TrimSuffix(base.String(), "/") + path
}
