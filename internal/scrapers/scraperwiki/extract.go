package scraperwiki

import (
	"github.com/PuerkitoBio/goquery"
)

const (
	csrfTokenField  = "csrfmiddlewaretoken"
	csrfCookieName  = "csrftoken"
	loginUserField  = "user_or_email"
	hiddenTitle     = "short_name"
	hiddenGuid      = "scraper_guid"
	hiddenLanguage  = "scraperlanguage"
	hiddenWikiType  = "id_wiki_type"
	loginAction     = "Log in"
	commitMessage   = "cccommit"
	editorTimestamp = "Mon, 02 Jan 2006 15:04:05 GMT"
)

// ExtractCsrfToken returns the value of the first element named
// csrfmiddlewaretoken that carries a value.
func ExtractCsrfToken(doc *goquery.Document) (string, error) {
	var token string
	found := false
	doc.Find("[name=" + csrfTokenField + "]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		token, found = s.Attr("value")
		return !found
	})
	if !found {
		return "", &MissingTokenError{Source: "no " + csrfTokenField + " element in page"}
	}
	return token, nil
}

// HiddenFields maps the id of every hidden input on a page to its value.
type HiddenFields map[string]string

// ExtractHiddenFields collects every input whose type contains "hidden" and
// that has an id. Inputs without a value attribute map to "".
func ExtractHiddenFields(doc *goquery.Document) HiddenFields {
	fields := HiddenFields{}
	doc.Find(`input[type*="hidden"]`).Each(func(_ int, s *goquery.Selection) {
		id, ok := s.Attr("id")
		if !ok {
			return
		}
		fields[id] = s.AttrOr("value", "")
	})
	return fields
}

func (f HiddenFields) require(id string) (string, error) {
	value, ok := f[id]
	if !ok {
		return "", &MissingFieldError{Field: id}
	}
	return value, nil
}

type saveFields struct {
	title    string
	guid     string
	language string
	wikiType string
}

func (f HiddenFields) saveFields() (saveFields, error) {
	var out saveFields
	var err error
	if out.title, err = f.require(hiddenTitle); err != nil {
		return saveFields{}, err
	}
	if out.guid, err = f.require(hiddenGuid); err != nil {
		return saveFields{}, err
	}
	if out.language, err = f.require(hiddenLanguage); err != nil {
		return saveFields{}, err
	}
	if out.wikiType, err = f.require(hiddenWikiType); err != nil {
		return saveFields{}, err
	}
	return out, nil
}

// loginRejected reports whether doc still shows the login form.
func loginRejected(doc *goquery.Document) bool {
	return len(doc.Find("input[name=" + loginUserField + "]").Nodes) > 0
}
