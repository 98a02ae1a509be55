package scraperwiki

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func parseHtml(t testing.TB, source string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestExtractCsrfToken(t *testing.T) {
	cases := []struct {
		name   string
		html   string
		expect string
	}{
		{
			name:   "hidden input",
			html:   `<form><input type="hidden" name="csrfmiddlewaretoken" value="abc123"></form>`,
			expect: "abc123",
		},
		{
			name:   "value kept exactly",
			html:   `<input name="csrfmiddlewaretoken" value=" a+b/c= ">`,
			expect: " a+b/c= ",
		},
		{
			name: "first match wins",
			html: `<input name="csrfmiddlewaretoken" value="first">
				<input name="csrfmiddlewaretoken" value="second">`,
			expect: "first",
		},
		{
			name: "skips matches without a value",
			html: `<input name="csrfmiddlewaretoken">
				<input name="csrfmiddlewaretoken" value="second">`,
			expect: "second",
		},
		{
			name:   "empty value",
			html:   `<input name="csrfmiddlewaretoken" value="">`,
			expect: "",
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			token, err := ExtractCsrfToken(parseHtml(t, test.html))
			require.NoError(t, err)
			require.Equal(t, test.expect, token)
		})
	}
}

func TestExtractCsrfTokenMissing(t *testing.T) {
	cases := []string{
		``,
		`<html><body><form><input name="username"></form></body></html>`,
		`<input name="csrfmiddlewaretoken">`,
		`<input id="csrfmiddlewaretoken" value="abc123">`,
	}

	for _, source := range cases {
		_, err := ExtractCsrfToken(parseHtml(t, source))
		var missing *MissingTokenError
		require.ErrorAs(t, err, &missing)
		require.ErrorIs(t, err, ErrScrape)
	}
}

const editorPage = `<html><body>
<form id="editor">
	<input type="hidden" id="short_name" value="foo">
	<input type="hidden" id="scraper_guid" value="g1">
	<input type="hidden" id="scraperlanguage" value="python">
	<input type="hidden" id="id_wiki_type" value="w">
	<input type="hidden" name="no_id" value="ignored">
	<input type="text" id="visible" value="ignored">
	<textarea id="code">print(0)</textarea>
</form>
</body></html>`

func TestExtractHiddenFields(t *testing.T) {
	fields := ExtractHiddenFields(parseHtml(t, editorPage))

	diff := cmp.Diff(HiddenFields{
		"short_name":      "foo",
		"scraper_guid":    "g1",
		"scraperlanguage": "python",
		"id_wiki_type":    "w",
	}, fields)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractHiddenFieldsTypeContainsHidden(t *testing.T) {
	fields := ExtractHiddenFields(parseHtml(t, `
		<input type="hidden-ish" id="a" value="1">
		<input type="hidden" id="b">
	`))
	require.Equal(t, HiddenFields{"a": "1", "b": ""}, fields)
}

func TestExtractHiddenFieldsEmpty(t *testing.T) {
	fields := ExtractHiddenFields(parseHtml(t, `<p>nothing here</p>`))
	require.Empty(t, fields)
}

func TestSaveFieldsRequired(t *testing.T) {
	complete := HiddenFields{
		"short_name":      "foo",
		"scraper_guid":    "g1",
		"scraperlanguage": "python",
		"id_wiki_type":    "w",
	}

	f, err := complete.saveFields()
	require.NoError(t, err)
	require.Equal(t, saveFields{title: "foo", guid: "g1", language: "python", wikiType: "w"}, f)

	for field := range complete {
		partial := HiddenFields{}
		for k, v := range complete {
			if k != field {
				partial[k] = v
			}
		}

		_, err := partial.saveFields()
		var missing *MissingFieldError
		require.ErrorAs(t, err, &missing)
		require.Equal(t, field, missing.Field)
		require.ErrorIs(t, err, ErrScrape)
	}
}
