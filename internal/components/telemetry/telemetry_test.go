package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type report struct {
	kind   string
	id     string
	params []any
}

type recordingAPI struct {
	reports *[]report
}

func (r recordingAPI) ReportBroken(id string, params ...any) {
	*r.reports = append(*r.reports, report{kind: "broken", id: id, params: params})
}

func (r recordingAPI) ReportWarning(id string, params ...any) {
	*r.reports = append(*r.reports, report{kind: "warning", id: id, params: params})
}

func (r recordingAPI) ReportDebug(msg string, params ...any) {
	*r.reports = append(*r.reports, report{kind: "debug", id: msg, params: params})
}

func (r recordingAPI) ReportCount(id string, count int64) {
	*r.reports = append(*r.reports, report{kind: "count", id: id, params: []any{count}})
}

func TestScopedAPI(t *testing.T) {
	var reports []report
	scoped := NewScopedAPI("scraperwiki", recordingAPI{reports: &reports})

	scoped.ReportBroken("client.login", "boom")
	scoped.ReportWarning("client.save-cookies")
	scoped.ReportDebug("resty.request", 1)
	scoped.ReportCount("pushes", 3)

	require.Equal(t, []report{
		{kind: "broken", id: "scraperwiki: client.login", params: []any{"boom"}},
		{kind: "warning", id: "scraperwiki: client.save-cookies"},
		{kind: "debug", id: "scraperwiki: resty.request", params: []any{1}},
		{kind: "count", id: "scraperwiki: pushes", params: []any{int64(3)}},
	}, reports)
}

func TestNestedScopes(t *testing.T) {
	var reports []report
	scoped := NewScopedAPI("inner", NewScopedAPI("outer", recordingAPI{reports: &reports}))
	scoped.ReportBroken("x")
	require.Len(t, reports, 1)
	require.Equal(t, "outer: inner: x", reports[0].id)
}
