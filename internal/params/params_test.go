package params_test

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/taskify/intake/internal/params"
)

func TestPreserved_FiltersCampaignKeys(t *testing.T) {
	got := params.Preserved("utm_source=google&foo=bar&gclid=abc123&page=2&utm_medium=cpc")

	want := []params.Param{
		{Key: "utm_source", Value: "google"},
		{Key: "gclid", Value: "abc123"},
		{Key: "utm_medium", Value: "cpc"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d params, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("param %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestPreserved_FirstValueWins(t *testing.T) {
	got := params.Preserved("utm_source=first&utm_source=second")

	if len(got) != 1 {
		t.Fatalf("expected 1 param, got %d", len(got))
	}
	if got[0].Value != "first" {
		t.Fatalf("expected first value to win, got %q", got[0].Value)
	}
}

func TestPreserved_EmptyAndUnrelated(t *testing.T) {
	if got := params.Preserved(""); got != nil {
		t.Fatalf("expected nil for empty query, got %v", got)
	}
	if got := params.Preserved("foo=bar&baz=qux"); got != nil {
		t.Fatalf("expected nil for unrelated keys, got %v", got)
	}
}

func TestPreserved_DecodesValues(t *testing.T) {
	got := params.Preserved("utm_campaign=summer%20sale")

	if len(got) != 1 || got[0].Value != "summer sale" {
		t.Fatalf("expected decoded value, got %v", got)
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/?utm_source=google&x=1&gclid=z", nil)

	got := params.FromRequest(r)
	if len(got) != 2 {
		t.Fatalf("expected 2 params, got %v", got)
	}
}

func TestBuildURL_NoParams(t *testing.T) {
	if got := params.BuildURL("/", nil, nil); got != "/" {
		t.Fatalf("expected bare base path, got %q", got)
	}
}

func TestBuildURL_RoundTrip(t *testing.T) {
	ps := params.Preserved("utm_source=google&gclid=abc123")
	got := params.BuildURL("https://example.com/submit", ps, nil)

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse built URL: %v", err)
	}
	q := u.Query()
	if len(q) != 2 || q.Get("utm_source") != "google" || q.Get("gclid") != "abc123" {
		t.Fatalf("unexpected query %q", u.RawQuery)
	}
}

func TestBuildURL_ExtraOverridesPreserved(t *testing.T) {
	ps := []params.Param{{Key: "utm_source", Value: "google"}}
	got := params.BuildURL("/", ps, map[string]string{"utm_source": "override", "ref": "mail"})

	u, _ := url.Parse(got)
	q := u.Query()
	if q.Get("utm_source") != "override" {
		t.Fatalf("expected extra to override, got %q", q.Get("utm_source"))
	}
	if q.Get("ref") != "mail" {
		t.Fatalf("expected extra key appended, got %q", u.RawQuery)
	}
}

func TestBuildURL_EncodesValues(t *testing.T) {
	ps := []params.Param{{Key: "utm_campaign", Value: "summer sale"}}
	got := params.BuildURL("/", ps, nil)

	if got != "/?utm_campaign=summer+sale" {
		t.Fatalf("expected encoded query, got %q", got)
	}
}

func TestMap(t *testing.T) {
	ps := []params.Param{{Key: "gclid", Value: "abc"}, {Key: "utm_source", Value: "g"}}
	m := params.Map(ps)

	if len(m) != 2 || m["gclid"] != "abc" || m["utm_source"] != "g" {
		t.Fatalf("unexpected map %v", m)
	}
}
