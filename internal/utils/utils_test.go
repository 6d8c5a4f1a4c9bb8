package utils

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane Doe", "jane-doe"},
		{"  4K Cinematic   Forest Walk ", "4k-cinematic-forest-walk"},
		{"Rock & Roll", "rock-roll"},
		{"already-a-slug", "already-a-slug"},
		{"under_score stays", "under_score-stays"},
		{"Behind -- Scenes", "behind-scenes"},
		{"Café Niño", "caf-nio"},
		{"!!!", ""},
		{"", ""},
		{"tab\tand\nnewline", "tab-and-newline"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

var slugShape = regexp.MustCompile(`^[a-z0-9_-]*$`)

func TestProperty_SlugifyShape(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("output only contains [a-z0-9_-]", prop.ForAll(
		func(s string) bool {
			return slugShape.MatchString(Slugify(s))
		},
		gen.AnyString(),
	))

	properties.Property("output never contains consecutive hyphens", prop.ForAll(
		func(s string) bool {
			return !strings.Contains(Slugify(s), "--")
		},
		gen.AnyString(),
	))

	properties.Property("slugify is idempotent", prop.ForAll(
		func(s string) bool {
			once := Slugify(s)
			return Slugify(once) == once
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 8},
		{"page=3", 3},
		{"page=0", 8},
		{"page=-2", 8},
		{"page=abc", 8},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		assert.Equal(t, tt.want, QueryInt(r, "page", 8), "query=%q", tt.query)
	}
}

func TestReadJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Jane"}`))
	require.NoError(t, ReadJSON(httptest.NewRecorder(), r, &dst))
	assert.Equal(t, "Jane", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.Error(t, ReadJSON(httptest.NewRecorder(), r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.Error(t, ReadJSON(httptest.NewRecorder(), r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
	assert.Error(t, ReadJSON(httptest.NewRecorder(), r, &dst))
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusNotFound, "Video not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Video not found"}`, rec.Body.String())
}
