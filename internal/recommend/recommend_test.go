package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fambalance/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func sampleRequest() Request {
	return Request{
		FamilyName:        "Família Melo",
		MemberNames:       []string{"Ana", "Bia"},
		FamilyMoodSummary: []models.MoodCount{{Emotion: models.EmotionHappy, Count: 3}},
	}
}

func geminiServer(t *testing.T, check func(r *http.Request), status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		check(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

const okBody = `{"candidates":[{"content":{"parts":[{"text":"1. Durmam bem.\n\n2) **Conversem** mais.\n- Caminhem juntos."}]}}]}`

func TestGeminiClient_APIKey(t *testing.T) {
	srv := geminiServer(t, func(r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "secret-key", r.Header.Get("x-goog-api-key"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var body generateRequest
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) && assert.Len(t, body.Contents, 1) {
			assert.Contains(t, body.Contents[0].Parts[0].Text, `"Família Melo"`)
			assert.Contains(t, body.Contents[0].Parts[0].Text, "Ana, Bia")
		}
	}, http.StatusOK, okBody)

	c := NewGeminiClientWithTokenSource(srv.URL, "gemini-test", "secret-key", nil, 5*time.Second)
	recs, err := c.Recommend(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"Durmam bem.", "Conversem mais.", "Caminhem juntos."}, recs)
}

func TestGeminiClient_BearerToken(t *testing.T) {
	srv := geminiServer(t, func(r *http.Request) {
		assert.Equal(t, "Bearer adc-token", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("x-goog-api-key"))
	}, http.StatusOK, okBody)

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "adc-token"})
	c := NewGeminiClientWithTokenSource(srv.URL+"/", "gemini-test", "", ts, 5*time.Second)
	recs, err := c.Recommend(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestGeminiClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates":[]}`},
		{name: "bad json", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := geminiServer(t, func(*http.Request) {}, tt.status, tt.body)
			c := NewGeminiClientWithTokenSource(srv.URL, "m", "k", nil, 5*time.Second)
			_, err := c.Recommend(context.Background(), sampleRequest())
			assert.Error(t, err)
		})
	}
}

type stubRecommender struct {
	recs []string
	err  error
}

func (s stubRecommender) Recommend(context.Context, Request) ([]string, error) {
	return s.recs, s.err
}

func TestFallback(t *testing.T) {
	static := []string{"Medite ou pratique mindfulness por 10 minutos."}

	tests := []struct {
		name  string
		inner Recommender
		want  []string
	}{
		{name: "no inner", inner: nil, want: static},
		{name: "inner fails", inner: stubRecommender{err: errors.New("timeout")}, want: static},
		{name: "inner empty", inner: stubRecommender{}, want: static},
		{name: "inner ok", inner: stubRecommender{recs: []string{"x"}}, want: []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFallback(tt.inner, static, zerolog.Nop())
			got, err := f.Recommend(context.Background(), sampleRequest())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFallbackReturnsCopy(t *testing.T) {
	static := []string{"a"}
	f := NewFallback(nil, static, zerolog.Nop())

	got, _ := f.Recommend(context.Background(), Request{})
	got[0] = "changed"
	assert.Equal(t, "a", static[0])
}

func TestParseLines(t *testing.T) {
	got := ParseLines("  1. Um\n\n2) Dois\n* Três\n• Quatro\n10. Dez\nsem marcador\n")
	assert.Equal(t, []string{"Um", "Dois", "Três", "Quatro", "Dez", "sem marcador"}, got)
}
