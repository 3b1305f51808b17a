package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoopcoach/internal/llm"
)

// stubGenerator returns canned text, an error, or blocks until the context
// deadline, depending on how it is configured.
type stubGenerator struct {
	text   string
	err    error
	block  bool
	called bool
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.called = true
	if g.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return g.text, g.err
}

func newTestServer(gen llm.Generator) *Server {
	return New(ServerOptions{
		Model:      gen,
		Timeout:    100 * time.Millisecond,
		CORSOrigin: "http://localhost:3000",
	})
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

const validBody = `{
	"name": "Jo",
	"age": 16,
	"position": "Guard",
	"level": "Intermediate",
	"improvement": "ball handling",
	"availableDays": [{"day": "monday", "hours": 1, "timeOfDay": ["Evening"]}]
}`

func TestHealth(t *testing.T) {
	s := newTestServer(&stubGenerator{})
	rec := doRequest(s, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "Server is running", body["message"])
}

func TestGenerateWorkoutMissingFields(t *testing.T) {
	cases := map[string]string{
		"empty object":   `{}`,
		"no name":        `{"age":16,"position":"Guard","level":"Intermediate","improvement":"x","availableDays":[{"day":"monday","hours":1,"timeOfDay":["Evening"]}]}`,
		"no age":         `{"name":"Jo","position":"Guard","level":"Intermediate","improvement":"x","availableDays":[{"day":"monday","hours":1,"timeOfDay":["Evening"]}]}`,
		"no position":    `{"name":"Jo","age":16,"level":"Intermediate","improvement":"x","availableDays":[{"day":"monday","hours":1,"timeOfDay":["Evening"]}]}`,
		"no level":       `{"name":"Jo","age":16,"position":"Guard","improvement":"x","availableDays":[{"day":"monday","hours":1,"timeOfDay":["Evening"]}]}`,
		"no improvement": `{"name":"Jo","age":16,"position":"Guard","level":"Intermediate","availableDays":[{"day":"monday","hours":1,"timeOfDay":["Evening"]}]}`,
		"empty days":     `{"name":"Jo","age":16,"position":"Guard","level":"Intermediate","improvement":"x","availableDays":[]}`,
		"malformed body": `{not json`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			gen := &stubGenerator{text: `{"unused":true}`}
			s := newTestServer(gen)
			rec := doRequest(s, http.MethodPost, "/api/generate-workout", body)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "Missing required fields", resp["error"])
			assert.False(t, gen.called, "model must not be invoked on invalid input")
		})
	}
}

func TestGenerateWorkoutSuccess(t *testing.T) {
	plan := `{"name":"Jo","age":16,"focusAreas":"ball handling","workoutSchedule":[{"day":"Monday","hours":1,"timeOfDay":["Evening"],"exercises":[{"name":"Crossover drills","duration":"15 minutes","description":"Alternate hands at speed"}]}]}`
	gen := &stubGenerator{text: "```json\n" + plan + "\n```"}
	s := newTestServer(gen)

	rec := doRequest(s, http.MethodPost, "/api/generate-workout", validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Generation-Id"))

	// The embedded object comes back unmodified.
	assert.JSONEq(t, plan, rec.Body.String())
	assert.True(t, gen.called)
}

func TestGenerateWorkoutFormatError(t *testing.T) {
	gen := &stubGenerator{text: "I am sorry, I cannot produce a plan today."}
	s := newTestServer(gen)

	rec := doRequest(s, http.MethodPost, "/api/generate-workout", validBody)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to generate a valid workout plan", resp["error"])
	assert.Equal(t, "The AI generated an invalid response format", resp["details"])
}

func TestGenerateWorkoutInternalError(t *testing.T) {
	gen := &stubGenerator{err: context.Canceled}
	s := newTestServer(gen)

	rec := doRequest(s, http.MethodPost, "/api/generate-workout", validBody)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to generate workout plan", resp["error"])
	assert.Equal(t, context.Canceled.Error(), resp["details"])
}

func TestGenerateWorkoutTimeout(t *testing.T) {
	gen := &stubGenerator{block: true}
	s := newTestServer(gen) // 100ms budget

	start := time.Now()
	rec := doRequest(s, http.MethodPost, "/api/generate-workout", validBody)
	elapsed := time.Since(start)

	require.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Less(t, elapsed, 2*time.Second, "timeout must fire close to the budget")

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Request timed out", resp["error"])
	assert.Equal(t, "The workout plan generation is taking too long. Please try again.", resp["details"])
}

func TestGeneratorReceivesRenderedPrompt(t *testing.T) {
	var seen string
	gen := llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		seen = prompt
		return `{"ok":true}`, nil
	})
	s := newTestServer(gen)

	rec := doRequest(s, http.MethodPost, "/api/generate-workout", validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, seen, "Name: Jo")
	assert.Contains(t, seen, "- Monday: 1 hours, preferred time: Evening")
}
