package web

import (
	"codeexplainer/config"
	"codeexplainer/internal/analysis"
	"codeexplainer/internal/models"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubClient stands in for the completion API.
type stubClient struct {
	prompts []string
	reply   func(systemMessage, userPrompt string) (string, error)
}

func (s *stubClient) Request(_ context.Context, systemMessage, userPrompt string) (string, error) {
	s.prompts = append(s.prompts, userPrompt)
	if s.reply != nil {
		return s.reply(systemMessage, userPrompt)
	}
	if strings.HasPrefix(userPrompt, "Explain") {
		return "EXPLANATION <b>bold</b> & more", nil
	}
	return "OPTIMIZATIONS\n- use a map", nil
}

func newTestServer(client *stubClient) http.Handler {
	cfg := config.Default().Server
	cfg.MaxBodyBytes = 4096
	return NewServer(analysis.NewEngine(client), cfg).Handler()
}

func postForm(h http.Handler, language, code string) *httptest.ResponseRecorder {
	form := url.Values{"language": {language}, "code": {code}}
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postJSON(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	h := newTestServer(&stubClient{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, "AI-Powered Code Explainer and Optimizer")
	assert.Contains(t, body, `<option value="Python" selected>Python</option>`)
	assert.Contains(t, body, `<option value="JavaScript">JavaScript</option>`)
	assert.Contains(t, body, `<option value="Java">Java</option>`)
	assert.Contains(t, body, "C&#43;&#43;")
	assert.Contains(t, body, "Enter your Python code here:")
	assert.Contains(t, body, "Analyze Code")
	assert.NotContains(t, body, "Analysis Results:")
	assert.Contains(t, body, "ChatGPT_logo.svg")
	assert.Contains(t, body, "Muchiri Kahwai")
	assert.Contains(t, body, "Connect with me:")
	assert.Contains(t, body, `href="https://www.linkedin.com/in/muchirik/"`)
	assert.Contains(t, body, `href="https://github.com/kr-muchiri"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestIndex_UnknownPath(t *testing.T) {
	h := newTestServer(&stubClient{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyzeForm_Success(t *testing.T) {
	client := &stubClient{}
	h := newTestServer(client)

	code := "def add(a, b):\n    return a - b"
	rec := postForm(h, "Python", code)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, client.prompts, 2)
	for _, p := range client.prompts {
		assert.Contains(t, p, code)
		assert.Contains(t, p, "Python")
	}

	body := rec.Body.String()
	assert.Contains(t, body, "Your Code:")
	assert.Contains(t, body, `class="language-python"`)
	assert.Contains(t, body, "Code Explanation")
	assert.Contains(t, body, "Optimization Suggestions")
	assert.Contains(t, body, `<div class="output" id="explanation">EXPLANATION &lt;b&gt;bold&lt;/b&gt; &amp; more</div>`)
	assert.Contains(t, body, "<div class=\"output\" id=\"optimizations\">OPTIMIZATIONS\n- use a map</div>")
}

func TestAnalyzeForm_KeepsSelectedLanguage(t *testing.T) {
	h := newTestServer(&stubClient{})

	rec := postForm(h, "Java", "class A {}")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<option value="Java" selected>Java</option>`)
	assert.Contains(t, body, "Enter your Java code here:")
	assert.Contains(t, body, `class="language-java"`)
}

func TestAnalyzeForm_EmptyCodeShowsWarning(t *testing.T) {
	client := &stubClient{}
	h := newTestServer(client)

	rec := postForm(h, "JavaScript", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter some code to analyze.")
	assert.NotContains(t, rec.Body.String(), "Analysis Results:")
	assert.Empty(t, client.prompts, "no outbound call for empty code")
}

func TestAnalyzeForm_WhitespaceCodeIsAnalyzed(t *testing.T) {
	client := &stubClient{}
	h := newTestServer(client)

	rec := postForm(h, "JavaScript", "   \n")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, client.prompts, 2)
	for _, p := range client.prompts {
		assert.True(t, strings.HasSuffix(p, "\n\n   \n"), p)
	}
	body := rec.Body.String()
	assert.NotContains(t, body, "Please enter some code to analyze.")
	assert.Contains(t, body, "Analysis Results:")
}

func TestAnalyzeForm_KeepsLeadingNewlines(t *testing.T) {
	h := newTestServer(&stubClient{})

	rec := postForm(h, "Python", "\n\nx = 1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<textarea id=\"code\" name=\"code\">\n\n\nx = 1</textarea>")
}

func TestAnalyzeForm_UnknownLanguage(t *testing.T) {
	client := &stubClient{}
	h := newTestServer(client)

	rec := postForm(h, "Rust", "fn main() {}")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, client.prompts)
}

func TestAnalyzeForm_CompletionFailure(t *testing.T) {
	client := &stubClient{reply: func(string, string) (string, error) {
		return "", errors.New("connection refused")
	}}
	h := newTestServer(client)

	rec := postForm(h, "Python", "x = 1")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "could not analyze your code")
	assert.Contains(t, body, "x = 1", "submitted code stays in the form")
	assert.NotContains(t, body, "connection refused")
}

func TestAnalyzeForm_BodyTooLarge(t *testing.T) {
	client := &stubClient{}
	h := newTestServer(client)

	rec := postForm(h, "Python", strings.Repeat("x", 8192))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Empty(t, client.prompts)
}

func TestAnalyzeForm_MethodNotAllowed(t *testing.T) {
	h := newTestServer(&stubClient{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyze", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAnalyzeAPI(t *testing.T) {
	client := &stubClient{}
	h := newTestServer(client)

	rec := postJSON(h, `{"language":"C++","code":"int main() { return 0; }"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp models.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.CPP, resp.Language)
	assert.Equal(t, "int main() { return 0; }", resp.Code)
	assert.Equal(t, "EXPLANATION <b>bold</b> & more", resp.Explanation)
	assert.Equal(t, "OPTIMIZATIONS\n- use a map", resp.Optimizations)
	assert.Len(t, client.prompts, 2)
}

func TestAnalyzeAPI_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		reply      func(string, string) (string, error)
		wantStatus int
		wantError  string
	}{
		{name: "bad json", body: `{"language":`, wantStatus: http.StatusBadRequest, wantError: "Error decoding JSON request"},
		{name: "empty code", body: `{"language":"Python","code":""}`, wantStatus: http.StatusBadRequest, wantError: models.ErrEmptyCode.Error()},
		{name: "unknown language", body: `{"language":"Go","code":"package main"}`, wantStatus: http.StatusBadRequest, wantError: "unsupported language"},
		{
			name:       "completion failure",
			body:       `{"language":"Python","code":"x = 1"}`,
			reply:      func(string, string) (string, error) { return "", errors.New("quota exceeded") },
			wantStatus: http.StatusBadGateway,
			wantError:  "quota exceeded",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestServer(&stubClient{reply: tc.reply})

			rec := postJSON(h, tc.body)
			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tc.wantError)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	h := newTestServer(&stubClient{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	client := &stubClient{}
	h := newTestServer(client)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/analyze", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, client.prompts)
}

func TestRequestLogFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.NotNil(t, requestLog(req))
}
