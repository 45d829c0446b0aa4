package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(t *testing.T, h http.Handler, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "/contact", strings.NewReader(values.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func postJSON(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestContactFormFragment(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)
	w := get(t, srv.Handler(), "/contact-form")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `hx-post="/contact"`)
	for _, field := range []string{"name", "email", "subject", "message"} {
		assert.Contains(t, body, `name="`+field+`"`)
	}
	assert.NotContains(t, body, `class="error"`)
}

func TestContactSubmitInvalid(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)
	w := postForm(t, srv.Handler(), url.Values{
		"name":    {"Ada"},
		"email":   {"not-an-email"},
		"subject": {""},
		"message": {"Hi"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Please enter a valid email")
	assert.Contains(t, body, "Subject is required")
	assert.NotContains(t, body, "Name is required")
	assert.Contains(t, body, `value="Ada"`, "entered values are kept")
}

func TestContactSubmitSuccess(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)
	w := postForm(t, srv.Handler(), url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"subject": {"Hello"},
		"message": {"Let's talk"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you for your message!")
}

func TestContactSubmitJSON(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	w := postJSON(t, srv.Handler(), `{"name":"Ada"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var failed struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failed))
	assert.Equal(t, map[string]string{
		"email":   "Email is required",
		"subject": "Subject is required",
		"message": "Message is required",
	}, failed.Errors)

	w = postJSON(t, srv.Handler(), `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Yo"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var receipt struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))
	assert.NotEmpty(t, receipt.ID)
	assert.Equal(t, "Ada", receipt.Name)

	w = postJSON(t, srv.Handler(), `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
