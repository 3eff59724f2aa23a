package upstream

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL:            srv.URL + "/",
		APIKey:             "secret-key",
		PublicationTargets: []string{"1175", "1786"},
		Timeout:            2 * time.Second,
		Client:             srv.Client(),
	})
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{})
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultUserAgent, c.userAgent)
	assert.Equal(t, DefaultTimeout, c.timeout)
	assert.NotNil(t, c.client)
}

func TestPendingProfile(t *testing.T) {
	c := New(Config{APIKey: "k"})
	p := c.PendingProfile()

	u, err := url.Parse(p.URL)
	require.NoError(t, err)
	assert.Equal(t, "/tms/task", u.Path)
	q := u.Query()
	assert.Equal(t, "model", q.Get("type"))
	assert.Equal(t, "25", q.Get("limit"))
	assert.Equal(t, "0", q.Get("offset"))
	assert.Equal(t, "id", q.Get("orderBy"))
	assert.Equal(t, "true", q.Get("with_public"))
	assert.Equal(t, "false", q.Get("deleted_only"))

	assert.Equal(t, "k", p.Header.Get("x-api-key"))
	assert.Equal(t, DefaultUserAgent, p.Header.Get("User-Agent"))
	assert.Equal(t, "application/json, text/plain, */*", p.Header.Get("Accept"))
	assert.Empty(t, p.Header.Get("Referer"))
}

func TestExpiredProfile(t *testing.T) {
	c := New(Config{APIKey: "k", PublicationTargets: []string{"1175", "1786"}})
	p := c.ExpiredProfile()

	u, err := url.Parse(p.URL)
	require.NoError(t, err)
	assert.Equal(t, "/tms/task/todo", u.Path)
	q := u.Query()
	assert.Equal(t, "true", q.Get("expired_only"))
	assert.Equal(t, "100", q.Get("limit"))
	assert.Equal(t, "0", q.Get("offset"))
	assert.Equal(t, []string{"1175", "1786"}, q["publication_target"])
	assert.Equal(t, []string{"draft", "pending"}, q["answer_statuses"])

	assert.Equal(t, "application/json", p.Header.Get("Accept"))
	assert.Equal(t, "https://saladofuturo.educacao.sp.gov.br/tarefas?status=Expiradas", p.Header.Get("Referer"))
}

func TestDetailProfile_EscapesID(t *testing.T) {
	c := New(Config{})
	p := c.DetailProfile("a/b c")
	assert.Equal(t, DefaultBaseURL+"/tms/task/a%2Fb%20c", p.URL)
	assert.Equal(t, "https://saladofuturo.educacao.sp.gov.br/tarefas", p.Header.Get("Referer"))
}

func TestListPending_SendsProfile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tms/task", r.URL.Path)
		assert.Equal(t, "secret-key", r.Header.Get("x-api-key"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	body, err := c.ListPending(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(body))
}

func TestListExpired_Gzip(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tms/task/todo", r.URL.Path)
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, _ = zw.Write([]byte(`[{"task":{"title":"Math HW","id":"t1"}}]`))
		_ = zw.Close()
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(buf.Bytes())
	})

	body, err := c.ListExpired(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"task":{"title":"Math HW","id":"t1"}}]`, string(body))
}

func TestGet_NonSuccessStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid api key"}`))
	})

	_, err := c.ListPending(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	var ue *Error
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "list-pending", ue.Op)
	assert.Equal(t, http.StatusUnauthorized, ue.StatusCode)
	assert.Contains(t, ue.Body, "invalid api key")
	assert.NotContains(t, ue.Error(), "secret-key")
}

func TestGet_InvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})

	_, err := c.TaskDetail(context.Background(), "42")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestGet_UnsupportedEncoding(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		_, _ = w.Write([]byte("xx"))
	})

	_, err := c.ListPending(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestGet_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond, Client: srv.Client()})

	_, err := c.ListPending(context.Background())
	require.Error(t, err)

	var ue *Error
	require.True(t, errors.As(err, &ue))
	assert.True(t, ue.Timeout(), "expected timeout, got %v", err)
}

func TestGet_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := New(Config{BaseURL: base, Timeout: time.Second})
	_, err := c.ListExpired(context.Background())
	require.Error(t, err)

	var ue *Error
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, 0, ue.StatusCode)
	assert.True(t, strings.HasPrefix(ue.Error(), "list-expired "))
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", maxErrorBody+10)
	got := truncate([]byte(long))
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Len(t, got, maxErrorBody+len("…"))
	assert.Equal(t, "short", truncate([]byte("short")))
}

func TestSampleDetails(t *testing.T) {
	body, err := SampleDetails{}.TaskDetail(context.Background(), "42")
	require.NoError(t, err)
	assert.Contains(t, string(body), `"title":"Detalhes da Tarefa 42"`)
	assert.Contains(t, string(body), `"statement":"Quanto é 2 + 2?"`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = SampleDetails{}.TaskDetail(ctx, "42")
	assert.ErrorIs(t, err, context.Canceled)
}
