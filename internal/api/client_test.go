package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/blackwell-systems/pagectl/internal/api"
	"github.com/blackwell-systems/pagectl/internal/document"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method string
	Path   string
	Query  string
	Body   string
	CSRF   string
	ReqID  string
}

// fakeServer records every request and answers with status.
type fakeServer struct {
	mu     sync.Mutex
	calls  []recorded
	status int
	srv    *httptest.Server
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	f := &fakeServer{status: http.StatusOK}

	r := mux.NewRouter()
	record := func(w http.ResponseWriter, req *http.Request) bool {
		body, _ := io.ReadAll(req.Body)
		f.mu.Lock()
		f.calls = append(f.calls, recorded{
			Method: req.Method,
			Path:   req.URL.Path,
			Query:  req.URL.RawQuery,
			Body:   string(body),
			CSRF:   req.Header.Get("X-CSRFToken"),
			ReqID:  req.Header.Get("X-Request-ID"),
		})
		status := f.status
		f.mu.Unlock()
		if status != http.StatusOK {
			http.Error(w, "nope", status)
			return false
		}
		return true
	}
	r.HandleFunc("/api/document/{id}/pages", func(w http.ResponseWriter, req *http.Request) {
		if !record(w, req) {
			return
		}
		if req.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id": 7, "title": "Invoice", "pages": [
				{"id": "p2", "page_num": 2, "page_order": 2, "text": "second"},
				{"id": "p1", "page_num": 1}
			]}`)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodGet, http.MethodPost, http.MethodDelete)
	r.HandleFunc("/api/document/{id}/pages/{op:cut|paste}", func(w http.ResponseWriter, req *http.Request) {
		if record(w, req) {
			_, _ = io.WriteString(w, "{}")
		}
	}).Methods(http.MethodPost)

	f.srv = httptest.NewServer(r)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeServer) last(t *testing.T) recorded {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls, "no request recorded")
	return f.calls[len(f.calls)-1]
}

func newClient(t *testing.T, f *fakeServer, token string) *api.Client {
	t.Helper()
	c, err := api.New(api.Options{BaseURL: f.srv.URL + "/", CSRFToken: token})
	require.NoError(t, err)
	return c
}

func TestDocument_LoadsAndSortsPages(t *testing.T) {
	f := newFakeServer(t)
	c := newClient(t, f, "")

	doc, err := c.Document(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, document.Node{ID: 7, Title: "Invoice"}, doc.Node())
	pages := doc.Pages()
	require.Len(t, pages, 2)
	assert.Equal(t, 1, pages[0].Num)
	assert.Equal(t, 1, pages[0].Order, "missing order defaults to num")
	assert.Equal(t, document.ID(7), pages[1].DocID)
	assert.False(t, doc.Pending())

	got := f.last(t)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Empty(t, got.CSRF, "safe methods must not carry the csrf token")
	assert.NotEmpty(t, got.ReqID)
}

func TestDocument_SkipsNullPages(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/document/{id}/pages", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id": 7, "pages": [{"page_num": 1}, null]}`)
	}).Methods(http.MethodGet)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c, err := api.New(api.Options{BaseURL: srv.URL})
	require.NoError(t, err)

	doc, err := c.Document(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Len())
	assert.Equal(t, 1, doc.Page(1).Order)
}

func TestCutPages_SendsNumsWithToken(t *testing.T) {
	f := newFakeServer(t)
	c := newClient(t, f, "tok")

	require.NoError(t, c.CutPages(context.Background(), 7, []int{2}))

	got := f.last(t)
	assert.Equal(t, "/api/document/7/pages/cut", got.Path)
	assert.JSONEq(t, `[2]`, got.Body)
	assert.Equal(t, "tok", got.CSRF)
}

func TestPaste_Placements(t *testing.T) {
	tests := []struct {
		name string
		at   api.Placement
		want string
	}{
		{"append", api.Placement{}, ""},
		{"before", api.Placement{Anchor: api.AnchorBefore, Num: 3}, `{"before": 3}`},
		{"after", api.Placement{Anchor: api.AnchorAfter, Num: 5}, `{"after": 5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeServer(t)
			c := newClient(t, f, "tok")

			require.NoError(t, c.Paste(context.Background(), 9, tt.at))

			got := f.last(t)
			assert.Equal(t, "/api/document/9/pages/paste", got.Path)
			if tt.want == "" {
				assert.Empty(t, got.Body)
			} else {
				assert.JSONEq(t, tt.want, got.Body)
			}
		})
	}
}

func TestDeletePages_EncodesArrayQuery(t *testing.T) {
	f := newFakeServer(t)
	c := newClient(t, f, "tok")

	require.NoError(t, c.DeletePages(context.Background(), 7, []int{1, 3}))

	got := f.last(t)
	assert.Equal(t, http.MethodDelete, got.Method)
	assert.Equal(t, "/api/document/7/pages", got.Path)
	assert.Equal(t, "pages%5B%5D=1&pages%5B%5D=3", got.Query)
	assert.Equal(t, "tok", got.CSRF)
}

func TestApplyReorder_SendsFullPayload(t *testing.T) {
	f := newFakeServer(t)
	c := newClient(t, f, "tok")

	entries := []document.ReorderEntry{
		{PageNum: 1, PageOrder: 1},
		{PageNum: 2, PageOrder: 3},
		{PageNum: 3, PageOrder: 2},
	}
	require.NoError(t, c.ApplyReorder(context.Background(), 7, entries))

	got := f.last(t)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/document/7/pages", got.Path)
	assert.JSONEq(t,
		`[{"page_num":1,"page_order":1},{"page_num":2,"page_order":3},{"page_num":3,"page_order":2}]`,
		got.Body)
}

func TestMutatingCallWithoutToken_IsNotSent(t *testing.T) {
	f := newFakeServer(t)
	c := newClient(t, f, "")

	err := c.CutPages(context.Background(), 7, []int{1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrMissingCSRFToken))
	assert.True(t, api.IsRejected(err))
	assert.Empty(t, f.calls)
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		status    int
		rejected  bool
		transient bool
		sentinel  error
	}{
		{http.StatusBadRequest, true, false, nil},
		{http.StatusForbidden, true, false, api.ErrForbidden},
		{http.StatusNotFound, true, false, api.ErrNotFound},
		{http.StatusInternalServerError, false, true, nil},
		{http.StatusBadGateway, false, true, nil},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			f := newFakeServer(t)
			f.status = tt.status
			c := newClient(t, f, "tok")

			err := c.ApplyReorder(context.Background(), 7, nil)
			require.Error(t, err)

			var apiErr *api.Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.rejected, api.IsRejected(err))
			assert.Equal(t, tt.transient, api.IsTransient(err))
			if tt.sentinel != nil {
				assert.True(t, errors.Is(err, tt.sentinel))
			}
		})
	}
}

func TestIsTransient_NetworkError(t *testing.T) {
	f := newFakeServer(t)
	c := newClient(t, f, "tok")
	f.srv.Close()

	err := c.Paste(context.Background(), 7, api.Placement{})
	require.Error(t, err)
	assert.True(t, api.IsTransient(err))
	assert.False(t, api.IsRejected(err))
}

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	_, err := api.New(api.Options{BaseURL: "/api"})
	assert.Error(t, err)
}

func TestDocument_RetriesTransientErrors(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	r := mux.NewRouter()
	r.HandleFunc("/api/document/{id}/pages", func(w http.ResponseWriter, req *http.Request) {
		mu.Lock()
		attempts++
		n := attempts
		mu.Unlock()
		if n < 3 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"id": 7, "pages": [{"page_num": 1}]}`)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	c, err := api.New(api.Options{BaseURL: srv.URL, Retries: 3, RetryWait: time.Millisecond})
	require.NoError(t, err)

	doc, err := c.Document(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Len())
	assert.Equal(t, 3, attempts)
}

func TestRetries_SkipRejectedAndMutations(t *testing.T) {
	tests := []struct {
		name   string
		status int
		call   func(*api.Client) error
	}{
		{"not found read", http.StatusNotFound, func(c *api.Client) error {
			_, err := c.Document(context.Background(), 7)
			return err
		}},
		{"failed mutation", http.StatusBadGateway, func(c *api.Client) error {
			return c.CutPages(context.Background(), 7, []int{1})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeServer(t)
			f.status = tt.status
			c, err := api.New(api.Options{
				BaseURL:   f.srv.URL,
				CSRFToken: "tok",
				Retries:   3,
				RetryWait: time.Millisecond,
			})
			require.NoError(t, err)

			require.Error(t, tt.call(c))
			assert.Len(t, f.calls, 1)
		})
	}
}
