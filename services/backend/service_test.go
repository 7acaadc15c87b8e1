package backendsvc

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhalalov2-code/online-course/core"
)

func newTestService(t *testing.T, h http.HandlerFunc) (core.Backend, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	conf := &core.Config{Backend: core.BackendConfig{URL: srv.URL + "/school/", Timeout: time.Second}}
	return NewRestService(conf, nil), srv
}

func TestRestService_Get(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/school/results", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("user_id"))
		_, _ = w.Write([]byte(`{"data": [{"id": 1, "score": 2.50}]}`))
	})

	got, err := svc.Get(context.Background(), core.ResourceResults, url.Values{"user_id": {"7"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"data": []interface{}{map[string]interface{}{"id": json.Number("1"), "score": json.Number("2.50")}},
	}, got)
}

func TestRestService_Post(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/school/tests", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		body, err := ioutil.ReadAll(r.Body)
		require.NoError(t, err)
		form, err := url.ParseQuery(string(body))
		require.NoError(t, err)
		assert.Equal(t, `["a","b"]`, form.Get("options"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[["id", 9]]`))
	})

	got, err := svc.Post(context.Background(), core.ResourceTests, url.Values{"options": {`["a","b"]`}})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{[]interface{}{"id", json.Number("9")}}, got)
}

func TestRestService_Bodies(t *testing.T) {
	tests := []struct {
		name string
		body string
		want interface{}
	}{
		{name: "empty", body: "", want: nil},
		{name: "blank", body: " \n", want: nil},
		{name: "not json", body: "OK", want: "OK"},
		{name: "json string", body: `"[1]"`, want: "[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			got, err := svc.Get(context.Background(), core.ResourceTests, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRestService_ErrorStatus(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "no such test"}`))
	})

	_, err := svc.Get(context.Background(), core.ResourcePath(core.ResourceTests, "4"), nil)
	require.Error(t, err)
	assert.True(t, core.IsBackendStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "tests/4")
}

func TestRestService_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	conf := &core.Config{Backend: core.BackendConfig{URL: srv.URL, Timeout: 50 * time.Millisecond}}
	_, err := NewRestService(conf, nil).Get(context.Background(), core.ResourceTests, nil)
	assert.Error(t, err)
}

func TestRestService_Canceled(t *testing.T) {
	var hits int
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Get(ctx, core.ResourceTests, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	assert.Zero(t, hits)
}
