package testutil

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Zhalalov2-code/online-course/core"
	"github.com/Zhalalov2-code/online-course/core/normalize"
	"github.com/Zhalalov2-code/online-course/storage/database"
)

// Call is a request received by a FakeBackend.
type Call struct {
	Method   string
	Resource string
	Values   url.Values
}

type reply struct {
	body   string
	status int
}

// FakeBackend is an in-process core.Backend answering with canned JSON bodies.
// Resources without a reply answer 404.
type FakeBackend struct {
	mu      sync.Mutex
	replies map[string]reply
	calls   []Call
}

var _ core.Backend = (*FakeBackend)(nil)

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{replies: make(map[string]reply)}
}

// On sets the JSON body returned for method and resource.
func (b *FakeBackend) On(method, resource, body string) *FakeBackend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replies[method+" "+resource] = reply{body: body, status: http.StatusOK}
	return b
}

// Fail makes method and resource answer with the given error status.
func (b *FakeBackend) Fail(method, resource string, status int) *FakeBackend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replies[method+" "+resource] = reply{status: status}
	return b
}

func (b *FakeBackend) Get(ctx context.Context, resource string, params url.Values) (interface{}, error) {
	return b.handle(ctx, http.MethodGet, resource, params)
}

func (b *FakeBackend) Post(ctx context.Context, resource string, form url.Values) (interface{}, error) {
	return b.handle(ctx, http.MethodPost, resource, form)
}

func (b *FakeBackend) handle(ctx context.Context, method, resource string, values url.Values) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.calls = append(b.calls, Call{Method: method, Resource: resource, Values: values})
	r, ok := b.replies[method+" "+resource]
	b.mu.Unlock()

	if !ok {
		r = reply{status: http.StatusNotFound}
	}
	if r.status >= http.StatusBadRequest {
		return nil, errors.WithStack(&core.BackendError{Resource: resource, Status: r.status})
	}
	if r.body == "" {
		return nil, nil
	}
	v, err := normalize.Decode([]byte(r.body))
	if err != nil {
		return r.body, nil
	}
	return v, nil
}

// Calls returns the requests received so far.
func (b *FakeBackend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	calls := make([]Call, len(b.calls))
	copy(calls, b.calls)
	return calls
}

// Posted returns the forms posted to resource, in order.
func (b *FakeBackend) Posted(resource string) []url.Values {
	var forms []url.Values
	for _, c := range b.Calls() {
		if c.Method == http.MethodPost && c.Resource == resource {
			forms = append(forms, c.Values)
		}
	}
	return forms
}

// OpenDB opens a migrated in-memory sqlite database, closed when the test ends.
func OpenDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open(core.DatabaseConfig{Engine: database.EngineSqlite, Path: ":memory:"})
	if err != nil {
		t.Fatalf("database.Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.Migrate(db.DB, database.EngineSqlite, "up"); err != nil {
		t.Fatalf("database.Migrate() failed: %v", err)
	}
	return db
}
