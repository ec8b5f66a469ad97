package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-web/internal/config"
	"github.com/aanand-mishra/students-web/internal/http/handlers/student"
	"github.com/aanand-mishra/students-web/internal/storage/sqlite"
	"github.com/aanand-mishra/students-web/internal/types"
)

// newAPI starts the real students API on a temp database and returns a
// client pointed at it.
func newAPI(t *testing.T) *Client {
	t.Helper()

	db, err := sqlite.New(&config.Config{StoragePath: filepath.Join(t.TempDir(), "client.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mux := http.NewServeMux()
	student.Register(mux, db)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return New(config.API{BaseURL: srv.URL + "/api/students/"})
}

func TestClientAgainstAPI(t *testing.T) {
	ctx := context.Background()
	c := newAPI(t)

	students, err := c.ListStudents(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)

	created, err := c.CreateStudent(ctx, types.StudentInput{FirstName: "Ann", LastName: "Lee", Course: "Math"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := c.GetStudent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	age := 20
	updated, err := c.UpdateStudent(ctx, created.ID, types.StudentInput{FirstName: "Ann", LastName: "Lee", Age: &age})
	require.NoError(t, err)
	require.NotNil(t, updated.Age)
	assert.Equal(t, 20, *updated.Age)

	require.NoError(t, c.DeleteStudent(ctx, created.ID))

	_, err = c.GetStudent(ctx, created.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "no student found")
}

func TestClientValidationErrorMessage(t *testing.T) {
	c := newAPI(t)

	_, err := c.CreateStudent(context.Background(), types.StudentInput{LastName: "Lee"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "field firstName is required", apiErr.Message)
}

func TestClientSendsRequests(t *testing.T) {
	type captured struct {
		method, path, contentType, body string
	}
	var (
		mu  sync.Mutex
		got []captured
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		got = append(got, captured{r.Method, r.URL.Path, r.Header.Get("Content-Type"), string(b)})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodDelete {
			return
		}
		io.WriteString(w, `{"id":7,"firstName":"Ann","lastName":"Lee"}`)
	}))
	defer srv.Close()

	c := New(config.API{BaseURL: srv.URL + "/api/students"})
	ctx := context.Background()

	_, err := c.CreateStudent(ctx, types.StudentInput{FirstName: "Ann", LastName: "Lee"})
	require.NoError(t, err)
	_, err = c.UpdateStudent(ctx, 7, types.StudentInput{FirstName: "Ann", LastName: "Lee", Email: "a@b.co"})
	require.NoError(t, err)
	require.NoError(t, c.DeleteStudent(ctx, 7))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 3)

	assert.Equal(t, http.MethodPost, got[0].method)
	assert.Equal(t, "/api/students", got[0].path)
	assert.Equal(t, "application/json", got[0].contentType)
	assert.JSONEq(t, `{"firstName":"Ann","lastName":"Lee","email":"","age":null,"course":""}`, got[0].body)

	assert.Equal(t, http.MethodPut, got[1].method)
	assert.Equal(t, "/api/students/7", got[1].path)
	assert.JSONEq(t, `{"firstName":"Ann","lastName":"Lee","email":"a@b.co","age":null,"course":""}`, got[1].body)

	assert.Equal(t, http.MethodDelete, got[2].method)
	assert.Equal(t, "/api/students/7", got[2].path)
	assert.Empty(t, got[2].body)
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(config.API{BaseURL: url}).ListStudents(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "a refused connection is not an API error")
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "empty", body: "", want: ""},
		{name: "whitespace", body: "  \n", want: ""},
		{name: "json null", body: "null", want: ""},
		{name: "json string", body: `"Student not found"`, want: "Student not found"},
		{name: "error envelope", body: `{"status":"error","error":"field firstName is required"}`, want: "field firstName is required"},
		{name: "message field", body: `{"message":"boom"}`, want: "boom"},
		{name: "other object", body: `{ "code": 12, "details": ["a"] }`, want: `{"code":12,"details":["a"]}`},
		{name: "array", body: `[1, 2]`, want: `[1,2]`},
		{name: "number", body: `500`, want: `500`},
		{name: "plain text", body: "Internal Server Error\n", want: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage([]byte(tt.body)))
		})
	}
}

func TestAPIErrorFallbackText(t *testing.T) {
	err := &APIError{Method: http.MethodGet, URL: "http://x/api/students", StatusCode: 502}
	assert.Equal(t, "GET http://x/api/students: status 502", err.Error())
}
