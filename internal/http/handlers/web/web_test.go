package web_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-web/internal/client"
	"github.com/aanand-mishra/students-web/internal/config"
	"github.com/aanand-mishra/students-web/internal/controller"
	"github.com/aanand-mishra/students-web/internal/http/handlers/student"
	"github.com/aanand-mishra/students-web/internal/http/handlers/web"
	"github.com/aanand-mishra/students-web/internal/storage/sqlite"
	"github.com/aanand-mishra/students-web/internal/types"
	"github.com/aanand-mishra/students-web/internal/view"
)

type app struct {
	router http.Handler
	ctrl   *controller.StudentListController
	page   *view.Page
	api    *client.Client
}

// newApp wires the whole stack: students API on a temp SQLite file, REST
// client, controller, page and web routes.
func newApp(t *testing.T) *app {
	t.Helper()

	db, err := sqlite.New(&config.Config{StoragePath: filepath.Join(t.TempDir(), "web.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mux := http.NewServeMux()
	student.Register(mux, db)
	apiSrv := httptest.NewServer(mux)
	t.Cleanup(apiSrv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := client.New(config.API{BaseURL: apiSrv.URL + "/api/students"})
	page := view.NewPage()
	ctrl := controller.New(controller.Config{
		API:     api,
		UI:      page,
		Confirm: web.RequestConfirmer(),
		Logger:  logger,
	})
	t.Cleanup(ctrl.Close)

	return &app{
		router: web.NewHandler(ctrl, page, logger).Routes(),
		ctrl:   ctrl,
		page:   page,
		api:    api,
	}
}

func (a *app) post(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func (a *app) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestPageShowsEmptyState(t *testing.T) {
	a := newApp(t)

	rr := a.post(t, "/refresh", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	rr = a.get(t, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), view.EmptyListMessage)
}

func TestCreateEditDeleteFlow(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	// Create.
	rr := a.post(t, "/students", url.Values{
		"student-id": {""},
		"firstName":  {"Ann"},
		"lastName":   {"Lee"},
		"email":      {""},
		"age":        {""},
		"course":     {"Math"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	html := a.get(t, "/").Body.String()
	assert.Contains(t, html, "<h3>Ann Lee</h3>")
	assert.Contains(t, html, "<strong>Email:</strong> N/A")
	assert.Contains(t, html, "<strong>Age:</strong> N/A")
	assert.Contains(t, html, "<strong>Course:</strong> Math")
	assert.Contains(t, html, "Student added successfully!")

	students, err := a.api.ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	id := students[0].ID
	idStr := itoa(id)

	// Edit.
	rr = a.post(t, "/students/"+idStr+"/edit", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/#"+view.FormSectionID, rr.Header().Get("Location"))

	html = a.get(t, "/").Body.String()
	assert.Contains(t, html, "Edit Student")
	assert.Contains(t, html, `id="cancel-btn"`)
	assert.Contains(t, html, `name="student-id" value="`+idStr+`"`)

	// Update.
	rr = a.post(t, "/students", url.Values{
		"student-id": {idStr},
		"firstName":  {"Ann"},
		"lastName":   {"Park"},
		"email":      {"ann@example.com"},
		"age":        {"22"},
		"course":     {"Math"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Nil(t, a.ctrl.EditingID())

	html = a.get(t, "/").Body.String()
	assert.Contains(t, html, "<h3>Ann Park</h3>")
	assert.Contains(t, html, "<strong>Age:</strong> 22")
	assert.Contains(t, html, "Add New Student")

	// Declined delete keeps the student.
	rr = a.get(t, "/students/"+idStr+"/delete")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), view.DeletePrompt)

	rr = a.post(t, "/students/"+idStr+"/delete", url.Values{"confirm": {"no"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	students, err = a.api.ListStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 1)

	// Confirmed delete removes it.
	rr = a.post(t, "/students/"+idStr+"/delete", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	students, err = a.api.ListStudents(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)

	html = a.get(t, "/").Body.String()
	assert.Contains(t, html, "Student deleted successfully!")
	assert.Contains(t, html, view.EmptyListMessage)
}

func TestSubmitValidationErrorShowsBanner(t *testing.T) {
	a := newApp(t)

	rr := a.post(t, "/students", url.Values{"lastName": {"Lee"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	html := a.get(t, "/").Body.String()
	assert.Contains(t, html, `id="error-message"`)
	assert.Contains(t, html, "Error: field firstName is required")
	assert.Contains(t, html, `value="Lee"`, "the form keeps what was typed")
}

func (a *app) create(t *testing.T, first, last string) int64 {
	t.Helper()
	s, err := a.api.CreateStudent(context.Background(), types.StudentInput{FirstName: first, LastName: last})
	require.NoError(t, err)
	return s.ID
}

func TestCreateFormWhileEditingSendsNothing(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	annID := a.create(t, "Ann", "Lee")

	require.Equal(t, http.StatusSeeOther, a.post(t, "/students/"+itoa(annID)+"/edit", nil).Code)

	// A create form from another tab, posted while Ann is being edited.
	rr := a.post(t, "/students", url.Values{
		"student-id": {""},
		"firstName":  {"Bob"},
		"lastName":   {"New"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	students, err := a.api.ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Ann", students[0].FirstName)
	assert.Equal(t, "Lee", students[0].LastName)

	s := a.page.Snapshot()
	assert.True(t, s.ErrorVisible)
	assert.Equal(t, "Error: "+controller.StaleFormMessage, s.Error)
	assert.Equal(t, itoa(annID), s.Fields.ID, "the edit form is kept")
	assert.Equal(t, view.EditMode(), s.Mode)
	require.NotNil(t, a.ctrl.EditingID())
	assert.Equal(t, annID, *a.ctrl.EditingID())
}

func TestEditFormForOtherStudentSendsNothing(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()
	annID := a.create(t, "Ann", "Lee")
	boID := a.create(t, "Bo", "Kim")

	staleEdit := url.Values{
		"student-id": {itoa(annID)},
		"firstName":  {"Ann"},
		"lastName":   {"Overwritten"},
	}

	// Not editing anyone: an edit form left over from before a cancel.
	require.Equal(t, http.StatusSeeOther, a.post(t, "/students", staleEdit).Code)
	assert.Equal(t, "Error: "+controller.StaleFormMessage, a.page.Snapshot().Error)
	assert.Equal(t, view.FormFields{}, a.page.Snapshot().Fields)

	// Editing Bo: Ann's form must not be sent either.
	require.Equal(t, http.StatusSeeOther, a.post(t, "/students/"+itoa(boID)+"/edit", nil).Code)
	require.Equal(t, http.StatusSeeOther, a.post(t, "/students", staleEdit).Code)
	assert.Equal(t, "Error: "+controller.StaleFormMessage, a.page.Snapshot().Error)
	assert.Equal(t, itoa(boID), a.page.Snapshot().Fields.ID)

	ann, err := a.api.GetStudent(ctx, annID)
	require.NoError(t, err)
	assert.Equal(t, "Lee", ann.LastName)
	bo, err := a.api.GetStudent(ctx, boID)
	require.NoError(t, err)
	assert.Equal(t, "Kim", bo.LastName)
}

func TestEditUnknownStudentShowsError(t *testing.T) {
	a := newApp(t)

	rr := a.post(t, "/students/999/edit", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	html := a.get(t, "/").Body.String()
	assert.Contains(t, html, "Error loading student: Failed to load student")
	assert.Contains(t, html, "Add New Student")
}

func TestCancelRestoresCreateMode(t *testing.T) {
	a := newApp(t)
	a.page.SetFormFields(view.FormFields{ID: "3", FirstName: "X"})
	a.page.SetFormMode(view.EditMode())

	rr := a.post(t, "/form/cancel", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	s := a.page.Snapshot()
	assert.Equal(t, view.CreateMode(), s.Mode)
	assert.Equal(t, view.FormFields{}, s.Fields)
}

func TestInvalidID(t *testing.T) {
	a := newApp(t)

	assert.Equal(t, http.StatusBadRequest, a.post(t, "/students/abc/edit", nil).Code)
	assert.Equal(t, http.StatusBadRequest, a.post(t, "/students/abc/delete", nil).Code)
	assert.Equal(t, http.StatusBadRequest, a.get(t, "/students/abc/delete").Code)
}

func TestRequestConfirmer(t *testing.T) {
	c := web.RequestConfirmer()
	ctx := context.Background()

	assert.False(t, c.Confirm(ctx, view.DeletePrompt))
	assert.True(t, c.Confirm(web.WithConfirmation(ctx, true), view.DeletePrompt))
	assert.False(t, c.Confirm(web.WithConfirmation(ctx, false), view.DeletePrompt))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
