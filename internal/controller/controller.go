// Package controller holds StudentListController, the piece that turns
// user actions on the students page into REST calls and page updates.
//
// The controller owns exactly one bit of state besides its dependencies:
// the id of the student being edited (nil in create mode). Errors from
// the API never escape; they end up in the page's error banner and the
// controller stays usable.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aanand-mishra/students-web/internal/client"
	"github.com/aanand-mishra/students-web/internal/types"
	"github.com/aanand-mishra/students-web/internal/view"
)

// DefaultSuccessDelay is how long a success banner stays up.
const DefaultSuccessDelay = 3 * time.Second

// StaleFormMessage is shown when a posted form was built for another
// student than the one being edited (a second tab, or Back after Edit).
const StaleFormMessage = "The form is out of date. Please open it again and resubmit."

// Timer is a pending success-banner hide. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// AfterFuncFunc schedules f to run once after d.
type AfterFuncFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// StudentAPI is the remote students collection.
// *client.Client satisfies it.
type StudentAPI interface {
	ListStudents(ctx context.Context) ([]types.Student, error)
	GetStudent(ctx context.Context, id int64) (types.Student, error)
	CreateStudent(ctx context.Context, input types.StudentInput) (types.Student, error)
	UpdateStudent(ctx context.Context, id int64, input types.StudentInput) (types.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

// Renderer is the page the controller draws on.
// *view.Page satisfies it.
type Renderer interface {
	RenderList(list view.ListView)
	SetLoading(on bool)
	ShowError(msg string)
	HideError()
	FormFields() view.FormFields
	SetFormFields(f view.FormFields)
	SetFormMode(m view.FormMode)
	ScrollToForm()
	ShowSuccess(msg string)
	HideSuccess()
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Config bundles the controller's dependencies.
type Config struct {
	API     StudentAPI
	UI      Renderer
	Confirm Confirmer
	Logger  *slog.Logger

	// SuccessDelay defaults to DefaultSuccessDelay when zero.
	SuccessDelay time.Duration
	// AfterFunc defaults to time.AfterFunc.
	AfterFunc AfterFuncFunc
}

// StudentListController is built once at startup and shared by every
// request of the web front end.
type StudentListController struct {
	api          StudentAPI
	ui           Renderer
	confirm      Confirmer
	log          *slog.Logger
	successDelay time.Duration
	afterFunc    AfterFuncFunc

	mu        sync.Mutex
	editingID *int64

	successTimer Timer
	successGen   uint64
}

// New returns a controller in create mode.
func New(cfg Config) *StudentListController {
	c := &StudentListController{
		api:          cfg.API,
		ui:           cfg.UI,
		confirm:      cfg.Confirm,
		log:          cfg.Logger,
		successDelay: cfg.SuccessDelay,
		afterFunc:    cfg.AfterFunc,
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.successDelay <= 0 {
		c.successDelay = DefaultSuccessDelay
	}
	if c.afterFunc == nil {
		c.afterFunc = realAfterFunc
	}
	if c.confirm == nil {
		c.confirm = ConfirmFunc(func(context.Context, string) bool { return false })
	}
	return c
}

// EditingID returns the id being edited, or nil in create mode.
func (c *StudentListController) EditingID() *int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editingID == nil {
		return nil
	}
	id := *c.editingID
	return &id
}

// LoadStudents fetches the collection and redraws the list. The loading
// indicator is on for the duration of the request whatever the outcome.
func (c *StudentListController) LoadStudents(ctx context.Context) {
	c.ShowLoading(true)
	defer c.ShowLoading(false)
	c.HideError()

	students, err := c.api.ListStudents(ctx)
	if err != nil {
		c.log.Error("failed to load students", slog.String("error", err.Error()))
		c.ShowError("Error loading students: " + reason(err, "Failed to load students", false))
		c.ui.RenderList(view.FailedList())
		return
	}

	c.log.Debug("students loaded", slog.Int("count", len(students)))
	c.DisplayStudents(students)
}

// DisplayStudents draws one card per student, or the empty-state
// placeholder.
func (c *StudentListController) DisplayStudents(students []types.Student) {
	c.ui.RenderList(view.RenderList(students))
}

// HandleFormSubmit sends the form as a create (empty hidden id) or an
// update of the student whose id is in the hidden field. On success the
// form goes back to create mode and the list is reloaded.
func (c *StudentListController) HandleFormSubmit(ctx context.Context) {
	c.mu.Lock()
	fields := c.ui.FormFields()
	target, ok := formTarget(fields.ID, c.editingID)
	c.mu.Unlock()

	c.submit(ctx, fields, target, ok)
}

// SubmitForm replaces the form with f, as posted by the browser, and
// sends it like HandleFormSubmit. A posted hidden id that disagrees with
// the student being edited leaves the form alone and sends nothing.
func (c *StudentListController) SubmitForm(ctx context.Context, f view.FormFields) {
	c.mu.Lock()
	target, ok := formTarget(f.ID, c.editingID)
	if ok {
		c.ui.SetFormFields(f)
	}
	c.mu.Unlock()

	c.submit(ctx, f, target, ok)
}

func (c *StudentListController) submit(ctx context.Context, fields view.FormFields, target *int64, ok bool) {
	c.HideError()

	if !ok {
		c.log.Warn("stale form submitted", slog.String("student_id", fields.ID))
		c.ShowError("Error: " + StaleFormMessage)
		return
	}

	input := InputFromFields(fields)

	var err error
	if target != nil {
		c.log.Info("updating student", slog.Int64("id", *target))
		_, err = c.api.UpdateStudent(ctx, *target, input)
	} else {
		c.log.Info("creating student")
		_, err = c.api.CreateStudent(ctx, input)
	}
	if err != nil {
		c.log.Error("failed to save student", slog.String("error", err.Error()))
		c.ShowError("Error: " + reason(err, "Operation failed", true))
		return
	}

	if target != nil {
		c.ShowSuccessMessage("Student updated successfully!")
	} else {
		c.ShowSuccessMessage("Student added successfully!")
	}
	c.ResetForm()
	c.LoadStudents(ctx)
}

// EditStudent loads one student into the form and switches it to edit
// mode. On failure the form is left as it was.
func (c *StudentListController) EditStudent(ctx context.Context, id int64) {
	student, err := c.api.GetStudent(ctx, id)
	if err != nil {
		c.log.Error("failed to load student",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		c.ShowError("Error loading student: " + reason(err, "Failed to load student", false))
		return
	}

	// Fields, hidden id, editingID and chrome change together.
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ui.SetFormFields(view.FieldsFor(student))
	editing := student.ID
	c.editingID = &editing
	c.ui.SetFormMode(view.EditMode())
	c.ui.ScrollToForm()
}

// DeleteStudent removes a student after the user confirms. Declining
// sends nothing and changes nothing.
func (c *StudentListController) DeleteStudent(ctx context.Context, id int64) {
	if !c.confirm.Confirm(ctx, view.DeletePrompt) {
		c.log.Debug("delete declined", slog.Int64("id", id))
		return
	}

	if err := c.api.DeleteStudent(ctx, id); err != nil {
		c.log.Error("failed to delete student",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		c.ShowError("Error deleting student: " + reason(err, "Failed to delete student", true))
		return
	}

	c.log.Info("student deleted", slog.Int64("id", id))
	c.ShowSuccessMessage("Student deleted successfully!")
	c.LoadStudents(ctx)
}

// ResetForm clears the form and returns it to create mode.
func (c *StudentListController) ResetForm() {
	c.mu.Lock()
	c.ui.SetFormFields(view.FormFields{})
	c.editingID = nil
	c.ui.SetFormMode(view.CreateMode())
	c.mu.Unlock()

	c.HideError()
}

func (c *StudentListController) ShowLoading(on bool) {
	c.ui.SetLoading(on)
}

func (c *StudentListController) ShowError(msg string) {
	c.ui.ShowError(msg)
}

func (c *StudentListController) HideError() {
	c.ui.HideError()
}

// ShowSuccessMessage shows msg in the success banner and hides it after
// the success delay. A newer message replaces the pending hide, so the
// banner always stays up for the full delay after the latest message.
func (c *StudentListController) ShowSuccessMessage(msg string) {
	c.ui.ShowSuccess(msg)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.successTimer != nil {
		c.successTimer.Stop()
	}
	c.successGen++
	gen := c.successGen
	c.successTimer = c.afterFunc(c.successDelay, func() {
		c.mu.Lock()
		current := gen == c.successGen
		c.mu.Unlock()
		// A timer that fired while being replaced must not hide the new message.
		if current {
			c.ui.HideSuccess()
		}
	})
}

// Close stops a pending success-banner timer.
func (c *StudentListController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.successTimer != nil {
		c.successTimer.Stop()
		c.successTimer = nil
	}
}

// reason turns err into banner text. For API errors, useBody selects the
// message carried by the response body; otherwise (or when the body had
// nothing) fallback is used. Transport errors show their own text.
func reason(err error, fallback string, useBody bool) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if useBody && apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	return err.Error()
}
