// Package web serves the students page and turns its buttons into
// StudentListController operations.
//
// Every action is a form POST that runs one controller operation and
// redirects back to the page (Post/Redirect/Get), so a browser refresh
// never repeats an action.
//
//	GET  /                       → render the page
//	POST /refresh                → reload the list
//	POST /students               → submit the form (create or update)
//	POST /students/{id}/edit     → load a student into the form
//	GET  /students/{id}/delete   → ask for confirmation
//	POST /students/{id}/delete   → delete if confirm=yes
//	POST /form/cancel            → reset the form
package web

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aanand-mishra/students-web/internal/controller"
	"github.com/aanand-mishra/students-web/internal/middleware"
	"github.com/aanand-mishra/students-web/internal/view"
)

type confirmKey struct{}

// WithConfirmation records the user's answer to a confirmation prompt.
func WithConfirmation(ctx context.Context, yes bool) context.Context {
	return context.WithValue(ctx, confirmKey{}, yes)
}

// RequestConfirmer answers the controller's confirmation prompt with the
// answer stored by WithConfirmation. No answer means no.
func RequestConfirmer() controller.Confirmer {
	return controller.ConfirmFunc(func(ctx context.Context, _ string) bool {
		yes, _ := ctx.Value(confirmKey{}).(bool)
		return yes
	})
}

// Handler serves the page backed by one controller and its page document.
type Handler struct {
	ctrl   *controller.StudentListController
	page   *view.Page
	logger *slog.Logger
}

func NewHandler(ctrl *controller.StudentListController, page *view.Page, logger *slog.Logger) *Handler {
	return &Handler{ctrl: ctrl, page: page, logger: logger}
}

// Routes returns the router with middleware and all page routes.
//
// Middleware order: RequestID → RealIP → Recoverer → Logger.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logger(h.logger))

	r.Get("/", h.HandlePage)
	r.Post("/refresh", h.HandleRefresh)
	r.Post("/form/cancel", h.HandleCancel)

	r.Route("/students", func(r chi.Router) {
		r.Post("/", h.HandleSubmit)
		r.Post("/{id}/edit", h.HandleEdit)
		r.Get("/{id}/delete", h.HandleConfirmDelete)
		r.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}

func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.Render(w, h.page.Snapshot()); err != nil {
		h.logger.Error("failed to render page", slog.String("error", err.Error()))
	}
}

func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	h.ctrl.LoadStudents(actionContext(r))
	h.redirect(w, r)
}

func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.ctrl.ResetForm()
	h.redirect(w, r)
}

// HandleSubmit hands the posted form to the controller. The hidden
// student-id decides between create and update.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	h.ctrl.SubmitForm(actionContext(r), view.FormFields{
		ID:        r.PostForm.Get("student-id"),
		FirstName: r.PostForm.Get("firstName"),
		LastName:  r.PostForm.Get("lastName"),
		Email:     r.PostForm.Get("email"),
		Age:       r.PostForm.Get("age"),
		Course:    r.PostForm.Get("course"),
	})
	h.redirect(w, r)
}

func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}

	h.ctrl.EditStudent(actionContext(r), id)
	h.redirect(w, r)
}

func (h *Handler) HandleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.RenderConfirm(w, id); err != nil {
		h.logger.Error("failed to render confirmation", slog.String("error", err.Error()))
	}
}

// HandleDelete passes the posted confirm answer to the controller, which
// asks before deleting.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := studentID(w, r)
	if !ok {
		return
	}

	ctx := WithConfirmation(actionContext(r), r.FormValue("confirm") == "yes")
	h.ctrl.DeleteStudent(ctx, id)
	h.redirect(w, r)
}

// redirect sends the browser back to the page, to the form when the
// controller asked for it to be scrolled into view.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if h.page.TakeScrollToForm() {
		target = "/#" + view.FormSectionID
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// actionContext keeps request values but not cancellation: an action the
// user started runs to completion even if the browser goes away.
func actionContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func studentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id: must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
