package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/justestif/soundwave/internal/account"
	"github.com/justestif/soundwave/internal/lastfm"
	"github.com/justestif/soundwave/internal/view"
)

const (
	appTitle     = "SoundWave"
	recentLimit  = 8
	noticeTarget = "#notices"
)

// SearchHistory records search terms and lists the recent ones.
type SearchHistory interface {
	Record(ctx context.Context, term string) error
	RecentTerms(ctx context.Context, limit int) ([]string, error)
}

type noHistory struct{}

func (noHistory) Record(context.Context, string) error                { return nil }
func (noHistory) RecentTerms(context.Context, int) ([]string, error) { return nil, nil }

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	templates *Templates
	boards    *BoardStore
	loader    *view.Loader
	binder    *view.Binder
	history   SearchHistory
	logger    zerolog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	templates *Templates,
	boards *BoardStore,
	loader *view.Loader,
	binder *view.Binder,
	history SearchHistory,
	logger zerolog.Logger,
) *Handlers {
	if history == nil {
		history = noHistory{}
	}
	return &Handlers{
		templates: templates,
		boards:    boards,
		loader:    loader,
		binder:    binder,
		history:   history,
		logger:    logger,
	}
}

// Home renders the discovery page with every section waiting for the
// charts fragment (GET /). Each rendered page gets its own board.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	page, board, err := h.boards.Create()
	if err != nil {
		h.serverError(w, r, err, "Creating board")
		return
	}

	data := HomePageData{
		PageData: PageData{
			Title:       appTitle,
			CurrentPath: r.URL.Path,
			Page:        page,
		},
		Sections: board.Sections(),
		Recent:   h.recent(r.Context()),
	}

	h.render(w, r, "home", data)
}

// Charts loads the three charts into the page's board and returns the
// sections fragment (GET /sections/charts?page=).
func (h *Handlers) Charts(w http.ResponseWriter, r *http.Request) {
	page, board, err := h.boards.Acquire(r.URL.Query().Get("page"))
	if err != nil {
		h.serverError(w, r, err, "Creating board")
		return
	}

	result := h.loader.LoadCharts(r.Context(), board)
	h.logger.Debug().
		Strs("populated", result.Populated).
		Strs("failed", result.Failed).
		Msg("Charts loaded")

	h.renderSections(w, r, page, board)
}

// Search loads the search matches for q into the page's board and returns
// the sections fragment (GET /sections/search?q=&page=). A blank query
// leaves the page unchanged. Only searches that found something are kept
// in the history.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("q"))
	if query == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	page, board, err := h.boards.Acquire(q.Get("page"))
	if err != nil {
		h.serverError(w, r, err, "Creating board")
		return
	}

	result := h.loader.LoadSearch(r.Context(), board, query)
	h.logger.Debug().
		Str("query", query).
		Strs("populated", result.Populated).
		Strs("failed", result.Failed).
		Msg("Search loaded")

	if len(result.Populated) > 0 {
		if err := h.history.Record(r.Context(), query); err != nil {
			h.logger.Warn().Err(err).Str("query", query).Msg("Recording search")
		}
	}

	h.renderSections(w, r, page, board)
}

// Detail resolves a card's "Sobre" button into a modal or a notification
// (GET /cards/detail). Tokens are checked against the board of the page the
// card was rendered on. Stale cards and empty requests get 204 No Content.
func (h *Handlers) Detail(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	kind, ok := lastfm.ParseKind(q.Get("kind"))
	if !ok {
		http.Error(w, "unknown card kind", http.StatusBadRequest)
		return
	}

	req := view.DetailRequest{
		Kind:     kind,
		Title:    q.Get("title"),
		Subtitle: q.Get("subtitle"),
		Token:    q.Get("token"),
	}

	// Without a board (expired or after a restart) there is nothing to
	// compare the token with, so the card is treated as live.
	var live view.TokenChecker
	if board := h.boards.Lookup(q.Get("page")); board != nil {
		live = board
	}

	outcome := h.binder.Detail(r.Context(), req, live)
	switch outcome.Kind {
	case view.OutcomeModal:
		h.renderPartial(w, r, "modal", outcome.Modal)
	case view.OutcomeNotice:
		w.Header().Set("HX-Retarget", noticeTarget)
		w.Header().Set("HX-Reswap", "beforeend")
		h.renderPartial(w, r, "notification", outcome.Notice)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// LoginPage renders the login and registration forms (GET /login).
func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	mode := "login"
	if r.URL.Query().Get("mode") == "register" {
		mode = "register"
	}
	h.render(w, r, "login", LoginPageData{
		PageData: PageData{Title: appTitle + " - Entrar", CurrentPath: r.URL.Path},
		Mode:     mode,
	})
}

// Login validates the login form (POST /login). No credentials are checked.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := account.Login{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	if err := account.ValidateLogin(form); err != nil {
		h.formFailed(w, r, err, LoginPageData{Mode: "login", Email: form.Email})
		return
	}

	h.logger.Info().Msg("Login form accepted")
	h.formSucceeded(w, r, account.LoggedIn(), "/", "login")
}

// Register validates the registration form (POST /register). Nothing is
// stored; success switches the page back to the login form.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := account.Registration{
		Name:            r.PostFormValue("name"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	if err := account.ValidateRegistration(form); err != nil {
		h.formFailed(w, r, err, LoginPageData{Mode: "register", Email: form.Email, Name: form.Name})
		return
	}

	h.logger.Info().Msg("Registration form accepted")
	w.Header().Set("HX-Trigger", "registered")
	h.formSucceeded(w, r, account.Registered(form.Name), "", "login")
}

// ForgotPassword answers the forgot-password link (GET /login/forgot).
func (h *Handlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	h.renderPartial(w, r, "toast", ToastData{FlashMessage: flashFromNotice(account.PasswordRecovery())})
}

// Healthz reports that the server is up (GET /healthz).
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// formFailed answers a rejected form: a toast for HTMX requests, the login
// page with a flash message otherwise.
func (h *Handlers) formFailed(w http.ResponseWriter, r *http.Request, err error, data LoginPageData) {
	var verr *account.ValidationError
	if !errors.As(err, &verr) {
		h.serverError(w, r, err, "Validating form")
		return
	}
	flash := flashFromNotice(verr.Notice)

	if isHTMX(r) {
		h.renderPartial(w, r, "toast", ToastData{FlashMessage: flash})
		return
	}

	data.PageData = PageData{Title: appTitle + " - Entrar", Flash: flash, CurrentPath: r.URL.Path}
	h.renderStatus(w, r, http.StatusUnprocessableEntity, "login", data)
}

// formSucceeded answers an accepted form. redirect is followed by the
// browser once the toast has been shown.
func (h *Handlers) formSucceeded(w http.ResponseWriter, r *http.Request, n account.Notice, redirect, mode string) {
	flash := flashFromNotice(n)

	if isHTMX(r) {
		h.renderPartial(w, r, "toast", ToastData{FlashMessage: flash, Redirect: redirect})
		return
	}

	h.render(w, r, "login", LoginPageData{
		PageData: PageData{Title: appTitle + " - Entrar", Flash: flash, CurrentPath: r.URL.Path},
		Mode:     mode,
	})
}

func (h *Handlers) renderSections(w http.ResponseWriter, r *http.Request, page string, board *view.Board) {
	h.renderPartial(w, r, "sections", SectionsData{
		Page:     page,
		Sections: board.Sections(),
		Recent:   h.recent(r.Context()),
	})
}

func (h *Handlers) recent(ctx context.Context) []string {
	terms, err := h.history.RecentTerms(ctx, recentLimit)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Loading recent searches")
		return nil
	}
	return terms
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	h.renderStatus(w, r, http.StatusOK, page, data)
}

// renderStatus renders a full page into a buffer first so that a template
// failure can still be answered with a 500.
func (h *Handlers) renderStatus(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.templates.Render(&buf, page, data); err != nil {
		h.serverError(w, r, err, "Rendering page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handlers) renderPartial(w http.ResponseWriter, r *http.Request, partial string, data any) {
	var buf bytes.Buffer
	if err := h.templates.RenderPartial(&buf, partial, data); err != nil {
		h.serverError(w, r, err, "Rendering fragment")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	h.logger.Error().Err(err).Str("path", r.URL.Path).Msg(msg)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
