package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/justestif/soundwave/internal/account"
	"github.com/justestif/soundwave/internal/lastfm"
	"github.com/justestif/soundwave/internal/view"
)

// Templates holds the parsed pages and the shared set of fragments.
type Templates struct {
	pages    map[string]*template.Template
	partials *template.Template
}

// NewTemplates parses layouts/, pages/ and partials/ from templatesFS.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	found, err := globDirs(templatesFS, "layouts", "partials", "pages")
	if err != nil {
		return nil, err
	}
	layouts, partials, pages := found[0], found[1], found[2]

	t := &Templates{pages: make(map[string]*template.Template, len(pages))}
	funcs := defaultFuncs()

	if len(partials) > 0 {
		t.partials, err = template.New("partials").Funcs(funcs).ParseFS(templatesFS, partials...)
		if err != nil {
			return nil, fmt.Errorf("parsing partials: %w", err)
		}
	}

	// Every page is parsed with the layouts and partials it may call.
	shared := make([]string, 0, len(layouts)+len(partials))
	shared = append(shared, layouts...)
	shared = append(shared, partials...)

	for _, page := range pages {
		name := trimExt(page)
		files := append([]string{page}, shared...)

		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parsing page %s: %w", name, err)
		}
		t.pages[name] = tmpl
	}

	return t, nil
}

// Render executes the base layout around the named page.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.pages[page]
	if !ok {
		return fmt.Errorf("page %q not found", page)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

// RenderPartial executes a single fragment. Each partial file defines a
// template named after the file.
func (t *Templates) RenderPartial(w io.Writer, partial string, data any) error {
	if t.partials == nil || t.partials.Lookup(partial) == nil {
		return fmt.Errorf("partial %q not found", partial)
	}
	return t.partials.ExecuteTemplate(w, partial, data)
}

func globDirs(fsys fs.FS, dirs ...string) ([][]string, error) {
	found := make([][]string, len(dirs))
	for i, dir := range dirs {
		matches, err := fs.Glob(fsys, dir+"/*.html")
		if err != nil {
			return nil, fmt.Errorf("finding %s: %w", dir, err)
		}
		found[i] = matches
	}
	return found, nil
}

func trimExt(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"chartsURL": func(page string) string {
			return withPage("/sections/charts", url.Values{}, page)
		},

		"searchURL": func(page, term string) string {
			return withPage("/sections/search", url.Values{"q": {term}}, page)
		},

		// detailURL builds the fragment URL behind a card's "Sobre" button.
		"detailURL": func(c cardView) string {
			q := url.Values{}
			q.Set("kind", string(c.Card.Kind))
			q.Set("title", c.Card.Title)
			q.Set("subtitle", c.Card.Subtitle)
			q.Set("token", c.Token)
			return withPage("/cards/detail", q, c.Page)
		},

		"sectionView": func(page string, s view.Section) sectionView {
			return sectionView{Page: page, Section: s}
		},

		"cardView": func(page string, n view.Node) cardView {
			return cardView{Page: page, Node: n}
		},

		"kindLabel": view.KindLabel,

		"isArtist": func(k lastfm.Kind) bool {
			return k == lastfm.KindArtist
		},
	}
}

func withPage(path string, q url.Values, page string) string {
	if page != "" {
		q.Set("page", page)
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// sectionView and cardView carry the page id down to the cards, whose
// detail URLs must name the board they were rendered on.
type sectionView struct {
	Page string
	view.Section
}

type cardView struct {
	Page string
	view.Node
}

// PageData is embedded in the data of every page.
type PageData struct {
	Title       string
	Flash       *FlashMessage
	CurrentPath string
	Page        string // board id of the discovery page, empty elsewhere
}

// FlashMessage is a toast shown once, on a page or as a fragment.
type FlashMessage struct {
	Type    string // "success", "info", "warning", "error"
	Title   string
	Message string
	Icon    string
}

func flashFromNotice(n account.Notice) *FlashMessage {
	return &FlashMessage{
		Type:    string(n.Level),
		Title:   n.Title,
		Message: n.Message,
		Icon:    n.Icon,
	}
}

// HomePageData is rendered by the home page.
type HomePageData struct {
	PageData
	Sections []view.Section
	Recent   []string
}

// SectionsData is rendered by the sections fragment.
type SectionsData struct {
	Page     string
	Sections []view.Section
	Recent   []string
}

// LoginPageData contains data for the login page template.
type LoginPageData struct {
	PageData
	Mode  string // "login" or "register"
	Email string
	Name  string
}

// ToastData is rendered by the toast fragment.
type ToastData struct {
	*FlashMessage
	Redirect string
}
