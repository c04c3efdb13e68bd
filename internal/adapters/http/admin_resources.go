package web

import (
	"net/http"
	"strconv"

	"flotenn/internal/adapters/http/middleware"
	"flotenn/internal/adapters/storage"
	"flotenn/internal/application/orchestrators"
)

// Form field types understood by admin_form.html.
const (
	inputText     = "text"
	inputTextarea = "textarea"
	inputContent  = "content" // tall textarea for Markdown/HTML bodies
	inputNumber   = "number"
	inputCheckbox = "checkbox"
	inputSelect   = "select"
	inputImage    = "image" // URL field with an upload button
)

// field binds one form input to a record field.
type field[T any] struct {
	Name     string
	Label    string
	Type     string
	Options  []string
	Required bool
	Help     string
	Get      func(T) string
	Set      func(*T, string)
}

// cell is one rendered list cell. A non-empty Class renders a status badge.
type cell struct {
	Text  string
	Class string
	Image bool
}

type column[T any] struct {
	Label string
	Cell  func(T) cell
}

func textCell(s string) cell  { return cell{Text: s} }
func imageCell(s string) cell { return cell{Text: s, Image: true} }

// flagCell renders a boolean as a success or warning badge.
func flagCell(on bool, yes, no string) cell {
	if on {
		return cell{Text: yes, Class: "status-success"}
	}
	return cell{Text: no, Class: "status-warning"}
}

// resource is one back-office content section with list, create, edit and
// delete.
type resource[T any] struct {
	Path     string // e.g. "/admin/services"
	Singular string // e.g. "Service"
	Plural   string
	Store    storage.Records[T]
	Kind     orchestrators.ContentKind[T]
	Key      func(T) string
	Columns  []column[T]
	Fields   []field[T]
	// PublicURL links a row to the live site; nil hides the link.
	PublicURL func(T) string
}

// listRow is one rendered list row.
type listRow struct {
	Key       string
	Cells     []cell
	PublicURL string
}

// fieldView is one rendered form input.
type fieldView struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Checked  bool
	Options  []string
	Required bool
	Help     string
}

func (res *resource[T]) deps() orchestrators.ContentDeps[T] {
	return orchestrators.ContentDeps[T]{
		Store:      res.Store,
		Kind:       res.Kind,
		Activity:   activityDeps(),
		GenerateID: generateID,
		Now:        timeNow,
	}
}

// register mounts the section's routes behind the section's role set.
func (res *resource[T]) register(mux *http.ServeMux) {
	guard := middleware.RequireRole(sectionRoles(res.Path))
	mux.Handle("GET "+res.Path, guard(http.HandlerFunc(res.handleList)))
	mux.Handle("GET "+res.Path+"/new", guard(http.HandlerFunc(res.handleNew)))
	mux.Handle("GET "+res.Path+"/{id}", guard(http.HandlerFunc(res.handleEdit)))
	mux.Handle("POST "+res.Path, guard(http.HandlerFunc(res.handleSave)))
	mux.Handle("POST "+res.Path+"/{id}", guard(http.HandlerFunc(res.handleSave)))
	mux.Handle("POST "+res.Path+"/{id}/delete", guard(http.HandlerFunc(res.handleDelete)))
}

func (res *resource[T]) handleList(w http.ResponseWriter, r *http.Request) {
	res.renderList(w, r, http.StatusOK, "")
}

func (res *resource[T]) renderList(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	items, err := res.Store.List(r.Context(), storage.ListOptions{})
	if err != nil {
		internalError(w, err)
		return
	}
	headers := make([]string, len(res.Columns))
	for i, c := range res.Columns {
		headers[i] = c.Label
	}
	rows := make([]listRow, 0, len(items))
	for _, it := range items {
		row := listRow{Key: res.Key(it)}
		for _, c := range res.Columns {
			row.Cells = append(row.Cells, c.Cell(it))
		}
		if res.PublicURL != nil {
			row.PublicURL = res.PublicURL(it)
		}
		rows = append(rows, row)
	}
	renderTemplateStatus(w, r, status, "admin_list.html", map[string]any{
		"Section":  res.Path,
		"Singular": res.Singular,
		"Plural":   res.Plural,
		"Headers":  headers,
		"Rows":     rows,
		"Error":    errMsg,
		"Saved":    r.URL.Query().Get("saved") == "1",
		"CanWrite": currentSession(r).CanWrite(),
	})
}

func (res *resource[T]) handleNew(w http.ResponseWriter, r *http.Request) {
	var zero T
	res.renderForm(w, r, http.StatusOK, "", zero, "")
}

func (res *resource[T]) handleEdit(w http.ResponseWriter, r *http.Request) {
	rec, err := res.Store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		lookupFailed(w, r, err)
		return
	}
	res.renderForm(w, r, http.StatusOK, r.PathValue("id"), rec, "")
}

func (res *resource[T]) renderForm(w http.ResponseWriter, r *http.Request, status int, key string, rec T, errMsg string) {
	views := make([]fieldView, 0, len(res.Fields))
	for _, f := range res.Fields {
		v := fieldView{
			Name: f.Name, Label: f.Label, Type: f.Type, Options: f.Options,
			Required: f.Required, Help: f.Help, Value: f.Get(rec),
		}
		if f.Type == inputCheckbox {
			v.Checked = v.Value == "true"
		}
		views = append(views, v)
	}
	action := res.Path
	title := "New " + res.Singular
	if key != "" {
		action = res.Path + "/" + key
		title = "Edit " + res.Singular
	}
	renderTemplateStatus(w, r, status, "admin_form.html", map[string]any{
		"Section":  res.Path,
		"Singular": res.Singular,
		"Title":    title,
		"Action":   action,
		"Fields":   views,
		"Error":    errMsg,
		"CanWrite": currentSession(r).CanWrite(),
	})
}

// parse reads the submitted form into a record.
func (res *resource[T]) parse(r *http.Request) T {
	var rec T
	for _, f := range res.Fields {
		v := formText(r, f.Name)
		if f.Type == inputCheckbox {
			v = strconv.FormatBool(formBool(r, f.Name))
		}
		if f.Type == inputContent || f.Type == inputTextarea {
			v = r.FormValue(f.Name)
		}
		f.Set(&rec, v)
	}
	return rec
}

func (res *resource[T]) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	key := r.PathValue("id")
	rec := res.parse(r)
	_, err := orchestrators.ExecuteSaveContent(r.Context(), orchestrators.SaveContentInput[T]{
		Key:     key,
		Record:  rec,
		ActorID: currentSession(r).AccountID,
	}, res.deps())
	if err != nil {
		res.renderForm(w, r, http.StatusUnprocessableEntity, key, rec, formFailure(err, res.Kind.EntityType))
		return
	}
	redirectTo(w, r, res.Path+"?saved=1")
}

func (res *resource[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteContent(r.Context(), r.PathValue("id"), currentSession(r).AccountID, res.deps())
	if err != nil {
		res.renderList(w, r, http.StatusUnprocessableEntity, formFailure(err, res.Kind.EntityType))
		return
	}
	redirectTo(w, r, res.Path)
}

// sectionRegistrar is a resource with its type parameter erased.
type sectionRegistrar interface {
	register(mux *http.ServeMux)
}
