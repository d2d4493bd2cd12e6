package ui

import (
	"context"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"todoboard/internal/core/model/response"
	"todoboard/pkg/client"

	"github.com/gin-gonic/gin"
)

var pageTemplate = template.Must(template.New("page").Parse(boardTemplate))

// Render writes the board markup for a state. It reads nothing but the
// state, so the same state always yields the same page.
func Render(w io.Writer, state ViewState) error {
	return pageTemplate.ExecuteTemplate(w, "board", state)
}

// BoardQuery is the current user/filter/sort selection encoded as a
// query string, so links and redirects land back on the same board view.
func (s ViewState) BoardQuery() template.URL {
	return template.URL(boardValues(s).Encode())
}

func boardValues(state ViewState) url.Values {
	values := url.Values{}

	if state.SelectedUserID != 0 {
		values.Set("userId", strconv.Itoa(state.SelectedUserID))
	}

	if state.FilterPriority != "" {
		values.Set("filterPriority", state.FilterPriority)
	}

	values.Set("sortBy", state.SortBy)
	values.Set("sortOrder", state.SortOrder)

	return values
}

// PageHandler serves the board at "/". Every request gets its own store,
// so nothing carries over between visitors; the query parameters replay
// the board events, which keeps the page navigable without scripts.
func PageHandler(apiClient *client.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		store := NewStore(apiClient)
		replayBoardParams(ctx, store, c.Query)

		if c.Query("new") != "" {
			store.Dispatch(ctx, CreateOpened{})
		}

		if id, ok := intParam(c.Query("edit")); ok {
			for _, todo := range store.State().Todos {
				if todo.ID == id {
					store.Dispatch(ctx, EditOpened{Todo: todo})
					break
				}
			}
		}

		if id, ok := intParam(c.Query("note")); ok {
			store.Dispatch(ctx, NoteOpened{TodoID: id})
		}

		if id, ok := intParam(c.Query("detail")); ok {
			store.Dispatch(ctx, DetailOpened{TodoID: id})
		}

		renderPage(c, store)
	}
}

// FormHandler accepts the board's form posts at "/" and maps them onto
// reducer events, so the reducer stays the single mutation path. On
// success it redirects back to the board; a failed action re-renders the
// page instead, keeping the alert and the form buffers visible.
func FormHandler(apiClient *client.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		store := NewStore(apiClient)
		replayBoardParams(ctx, store, c.PostForm)

		switch c.PostForm("action") {
		case "save":
			if id, ok := intParam(c.PostForm("editId")); ok {
				store.Dispatch(ctx, EditOpened{Todo: response.TodoResponse{ID: id}})
			} else {
				store.Dispatch(ctx, CreateOpened{})
			}

			store.Dispatch(ctx, FormEdited{
				Title:       c.PostForm("title"),
				Description: c.PostForm("description"),
				Priority:    c.PostForm("priority"),
			})
			store.Dispatch(ctx, FormSubmitted{})

		case "note":
			if id, ok := intParam(c.PostForm("id")); ok {
				store.Dispatch(ctx, NoteOpened{TodoID: id})
				store.Dispatch(ctx, NoteEdited{Content: c.PostForm("content")})
				store.Dispatch(ctx, NoteSubmitted{})
			}

		case "toggle":
			if id, ok := intParam(c.PostForm("id")); ok {
				store.Dispatch(ctx, CompletionToggled{TodoID: id})
			}

		case "delete":
			if id, ok := intParam(c.PostForm("id")); ok {
				store.Dispatch(ctx, DeleteRequested{TodoID: id})
			}
		}

		if store.State().AlertError != "" {
			renderPage(c, store)
			return
		}

		c.Redirect(http.StatusSeeOther, "/?"+boardValues(store.State()).Encode())
	}
}

// replayBoardParams rebuilds the board context for one request from the
// user/filter/sort parameters, read either from the query string or the
// posted form.
func replayBoardParams(ctx context.Context, store *Store, param func(string) string) {
	store.Dispatch(ctx, AppStarted{})

	if id, ok := intParam(param("userId")); ok {
		store.Dispatch(ctx, UserSelected{UserID: id})
	}

	if priority := param("filterPriority"); priority != "" {
		store.Dispatch(ctx, FilterChanged{Priority: priority})
	}

	if sortBy := param("sortBy"); sortBy != "" {
		store.Dispatch(ctx, SortByChanged{SortBy: sortBy})
	}

	if order := param("sortOrder"); order != "" && order != store.State().SortOrder {
		store.Dispatch(ctx, SortOrderToggled{})
	}
}

func renderPage(c *gin.Context, store *Store) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")

	if err := Render(c.Writer, store.State()); err != nil {
		c.String(http.StatusInternalServerError, "render failed")
	}
}

func intParam(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}

	id, err := strconv.Atoi(raw)

	return id, err == nil
}

const boardTemplate = `{{define "context"}}<input type="hidden" name="userId" value="{{.SelectedUserID}}">
<input type="hidden" name="filterPriority" value="{{.FilterPriority}}">
<input type="hidden" name="sortBy" value="{{.SortBy}}">
<input type="hidden" name="sortOrder" value="{{.SortOrder}}">{{end}}{{define "board"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>todoboard</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 48rem; }
.banner { background: #fdd; padding: .5rem 1rem; }
.alert { background: #fec; padding: .5rem 1rem; }
.todo.completed .title { text-decoration: line-through; color: #888; }
.priority { text-transform: capitalize; font-size: .85em; }
.controls form, .controls a { display: inline-block; margin-right: .75rem; }
.todo form { display: inline; }
.detail { border: 1px solid #ccc; padding: 1rem; margin-top: 1rem; }
</style>
</head>
<body>
<h1>todoboard</h1>

{{if .BannerError}}<div class="banner">{{.BannerError}}</div>{{end}}
{{if .AlertError}}<div class="alert">{{.AlertError}}</div>{{end}}

<div class="controls">
<form method="get" action="/">
<label>User
<select name="userId">
{{$selected := .SelectedUserID}}
{{range .Users}}<option value="{{.ID}}"{{if eq .ID $selected}} selected{{end}}>{{.Username}}</option>{{end}}
</select>
</label>
<label>Priority
<select name="filterPriority">
<option value="">all</option>
{{$filter := .FilterPriority}}
<option value="low"{{if eq $filter "low"}} selected{{end}}>low</option>
<option value="medium"{{if eq $filter "medium"}} selected{{end}}>medium</option>
<option value="high"{{if eq $filter "high"}} selected{{end}}>high</option>
</select>
</label>
<label>Sort by
<select name="sortBy">
<option value="createdAt"{{if eq .SortBy "createdAt"}} selected{{end}}>created</option>
<option value="priority"{{if eq .SortBy "priority"}} selected{{end}}>priority</option>
</select>
</label>
<input type="hidden" name="sortOrder" value="{{.SortOrder}}">
<button type="submit">Apply</button>
</form>
<a href="/?{{.BoardQuery}}&new=1">new todo</a>
</div>

{{if .UsersLoading}}
<p>Loading users…</p>
{{else if .TodosLoading}}
<p>Loading todos…</p>
{{else if not .Todos}}
<p>No todos yet.</p>
{{else}}
<ul>
{{range .Todos}}
<li class="todo{{if .Completed}} completed{{end}}">
<span class="title">{{.Title}}</span>
<span class="priority">[{{.Priority}}]</span>
{{if .Description}}<div class="description">{{.Description}}</div>{{end}}
<a href="/?{{$.BoardQuery}}&detail={{.ID}}">details</a>
<a href="/?{{$.BoardQuery}}&edit={{.ID}}">edit</a>
<a href="/?{{$.BoardQuery}}&note={{.ID}}">add note</a>
<form method="post" action="/">
{{template "context" $}}
<input type="hidden" name="action" value="toggle">
<input type="hidden" name="id" value="{{.ID}}">
<button type="submit">{{if .Completed}}reopen{{else}}done{{end}}</button>
</form>
<form method="post" action="/">
{{template "context" $}}
<input type="hidden" name="action" value="delete">
<input type="hidden" name="id" value="{{.ID}}">
<button type="submit">delete</button>
</form>
</li>
{{end}}
</ul>
{{end}}

{{if .FormOpen}}
<div class="detail">
<h2>{{if .Editing}}Edit todo{{else}}New todo{{end}}</h2>
<form method="post" action="/">
{{template "context" .}}
<input type="hidden" name="action" value="save">
{{if .Editing}}<input type="hidden" name="editId" value="{{.EditingID}}">{{end}}
<label>Title <input name="title" value="{{.FormTitle}}"></label>
<label>Description <textarea name="description">{{.FormDescription}}</textarea></label>
<label>Priority
<select name="priority">
<option value="low"{{if eq .FormPriority "low"}} selected{{end}}>low</option>
<option value="medium"{{if eq .FormPriority "medium"}} selected{{end}}>medium</option>
<option value="high"{{if eq .FormPriority "high"}} selected{{end}}>high</option>
</select>
</label>
<button type="submit">Save</button>
</form>
<a href="/?{{.BoardQuery}}">cancel</a>
</div>
{{end}}

{{if .NoteOpen}}
<div class="detail">
<h2>Add note</h2>
<form method="post" action="/">
{{template "context" .}}
<input type="hidden" name="action" value="note">
<input type="hidden" name="id" value="{{.NoteTodoID}}">
<textarea name="content">{{.NoteDraft}}</textarea>
<button type="submit">Add</button>
</form>
<a href="/?{{.BoardQuery}}">cancel</a>
</div>
{{end}}

{{if .DetailOpen}}
<div class="detail">
{{if .DetailLoading}}
<p>Loading details…</p>
{{else if .Detail}}
<h2>{{.Detail.Title}}</h2>
<p class="priority">{{.Detail.Priority}}{{if .Detail.Completed}} · done{{end}}</p>
{{if .Detail.Description}}<p>{{.Detail.Description}}</p>{{end}}
<h3>Notes</h3>
{{if .Detail.Notes}}
<ul>
{{range .Detail.Notes}}<li>{{.Content}}</li>{{end}}
</ul>
{{else}}
<p>No notes.</p>
{{end}}
{{end}}
<a href="/?{{.BoardQuery}}">close</a>
</div>
{{end}}

</body>
</html>
{{end}}`
