package ui

import (
	"strings"
	"testing"

	"todoboard/internal/core/model/response"

	. "github.com/onsi/gomega"
)

func renderToString(t *testing.T, state ViewState) string {
	t.Helper()

	var sb strings.Builder

	if err := Render(&sb, state); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	return sb.String()
}

func TestRenderEmptyBoard(t *testing.T) {
	RegisterTestingT(t)

	html := renderToString(t, NewViewState())

	Expect(html).To(ContainSubstring("todoboard"))
	Expect(html).To(ContainSubstring("No todos yet."))
}

func TestRenderTodoList(t *testing.T) {
	RegisterTestingT(t)

	description := "with details"
	state := NewViewState()
	state.Users = []response.UserResponse{{ID: 1, Username: "alice"}}
	state.SelectedUserID = 1
	state.Todos = []response.TodoResponse{
		{ID: 1, Title: "Open item", Priority: "high", Description: &description},
		{ID: 2, Title: "Done item", Priority: "low", Completed: true},
	}

	html := renderToString(t, state)

	Expect(html).To(ContainSubstring("Open item"))
	Expect(html).To(ContainSubstring("with details"))
	Expect(html).To(ContainSubstring(`class="todo completed"`))
	Expect(html).To(ContainSubstring(`<option value="1" selected>alice</option>`))
}

func TestRenderEscapesUserContent(t *testing.T) {
	RegisterTestingT(t)

	state := NewViewState()
	state.Todos = []response.TodoResponse{{ID: 1, Title: "<script>alert(1)</script>", Priority: "low"}}

	html := renderToString(t, state)

	Expect(html).NotTo(ContainSubstring("<script>alert(1)</script>"))
	Expect(html).To(ContainSubstring("&lt;script&gt;"))
}

func TestRenderBannerAndAlert(t *testing.T) {
	RegisterTestingT(t)

	state := NewViewState()
	state.BannerError = "Failed to load todos"
	state.AlertError = "Invalid priority value"

	html := renderToString(t, state)

	Expect(html).To(ContainSubstring(`<div class="banner">Failed to load todos</div>`))
	Expect(html).To(ContainSubstring(`<div class="alert">Invalid priority value</div>`))
}

func TestRenderDetailPanel(t *testing.T) {
	RegisterTestingT(t)

	state := NewViewState()
	state.DetailOpen = true
	state.Detail = &response.TodoDetailResponse{
		TodoResponse: response.TodoResponse{ID: 3, Title: "Inspect me", Priority: "medium"},
		Notes:        []response.NoteResponse{{ID: 1, Content: "a note", TodoId: 3}},
	}

	html := renderToString(t, state)

	Expect(html).To(ContainSubstring("Inspect me"))
	Expect(html).To(ContainSubstring("a note"))
}

func TestRenderFormBuffers(t *testing.T) {
	RegisterTestingT(t)

	state := NewViewState()
	state.FormOpen = true
	state.EditingID = 5
	state.FormTitle = "Halfway typed"
	state.FormPriority = "high"

	html := renderToString(t, state)

	Expect(html).To(ContainSubstring("Edit todo"))
	Expect(html).To(ContainSubstring(`value="Halfway typed"`))
	Expect(html).To(ContainSubstring(`<option value="high" selected>high</option>`))
}
