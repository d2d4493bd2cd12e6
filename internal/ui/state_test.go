package ui

import (
	"errors"
	"testing"

	"todoboard/internal/core/model/response"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

type ReducerSuite struct {
	suite.Suite
	state ViewState
}

func (s *ReducerSuite) SetupTest() {
	s.state = NewViewState()
}

func TestReducerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(ReducerSuite))
}

func todoFixture(id int, title string) response.TodoResponse {
	return response.TodoResponse{ID: id, Title: title, Priority: "medium"}
}

func (s *ReducerSuite) TestStartupFetchesUsers() {
	state, commands := Reduce(s.state, AppStarted{})

	Expect(state.UsersLoading).To(BeTrue())
	Expect(commands).To(Equal([]Command{FetchUsers{}}))
}

func (s *ReducerSuite) TestUsersLoadedSelectsFirstUserAndFetchesTodos() {
	users := []response.UserResponse{{ID: 3, Username: "alice"}, {ID: 5, Username: "bob"}}

	state, commands := Reduce(s.state, UsersLoaded{Users: users})

	Expect(state.UsersLoading).To(BeFalse())
	Expect(state.SelectedUserID).To(Equal(3))
	Expect(state.TodosLoading).To(BeTrue())
	Expect(commands).To(HaveLen(1))

	fetch := commands[0].(FetchTodos)
	Expect(fetch.UserID).To(Equal(3))
	Expect(fetch.SortBy).To(Equal("createdAt"))
	Expect(fetch.SortOrder).To(Equal("desc"))
}

func (s *ReducerSuite) TestUsersLoadedEmptyListFetchesNothing() {
	state, commands := Reduce(s.state, UsersLoaded{})

	Expect(state.SelectedUserID).To(BeZero())
	Expect(commands).To(BeEmpty())
}

func (s *ReducerSuite) TestUsersFailedSetsBanner() {
	state, _ := Reduce(s.state, UsersFailed{Err: errors.New("boom")})

	Expect(state.BannerError).To(Equal("Failed to load users"))
	Expect(state.UsersLoading).To(BeFalse())
}

func (s *ReducerSuite) TestUserSwitchRefetches() {
	s.state.SelectedUserID = 1
	s.state.Todos = []response.TodoResponse{todoFixture(1, "old")}

	state, commands := Reduce(s.state, UserSelected{UserID: 2})

	Expect(state.SelectedUserID).To(Equal(2))
	Expect(state.TodosLoading).To(BeTrue())
	Expect(commands[0].(FetchTodos).UserID).To(Equal(2))
}

func (s *ReducerSuite) TestFilterAndSortChangesRefetch() {
	s.state.SelectedUserID = 1

	state, commands := Reduce(s.state, FilterChanged{Priority: "high"})
	Expect(state.FilterPriority).To(Equal("high"))
	Expect(commands[0].(FetchTodos).FilterPriority).To(Equal("high"))

	state, commands = Reduce(state, SortByChanged{SortBy: "priority"})
	Expect(commands[0].(FetchTodos).SortBy).To(Equal("priority"))

	state, commands = Reduce(state, SortOrderToggled{})
	Expect(state.SortOrder).To(Equal("asc"))
	Expect(commands[0].(FetchTodos).SortOrder).To(Equal("asc"))

	state, _ = Reduce(state, SortOrderToggled{})
	Expect(state.SortOrder).To(Equal("desc"))
}

func (s *ReducerSuite) TestTodosLoadedClearsBanner() {
	s.state.TodosLoading = true
	s.state.BannerError = "Failed to load todos"

	state, _ := Reduce(s.state, TodosLoaded{Todos: []response.TodoResponse{todoFixture(1, "a")}})

	Expect(state.TodosLoading).To(BeFalse())
	Expect(state.BannerError).To(BeEmpty())
	Expect(state.Todos).To(HaveLen(1))
}

func (s *ReducerSuite) TestCreateSubmitIssuesCreateCommand() {
	s.state.SelectedUserID = 4

	state, _ := Reduce(s.state, CreateOpened{})
	state, _ = Reduce(state, FormEdited{Title: "New", Description: "Desc", Priority: "high"})

	_, commands := Reduce(state, FormSubmitted{})

	create := commands[0].(CreateTodo)
	Expect(create.UserID).To(Equal(4))
	Expect(create.Title).To(Equal("New"))
	Expect(create.Priority).To(Equal("high"))
}

func (s *ReducerSuite) TestEditSubmitIssuesSaveCommand() {
	description := "old text"
	todo := response.TodoResponse{ID: 9, Title: "Edit me", Description: &description, Priority: "low"}

	state, _ := Reduce(s.state, EditOpened{Todo: todo})

	Expect(state.Editing()).To(BeTrue())
	Expect(state.FormTitle).To(Equal("Edit me"))
	Expect(state.FormDescription).To(Equal("old text"))

	_, commands := Reduce(state, FormSubmitted{})

	save := commands[0].(SaveTodo)
	Expect(save.ID).To(Equal(9))
	Expect(save.Title).To(Equal("Edit me"))
}

func (s *ReducerSuite) TestSaveSuccessClosesModalAndRefetches() {
	s.state.SelectedUserID = 1
	s.state.FormOpen = true
	s.state.FormTitle = "Buffered"

	state, commands := Reduce(s.state, TodoSaved{Todo: todoFixture(1, "Buffered")})

	Expect(state.FormOpen).To(BeFalse())
	Expect(state.FormTitle).To(BeEmpty())
	Expect(state.TodosLoading).To(BeTrue())
	Expect(commands[0]).To(BeAssignableToTypeOf(FetchTodos{}))
}

func (s *ReducerSuite) TestSaveFailureSetsAlertAndKeepsModal() {
	s.state.FormOpen = true
	s.state.FormTitle = "Keep me"

	state, commands := Reduce(s.state, TodoSaveFailed{Err: errors.New("api error 400: Title is required")})

	Expect(state.FormOpen).To(BeTrue())
	Expect(state.FormTitle).To(Equal("Keep me"))
	Expect(state.AlertError).To(ContainSubstring("Title is required"))
	Expect(commands).To(BeEmpty())
}

func (s *ReducerSuite) TestToggleIssuesPatchWithInvertedFlag() {
	s.state.Todos = []response.TodoResponse{{ID: 2, Title: "t", Completed: true}}

	_, commands := Reduce(s.state, CompletionToggled{TodoID: 2})

	patch := commands[0].(PatchCompletion)
	Expect(patch.ID).To(Equal(2))
	Expect(patch.Completed).To(BeFalse())
}

func (s *ReducerSuite) TestPatchedTodoReplacesListEntryInPlace() {
	s.state.Todos = []response.TodoResponse{todoFixture(1, "a"), todoFixture(2, "b")}

	updated := response.TodoResponse{ID: 2, Title: "b", Completed: true, Priority: "medium"}

	state, commands := Reduce(s.state, TodoPatched{Todo: updated})

	Expect(commands).To(BeEmpty())
	Expect(state.Todos[0].Completed).To(BeFalse())
	Expect(state.Todos[1].Completed).To(BeTrue())
}

func (s *ReducerSuite) TestDeleteRemovesEntryLocally() {
	s.state.Todos = []response.TodoResponse{todoFixture(1, "a"), todoFixture(2, "b")}

	state, commands := Reduce(s.state, TodoDeleted{TodoID: 1})

	Expect(commands).To(BeEmpty())
	Expect(state.Todos).To(HaveLen(1))
	Expect(state.Todos[0].ID).To(Equal(2))
}

func (s *ReducerSuite) TestNoteFlowClearsDraftOnClose() {
	state, _ := Reduce(s.state, NoteOpened{TodoID: 3})
	state, _ = Reduce(state, NoteEdited{Content: "draft"})

	Expect(state.NoteDraft).To(Equal("draft"))

	_, commands := Reduce(state, NoteSubmitted{})
	note := commands[0].(AddNote)
	Expect(note.TodoID).To(Equal(3))
	Expect(note.Content).To(Equal("draft"))

	state, _ = Reduce(state, NoteClosed{})
	Expect(state.NoteOpen).To(BeFalse())
	Expect(state.NoteDraft).To(BeEmpty())
}

func (s *ReducerSuite) TestDetailOpensWithFetch() {
	state, commands := Reduce(s.state, DetailOpened{TodoID: 8})

	Expect(state.DetailOpen).To(BeTrue())
	Expect(state.DetailLoading).To(BeTrue())
	Expect(commands[0]).To(Equal(Command(FetchDetail{ID: 8})))

	detail := response.TodoDetailResponse{TodoResponse: todoFixture(8, "detail")}

	state, _ = Reduce(state, DetailLoaded{Detail: detail})
	Expect(state.DetailLoading).To(BeFalse())
	Expect(state.Detail.Title).To(Equal("detail"))

	state, _ = Reduce(state, DetailClosed{})
	Expect(state.DetailOpen).To(BeFalse())
	Expect(state.Detail).To(BeNil())
}

func (s *ReducerSuite) TestDetailFailureClosesAndAlerts() {
	s.state.DetailOpen = true
	s.state.DetailLoading = true

	state, _ := Reduce(s.state, DetailFailed{Err: errors.New("api error 404: Todo not found")})

	Expect(state.DetailOpen).To(BeFalse())
	Expect(state.AlertError).To(ContainSubstring("Todo not found"))
}

func (s *ReducerSuite) TestAlertDismissed() {
	s.state.AlertError = "something"

	state, _ := Reduce(s.state, AlertDismissed{})

	Expect(state.AlertError).To(BeEmpty())
}
