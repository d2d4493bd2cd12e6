package handler_test

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"todoboard/internal/adapter/database/sqlite"
	adapterhttp "todoboard/internal/adapter/http"
	"todoboard/internal/adapter/http/routes"
	"todoboard/internal/core/model/response"
	"todoboard/pkg/test"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

type HandlerSuite struct {
	suite.Suite
	db     *sql.DB
	router *gin.Engine
}

func (s *HandlerSuite) SetupTest() {
	s.db = test.InitTestDB()

	container := adapterhttp.NewSQLiteContainer(sqlite.WrapDB(s.db), nil, nil, nil)

	s.router = routes.SetupRouterForTests(routes.HandlersConfig{
		UserHandler: container.UserHandler,
		TodoHandler: container.TodoHandler,
		NoteHandler: container.NoteHandler,
	})
}

func (s *HandlerSuite) TearDownTest() {
	s.db.Close()
}

func TestHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) request(method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader

	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req, _ := http.NewRequest(method, path, reader)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	return rr
}

func (s *HandlerSuite) createTodo(body string) response.TodoResponse {
	rr := s.request("POST", "/api/todos", body)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	var envelope struct {
		Data response.TodoResponse `json:"data"`
	}

	Expect(json.Unmarshal(rr.Body.Bytes(), &envelope)).To(Succeed())

	return envelope.Data
}

func decodeError(rr *httptest.ResponseRecorder) response.ResponseError {
	var envelope response.ErrorResponse
	Expect(json.Unmarshal(rr.Body.Bytes(), &envelope)).To(Succeed())

	return envelope.Error
}

func (s *HandlerSuite) TestListSeededUsers() {
	rr := s.request("GET", "/api/users", "")

	Expect(rr.Code).To(Equal(http.StatusOK))

	var users []response.UserResponse
	Expect(json.Unmarshal(rr.Body.Bytes(), &users)).To(Succeed())

	Expect(users).To(HaveLen(3))
	Expect(users[0].Username).To(Equal("alice"))
	Expect(users[1].Username).To(Equal("bob"))
	Expect(users[2].Username).To(Equal("charlie"))
}

func (s *HandlerSuite) TestGetTodosRequiresUserId() {
	rr := s.request("GET", "/api/todos", "")

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	apiErr := decodeError(rr)
	Expect(apiErr.Errors[0].Message).To(Equal("Valid userId query parameter is required"))
}

func (s *HandlerSuite) TestGetTodosEmptyList() {
	rr := s.request("GET", "/api/todos?userId=1", "")

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(strings.TrimSpace(rr.Body.String())).To(Equal("[]"))
}

func (s *HandlerSuite) TestCreateTodoDefaults() {
	todo := s.createTodo(`{"title": "Buy milk", "user_id": 1}`)

	Expect(todo.ID).To(BeNumerically(">", 0))
	Expect(todo.Title).To(Equal("Buy milk"))
	Expect(todo.Priority).To(Equal("medium"))
	Expect(todo.Completed).To(BeFalse())
	Expect(todo.Description).To(BeNil())
	Expect(todo.UserId).To(Equal(1))
}

func (s *HandlerSuite) TestCreateTodoRequiresUserId() {
	rr := s.request("POST", "/api/todos", `{"title": "No owner"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	apiErr := decodeError(rr)
	Expect(apiErr.Errors[0].Message).To(Equal("Valid user_id is required"))
}

func (s *HandlerSuite) TestCreateTodoRequiresTitle() {
	rr := s.request("POST", "/api/todos", `{"title": "   ", "user_id": 1}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	apiErr := decodeError(rr)
	Expect(apiErr.Errors[0].Message).To(Equal("Title is required"))
}

func (s *HandlerSuite) TestCreateTodoUnknownUser() {
	rr := s.request("POST", "/api/todos", `{"title": "Ghost", "user_id": 999}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	apiErr := decodeError(rr)
	Expect(apiErr.Errors[0].Message).To(Equal("Invalid user ID"))
	Expect(apiErr.Details).To(Equal("User with ID 999 does not exist"))
}

func (s *HandlerSuite) TestCreateTodoInvalidPriority() {
	rr := s.request("POST", "/api/todos", `{"title": "Odd", "user_id": 1, "priority": "urgent"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	apiErr := decodeError(rr)
	Expect(apiErr.Errors[0].Message).To(Equal("Invalid priority value"))
}

func (s *HandlerSuite) TestTodoLifecycle() {
	todo := s.createTodo(`{"title": "Plan trip", "description": "Pack light", "user_id": 1, "priority": "high"}`)

	rr := s.request("GET", fmt.Sprintf("/api/todos/%d", todo.ID), "")
	Expect(rr.Code).To(Equal(http.StatusOK))

	var detail response.TodoDetailResponse
	Expect(json.Unmarshal(rr.Body.Bytes(), &detail)).To(Succeed())

	Expect(detail.Title).To(Equal("Plan trip"))
	Expect(*detail.Description).To(Equal("Pack light"))
	Expect(detail.Notes).To(BeEmpty())
	Expect(detail.Tags).To(BeEmpty())
	Expect(detail.AssignedUsers).To(BeEmpty())

	rr = s.request("POST", fmt.Sprintf("/api/todos/%d/notes", todo.ID), `{"content": "Check passports"}`)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	rr = s.request("POST", fmt.Sprintf("/api/todos/%d/notes", todo.ID), `{"content": "Book hotel"}`)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	rr = s.request("GET", fmt.Sprintf("/api/todos/%d", todo.ID), "")
	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(json.Unmarshal(rr.Body.Bytes(), &detail)).To(Succeed())

	Expect(detail.Notes).To(HaveLen(2))
	Expect(detail.Notes[0].Content).To(Equal("Book hotel"))
	Expect(detail.Notes[1].Content).To(Equal("Check passports"))

	rr = s.request("DELETE", fmt.Sprintf("/api/todos/%d", todo.ID), "")
	Expect(rr.Code).To(Equal(http.StatusOK))

	var deleted map[string]any
	Expect(json.Unmarshal(rr.Body.Bytes(), &deleted)).To(Succeed())
	Expect(deleted["message"]).To(Equal("Todo deleted successfully"))

	rr = s.request("GET", fmt.Sprintf("/api/todos/%d", todo.ID), "")
	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *HandlerSuite) TestFilterByPriority() {
	s.createTodo(`{"title": "Low", "user_id": 1, "priority": "low"}`)
	s.createTodo(`{"title": "High", "user_id": 1, "priority": "high"}`)
	s.createTodo(`{"title": "Medium", "user_id": 1}`)

	rr := s.request("GET", "/api/todos?userId=1&filterPriority=high", "")
	Expect(rr.Code).To(Equal(http.StatusOK))

	var todos []response.TodoResponse
	Expect(json.Unmarshal(rr.Body.Bytes(), &todos)).To(Succeed())

	Expect(todos).To(HaveLen(1))
	Expect(todos[0].Title).To(Equal("High"))
}

func (s *HandlerSuite) TestInvalidFilterIsIgnored() {
	s.createTodo(`{"title": "One", "user_id": 1, "priority": "low"}`)
	s.createTodo(`{"title": "Two", "user_id": 1, "priority": "high"}`)

	rr := s.request("GET", "/api/todos?userId=1&filterPriority=bogus", "")
	Expect(rr.Code).To(Equal(http.StatusOK))

	var todos []response.TodoResponse
	Expect(json.Unmarshal(rr.Body.Bytes(), &todos)).To(Succeed())

	Expect(todos).To(HaveLen(2))
}

func (s *HandlerSuite) TestSortByPriorityDesc() {
	s.createTodo(`{"title": "Medium", "user_id": 1, "priority": "medium"}`)
	s.createTodo(`{"title": "Low", "user_id": 1, "priority": "low"}`)
	s.createTodo(`{"title": "High", "user_id": 1, "priority": "high"}`)

	rr := s.request("GET", "/api/todos?userId=1&sortBy=priority&sortOrder=desc", "")
	Expect(rr.Code).To(Equal(http.StatusOK))

	var todos []response.TodoResponse
	Expect(json.Unmarshal(rr.Body.Bytes(), &todos)).To(Succeed())

	Expect(todos).To(HaveLen(3))
	Expect(todos[0].Priority).To(Equal("high"))
	Expect(todos[1].Priority).To(Equal("medium"))
	Expect(todos[2].Priority).To(Equal("low"))
}

func (s *HandlerSuite) TestTodosAreScopedToUser() {
	s.createTodo(`{"title": "Mine", "user_id": 1}`)
	s.createTodo(`{"title": "Theirs", "user_id": 2}`)

	rr := s.request("GET", "/api/todos?userId=2", "")
	Expect(rr.Code).To(Equal(http.StatusOK))

	var todos []response.TodoResponse
	Expect(json.Unmarshal(rr.Body.Bytes(), &todos)).To(Succeed())

	Expect(todos).To(HaveLen(1))
	Expect(todos[0].Title).To(Equal("Theirs"))
}

func (s *HandlerSuite) TestUpdatePartialFields() {
	todo := s.createTodo(`{"title": "Original", "description": "Keep me", "user_id": 1}`)

	rr := s.request("PUT", fmt.Sprintf("/api/todos/%d", todo.ID), `{"title": "Renamed"}`)
	Expect(rr.Code).To(Equal(http.StatusOK))

	var envelope struct {
		Data response.TodoResponse `json:"data"`
	}
	Expect(json.Unmarshal(rr.Body.Bytes(), &envelope)).To(Succeed())

	Expect(envelope.Data.Title).To(Equal("Renamed"))
	Expect(*envelope.Data.Description).To(Equal("Keep me"))
	Expect(envelope.Data.Priority).To(Equal("medium"))
}

func (s *HandlerSuite) TestUpdateClearsDescriptionWithNull() {
	todo := s.createTodo(`{"title": "Todo", "description": "Old text", "user_id": 1}`)

	rr := s.request("PUT", fmt.Sprintf("/api/todos/%d", todo.ID), `{"description": null}`)
	Expect(rr.Code).To(Equal(http.StatusOK))

	var envelope struct {
		Data response.TodoResponse `json:"data"`
	}
	Expect(json.Unmarshal(rr.Body.Bytes(), &envelope)).To(Succeed())
	Expect(envelope.Data.Description).To(BeNil())
}

func (s *HandlerSuite) TestUpdateToggleCompleted() {
	todo := s.createTodo(`{"title": "Todo", "user_id": 1}`)

	rr := s.request("PUT", fmt.Sprintf("/api/todos/%d", todo.ID), `{"completed": true}`)
	Expect(rr.Code).To(Equal(http.StatusOK))

	var envelope struct {
		Data response.TodoResponse `json:"data"`
	}
	Expect(json.Unmarshal(rr.Body.Bytes(), &envelope)).To(Succeed())
	Expect(envelope.Data.Completed).To(BeTrue())
}

func (s *HandlerSuite) TestUpdateRejectsEmptyBody() {
	todo := s.createTodo(`{"title": "Todo", "user_id": 1}`)

	rr := s.request("PUT", fmt.Sprintf("/api/todos/%d", todo.ID), `{}`)
	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	apiErr := decodeError(rr)
	Expect(apiErr.Errors[0].Message).To(Equal("No valid fields provided to update"))
}

func (s *HandlerSuite) TestUpdateRejectsInvalidPriority() {
	todo := s.createTodo(`{"title": "Todo", "user_id": 1}`)

	rr := s.request("PUT", fmt.Sprintf("/api/todos/%d", todo.ID), `{"priority": "urgent"}`)
	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	apiErr := decodeError(rr)
	Expect(apiErr.Errors[0].Message).To(Equal("Invalid priority value"))
}

func (s *HandlerSuite) TestUpdateRejectsNonBooleanCompleted() {
	todo := s.createTodo(`{"title": "Todo", "user_id": 1}`)

	rr := s.request("PUT", fmt.Sprintf("/api/todos/%d", todo.ID), `{"completed": "yes"}`)
	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	apiErr := decodeError(rr)
	Expect(apiErr.Errors[0].Message).To(Equal("Invalid completed value (must be true or false)"))
}

func (s *HandlerSuite) TestUpdateMissingTodo() {
	rr := s.request("PUT", "/api/todos/9999", `{"title": "Nope"}`)

	Expect(rr.Code).To(Equal(http.StatusNotFound))

	apiErr := decodeError(rr)
	Expect(apiErr.Errors[0].Message).To(Equal("Todo not found"))
}

func (s *HandlerSuite) TestDeleteMissingTodo() {
	rr := s.request("DELETE", "/api/todos/9999", "")

	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *HandlerSuite) TestNonNumericIDs() {
	for _, method := range []string{"GET", "PUT", "DELETE"} {
		body := ""

		if method == "PUT" {
			body = `{"title": "x"}`
		}

		rr := s.request(method, "/api/todos/abc", body)

		Expect(rr.Code).To(Equal(http.StatusBadRequest))

		apiErr := decodeError(rr)
		Expect(apiErr.Errors[0].Message).To(Equal("Valid Todo ID is required"))
	}
}

func (s *HandlerSuite) TestNoteRequiresContent() {
	todo := s.createTodo(`{"title": "Todo", "user_id": 1}`)

	rr := s.request("POST", fmt.Sprintf("/api/todos/%d/notes", todo.ID), `{"content": ""}`)
	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	apiErr := decodeError(rr)
	Expect(apiErr.Errors[0].Message).To(Equal("Note content is required"))
}

func (s *HandlerSuite) TestNoteInvalidTodoID() {
	rr := s.request("POST", "/api/todos/abc/notes", `{"content": "hello"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	apiErr := decodeError(rr)
	Expect(apiErr.Errors[0].Message).To(Equal("Valid Todo ID is required"))
}
