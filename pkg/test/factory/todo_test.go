package factory

import (
	"testing"

	"todoboard/internal/core/domain"

	. "github.com/onsi/gomega"
)

func TestNewTodoDefaultsToValidPriority(t *testing.T) {
	RegisterTestingT(t)

	todo := NewTodo[domain.Todo](map[string]any{"Title": "Generated"})

	Expect(todo.Title).To(Equal("Generated"))
	Expect(todo.Priority).To(Equal(domain.PriorityMedium))
	Expect(todo.Priority.Valid()).To(BeTrue())
}

func TestNewTodoKeepsExplicitPriority(t *testing.T) {
	RegisterTestingT(t)

	todo := NewTodo[domain.Todo](map[string]any{"Priority": domain.PriorityHigh})

	Expect(todo.Priority).To(Equal(domain.PriorityHigh))
}

func TestNewTodoMergesAllCustomMaps(t *testing.T) {
	RegisterTestingT(t)

	todo := NewTodo[domain.Todo](
		map[string]any{"Title": "First"},
		map[string]any{"UserId": 2},
	)

	Expect(todo.Title).To(Equal("First"))
	Expect(todo.UserId).To(Equal(2))
	Expect(todo.Priority).To(Equal(domain.PriorityMedium))
}
