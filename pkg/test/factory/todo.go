package factory

import (
	fab "github.com/Goldziher/fabricator"

	"todoboard/internal/core/domain"
)

// NewTodo builds a todo instance for tests. Priority defaults to "medium"
// so generated rows always satisfy the schema's priority constraint.
// Fabricator only applies the first overrides map, so all custom data is
// merged into one map on top of the defaults.
func NewTodo[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	overrides := map[string]any{
		"Priority": domain.PriorityMedium,
	}

	for _, data := range customData {
		for key, value := range data {
			overrides[key] = value
		}
	}

	return instance.Build(overrides)
}
