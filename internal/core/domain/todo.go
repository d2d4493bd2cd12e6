package domain

import (
	"fmt"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}

	return false
}

func ParsePriority(value string) (Priority, error) {
	p := Priority(value)

	if !p.Valid() {
		return "", fmt.Errorf("invalid priority: %s", value)
	}

	return p, nil
}

type Todo struct {
	ID          int
	Title       string `validate:"required"`
	Description *string
	Priority    Priority `validate:"oneof=low medium high"`
	Completed   bool
	UserId      int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Todo) BelongsToUser(userID int) bool {
	return t.UserId == userID
}

// TodoUpdate carries only the fields present in a partial update request.
// DescriptionSet distinguishes "set description to null" from "leave it".
type TodoUpdate struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Priority       *Priority
	Completed      *bool
}

func (u TodoUpdate) Empty() bool {
	return u.Title == nil && !u.DescriptionSet && u.Priority == nil && u.Completed == nil
}

type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByPriority  SortField = "priority"
)

// TodoFilter narrows and orders a user's todo listing. A zero Priority means
// no filtering; an invalid one is ignored upstream, never rejected.
type TodoFilter struct {
	Priority  Priority
	SortBy    SortField
	Ascending bool
}
