package domain

import "time"

type Note struct {
	ID        int
	Content   string `validate:"required"`
	TodoId    int
	CreatedAt time.Time
}
