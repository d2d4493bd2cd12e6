package domain

// User rows are created out of band; the application only lists them.
type User struct {
	ID       int
	Username string
}
