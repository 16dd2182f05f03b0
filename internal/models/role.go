package models

// The role set is fixed at seed time and immutable in normal operation.
const (
	RoleRegular = "regular"
	RoleAdmin   = "admin"
	RoleBanned  = "banned"
)

type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
