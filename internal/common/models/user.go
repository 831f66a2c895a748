package models

type User struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	Role         Role   `json:"role"`
	BasePriority string `json:"basePriority,omitempty"`
}

// UserRef is the abbreviated form embedded in cases and pick-lists.
type UserRef struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}
