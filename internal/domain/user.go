package domain

import "time"

// User is a back-office staff member. The directory is read-only from this
// service: it exists for id -> display-name joins and transition attribution.
type User struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedOn time.Time `json:"created_on"`
}
