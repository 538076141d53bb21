package models

import (
	"time"

	"github.com/google/uuid"
)

// DemoPreference is the user's persisted data-source choice. Unset means the
// user never toggled it and the resolver falls through to the next rule.
type DemoPreference string

const (
	DemoPreferenceUnset DemoPreference = ""
	DemoPreferenceDemo  DemoPreference = "demo"
	DemoPreferenceLive  DemoPreference = "live"
)

type User struct {
	ID             uuid.UUID      `db:"id"`
	Username       string         `db:"username"`
	Email          string         `db:"email"`
	Password       string         `db:"password"`
	FullHistory    bool           `db:"full_history"`
	DemoPreference DemoPreference `db:"demo_preference"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}
