package club

import (
	"database/sql"
	"sync"
	"time"
)

// store handles the player directory.
type store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// PlayerInfo is a club member as shown on leaderboards.
type PlayerInfo struct {
	ID        string    `json:"id" msgpack:"id"`
	Name      string    `json:"name" msgpack:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty" msgpack:"avatar_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at" msgpack:"-"`
}
