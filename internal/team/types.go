package team

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the team.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// PlayerInfo represents a roster player. Identity is immutable; name
// and jersey number are free-text and editable.
type PlayerInfo struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Number    string `json:"number"`
}
