package models

import "time"

// LogEntry: trilha de operações (espelha os eventos publicados no broker).
type LogEntry struct {
	ID        string         `bson:"_id,omitempty" json:"id"`
	Level     string         `bson:"level" json:"level"` // info | warn | error
	Message   string         `bson:"message" json:"message"`
	Route     string         `bson:"route,omitempty" json:"route,omitempty"`
	Method    string         `bson:"method,omitempty" json:"method,omitempty"`
	IP        string         `bson:"ip,omitempty" json:"ip,omitempty"`
	UserID    string         `bson:"userId,omitempty" json:"userId,omitempty"`
	Meta      map[string]any `bson:"meta,omitempty" json:"meta,omitempty"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
}
