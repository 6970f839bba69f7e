package models

import (
	"encoding/json"
	"time"
)

// Audit action tags
const (
	ActionCreateClient = "CREATE_CLIENT"
	ActionGetClients   = "GET_CLIENTS"
)

// AuditLogEntry represents a single audited action
type AuditLogEntry struct {
	UserID    string
	Action    string
	Details   map[string]any
	Timestamp time.Time
}

// DetailsJSON encodes Details for storage; absent details encode as {}
func (e *AuditLogEntry) DetailsJSON() (string, error) {
	if e.Details == nil {
		return "{}", nil
	}
	data, err := json.Marshal(e.Details)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
