package models

// Response is the baseline JSON shape every endpoint answers with, shared
// by the controllers and the session guard.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
