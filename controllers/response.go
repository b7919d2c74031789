package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unish6123/StuNotes/models"
)

// Response is the baseline shape every endpoint answers with.
type Response = models.Response

// UserInfo is the sanitized user projection returned to clients.
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SignInResponse carries the session token in the body alongside the cookie.
type SignInResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
}

// ProfileResponse answers the session verification endpoint.
type ProfileResponse struct {
	Success bool     `json:"success"`
	User    UserInfo `json:"user"`
}

// NotesResponse lists a user's notes, newest first.
type NotesResponse struct {
	Success bool          `json:"success"`
	Notes   []models.Note `json:"notes"`
}

// NoteResponse returns a single note after a mutation.
type NoteResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Note    models.Note `json:"note"`
}

// QuizResponse carries a generated quiz.
type QuizResponse struct {
	Success bool                  `json:"success"`
	Quiz    []models.QuizQuestion `json:"quiz"`
}

// ScorePoint is one quiz attempt in a score history.
type ScorePoint struct {
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// AnalysisResponse is the per-title score history for charting.
type AnalysisResponse struct {
	Success bool         `json:"success"`
	Title   string       `json:"title"`
	Count   int          `json:"count"`
	Data    []ScorePoint `json:"data"`
}

func respondOK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

func respondErr(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}
