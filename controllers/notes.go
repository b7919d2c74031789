package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unish6123/StuNotes/gemini"
	"github.com/unish6123/StuNotes/middleware"
	"github.com/unish6123/StuNotes/models"
	"github.com/unish6123/StuNotes/store"
)

// NotesStore is the persistence surface the note and quiz handlers need.
type NotesStore interface {
	store.NoteStore
	store.QuizStore
}

// NotesController handles note CRUD, quiz generation and score tracking.
type NotesController struct {
	Store NotesStore
	AI    gemini.Generator
	Log   *slog.Logger
}

type SaveNoteInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type UpdateNoteInput struct {
	NoteID  string `json:"noteId" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type QuizInput struct {
	Title string `json:"title" binding:"required"`
}

type SaveScoreInput struct {
	Title string `json:"title" binding:"required"`
	// Pointer so a legitimate score of zero is not rejected as missing.
	Score *int `json:"score" binding:"required,gte=0"`
}

// SaveNote stores a manually written note.
func (n *NotesController) SaveNote(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var input SaveNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, http.StatusBadRequest, "missing title or content")
		return
	}

	note := &models.Note{
		UserID:    userID,
		Title:     input.Title,
		Content:   input.Content,
		Type:      models.NoteTypeManual,
		CreatedAt: time.Now().UTC(),
	}
	if err := n.Store.CreateNote(c.Request.Context(), note); err != nil {
		n.Log.Error("save note failed", "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}

	respondOK(c, "note saved")
}

// SaveTranscribedNote runs raw lecture content through the AI service to get
// a concise study note, then stores it.
func (n *NotesController) SaveTranscribedNote(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var input SaveNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, http.StatusBadRequest, "missing title or content")
		return
	}

	ctx := c.Request.Context()

	beautified, err := n.AI.BeautifyNote(ctx, input.Content)
	if err != nil {
		n.Log.Error("beautify note failed", "err", err)
		respondErr(c, http.StatusBadGateway, "could not process the transcript")
		return
	}

	note := &models.Note{
		UserID:    userID,
		Title:     input.Title,
		Content:   beautified,
		Type:      models.NoteTypeTranscribed,
		CreatedAt: time.Now().UTC(),
	}
	if err := n.Store.CreateNote(ctx, note); err != nil {
		n.Log.Error("save transcribed note failed", "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}

	respondOK(c, "transcribed note saved")
}

// GetNotes lists all of the user's notes, newest first.
func (n *NotesController) GetNotes(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	notes, err := n.Store.ListNotes(c.Request.Context(), userID, "")
	if err != nil {
		n.Log.Error("list notes failed", "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}
	c.JSON(http.StatusOK, NotesResponse{Success: true, Notes: notes})
}

// GetTranscribedNotes lists only the AI-processed notes.
func (n *NotesController) GetTranscribedNotes(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	notes, err := n.Store.ListNotes(c.Request.Context(), userID, models.NoteTypeTranscribed)
	if err != nil {
		n.Log.Error("list transcribed notes failed", "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}
	c.JSON(http.StatusOK, NotesResponse{Success: true, Notes: notes})
}

// UpdateNote edits a note's title and content in place.
func (n *NotesController) UpdateNote(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var input UpdateNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, http.StatusBadRequest, "missing required fields")
		return
	}

	noteID, err := primitive.ObjectIDFromHex(input.NoteID)
	if err != nil {
		respondErr(c, http.StatusBadRequest, "invalid note id")
		return
	}

	note, err := n.Store.UpdateNote(c.Request.Context(), userID, noteID, input.Title, input.Content)
	if errors.Is(err, store.ErrNotFound) {
		respondErr(c, http.StatusNotFound, "note not found")
		return
	}
	if err != nil {
		n.Log.Error("update note failed", "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}

	c.JSON(http.StatusOK, NoteResponse{Success: true, Message: "note updated", Note: *note})
}

// DeleteNote removes a note by title.
func (n *NotesController) DeleteNote(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	title := c.Param("title")

	err := n.Store.DeleteNoteByTitle(c.Request.Context(), userID, title)
	if errors.Is(err, store.ErrNotFound) {
		respondErr(c, http.StatusNotFound, "note not found")
		return
	}
	if err != nil {
		n.Log.Error("delete note failed", "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}

	respondOK(c, "note deleted")
}

// GetQuiz generates a multiple-choice quiz from the content of one of the
// user's notes.
func (n *NotesController) GetQuiz(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var input QuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, http.StatusBadRequest, "missing title")
		return
	}

	ctx := c.Request.Context()

	note, err := n.Store.GetNoteByTitle(ctx, userID, input.Title)
	if errors.Is(err, store.ErrNotFound) {
		respondErr(c, http.StatusNotFound, "there are no notes with this title")
		return
	}
	if err != nil {
		n.Log.Error("quiz: note lookup failed", "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}

	quiz, err := n.AI.GenerateQuiz(ctx, note.Content)
	if err != nil {
		n.Log.Error("quiz generation failed", "title", input.Title, "err", err)
		respondErr(c, http.StatusBadGateway, "could not generate a quiz")
		return
	}

	c.JSON(http.StatusOK, QuizResponse{Success: true, Quiz: quiz})
}

// SaveScore records one quiz attempt for a note title.
func (n *NotesController) SaveScore(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var input SaveScoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, http.StatusBadRequest, "missing title or score")
		return
	}

	score := &models.QuizScore{
		UserID:    userID,
		Title:     input.Title,
		Score:     *input.Score,
		CreatedAt: time.Now().UTC(),
	}
	if err := n.Store.CreateScore(c.Request.Context(), score); err != nil {
		n.Log.Error("save score failed", "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}

	respondOK(c, "score saved")
}

// QuizAnalysis returns the user's score history for one title, oldest first,
// for the progress chart.
func (n *NotesController) QuizAnalysis(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var input QuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, http.StatusBadRequest, "missing title")
		return
	}

	scores, err := n.Store.ListScores(c.Request.Context(), userID, input.Title)
	if err != nil {
		n.Log.Error("quiz analysis failed", "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}
	if len(scores) == 0 {
		respondErr(c, http.StatusNotFound, "no quiz data found for this title")
		return
	}

	data := make([]ScorePoint, len(scores))
	for i, s := range scores {
		data[i] = ScorePoint{Score: s.Score, Date: s.CreatedAt.Format(time.RFC3339)}
	}

	c.JSON(http.StatusOK, AnalysisResponse{
		Success: true,
		Title:   input.Title,
		Count:   len(data),
		Data:    data,
	})
}
