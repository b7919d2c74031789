package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note types. Manual notes are typed in by the user; transcribed notes are
// lecture content rewritten by the AI service before saving.
const (
	NoteTypeManual      = "manual"
	NoteTypeTranscribed = "transcribed"
)

// Note is a stored study note. Notes are scoped to a user and looked up by
// (userId, title) in the delete and quiz flows.
type Note struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Type      string             `bson:"type" json:"type"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// QuizScore is one completed quiz attempt for a note title.
type QuizScore struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Title     string             `bson:"title" json:"title"`
	Score     int                `bson:"score" json:"score"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// QuizQuestion is one generated multiple-choice question. Options holds the
// four answer texts and Answer is the exact text of the correct one.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}
