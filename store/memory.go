package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unish6123/StuNotes/models"
)

// Memory is an in-process Store for tests and running the server without a
// MongoDB instance. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	users   map[string]*models.User          // keyed by email
	pending map[string]*models.PendingSignup // keyed by email
	notes   []models.Note
	scores  []models.QuizScore
}

func NewMemory() *Memory {
	return &Memory{
		users:   make(map[string]*models.User),
		pending: make(map[string]*models.PendingSignup),
	}
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *Memory) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return ErrDuplicate
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	clone := *user
	m.users[user.Email] = &clone
	return nil
}

func (m *Memory) SetResetOTP(_ context.Context, email, otp string, exp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return ErrNotFound
	}
	user.ResetOTP = otp
	user.ResetOTPExp = exp
	return nil
}

func (m *Memory) UpdatePassword(_ context.Context, email, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return ErrNotFound
	}
	user.Password = passwordHash
	user.ResetOTP = ""
	user.ResetOTPExp = time.Time{}
	return nil
}

func (m *Memory) UpsertPending(_ context.Context, pending *models.PendingSignup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *pending
	// Replace keeps the existing document's identity, insert assigns one.
	if existing, ok := m.pending[pending.Email]; ok {
		clone.ID = existing.ID
	} else if clone.ID.IsZero() {
		clone.ID = primitive.NewObjectID()
	}
	m.pending[pending.Email] = &clone
	return nil
}

func (m *Memory) GetPending(_ context.Context, email string) (*models.PendingSignup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pending, ok := m.pending[email]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *pending
	return &clone, nil
}

func (m *Memory) PromotePending(_ context.Context, pending *models.PendingSignup) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[pending.Email]; ok {
		return nil, ErrDuplicate
	}
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      pending.Name,
		Email:     pending.Email,
		Password:  pending.Password,
		CreatedAt: time.Now().UTC(),
	}
	m.users[user.Email] = user
	delete(m.pending, pending.Email)
	clone := *user
	return &clone, nil
}

// PendingCount reports how many pending signups exist, for tests asserting
// the at-most-one-per-email rule.
func (m *Memory) PendingCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pending)
}

func (m *Memory) CreateNote(_ context.Context, note *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}
	m.notes = append(m.notes, *note)
	return nil
}

func (m *Memory) ListNotes(_ context.Context, userID primitive.ObjectID, noteType string) ([]models.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Note
	for _, note := range m.notes {
		if note.UserID == userID && (noteType == "" || note.Type == noteType) {
			out = append(out, note)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) GetNoteByTitle(_ context.Context, userID primitive.ObjectID, title string) (*models.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, note := range m.notes {
		if note.UserID == userID && note.Title == title {
			clone := note
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateNote(_ context.Context, userID, noteID primitive.ObjectID, title, content string) (*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notes {
		if m.notes[i].ID == noteID && m.notes[i].UserID == userID {
			m.notes[i].Title = title
			m.notes[i].Content = content
			clone := m.notes[i]
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) DeleteNoteByTitle(_ context.Context, userID primitive.ObjectID, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notes {
		if m.notes[i].UserID == userID && m.notes[i].Title == title {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) CreateScore(_ context.Context, score *models.QuizScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score.ID.IsZero() {
		score.ID = primitive.NewObjectID()
	}
	m.scores = append(m.scores, *score)
	return nil
}

func (m *Memory) ListScores(_ context.Context, userID primitive.ObjectID, title string) ([]models.QuizScore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.QuizScore
	for _, score := range m.scores {
		if score.UserID == userID && score.Title == title {
			out = append(out, score)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
