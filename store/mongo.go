package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unish6123/StuNotes/models"
)

// Mongo implements Store on top of a MongoDB database.
type Mongo struct {
	users   *mongo.Collection
	pending *mongo.Collection
	notes   *mongo.Collection
	scores  *mongo.Collection
}

// NewMongo wires the collections and creates the unique email indexes.
func NewMongo(ctx context.Context, db *mongo.Database) (*Mongo, error) {
	m := &Mongo{
		users:   db.Collection("users"),
		pending: db.Collection("pending_signups"),
		notes:   db.Collection("notes"),
		scores:  db.Collection("quiz_scores"),
	}

	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, col := range []*mongo.Collection{m.users, m.pending} {
		if _, err := col.Indexes().CreateOne(ctx, emailIndex); err != nil {
			return nil, fmt.Errorf("create email index on %s: %w", col.Name(), err)
		}
	}
	noteIndex := mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "title", Value: 1}}}
	if _, err := m.notes.Indexes().CreateOne(ctx, noteIndex); err != nil {
		return nil, fmt.Errorf("create note index: %w", err)
	}
	return m, nil
}

func (m *Mongo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := m.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (m *Mongo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := m.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

func (m *Mongo) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := m.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (m *Mongo) SetResetOTP(ctx context.Context, email, otp string, exp time.Time) error {
	res, err := m.users.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{"reset_otp": otp, "reset_otp_exp": exp},
	})
	if err != nil {
		return fmt.Errorf("set reset otp: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	res, err := m.users.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set":   bson.M{"password_hash": passwordHash},
		"$unset": bson.M{"reset_otp": "", "reset_otp_exp": ""},
	})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertPending replaces the pending signup for the email in one operation,
// keyed on the unique email index, so concurrent signup attempts for the
// same address cannot leave two pending documents behind. The replacement
// must not carry an _id: _id is immutable, so a replacement with a fresh one
// is rejected whenever a pending document already exists. The omitempty tag
// strips the zero ID and Mongo keeps the matched document's _id (or
// generates one on insert).
func (m *Mongo) UpsertPending(ctx context.Context, pending *models.PendingSignup) error {
	_, err := m.pending.ReplaceOne(ctx,
		bson.M{"email": pending.Email},
		pending,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert pending signup: %w", err)
	}
	return nil
}

func (m *Mongo) GetPending(ctx context.Context, email string) (*models.PendingSignup, error) {
	var pending models.PendingSignup
	err := m.pending.FindOne(ctx, bson.M{"email": email}).Decode(&pending)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find pending signup: %w", err)
	}
	return &pending, nil
}

func (m *Mongo) PromotePending(ctx context.Context, pending *models.PendingSignup) (*models.User, error) {
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      pending.Name,
		Email:     pending.Email,
		Password:  pending.Password,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	if _, err := m.pending.DeleteOne(ctx, bson.M{"email": pending.Email}); err != nil {
		// Roll the user back rather than leave both documents behind.
		_, _ = m.users.DeleteOne(ctx, bson.M{"_id": user.ID})
		return nil, fmt.Errorf("delete pending signup: %w", err)
	}
	return user, nil
}

func (m *Mongo) CreateNote(ctx context.Context, note *models.Note) error {
	if note.ID.IsZero() {
		note.ID = primitive.NewObjectID()
	}
	if _, err := m.notes.InsertOne(ctx, note); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (m *Mongo) ListNotes(ctx context.Context, userID primitive.ObjectID, noteType string) ([]models.Note, error) {
	filter := bson.M{"userId": userID}
	if noteType != "" {
		filter["type"] = noteType
	}
	cur, err := m.notes.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	var notes []models.Note
	if err := cur.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}

func (m *Mongo) GetNoteByTitle(ctx context.Context, userID primitive.ObjectID, title string) (*models.Note, error) {
	var note models.Note
	err := m.notes.FindOne(ctx, bson.M{"userId": userID, "title": title}).Decode(&note)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find note: %w", err)
	}
	return &note, nil
}

func (m *Mongo) UpdateNote(ctx context.Context, userID, noteID primitive.ObjectID, title, content string) (*models.Note, error) {
	var note models.Note
	err := m.notes.FindOneAndUpdate(ctx,
		bson.M{"_id": noteID, "userId": userID},
		bson.M{"$set": bson.M{"title": title, "content": content}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&note)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return &note, nil
}

func (m *Mongo) DeleteNoteByTitle(ctx context.Context, userID primitive.ObjectID, title string) error {
	res, err := m.notes.DeleteOne(ctx, bson.M{"userId": userID, "title": title})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) CreateScore(ctx context.Context, score *models.QuizScore) error {
	if score.ID.IsZero() {
		score.ID = primitive.NewObjectID()
	}
	if _, err := m.scores.InsertOne(ctx, score); err != nil {
		return fmt.Errorf("insert quiz score: %w", err)
	}
	return nil
}

func (m *Mongo) ListScores(ctx context.Context, userID primitive.ObjectID, title string) ([]models.QuizScore, error) {
	cur, err := m.scores.Find(ctx,
		bson.M{"userId": userID, "title": title},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list quiz scores: %w", err)
	}
	var scores []models.QuizScore
	if err := cur.All(ctx, &scores); err != nil {
		return nil, fmt.Errorf("decode quiz scores: %w", err)
	}
	return scores, nil
}
