package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/unish6123/StuNotes/models"
)

// UpsertPending hands the PendingSignup straight to ReplaceOne. _id is
// immutable in MongoDB, so the marshaled replacement must not contain one
// when the struct's ID is zero, or replacing an existing pending document
// (a repeated signup for the same email) fails with an ImmutableField error.
func TestPendingSignupMarshalOmitsZeroID(t *testing.T) {
	pending := &models.PendingSignup{
		Name:      "Ada",
		Email:     "ada@example.com",
		Password:  "hash",
		OTP:       "482913",
		OTPExp:    time.Now().Add(10 * time.Minute),
		CreatedAt: time.Now().UTC(),
	}

	raw, err := bson.Marshal(pending)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	_, hasID := doc["_id"]
	assert.False(t, hasID, "zero ID must be stripped from the replacement document")
	assert.Equal(t, "ada@example.com", doc["email"])

	// A populated ID still round-trips for documents read back from Mongo.
	pending.ID = primitive.NewObjectID()
	raw, err = bson.Marshal(pending)
	require.NoError(t, err)
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, pending.ID, doc["_id"])
}
