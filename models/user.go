package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a verified account. Email is the identity key and unique across
// the users collection.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password_hash" json:"-"` // bcrypt hash, never serialized
	ResetOTP    string             `bson:"reset_otp,omitempty" json:"-"`
	ResetOTPExp time.Time          `bson:"reset_otp_exp,omitempty" json:"-"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// PendingSignup is a provisional account waiting for OTP verification.
// At most one exists per email; a repeated signup attempt replaces it.
// It is promoted into a User on successful verification and never otherwise.
type PendingSignup struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password_hash" json:"-"`
	OTP       string             `bson:"otp" json:"-"`
	OTPExp    time.Time          `bson:"otp_exp" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"-"`
}
