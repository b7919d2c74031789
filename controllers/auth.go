package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unish6123/StuNotes/mail"
	"github.com/unish6123/StuNotes/middleware"
	"github.com/unish6123/StuNotes/models"
	"github.com/unish6123/StuNotes/store"
	"github.com/unish6123/StuNotes/utils"
)

const (
	signupOTPTTL = 10 * time.Minute
	resetOTPTTL  = 5 * time.Minute
)

// AuthStore is the persistence surface the auth flows need.
type AuthStore interface {
	store.UserStore
	store.PendingSignupStore
}

// AuthController orchestrates signup-with-OTP, sign-in, sign-out and the
// password reset flows.
type AuthController struct {
	Store AuthStore
	Mail  mail.Sender
	Log   *slog.Logger

	JWTSecret    string
	SessionTTL   time.Duration
	CookieSecure bool
}

type SignUpInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type VerifySignUpInput struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

type SignInInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// SignUp starts a signup: it stores a pending record keyed on the email and
// mails a verification code. The account only becomes real after VerifySignUp.
func (a *AuthController) SignUp(c *gin.Context) {
	var input SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, http.StatusBadRequest, "missing credentials")
		return
	}

	ctx := c.Request.Context()

	_, err := a.Store.GetUserByEmail(ctx, input.Email)
	if err == nil {
		respondErr(c, http.StatusConflict, "an account with this email already exists")
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		a.Log.Error("signup: user lookup failed", "email", input.Email, "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		respondErr(c, http.StatusInternalServerError, "could not process password")
		return
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		respondErr(c, http.StatusInternalServerError, "could not generate verification code")
		return
	}

	pending := &models.PendingSignup{
		Name:      input.Name,
		Email:     input.Email,
		Password:  hash,
		OTP:       otp,
		OTPExp:    time.Now().Add(signupOTPTTL),
		CreatedAt: time.Now().UTC(),
	}
	// Upsert keyed on email: a repeated signup attempt replaces the old
	// pending record, so only the latest code is valid.
	if err := a.Store.UpsertPending(ctx, pending); err != nil {
		a.Log.Error("signup: storing pending signup failed", "email", input.Email, "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}

	subject, body := mail.SignupOTPBody(input.Name, otp, int(signupOTPTTL.Minutes()))
	if err := a.Mail.Send(ctx, input.Email, subject, body); err != nil {
		a.Log.Error("signup: sending verification email failed", "email", input.Email, "err", err)
		respondErr(c, http.StatusBadGateway, "could not send verification email")
		return
	}

	respondOK(c, "verification code sent to your email")
}

// VerifySignUp promotes a pending signup into a real account when the
// submitted code matches and has not expired, then signs the user in.
func (a *AuthController) VerifySignUp(c *gin.Context) {
	var input VerifySignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, http.StatusBadRequest, "missing email or otp")
		return
	}

	ctx := c.Request.Context()

	pending, err := a.Store.GetPending(ctx, input.Email)
	if errors.Is(err, store.ErrNotFound) {
		respondErr(c, http.StatusNotFound, "no signup pending for this email")
		return
	}
	if err != nil {
		a.Log.Error("verify signup: pending lookup failed", "email", input.Email, "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}

	if time.Now().After(pending.OTPExp) {
		respondErr(c, http.StatusBadRequest, "verification code expired")
		return
	}
	if pending.OTP != input.OTP {
		respondErr(c, http.StatusBadRequest, "invalid verification code")
		return
	}

	user, err := a.Store.PromotePending(ctx, pending)
	if errors.Is(err, store.ErrDuplicate) {
		respondErr(c, http.StatusConflict, "an account with this email already exists")
		return
	}
	if err != nil {
		a.Log.Error("verify signup: promotion failed", "email", input.Email, "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}

	token, err := utils.GenerateToken(a.JWTSecret, user.ID.Hex(), a.SessionTTL)
	if err != nil {
		a.Log.Error("verify signup: token generation failed", "email", input.Email, "err", err)
		respondErr(c, http.StatusInternalServerError, "could not create session")
		return
	}
	a.setSessionCookie(c, token)

	respondOK(c, "account verified, you are signed in")
}

// SignIn checks credentials and issues a session token, delivered both as a
// cookie and in the response body for the SPA.
func (a *AuthController) SignIn(c *gin.Context) {
	var input SignInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, http.StatusBadRequest, "missing email or password")
		return
	}

	ctx := c.Request.Context()

	user, err := a.Store.GetUserByEmail(ctx, input.Email)
	if errors.Is(err, store.ErrNotFound) {
		respondErr(c, http.StatusNotFound, "no account with this email")
		return
	}
	if err != nil {
		a.Log.Error("signin: user lookup failed", "email", input.Email, "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}

	if err := utils.CheckPassword(user.Password, input.Password); err != nil {
		respondErr(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(a.JWTSecret, user.ID.Hex(), a.SessionTTL)
	if err != nil {
		a.Log.Error("signin: token generation failed", "email", input.Email, "err", err)
		respondErr(c, http.StatusInternalServerError, "could not create session")
		return
	}
	a.setSessionCookie(c, token)

	c.JSON(http.StatusOK, SignInResponse{
		Success: true,
		Message: "signed in",
		Token:   token,
		User:    UserInfo{ID: user.ID.Hex(), Name: user.Name, Email: user.Email},
	})
}

// SignOut clears the session cookie. The cookie was set with
// SameSite=None+Secure in production and default attributes in development,
// so both variants are cleared.
func (a *AuthController) SignOut(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", true, true)
	c.SetSameSite(http.SameSiteDefaultMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	respondOK(c, "signed out")
}

// ForgotPassword stores a short-lived reset code on the account and mails it.
func (a *AuthController) ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, http.StatusBadRequest, "missing email")
		return
	}

	ctx := c.Request.Context()

	if _, err := a.Store.GetUserByEmail(ctx, input.Email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(c, http.StatusNotFound, "no account with this email")
			return
		}
		a.Log.Error("forgot password: user lookup failed", "email", input.Email, "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		respondErr(c, http.StatusInternalServerError, "could not generate reset code")
		return
	}

	// Replaces any earlier reset code; only the latest one is valid.
	if err := a.Store.SetResetOTP(ctx, input.Email, otp, time.Now().Add(resetOTPTTL)); err != nil {
		a.Log.Error("forgot password: storing reset code failed", "email", input.Email, "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}

	subject, body := mail.ResetOTPBody(otp, int(resetOTPTTL.Minutes()))
	if err := a.Mail.Send(ctx, input.Email, subject, body); err != nil {
		a.Log.Error("forgot password: sending reset email failed", "email", input.Email, "err", err)
		respondErr(c, http.StatusBadGateway, "could not send reset email")
		return
	}

	respondOK(c, "password reset code sent to your email")
}

// ResetPassword sets a new password when the submitted reset code matches
// the stored one and is still within its window. The code is single-use:
// a successful reset clears it.
func (a *AuthController) ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, http.StatusBadRequest, "missing email, otp or new password")
		return
	}

	ctx := c.Request.Context()

	user, err := a.Store.GetUserByEmail(ctx, input.Email)
	if errors.Is(err, store.ErrNotFound) {
		respondErr(c, http.StatusNotFound, "no account with this email")
		return
	}
	if err != nil {
		a.Log.Error("reset password: user lookup failed", "email", input.Email, "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}

	if user.ResetOTP == "" || user.ResetOTP != input.OTP {
		respondErr(c, http.StatusBadRequest, "invalid reset code")
		return
	}
	if time.Now().After(user.ResetOTPExp) {
		respondErr(c, http.StatusBadRequest, "reset code expired")
		return
	}

	hash, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		respondErr(c, http.StatusInternalServerError, "could not process password")
		return
	}

	if err := a.Store.UpdatePassword(ctx, input.Email, hash); err != nil {
		a.Log.Error("reset password: update failed", "email", input.Email, "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}

	respondOK(c, "password reset successful")
}

// Verify answers the SPA's session check with the current user's profile.
func (a *AuthController) Verify(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondErr(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := a.Store.GetUserByID(c.Request.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		respondErr(c, http.StatusNotFound, "account no longer exists")
		return
	}
	if err != nil {
		a.Log.Error("verify: user lookup failed", "err", err)
		respondErr(c, http.StatusInternalServerError, "database error")
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Success: true,
		User:    UserInfo{ID: user.ID.Hex(), Name: user.Name, Email: user.Email},
	})
}

func (a *AuthController) setSessionCookie(c *gin.Context, token string) {
	if a.CookieSecure {
		// Cross-site SPA needs SameSite=None, which requires Secure.
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteDefaultMode)
	}
	c.SetCookie(middleware.SessionCookie, token, int(a.SessionTTL.Seconds()), "/", "", a.CookieSecure, true)
}
