package model

import "errors"

var (
	// ErrNotFound is returned by stores when no row matches.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidSession is returned when a session token is absent or has
	// been idle past the expiry window.
	ErrInvalidSession = errors.New("session token invalid or expired")

	// ErrInvalidCredentials is returned on unknown email or password
	// mismatch. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountInactive is returned when authenticating an account that
	// has not completed activation.
	ErrAccountInactive = errors.New("account is not activated")

	// ErrInvalidToken is returned for an activation token that is unknown
	// or already used.
	ErrInvalidToken = errors.New("activation token invalid")

	// ErrUnauthorizedReset is returned for a password reset token that is
	// unknown or already used.
	ErrUnauthorizedReset = errors.New("password reset token invalid")

	// ErrUnknownEmail is returned for a reset request on a nonexistent
	// account.
	ErrUnknownEmail = errors.New("email not in use")

	// ErrEmailTaken is the uniqueness violation on registration.
	ErrEmailTaken = errors.New("email already in use")

	// ErrDuplicateToken is the uniqueness violation on session token
	// insertion. Issuance retries once with a fresh token.
	ErrDuplicateToken = errors.New("session token already exists")

	// ErrEmailDelivery is returned when the email gateway fails during
	// provisioning.
	ErrEmailDelivery = errors.New("email delivery failed")
)
