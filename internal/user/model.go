package user

import (
	"net/http"

	"lendit/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailInUse    = apperror.New(http.StatusConflict, "email already used")
	ErrEmailRequired = apperror.New(http.StatusBadRequest, "email is required")
	ErrNameRequired  = apperror.New(http.StatusBadRequest, "name is required")
)

// User represents an account in the identity store. Users appear in the
// lending workflow both as item owners and as bookers.
type User struct {
	ID    int64
	Name  string
	Email string
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Name  *string
	Email *string
}
