package auth

import (
	apperrors "github.com/jrsteele09/quote-admin/internal/errors"
)

var (
	ErrInvalidCredentials = apperrors.ErrInvalidCredentials
	ErrInvalidToken       = apperrors.ErrInvalidToken
)
