package tokenstore

import "errors"

// ErrTokenNotFound is returned when neither the config nor the token file
// provides a token.
var ErrTokenNotFound = errors.New("api token not found")
