package http

import (
	"fmt"

	"github.com/sagarc03/apitour"
)

// ErrNoStaticStore is returned by GET /cat when the handler has no store.
var ErrNoStaticStore = fmt.Errorf("no static store configured: %w", apitour.ErrNotFound)
