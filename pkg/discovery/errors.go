package discovery

import "errors"

// ErrNoLayout is reported when no registered layout matches a controller.
var ErrNoLayout = errors.New("no layout registered")
