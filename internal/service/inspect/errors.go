package inspect

import "errors"

var (
	ErrNoScope = errors.New("no request scope in context")
)
