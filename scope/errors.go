package scope

import "errors"

var ErrUnknownScope = errors.New("unknown scope")
