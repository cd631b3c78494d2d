package report

import "errors"

var ErrInvalidLimit = errors.New("invalid limit")
