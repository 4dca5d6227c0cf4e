package reportpager

import "errors"

// ErrInvalidOption is returned by NewEngine when an option value is out of
// range.
var ErrInvalidOption = errors.New("reportpager: invalid option")
