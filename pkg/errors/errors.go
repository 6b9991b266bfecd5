package errors

import "errors"

// ErrNoRowsAffected is returned by conditional updates whose WHERE clause
// matched nothing, usually because the row vanished between read and write.
var ErrNoRowsAffected = errors.New("no rows affected")
