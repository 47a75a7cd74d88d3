package timer

import "github.com/ayoisaiah/timeattack/internal/apperr"

var (
	errDecodeStatus = &apperr.Error{
		Message: "unable to read the status file",
	}

	errWriteStatus = &apperr.Error{
		Message: "unable to update the status file",
	}
)
