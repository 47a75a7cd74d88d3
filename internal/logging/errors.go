package logging

import "github.com/ayoisaiah/timeattack/internal/apperr"

var errCreateLogDir = &apperr.Error{
	Message: "unable to create log directory",
}
