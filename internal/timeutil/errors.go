package timeutil

import "github.com/ayoisaiah/timeattack/internal/apperr"

var errParseDate = &apperr.Error{
	Message: "unable to parse date: %s",
}
