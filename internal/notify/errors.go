package notify

import "github.com/ayoisaiah/timeattack/internal/apperr"

var errNotify = &apperr.Error{
	Message: "unable to display notification",
}
