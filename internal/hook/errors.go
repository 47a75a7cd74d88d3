package hook

import "github.com/ayoisaiah/timeattack/internal/apperr"

var (
	errParseCommand = &apperr.Error{
		Message: "unable to parse hooks.task_start_cmd option",
	}

	errHookFailed = &apperr.Error{
		Message: "task start command %s failed",
	}
)
