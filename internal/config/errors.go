package config

import "github.com/ayoisaiah/timeattack/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errResolvePath = &apperr.Error{
		Message: "unable to resolve data paths",
	}

	errPrompt = &apperr.Error{
		Message: "user prompt failed",
	}

	errEmptyMsg = &apperr.Error{
		Message: "%s message cannot be empty",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s duration must be between %v and %v",
	}

	errInvalidDurationFormat = &apperr.Error{
		Message: "invalid duration format: %s",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid --%s value",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "log level must be one of debug, info, warn or error, got %q",
	}

	errInvalidLogSize = &apperr.Error{
		Message: "log max size must be at least 1 MB, got %d",
	}

	errInvalidLogBackups = &apperr.Error{
		Message: "log max backups cannot be negative, got %d",
	}
)
