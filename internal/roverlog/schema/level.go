package schema

import "roverctl/internal/rovertypes"

// FromRoverLevel maps the rover's own LogLevel onto the foxglove.Log
// schema's level enum.
func FromRoverLevel(l rovertypes.LogLevel) LogLevel {
	switch l {
	case rovertypes.LevelDebug:
		return LogLevelDebug
	case rovertypes.LevelInfo:
		return LogLevelInfo
	case rovertypes.LevelWarn:
		return LogLevelWarning
	case rovertypes.LevelError:
		return LogLevelError
	default:
		return LogLevelUnknown
	}
}
