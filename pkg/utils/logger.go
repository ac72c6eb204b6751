package utils

import "go.uber.org/zap"

// NewLogger builds the process-wide zap logger. Debug mode selects the
// console development encoder at debug level; everything else runs the
// production JSON config at info level.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
