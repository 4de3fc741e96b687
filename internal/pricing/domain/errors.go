package pricing

import "errors"

var (
	// ErrNilEngine is returned when quoting through a nil engine.
	ErrNilEngine = errors.New("pricing: nil engine")
)

// ConfigError reports a tenant override value that cannot be coerced to the
// expected type. It is fatal; the engine never silently defaults a provided key.
type ConfigError struct {
	Key    string
	Reason string
}

// Error implements error.
func (e *ConfigError) Error() string {
	return "pricing: config key " + e.Key + ": " + e.Reason
}

// ValidationError reports an invalid engine input field.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return "pricing: invalid " + e.Field + ": " + e.Reason
}
