package web

// Config holds configuration for plain http(s) downloads.
type Config struct {
	// TimeoutSeconds bounds the whole request, connection setup included.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"120"`
}
