package gcs

// Config holds configuration for Google Cloud Storage access.
type Config struct {
	// CredentialsFile is an optional path to a service account JSON key.
	// When empty, application default credentials are used, falling back to
	// anonymous access when none are available.
	CredentialsFile string `mapstructure:"credentials_file" default:""`
}
