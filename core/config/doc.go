// Package config loads the application configuration.
//
// Configuration comes from environment variables, optionally seeded from a
// .env file, and is unmarshalled into per-package Config structs. Defaults
// are declared as struct tags next to the fields they belong to, so each
// package documents its own settings.
//
// Environment variables map to nested keys with underscores, e.g.
// AZURE_CLIENT_ID -> azure.client_id and S3_ENDPOINT -> s3.endpoint.
package config
