// Package s3 downloads model artifacts from S3-compatible object storage.
//
// It wraps the MinIO Go client, which supports both AWS S3 and self-hosted
// MinIO instances, behind the narrow api interface so tests can substitute a
// fake client. URIs use the s3://bucket/prefix form; the endpoint and the
// credentials come from configuration, not from the URI.
package s3
