// Package gcs downloads model artifacts from Google Cloud Storage.
//
// URIs use the gs://bucket/prefix form. The client is built from application
// default credentials; when none are available it falls back to an
// unauthenticated client, which covers public model buckets.
package gcs
