// Package web downloads a single model artifact from a plain http(s) URL.
//
// It is the catch-all handler for http/https URIs that no more specific
// provider (such as Azure blob storage) has claimed, so it must be registered
// last. Archive payloads (.tar.gz, .tgz, .zip) are unpacked into the
// destination directory; anything else is written as a single file named
// after the last URI path segment.
package web
