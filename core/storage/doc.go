// Package storage implements the provider-polymorphic download core.
//
// A storage URI (for example an Azure blob URL, an s3:// or gs:// address,
// a plain https:// file or a file:// path) is routed by the Dispatcher to the
// first registered Provider that recognizes it. The provider enumerates the
// objects that live under the URI and materializes them below a destination
// directory, preserving the relative layout of the remote keys.
//
// # Dispatcher
//
// Providers are registered in order; registration order is significant because
// some providers claim overlapping schemes (the Azure provider recognizes
// https:// URLs on blob storage hosts, the generic web provider takes any
// remaining http/https URL). A URI no provider claims fails with
// ErrUnsupportedScheme.
//
// # Download core
//
// Providers adapt their SDK client to the narrow ObjectSource interface
// (List keys under a prefix, Fetch one key as a stream) and hand it to
// DownloadAll. The core then, per object and in listing order, creates parent
// directories, fetches the bytes and writes the file. The first failure aborts
// the whole download; files already written stay on disk.
//
// The local filesystem is injected as an afero.Fs, so tests substitute an
// in-memory filesystem instead of patching global state.
package storage
