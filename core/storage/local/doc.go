// Package local materializes model artifacts from a file:// URI.
//
// A URI naming a directory copies the whole tree below the destination,
// preserving relative structure; a URI naming a single file copies just that
// file. Source and destination share the injected filesystem.
package local
