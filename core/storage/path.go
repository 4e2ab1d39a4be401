package storage

import (
	"path"
	"strings"
)

// RelativePath computes where an object key lands relative to the download
// destination, given the prefix the request was made with. multi tells the
// mapper whether the listing returned more than one key.
//
// The rules:
//
//   - An empty prefix (the request targeted the container root) keeps the key
//     unchanged.
//   - A folder-style prefix (trailing slash, or more than one key under it,
//     or a key that extends beyond it) is stripped from the front of the key.
//   - A prefix that names exactly one object keeps only the portion of the
//     key below the prefix's parent directory, i.e. "folder/somefile" maps to
//     "somefile".
//
// The function is pure; it never consults the filesystem or the remote store.
func RelativePath(prefix, key string, multi bool) string {
	if prefix == "" {
		return key
	}

	dir := prefix
	if !strings.HasSuffix(prefix, "/") && !multi && key == prefix {
		// The request named a single object; keep only its name below the
		// parent directory.
		dir = path.Dir(prefix)
		if dir == "." {
			dir = ""
		}
	}

	rel := strings.TrimPrefix(key, strings.TrimSuffix(dir, "/"))
	return strings.TrimPrefix(rel, "/")
}
