// Package azure downloads model artifacts from Azure blob storage.
//
// URIs of the form
//
//	https://<account>.blob.core.windows.net/<container>[/prefix...]
//
// are claimed by this provider. The prefix may be empty (whole container), a
// folder-style path, or the exact key of a single blob.
//
// # Credentials
//
// Access is attempted anonymously first, which covers public model buckets.
// When the service answers with an authentication failure, a bearer token is
// acquired once through the configured TokenProvider (by default a service
// principal via Azure Active Directory) and the listing is retried with a
// token credential pipeline. A second authentication failure is terminal and
// surfaces to the caller untouched.
//
// # Testing
//
// The provider talks to the service through the storage.ObjectSource contract
// and acquires tokens through the TokenProvider interface, so tests inject
// fakes for both instead of touching the network.
package azure
