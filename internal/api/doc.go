// Package api is the REST client for the Program resource (api/programs)
// and the user directory (api/users).
//
// Every call takes a context and returns either the decoded answer or an
// error. Non-2xx answers are reported as *Error carrying the backend's
// problem details; transport failures are wrapped as they come. Retries are
// off unless Options.RetryMax says otherwise.
package api
