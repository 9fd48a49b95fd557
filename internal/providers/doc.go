// Package providers implements the Analyzer interface for the Anthropic
// Messages API.
//
// A request is a single synchronous POST bounded by the client timeout. There
// is no retry: callers decide what a failure means. Errors are classified so
// callers can tell authentication failures and rate limiting apart from
// transport problems.
//
// The HTTP client is injectable so that tests can redirect calls to local
// httptest servers without making live API requests.
package providers
