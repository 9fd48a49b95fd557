// Package redact removes secrets from project content before it leaves the
// process.
//
// The primary rule replaces assignments such as `token: abc123` or
// `api_key=...` (case-insensitive key, then "=" or ":", then a run of
// non-whitespace) with [REDACTED]. A few provider-shaped tokens (Anthropic and
// OpenAI keys, GitHub and Slack tokens, AWS access key IDs, JWTs, private key
// headers) are redacted wherever they appear.
//
// [Value] applies the rules to every string inside a decoded JSON value,
// leaving structure, map keys and non-string scalars alone. Redaction is
// idempotent: the placeholder never matches any rule.
//
// Path-based redaction is also supported: files whose paths match configured
// doublestar globs have their entire content replaced rather than being
// scanned.
package redact
