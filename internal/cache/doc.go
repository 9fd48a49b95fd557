// Package cache stores analysis replies on disk so that re-running archlens
// over an unchanged project does not call the API again.
//
// Entries are keyed by a SHA-256 hash of the model and the full prompt, which
// already contains the redacted summary. Each entry is one JSON file holding
// the reply, the model that produced it and its creation time. Entries older
// than the TTL are treated as misses and counted as expired by [Cache.Stats].
//
// The cache is off unless enabled in configuration. The default directory is
// $XDG_CACHE_HOME/archlens or the OS-appropriate equivalent.
package cache
