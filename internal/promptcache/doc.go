// Package promptcache memoizes model responses on disk. Entries are keyed by
// a digest of the full ordered message sequence, so any two requests with
// byte identical prompts share one entry across runs. Entries are written
// once and never expire.
package promptcache
