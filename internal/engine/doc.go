// Package engine pairs forward-primer hits with reverse-primer hits and
// filters them by insert length. It never imports app, writers, cli, or
// pipeline; keep it domain-only.
//
// External outputs must not depend on the internal shape here; use pkg/api
// for the stable wire type (JSONL v1).
package engine
