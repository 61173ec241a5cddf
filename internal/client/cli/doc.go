// Package cli implements the interactive blog client: a small REPL over the
// unified API client, with the session token persisted between runs.
package cli
