// Package cli implements the interactive LoveLetters terminal client: a
// prompt-driven loop over the account and message commands, with the
// session kept in a local SQLite file between runs.
package cli
