// Package command maps subcommand words typed at the shell to handlers.
//
// A Group is an explicit table of entries. Each entry names the method that
// implements it and, optionally, an alias that is exposed instead of the
// method name. Lookups walk the table in order, so the first entry exposing a
// name wins; Validate reports such collisions so tests can keep tables clean.
package command
