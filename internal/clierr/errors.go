// Package clierr holds the coded errors surfaced by unyson commands.
//
// Every constructor returns a serum error so callers can branch on
// serum.Code(err) rather than matching message text.
package clierr

import (
	"strconv"
	"strings"

	"github.com/serum-errors/go-serum"
)

const (
	CodeNotInstalled      = "unyson-error-not-installed"
	CodeNotActive         = "unyson-error-not-active"
	CodeInvalidRequest    = "unyson-error-invalid-request"
	CodeCommandNotFound   = "unyson-error-command-not-found"
	CodeMethodNotFound    = "unyson-error-method-not-found"
	CodeExtensionNotFound = "unyson-error-extension-not-found"
	CodeVersionNotLocated = "unyson-error-version-not-located"
	CodeUsage             = "unyson-error-usage"
	CodeHost              = "unyson-error-host"
)

// ErrorNotInstalled is returned when the managed plugin is absent from the
// WordPress install.
//
// Errors:
//
//   - unyson-error-not-installed --
func ErrorNotInstalled(slug string) error {
	return serum.Error(CodeNotInstalled,
		serum.WithMessageTemplate("the '{{slug}}' plugin could not be found"),
		serum.WithDetail("slug", slug),
		serum.WithDetail("tip", "%yTips:%n You can run %cunyson install --activate%n"),
	)
}

// ErrorNotActive is returned when the plugin is installed but not active and
// the operation needs the framework loaded.
//
// Errors:
//
//   - unyson-error-not-active --
func ErrorNotActive(slug string) error {
	return serum.Error(CodeNotActive,
		serum.WithMessageTemplate("the '{{slug}}' plugin is not active"),
		serum.WithDetail("slug", slug),
		serum.WithDetail("tip", "%yTips:%n You can run %cunyson activate%n"),
	)
}

// ErrorExtensionInactive is returned when an extension that must be active
// is not.
//
// Errors:
//
//   - unyson-error-not-active --
func ErrorExtensionInactive(name string) error {
	return serum.Error(CodeNotActive,
		serum.WithMessageTemplate("extension {{extension}} is inactive"),
		serum.WithDetail("extension", name),
	)
}

// ErrorInvalidRequest is returned when a remote fetch fails. status is 0 when
// no response was received at all.
//
// Errors:
//
//   - unyson-error-invalid-request --
func ErrorInvalidRequest(url string, status int, cause error) error {
	opts := []serum.WithConstruction{
		serum.WithMessageTemplate("request {{url}} ended with code {{status}}"),
		serum.WithDetail("url", url),
		serum.WithDetail("status", strconv.Itoa(status)),
	}
	if cause != nil {
		opts = append(opts, serum.WithCause(cause))
	}
	return serum.Error(CodeInvalidRequest, opts...)
}

// ErrorCommandNotFound is returned when a subcommand word has no handler in
// a command group.
//
// Errors:
//
//   - unyson-error-command-not-found --
func ErrorCommandNotFound(group, command string) error {
	return serum.Error(CodeCommandNotFound,
		serum.WithMessageTemplate("invalid {{command}} command name for {{group}}"),
		serum.WithDetail("group", group),
		serum.WithDetail("command", command),
	)
}

// ErrorMethodNotFound is returned when a command resolved to an entry that
// has no handler bound. This indicates a broken group table.
//
// Errors:
//
//   - unyson-error-method-not-found --
func ErrorMethodNotFound(group, method string) error {
	return serum.Error(CodeMethodNotFound,
		serum.WithMessageTemplate("the {{group}} group has no handler for method {{method}}"),
		serum.WithDetail("group", group),
		serum.WithDetail("method", method),
	)
}

// ErrorExtensionNotFound is returned when an extension is not installed or
// not registered with the framework.
//
// Errors:
//
//   - unyson-error-extension-not-found --
func ErrorExtensionNotFound(name string) error {
	return serum.Error(CodeExtensionNotFound,
		serum.WithMessageTemplate("it seems the extension {{extension}} is not installed or active"),
		serum.WithDetail("extension", name),
		serum.WithDetail("tip", "%yTips:%n You can run %cunyson ext "+name+" install --activate%n"),
	)
}

// ErrorVersionNotLocated is returned when the installed version does not
// appear in the published version list.
//
// Errors:
//
//   - unyson-error-version-not-located --
func ErrorVersionNotLocated(current string) error {
	return serum.Error(CodeVersionNotLocated,
		serum.WithMessageTemplate("unable to locate version {{version}} in the published versions"),
		serum.WithDetail("version", current),
	)
}

// ErrorUsage is returned when a command is invoked with missing or
// conflicting arguments. The message is shown to the operator as-is; an
// optional tip is printed below it.
//
// Errors:
//
//   - unyson-error-usage --
func ErrorUsage(message string, tip ...string) error {
	opts := []serum.WithConstruction{serum.WithMessageLiteral(message)}
	if len(tip) > 0 {
		opts = append(opts, serum.WithDetail("tip", strings.Join(tip, "\n")))
	}
	return serum.Error(CodeUsage, opts...)
}

// ErrorHost is returned when a wp child process fails or answers with
// something we cannot decode.
//
// Errors:
//
//   - unyson-error-host --
func ErrorHost(operation string, cause error) error {
	return serum.Errorf(CodeHost, "wp-cli %s failed: %w", operation, cause)
}

// ErrorHostMessages is returned when the extension manager reports one or
// more errors for an operation.
//
// Errors:
//
//   - unyson-error-host --
func ErrorHostMessages(operation string, messages []string) error {
	opts := []serum.WithConstruction{serum.WithMessageLiteral(strings.Join(messages, "\n"))}
	opts = append(opts, serum.WithDetail("operation", operation))
	return serum.Error(CodeHost, opts...)
}

// Detail returns the named detail value of a serum error, or "".
func Detail(err error, key string) string {
	for _, d := range serum.Details(err) {
		if d[0] == key {
			return d[1]
		}
	}
	return ""
}

// Tip returns the operator hint attached to err, in WP-CLI color token
// form, or "".
func Tip(err error) string {
	return Detail(err, "tip")
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return err != nil && serum.Code(err) == code
}
