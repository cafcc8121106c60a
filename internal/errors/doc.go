// Package errors provides structured, actionable error values for crispy.
//
// Every error carries a code that maps to a registered template with a
// category, a short message and a longer explanation:
//
//	err := errors.New(errors.CodeInvalidPosition).
//	    WithDetail(`"middle" is not a toast position`).
//	    WithSuggestion("Use one of top-left, top-right, top-center, bottom-left, bottom-right, bottom-center")
//
// Errors compare by code, so errors.Is(err, errors.New(code)) matches any
// error built from the same template regardless of detail or wrapping.
//
// # Codes
//
//   - T001: toast API used outside a provider (runtime, fatal)
//   - T002: invalid toast position (config)
//   - T003: invalid toast duration (config)
//   - T004: invalid server port (config)
//   - T005: config file could not be read (config)
//   - T006: config file could not be parsed (config)
//   - T101: malformed client frame (protocol)
//
// Format renders an error for terminals, FormatJSON for HTTP responses.
package errors
