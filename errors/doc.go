// Package errors is a helper package for the plain Go language error type. We
// think of these errors as curated errors. External to this package, curated
// errors are referenced as plain errors (ie. they implement the error
// interface).
//
// Internally, errors are thought of as being composed of parts, as described
// by The Go Programming Language (Donovan, Kernighan): "When the error is
// ultimately handled by the program's main function, it should provide a clear
// causal chain from the root of the problem to the overall failure".
//
// The Error() function implementation for curated errors ensures that this
// chain is normalised: it does not contain duplicate adjacent parts. This
// alleviates the problem of when and how to wrap errors.
//
// Errors are further tagged with a Category, grouping them the way the
// specification groups failures (Construction, IllegalInstruction, Bus,
// Cartridge, RTC, Scheduler). The category determines whether the error is
// FATAL (returned up to the machine's construction caller) or RECOVERABLE
// (logged via the logger package and handled in place, never propagated
// across a block-execution boundary).
package errors
