// Package errors provides the structured error types for the word-codec
// library.
//
// Errors are categorized by Phase (encode or decode) and Kind (error
// category). The set of kinds is closed: transport failure, unsupported
// construct, truncated input, malformed input, and invariant violation.
// The Error type carries optional context: field path, logical shape name,
// offending value, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindMalformed).
//		Shape("variant").
//		Detail("discriminant %d out of range", disc).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Transport(errors.PhaseEncode, cause)
//	err := errors.InvalidDiscriminant(errors.PhaseDecode, disc, numCases)
//
// All errors implement the standard error interface and support errors.Is/As.
// The codec never retries, logs, or suppresses errors internally; every error
// returns to the immediate caller of the encode/decode entry point.
package errors
