package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which half of the codec the error occurred in
type Phase string

const (
	PhaseEncode Phase = "encode" // value to word stream
	PhaseDecode Phase = "decode" // word stream to value
)

// Kind categorizes the error
type Kind string

const (
	KindTransport   Kind = "transport"   // sink/source call failed
	KindUnsupported Kind = "unsupported" // construct the wire format cannot express
	KindTruncated   Kind = "truncated"   // source exhausted before the value was complete
	KindMalformed   Kind = "malformed"   // input words that no encoder could have produced
	KindInvariant   Kind = "invariant"   // internal misuse, a defect rather than a runtime condition
)

// Error is the structured error type used throughout the codec
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Shape  string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Shape != "" {
		b.WriteString(": shape ")
		b.WriteString(e.Shape)
	}

	if e.Detail != "" {
		if e.Shape != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether err is a codec error of the given kind
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Shape sets the logical shape name being encoded or decoded
func (b *Builder) Shape(s string) *Builder {
	b.err.Shape = s
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Transport wraps a failed sink or source call
func Transport(phase Phase, cause error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindTransport,
		Cause: cause,
	}
}

// Unsupported creates an unsupported construct error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Truncated creates a truncated input error
func Truncated(phase Phase, shape string, cause error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindTruncated,
		Shape: shape,
		Cause: cause,
	}
}

// CountExceedsInput creates a truncated input error for a declared count
// larger than the source can still deliver
func CountExceedsInput(phase Phase, shape string, count, remaining uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTruncated,
		Shape:  shape,
		Detail: fmt.Sprintf("declared count %d exceeds remaining input (%d words)", count, remaining),
		Value:  count,
	}
}

// InvalidDiscriminant creates a malformed input error for an out-of-range
// variant index
func InvalidDiscriminant(phase Phase, disc, numCases uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMalformed,
		Shape:  "variant",
		Detail: fmt.Sprintf("discriminant %d out of range (max %d)", disc, numCases-1),
		Value:  disc,
	}
}

// InvalidUTF8 creates a malformed input error for non-UTF-8 text bytes
func InvalidUTF8(phase Phase, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindMalformed,
		Shape:  "text",
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// Malformed creates a malformed input error
func Malformed(phase Phase, shape, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMalformed,
		Shape:  shape,
		Detail: detail,
	}
}

// Invariant creates an invariant violation error; these indicate codec
// misuse, not a condition of the data
func Invariant(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvariant,
		Detail: detail,
	}
}
