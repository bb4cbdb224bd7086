package swiftpass

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies the errors returned by the client.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindTransport
	KindXMLParse
	KindReportParse
	KindMissingParam
	KindGateway
	KindSignature
	KindConfig
)

var kindNames = map[Kind]string{
	KindValidation:   "ValidationError",
	KindTransport:    "TransportError",
	KindXMLParse:     "XMLParseError",
	KindReportParse:  "ReportParseError",
	KindMissingParam: "MissingParamError",
	KindGateway:      "GatewayError",
	KindSignature:    "SignatureError",
	KindConfig:       "ConfigError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the error type of every failed operation.
type Error struct {
	Kind    Kind
	Message string
	// Missing lists the unsatisfied requirement groups of a KindValidation error.
	Missing []string
	// Code is the status or result code reported by the gateway.
	Code string
	// Raw holds the undecoded response body when one was received.
	Raw []byte
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Code != "" {
		b.WriteString(" (code ")
		b.WriteString(e.Code)
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Cause lets github.com/pkg/errors reach the wrapped transport error.
func (e *Error) Cause() error { return e.Err }

// Is matches another *Error by kind, so errors.Is(err, &Error{Kind: KindTransport}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
