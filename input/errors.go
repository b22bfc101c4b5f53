package input

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies why a reqline was rejected.
type ErrorKind int

const (
	// structural
	MissingHTTPKeyword ErrorKind = iota
	MissingURLKeyword

	// lexical
	InvalidPipeSpacing
	MissingSpaceAfterKeyword
	MultipleSpaces

	// keyword level
	LowercaseKeyword
	UnknownKeyword
	DuplicateKeyword

	// value level
	MissingMethod
	LowercaseMethod
	UnsupportedMethod
	MissingURLValue
	InvalidJSON
)

// ParseError is returned by ParseReqline. Keyword holds the offending keyword for
// UnknownKeyword, DuplicateKeyword and InvalidJSON.
type ParseError struct {
	Kind    ErrorKind
	Keyword string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case MissingHTTPKeyword:
		return "Missing required HTTP keyword"
	case MissingURLKeyword:
		return "Missing required URL keyword"
	case InvalidPipeSpacing:
		return "Invalid spacing around pipe delimiter"
	case MissingSpaceAfterKeyword:
		return "Missing space after keyword"
	case MultipleSpaces:
		return "Multiple spaces found where single space expected"
	case LowercaseKeyword:
		return "Keywords must be uppercase"
	case UnknownKeyword:
		return "Unknown keyword: " + e.Keyword
	case DuplicateKeyword:
		return "Duplicate keyword: " + e.Keyword
	case MissingMethod:
		return "Missing HTTP method"
	case LowercaseMethod:
		return "HTTP method must be uppercase"
	case UnsupportedMethod:
		return "Invalid HTTP method. Only GET and POST are supported"
	case MissingURLValue:
		return "Missing URL value"
	case InvalidJSON:
		return fmt.Sprintf("Invalid JSON format in %s section", e.Keyword)
	default:
		return fmt.Sprintf("unknown parse error (kind=%d)", int(e.Kind))
	}
}

func newParseError(kind ErrorKind) error {
	return errors.WithStack(&ParseError{Kind: kind})
}

func newKeywordError(kind ErrorKind, keyword string) error {
	return errors.WithStack(&ParseError{Kind: kind, Keyword: keyword})
}

// missingKeywordError reports an absent or misplaced required keyword.
func missingKeywordError(keyword Keyword) error {
	if keyword == KeywordURL {
		return newParseError(MissingURLKeyword)
	}
	return newParseError(MissingHTTPKeyword)
}

// AsParseError extracts the *ParseError carried by err, if any.
func AsParseError(err error) (*ParseError, bool) {
	pe, ok := errors.Cause(err).(*ParseError)
	return pe, ok
}
