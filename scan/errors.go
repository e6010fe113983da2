package scan

import "fmt"

// Error codes reported through Listener.OnError. The codes are stable;
// messages are not.
const (
	ErrMalformedOpenTag      = "MALFORMED_OPEN_TAG"
	ErrMalformedCloseTag     = "MALFORMED_CLOSE_TAG"
	ErrMismatchedClosingTag  = "MISMATCHED_CLOSING_TAG"
	ErrExtraClosingTag       = "EXTRA_CLOSING_TAG"
	ErrMissingEndTag         = "MISSING_END_TAG"
	ErrBadIndentation        = "BAD_INDENTATION"
	ErrIllegalLineStart      = "ILLEGAL_LINE_START"
	ErrInvalidCharacter      = "INVALID_CHARACTER"
	ErrUnterminatedString    = "UNTERMINATED_STRING"
	ErrUnterminatedTemplate  = "UNTERMINATED_TEMPLATE_STRING"
	ErrUnterminatedComment   = "UNTERMINATED_COMMENT"
	ErrUnterminatedCDATA     = "UNTERMINATED_CDATA"
	ErrUnterminatedDecl      = "UNTERMINATED_DECLARATION"
	ErrUnterminatedDocType   = "UNTERMINATED_DOCUMENT_TYPE"
	ErrUnterminatedScriptlet = "UNTERMINATED_SCRIPTLET"
	ErrMalformedPlaceholder  = "MALFORMED_PLACEHOLDER"
	ErrMismatchedGroup       = "MISMATCHED_GROUP"
	ErrMultipleShorthandIDs  = "MULTIPLE_SHORTHAND_IDS"
	ErrMultipleArguments     = "MULTIPLE_ARGUMENTS"
)

// Error is a scan diagnostic. Pos and EndPos are byte offsets into the
// scanned source.
type Error struct {
	Code    string
	Message string
	Pos     int
	EndPos  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (at %d)", e.Code, e.Message, e.Pos)
}
