package scan

// BodyMode tells the scanner how to treat the body of a tag. It is returned
// by Listener.OnOpenTag, which removes any need for the listener to call
// back into the scanner while an event is being delivered.
type BodyMode int

const (
	// BodyNestedMarkup scans the tag body as ordinary nested markup.
	BodyNestedMarkup BodyMode = iota
	// BodyRawText scans the tag body as raw text. Nothing but the
	// matching close tag is recognized.
	BodyRawText
	// BodyRawTextWithPlaceholders scans the tag body as raw text but
	// still recognizes ${...} and $!{...} placeholders.
	BodyRawTextWithPlaceholders
)

// Attr is a single attribute collected while scanning an open tag.
//
// Name and Value hold the logical expression text with comments spliced
// out; RawValue preserves the value's source text verbatim.
type Attr struct {
	Name        string
	Value       string
	HasValue    bool
	RawValue    string
	Argument    string
	HasArgument bool
	Pos         int
	EndPos      int
}

// OpenTag describes a fully scanned start tag.
type OpenTag struct {
	// TagName is the tag name as written, or the reduced concatenation
	// expression when the name contains placeholders (in which case
	// TagNameIsDynamic is set).
	TagName          string
	TagNameIsDynamic bool

	Attrs []Attr

	// Argument holds the parenthesized payload directly following the
	// tag name, e.g. the condition of `if(x > 0)`.
	Argument    string
	HasArgument bool

	// ShorthandID and ShorthandClassNames are the reduced expressions of
	// any `#id` and `.class` fragments attached to the tag name.
	ShorthandID         string
	ShorthandClassNames []string

	SelfClosed  bool
	OpenTagOnly bool
	Concise     bool

	Pos    int
	EndPos int
}

// Placeholder describes a ${...} or $!{...} splice point. The Within*
// flags record the lexical context so the listener can decide how the
// expression should eventually be rendered.
type Placeholder struct {
	Value  string
	Escape bool

	WithinBody      bool
	WithinAttribute bool
	WithinString    bool
	WithinOpenTag   bool
	WithinTagName   bool

	Pos    int
	EndPos int
}

// Listener receives one call per recognized construct. Positions are byte
// offsets into the source passed to Parse; use Location to turn them into
// line/column pairs.
//
// Embed BaseListener to implement only the methods you care about.
type Listener interface {
	OnText(value string, pos, endPos int)

	// OnOpenTag is called once per start tag. The returned BodyMode
	// controls how the tag's body is scanned.
	OnOpenTag(tag *OpenTag) BodyMode

	OnCloseTag(tagName string, pos, endPos int)
	OnComment(value string, pos, endPos int)
	OnCDATA(value string, pos, endPos int)
	OnDeclaration(value string, pos, endPos int)
	OnDocumentType(value string, pos, endPos int)
	OnScriptlet(value string, pos, endPos int)

	// OnPlaceholder may rewrite the placeholder's expression by returning
	// a different string; returning ph.Value leaves it untouched. The
	// returned text is what surrounding accumulators (attribute strings,
	// dynamic tag names) embed.
	OnPlaceholder(ph *Placeholder) string

	// OnError is called at most once per scan; after the first error all
	// other notifications are suppressed.
	OnError(err *Error)
}

// BaseListener is a no-op Listener suitable for embedding.
type BaseListener struct{}

func (BaseListener) OnText(value string, pos, endPos int)         {}
func (BaseListener) OnOpenTag(tag *OpenTag) BodyMode              { return BodyNestedMarkup }
func (BaseListener) OnCloseTag(tagName string, pos, endPos int)   {}
func (BaseListener) OnComment(value string, pos, endPos int)      {}
func (BaseListener) OnCDATA(value string, pos, endPos int)        {}
func (BaseListener) OnDeclaration(value string, pos, endPos int)  {}
func (BaseListener) OnDocumentType(value string, pos, endPos int) {}
func (BaseListener) OnScriptlet(value string, pos, endPos int)    {}
func (BaseListener) OnPlaceholder(ph *Placeholder) string         { return ph.Value }
func (BaseListener) OnError(err *Error)                           {}
