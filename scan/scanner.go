package scan

import "strings"

// Option configures a Scanner.
type Option func(*Scanner)

// WithOpenTagOnly registers a predicate declaring tags that never carry a
// body or a close tag, in addition to the built-in HTML void elements.
func WithOpenTagOnly(fn func(tagName string) bool) Option {
	return func(s *Scanner) { s.openTagOnly = fn }
}

// WithHTMLMode starts the scan in the angle-bracket syntax instead of the
// concise indentation-significant syntax. Used for plain markup sources
// that never switch modes.
func WithHTMLMode() Option {
	return func(s *Scanner) { s.htmlMode = true }
}

// voidTags are the HTML elements that are open-tag-only by definition.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Scanner is a single-pass scanner over one input at a time. It owns the
// cursor, the active state, the part and block stacks, and the open-tag
// and attribute accumulators. A Scanner must not be shared between
// concurrent scans; Parse fully resets it before each run.
type Scanner struct {
	htmlMode    bool
	openTagOnly func(string) bool

	data   string
	pos    int
	maxPos int
	state  stateID
	notify notifier

	parts  []part
	blocks []*block

	tag          *tagAcc
	attr         *Attr
	attrNameDone bool

	text       []byte
	textPos    int
	textEndPos int

	// Concise-mode line bookkeeping.
	indent      string
	indentStart int
	concise     bool

	withinMixedMode   bool
	endMixedModeAtEOL bool

	quote     byte // delimiter of the current quoted text line
	fencePos  int
	fenceSize int
}

// New returns a scanner ready for Parse.
func New(opts ...Option) *Scanner {
	s := &Scanner{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parse scans src, delivering one callback per recognized construct. It
// returns the first scan error, or nil. The scanner always runs to the
// end of the input; after the first error only bookkeeping continues and
// no further events are delivered.
func (s *Scanner) Parse(src string, l Listener) error {
	s.reset()
	src = strings.TrimPrefix(src, "\uFEFF")
	s.data = src
	s.maxPos = len(src)
	s.notify = notifier{listener: l}

	if s.htmlMode {
		s.enterState(stateHTMLContent)
	} else {
		s.enterState(stateConciseContent)
		s.indentStart = s.pos
	}

	for s.pos < s.maxPos {
		c := s.data[s.pos]
		if c == '\n' {
			s.pos++
			states[s.state].eol(s, "\n")
			continue
		}
		if c == '\r' && s.pos+1 < s.maxPos && s.data[s.pos+1] == '\n' {
			s.pos += 2
			states[s.state].eol(s, "\r\n")
			continue
		}
		s.pos++
		states[s.state].char(s, c)
	}
	states[s.state].eof(s)
	return s.notify.firstError()
}

func (s *Scanner) reset() {
	s.data = ""
	s.pos = 0
	s.maxPos = 0
	s.state = stateNone
	s.notify = notifier{}
	s.parts = s.parts[:0]
	s.blocks = s.blocks[:0]
	s.tag = nil
	s.attr = nil
	s.attrNameDone = false
	s.text = s.text[:0]
	s.textPos = 0
	s.textEndPos = 0
	s.indent = ""
	s.indentStart = 0
	s.concise = false
	s.withinMixedMode = false
	s.endMixedModeAtEOL = false
	s.quote = 0
	s.fencePos = 0
	s.fenceSize = 0
}

// Cursor operations. During a char handler for character c, pos is the
// offset just past c, so lookAtCharCodeAhead(0) peeks the next unconsumed
// character. skip and rewind adjust the cursor without dispatching
// handlers; rewind(1) puts the current character back for the next state.

func (s *Scanner) lookAtCharCodeAhead(offset int) int {
	i := s.pos + offset
	if i < 0 || i >= s.maxPos {
		return -1
	}
	return int(s.data[i])
}

func (s *Scanner) lookAheadFor(match string) bool {
	return s.lookAheadForAt(match, s.pos)
}

func (s *Scanner) lookAheadForAt(match string, from int) bool {
	end := from + len(match)
	if end > s.maxPos {
		return false
	}
	return s.data[from:end] == match
}

func (s *Scanner) skip(n int)   { s.pos += n }
func (s *Scanner) rewind(n int) { s.pos -= n }

// onlyWhitespaceRemainsOnLine reports whether everything from offset
// `from` up to the next line terminator is spaces or tabs.
func (s *Scanner) onlyWhitespaceRemainsOnLine(from int) bool {
	for i := from; i < s.maxPos; i++ {
		switch s.data[i] {
		case ' ', '\t':
		case '\n', '\r':
			return true
		default:
			return false
		}
	}
	return true
}

// Pending-text buffer. Text accumulates until a structural boundary
// flushes it as a single OnText event.

func (s *Scanner) addText(c byte) {
	if len(s.text) == 0 {
		s.textPos = s.pos - 1
	}
	s.text = append(s.text, c)
	s.textEndPos = s.pos
}

func (s *Scanner) addTextString(str string) {
	if len(s.text) == 0 {
		s.textPos = s.pos - len(str)
	}
	s.text = append(s.text, str...)
	s.textEndPos = s.pos
}

// markText pins the start position of the text buffer for cases where
// accumulated text does not map one-to-one onto source characters.
func (s *Scanner) markText(pos int) {
	if len(s.text) == 0 {
		s.textPos = pos
		s.textEndPos = pos
	}
}

func (s *Scanner) flushText() {
	if len(s.text) == 0 {
		return
	}
	s.notify.text(string(s.text), s.textPos, s.textEndPos)
	s.text = s.text[:0]
}

// Block stack.

type blockKind uint8

const (
	blockTag blockKind = iota
	blockRegion
)

// block is an open structural unit: a tag awaiting its close (explicit or
// by dedent) or a delimited raw region awaiting its fence.
type block struct {
	kind     blockKind
	name     string // close-tag text expected for tag blocks
	pos      int
	indent   string
	concise  bool
	bodyMode BodyMode

	childIndent    string
	childIndentSet bool

	delimiter string // region fence text; empty for single-line regions
}

func (s *Scanner) topBlock() *block {
	if n := len(s.blocks); n > 0 {
		return s.blocks[n-1]
	}
	return nil
}

func (s *Scanner) pushBlock(b *block) { s.blocks = append(s.blocks, b) }

func (s *Scanner) popBlock() *block {
	n := len(s.blocks) - 1
	b := s.blocks[n]
	s.blocks[n] = nil
	s.blocks = s.blocks[:n]
	return b
}

func (s *Scanner) hasHTMLBlocks() bool {
	for _, b := range s.blocks {
		if b.kind == blockTag && !b.concise {
			return true
		}
	}
	return false
}

// contentState picks the state that scans body content in the current
// block context.
func (s *Scanner) contentState() stateID {
	if b := s.topBlock(); b != nil {
		switch b.bodyMode {
		case BodyRawText:
			return stateStaticText
		case BodyRawTextWithPlaceholders:
			return stateParsedText
		}
	}
	return stateHTMLContent
}

// closeBlocksForIndent auto-closes every concise tag block whose opening
// indent is at least as deep as the new line's indent, then checks the
// new line's indentation for consistency within the surviving block.
func (s *Scanner) closeBlocksForIndent(indent string) {
	for {
		b := s.topBlock()
		if b == nil || b.kind != blockTag || !b.concise || len(b.indent) < len(indent) {
			break
		}
		s.popBlock()
		s.notify.closeTag(b.name, s.pos-1, s.pos-1)
	}

	b := s.topBlock()
	if b == nil {
		if indent != "" {
			s.notify.error(ErrBadIndentation,
				"line is indented but there is no open tag to belong to",
				s.indentStart, s.pos-1)
		}
		return
	}
	if b.kind == blockTag && b.concise && indent != "" {
		if !b.childIndentSet {
			b.childIndent = indent
			b.childIndentSet = true
		} else if b.childIndent != indent {
			s.notify.error(ErrBadIndentation,
				"inconsistent indentation within the body of tag "+b.name,
				s.indentStart, s.pos-1)
		}
	}
}

// closeAllBlocks runs at end of input: concise tag blocks close
// implicitly, unterminated bracket-mode tags are an error, and regions
// simply end.
func (s *Scanner) closeAllBlocks() {
	for len(s.blocks) > 0 {
		b := s.popBlock()
		if b.kind == blockRegion {
			continue
		}
		if b.concise {
			s.notify.closeTag(b.name, s.maxPos, s.maxPos)
		} else {
			s.notify.error(ErrMissingEndTag,
				"missing end tag for <"+b.name+">", b.pos, s.maxPos)
		}
	}
}

// newConciseLine resumes indentation-significant scanning at the start of
// a fresh line.
func (s *Scanner) newConciseLine() {
	if s.state != stateConciseContent {
		s.enterState(stateConciseContent)
	}
	s.indent = ""
	s.indentStart = s.pos
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t'
}

// placeholderLeadIn reports the length of a placeholder lead-in starting
// with the already-consumed '$': 2 for "${", 3 for "$!{", 0 for neither.
func (s *Scanner) placeholderLeadIn() int {
	switch {
	case s.lookAtCharCodeAhead(0) == '{':
		return 2
	case s.lookAtCharCodeAhead(0) == '!' && s.lookAtCharCodeAhead(1) == '{':
		return 3
	}
	return 0
}

// placeholderLeadInAt reports whether a placeholder lead-in begins at
// offset `from` (an absolute position, used after a backslash).
func (s *Scanner) placeholderLeadInAt(from int) bool {
	if from >= s.maxPos || s.data[from] != '$' {
		return false
	}
	if s.lookAheadForAt("{", from+1) {
		return true
	}
	return s.lookAheadForAt("!{", from+1)
}
