package scan

// A part is an in-progress sub-parse: an expression, a quoted string, a
// comment, a placeholder and so on. Parts nest with stack discipline; each
// remembers the state to resume when it completes. Completion pops the
// part and hands its accumulated value to the parent state's completion
// handler.
type part interface {
	base() *partBase
}

type partBase struct {
	pos    int
	parent stateID
}

func (p *partBase) base() *partBase { return p }

// exprContext says which surrounding construct an expression part is
// feeding. The context decides which characters terminate the expression
// at group depth zero.
type exprContext uint8

const (
	exprTagName exprContext = iota
	exprAttrName
	exprAttrValue
)

type exprPart struct {
	partBase
	ctx     exprContext
	concise bool

	value  []byte // logical expression text, comments spliced out
	raw    []byte // source text verbatim
	groups []byte // open ( [ { kinds

	// Dynamic tag names: literal runs and placeholder pieces reduced to
	// a single "+"-joined expression on completion.
	chunks  []string
	litMark int
	dynamic bool

	// Candidate argument payload: a top-level (...) group that may turn
	// out to immediately precede the terminator.
	argStart    int
	argEnd      int
	argRawStart int
	argValid    bool

	endedAtEOF bool
}

type stringPart struct {
	partBase
	quote  byte
	lit    []byte // current literal run, escapes preserved
	raw    []byte // source text including quotes
	chunks []string
	hasPh  bool
}

type templatePart struct {
	partBase
	raw         []byte // source text including back-quotes
	interpDepth int
}

type commentPart struct {
	partBase
	block bool // true for /* */, false for //
	value []byte
}

type htmlCommentPart struct {
	partBase
	value []byte
}

type cdataPart struct {
	partBase
	value []byte
}

type scriptletPart struct {
	partBase
	value []byte
}

type declarationPart struct {
	partBase
	value []byte
}

type docTypePart struct {
	partBase
	value []byte
	depth int // [...] internal subset nesting
}

type placeholderPart struct {
	partBase
	escape bool
	depth  int
	value  []byte

	withinBody      bool
	withinAttribute bool
	withinString    bool
	withinOpenTag   bool
	withinTagName   bool
}

type shorthandPart struct {
	partBase
	kind    byte // '.' or '#'
	lit     []byte
	chunks  []string
	dynamic bool
}

type closeTagPart struct {
	partBase
	name []byte
}

type trailingWSPart struct {
	partBase
	desc       string
	sawInvalid bool
}

func (s *Scanner) pushPart(p part, next stateID) {
	p.base().parent = s.state
	s.parts = append(s.parts, p)
	s.enterState(next)
}

// popPart removes the top of the part stack and re-enters the parent
// state recorded when the part was created.
func (s *Scanner) popPart() part {
	n := len(s.parts) - 1
	p := s.parts[n]
	s.parts[n] = nil
	s.parts = s.parts[:n]
	s.enterState(p.base().parent)
	return p
}

// topPart returns the active part without popping it. It panics when the
// caller's expectation about the stack is wrong, which is a programming
// error rather than a malformed-input condition.
func topPart[T part](s *Scanner) T {
	return s.parts[len(s.parts)-1].(T)
}

// enclosingExpr walks the part stack for the nearest expression part, if
// any. Used to derive placeholder context flags.
func (s *Scanner) enclosingExpr() *exprPart {
	for i := len(s.parts) - 1; i >= 0; i-- {
		if e, ok := s.parts[i].(*exprPart); ok {
			return e
		}
	}
	return nil
}
