package scan

import (
	"strconv"
	"strings"
)

// tagAcc accumulates one start tag while its pieces are being scanned.
// It is consumed exactly once, by finishOpenTag.
type tagAcc struct {
	ev            OpenTag
	indent        string
	expectedClose string // raw source text of the tag name
	hasID         bool
}

func (s *Scanner) tagConcise() bool {
	return s.tag != nil && s.tag.ev.Concise
}

func (s *Scanner) beginOpenTag(concise bool, pos int) {
	s.tag = &tagAcc{indent: s.indent}
	s.tag.ev.Pos = pos
	s.tag.ev.Concise = concise
	s.enterState(stateTagName)
}

// finishOpenTag consumes the accumulator, delivers the open-tag event and
// pushes a block for tags that expect a body. In bracket mode it also
// selects the body content state; concise callers transition themselves.
func (s *Scanner) finishOpenTag(selfClosed bool) {
	s.endAttr()
	t := s.tag
	s.tag = nil
	ev := &t.ev
	ev.SelfClosed = selfClosed
	ev.EndPos = s.pos

	if ev.TagName == "" && !ev.TagNameIsDynamic {
		// shorthand-only tags (".menu", "#main") default to div
		ev.TagName = "div"
		if t.expectedClose == "" {
			t.expectedClose = "div"
		}
	}
	if !ev.TagNameIsDynamic {
		name := strings.ToLower(ev.TagName)
		ev.OpenTagOnly = voidTags[name] || (s.openTagOnly != nil && s.openTagOnly(ev.TagName))
	}

	mode := s.notify.openTag(ev)
	if !selfClosed && !ev.OpenTagOnly {
		expected := t.expectedClose
		if expected == "" {
			expected = ev.TagName
		}
		s.pushBlock(&block{
			kind:     blockTag,
			name:     expected,
			pos:      ev.Pos,
			indent:   t.indent,
			concise:  ev.Concise,
			bodyMode: mode,
		})
	}
	if !ev.Concise {
		s.enterState(s.contentState())
	}
}

// Tag name: mostly driven by an expression part; this state handles the
// characters between the name, its shorthand fragments and its argument.

func tagNameChar(s *Scanner, c byte) {
	switch {
	case c == '.' || c == '#':
		s.beginShorthand(c)
	case isWhitespace(c) || c == ',':
		s.enterState(stateWithinOpenTag)
	case c == '>' && !s.tagConcise():
		s.finishOpenTag(false)
	case c == '/' && !s.tagConcise() && s.lookAtCharCodeAhead(0) == '>':
		s.skip(1)
		s.finishOpenTag(true)
	case c == '/' && s.tagConcise() && s.onlyWhitespaceRemainsOnLine(s.pos):
		s.finishOpenTag(true)
		s.beginTrailingWS("after \"/\"")
	case c == ';' && s.tagConcise():
		s.finishOpenTag(false)
		s.beginTrailingWS("after \";\"")
	default:
		s.rewind(1)
		s.beginExpression(exprTagName)
	}
}

func tagNameEOL(s *Scanner, newline string) {
	if s.tagConcise() {
		s.finishOpenTag(false)
		s.newConciseLine()
	}
	// bracket-mode open tags span lines
}

func tagNameExpression(s *Scanner, p *exprPart) {
	t := s.tag
	value, arg, hasArg := p.finish()
	t.ev.TagName += value
	t.expectedClose += p.rawName()
	if p.dynamic {
		t.ev.TagNameIsDynamic = true
	}
	if hasArg {
		if t.ev.HasArgument {
			s.notify.error(ErrMultipleArguments,
				"a tag may carry at most one argument", p.pos, s.pos)
			return
		}
		t.ev.Argument = arg
		t.ev.HasArgument = true
	}
}

// Within open tag: between attributes.

func withinTagChar(s *Scanner, c byte) {
	switch {
	case isWhitespace(c) || c == ',':
	case c == '>' && !s.tagConcise():
		s.finishOpenTag(false)
	case c == '/' && !s.tagConcise() && s.lookAtCharCodeAhead(0) == '>':
		s.skip(1)
		s.finishOpenTag(true)
	case c == '/' && s.tagConcise() && s.onlyWhitespaceRemainsOnLine(s.pos):
		s.finishOpenTag(true)
		s.beginTrailingWS("after \"/\"")
	case c == ';' && s.tagConcise():
		s.finishOpenTag(false)
		s.beginTrailingWS("after \";\"")
	case c == '-' && s.tagConcise() && s.lookAtCharCodeAhead(0) == '-' && s.fenceFollows(1):
		// `div -- text`: the rest of the line (or the fenced lines that
		// follow) become the tag's body content
		s.fencePos = s.pos - 1
		s.fenceSize = 1
		s.finishOpenTag(false)
		s.enterState(stateDelimitedBlock)
	case c == '$' && s.placeholderLeadIn() > 0:
		s.beginPlaceholder(s.placeholderLeadIn())
	case c == '=':
		s.notify.error(ErrMalformedOpenTag,
			"attribute value found without an attribute name", s.pos-1, s.pos)
	default:
		s.attr = &Attr{Pos: s.pos - 1}
		s.attrNameDone = false
		s.rewind(1)
		s.enterState(stateAttrName)
	}
}

// fenceFollows reports whether the character after `offset` more dashes
// can end a fence run (whitespace, a line terminator, or end of input).
func (s *Scanner) fenceFollows(offset int) bool {
	for s.lookAtCharCodeAhead(offset) == '-' {
		offset++
	}
	c := s.lookAtCharCodeAhead(offset)
	return c == -1 || c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func withinTagEOL(s *Scanner, newline string) {
	if s.tagConcise() {
		s.finishOpenTag(false)
		s.newConciseLine()
	}
}

func withinTagPlaceholder(s *Scanner, p *placeholderPart, replacement string) {
	// a placeholder in attribute position carries no accumulator; the
	// event itself is the whole story
}

func openTagEOF(s *Scanner) {
	if s.tag != nil {
		if !s.tag.ev.Concise {
			s.notify.error(ErrMalformedOpenTag,
				"end of input reached inside an open tag", s.tag.ev.Pos, s.maxPos)
		}
		s.finishOpenTag(false)
	}
	s.closeAllBlocks()
}

// Attributes.

func (s *Scanner) endAttr() {
	if s.attr == nil {
		return
	}
	s.attr.EndPos = s.pos
	s.tag.ev.Attrs = append(s.tag.ev.Attrs, *s.attr)
	s.attr = nil
}

func attrNameChar(s *Scanner, c byte) {
	if !s.attrNameDone {
		s.rewind(1)
		s.beginExpression(exprAttrName)
		return
	}
	switch {
	case isWhitespace(c):
		// may precede '=' or the next attribute
	case c == '=':
		s.enterState(stateAttrValue)
	default:
		s.endAttr()
		s.rewind(1)
		s.enterState(stateWithinOpenTag)
	}
}

func attrNameExpression(s *Scanner, p *exprPart) {
	value, arg, hasArg := p.finish()
	s.attr.Name = value
	s.attrNameDone = true
	if hasArg {
		if s.attr.HasArgument {
			s.notify.error(ErrMultipleArguments,
				"an attribute may carry at most one argument", p.pos, s.pos)
			return
		}
		s.attr.Argument = arg
		s.attr.HasArgument = true
	}
}

func attrValueChar(s *Scanner, c byte) {
	if !s.attr.HasValue {
		if isWhitespace(c) {
			return
		}
		s.rewind(1)
		s.beginExpression(exprAttrValue)
		return
	}
	s.endAttr()
	s.rewind(1)
	s.enterState(stateWithinOpenTag)
}

func attrValueExpression(s *Scanner, p *exprPart) {
	value, _, _ := p.finish()
	s.attr.Value = value
	s.attr.RawValue = string(p.raw)
	s.attr.HasValue = true
}

func attrEOL(s *Scanner, newline string) {
	if s.tagConcise() {
		s.endAttr()
		s.finishOpenTag(false)
		s.newConciseLine()
	}
}

// Tag name shorthand: ".class" and "#id" fragments.

func (s *Scanner) beginShorthand(kind byte) {
	if kind == '#' && s.tag.hasID {
		s.notify.error(ErrMultipleShorthandIDs,
			"a tag may declare at most one shorthand id", s.pos-1, s.pos)
	}
	s.pushPart(&shorthandPart{partBase: partBase{pos: s.pos - 1}, kind: kind}, stateTagNameShorthand)
}

func (s *Scanner) endShorthand() {
	p := s.popPart().(*shorthandPart)
	chunks := p.chunks
	if len(p.lit) > 0 || len(chunks) == 0 {
		chunks = append(chunks, strconv.Quote(string(p.lit)))
	}
	expr := strings.Join(chunks, "+")
	if p.kind == '#' {
		if !s.tag.hasID {
			s.tag.hasID = true
			s.tag.ev.ShorthandID = expr
		}
		return
	}
	s.tag.ev.ShorthandClassNames = append(s.tag.ev.ShorthandClassNames, expr)
}

func shorthandChar(s *Scanner, c byte) {
	p := topPart[*shorthandPart](s)
	switch {
	case isWhitespace(c) || c == '.' || c == '#' || c == '(' || c == ',' ||
		c == ';' || c == '=' || c == '/' || (c == '>' && !s.tagConcise()):
		s.rewind(1)
		s.endShorthand()
	case c == '$':
		if n := s.placeholderLeadIn(); n > 0 {
			s.beginPlaceholder(n)
			return
		}
		p.lit = append(p.lit, c)
	case c == '\\':
		switch {
		case s.placeholderLeadInAt(s.pos):
			p.lit = append(p.lit, '$')
			s.skip(1)
		case s.lookAtCharCodeAhead(0) == '\\' && s.placeholderLeadInAt(s.pos+1):
			p.lit = append(p.lit, '\\')
			s.skip(1)
		default:
			p.lit = append(p.lit, '\\')
		}
	default:
		p.lit = append(p.lit, c)
	}
}

func shorthandEOL(s *Scanner, newline string) {
	s.rewind(len(newline))
	s.endShorthand()
}

func shorthandEOF(s *Scanner) {
	s.endShorthand()
	states[s.state].eof(s)
}

func shorthandPlaceholder(s *Scanner, ph *placeholderPart, replacement string) {
	p := topPart[*shorthandPart](s)
	if len(p.lit) > 0 {
		p.chunks = append(p.chunks, strconv.Quote(string(p.lit)))
		p.lit = p.lit[:0]
	}
	p.chunks = append(p.chunks, "("+replacement+")")
	p.dynamic = true
}
