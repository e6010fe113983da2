package scan

import (
	"strconv"
	"strings"
)

// Expression scanning. An expression part swallows a JS-flavored
// expression until a context-dependent terminator appears outside every
// ( [ { group. The terminator itself is rewound so the parent state sees
// it. Strings, template strings and placeholders are recognized at any
// group depth; JS comments only at depth zero.

func (s *Scanner) beginExpression(ctx exprContext) {
	s.pushPart(&exprPart{
		partBase:    partBase{pos: s.pos},
		ctx:         ctx,
		concise:     s.tagConcise(),
		argStart:    -1,
		argEnd:      -1,
		argRawStart: -1,
	}, stateExpression)
}

func (s *Scanner) endExpression() {
	p := s.popPart().(*exprPart)
	if h := states[s.state].expression; h != nil {
		h(s, p)
	}
}

func (p *exprPart) append(c byte) {
	p.value = append(p.value, c)
	p.raw = append(p.raw, c)
}

// noteContent marks that visible depth-zero content followed a closed
// argument candidate, so the candidate no longer trails the expression.
func (p *exprPart) noteContent() {
	if len(p.groups) == 0 && p.argValid && p.argEnd >= 0 {
		p.argValid = false
	}
}

// hasTrailingArg reports whether a completed (...) group ends the
// expression text and therefore is its argument.
func (p *exprPart) hasTrailingArg() bool {
	return p.ctx != exprAttrValue && p.argStart >= 0 && p.argValid &&
		p.argEnd == len(p.value)
}

// finish reduces the accumulated expression to its final value, splitting
// off a trailing argument when one exists. Dynamic tag names collapse to
// a single "+"-joined expression of quoted literal runs and placeholder
// replacements.
func (p *exprPart) finish() (value, argument string, hasArg bool) {
	v := p.value
	if p.hasTrailingArg() {
		argument = string(v[p.argStart+1 : p.argEnd-1])
		hasArg = true
		v = v[:p.argStart]
	}
	if p.dynamic {
		chunks := p.chunks
		if tail := v[p.litMark:]; len(tail) > 0 {
			chunks = append(chunks, strconv.Quote(string(tail)))
		}
		return strings.Join(chunks, "+"), argument, hasArg
	}
	return string(v), argument, hasArg
}

// rawName is the verbatim source of the expression minus its trailing
// argument, used to match close tags against open tags.
func (p *exprPart) rawName() string {
	if p.hasTrailingArg() {
		return string(p.raw[:p.argRawStart])
	}
	return string(p.raw)
}

// terminatedBy reports whether c ends the expression at group depth zero.
func (p *exprPart) terminatedBy(s *Scanner, c byte) bool {
	if isWhitespace(c) {
		return true
	}
	switch p.ctx {
	case exprTagName:
		if c == '.' || c == '#' || c == ',' {
			return true
		}
	case exprAttrName:
		if c == '=' || c == ',' {
			return true
		}
	case exprAttrValue:
		if c == ',' {
			return true
		}
	}
	if p.concise {
		if c == ';' {
			return true
		}
		if c == '/' && s.onlyWhitespaceRemainsOnLine(s.pos) {
			return true
		}
		return false
	}
	if c == '>' {
		return true
	}
	return c == '/' && s.lookAtCharCodeAhead(0) == '>'
}

func closerFor(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	}
	return '}'
}

func exprChar(s *Scanner, c byte) {
	p := topPart[*exprPart](s)

	switch c {
	case '"', '\'':
		s.beginString(c)
		return
	case '`':
		s.beginTemplate()
		return
	case '\\':
		p.append(c)
		if next := s.lookAtCharCodeAhead(0); next >= 0 {
			s.skip(1)
			p.append(byte(next))
		}
		return
	case '$':
		if n := s.placeholderLeadIn(); n > 0 {
			s.beginPlaceholder(n)
			return
		}
	}

	if len(p.groups) == 0 {
		if c == '/' {
			switch s.lookAtCharCodeAhead(0) {
			case '/':
				s.skip(1)
				s.pushPart(&commentPart{partBase: partBase{pos: s.pos - 2}}, stateLineComment)
				return
			case '*':
				s.skip(1)
				s.pushPart(&commentPart{partBase: partBase{pos: s.pos - 2}, block: true}, stateBlockComment)
				return
			}
		}
		if p.terminatedBy(s, c) {
			s.rewind(1)
			s.endExpression()
			return
		}
		if c == ')' || c == ']' || c == '}' {
			// a stray closer belongs to an enclosing construct
			s.rewind(1)
			s.endExpression()
			return
		}
	}

	switch c {
	case '(', '[', '{':
		if len(p.groups) == 0 {
			if c == '(' && p.ctx != exprAttrValue {
				if p.hasTrailingArg() {
					s.notify.error(ErrMultipleArguments,
						"only one argument is allowed", s.pos-1, s.pos)
					p.argValid = false
				} else {
					p.argStart = len(p.value)
					p.argRawStart = len(p.raw)
					p.argEnd = -1
					p.argValid = true
				}
			} else {
				p.noteContent()
			}
		}
		p.groups = append(p.groups, c)
		p.append(c)
	case ')', ']', '}':
		open := p.groups[len(p.groups)-1]
		p.groups = p.groups[:len(p.groups)-1]
		if closerFor(open) != c {
			s.notify.error(ErrMismatchedGroup,
				"\""+string(c)+"\" does not close \""+string(open)+"\"",
				s.pos-1, s.pos)
		}
		p.append(c)
		if len(p.groups) == 0 && p.argValid && p.argEnd < 0 {
			p.argEnd = len(p.value)
		}
	default:
		p.noteContent()
		p.append(c)
	}
}

func exprEOL(s *Scanner, newline string) {
	p := topPart[*exprPart](s)
	if len(p.groups) > 0 {
		// groups keep an expression alive across lines
		p.value = append(p.value, newline...)
		p.raw = append(p.raw, newline...)
		return
	}
	s.rewind(len(newline))
	s.endExpression()
}

func exprEOF(s *Scanner) {
	topPart[*exprPart](s).endedAtEOF = true
	s.endExpression()
	states[s.state].eof(s)
}

// Completion handlers for child parts nested in an expression.

func exprString(s *Scanner, p *stringPart) {
	e := topPart[*exprPart](s)
	e.noteContent()
	e.value = append(e.value, p.finishValue()...)
	e.raw = append(e.raw, p.raw...)
}

func exprTemplate(s *Scanner, p *templatePart) {
	e := topPart[*exprPart](s)
	e.noteContent()
	e.value = append(e.value, p.raw...)
	e.raw = append(e.raw, p.raw...)
}

// exprComment splices a JS comment out of the expression value while
// keeping it in the raw source text.
func exprComment(s *Scanner, p *commentPart) {
	e := topPart[*exprPart](s)
	e.raw = append(e.raw, s.data[p.pos:s.pos]...)
}

func exprPlaceholder(s *Scanner, ph *placeholderPart, replacement string) {
	e := topPart[*exprPart](s)
	e.raw = append(e.raw, s.data[ph.pos:s.pos]...)
	piece := "(" + replacement + ")"
	if len(e.groups) == 0 && e.ctx == exprTagName {
		if lit := e.value[e.litMark:]; len(lit) > 0 {
			e.chunks = append(e.chunks, strconv.Quote(string(lit)))
		}
		e.value = append(e.value, piece...)
		e.chunks = append(e.chunks, piece)
		e.litMark = len(e.value)
		e.dynamic = true
		return
	}
	e.noteContent()
	e.value = append(e.value, piece...)
}
