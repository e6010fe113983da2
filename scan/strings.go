package scan

import "strings"

// JS string and template literals nested in expressions and placeholders.

func (s *Scanner) beginString(quote byte) {
	p := &stringPart{partBase: partBase{pos: s.pos - 1}, quote: quote}
	p.raw = append(p.raw, quote)
	s.pushPart(p, stateString)
}

func (s *Scanner) endString() {
	p := s.popPart().(*stringPart)
	if h := states[s.state].str; h != nil {
		h(s, p)
	}
}

// finishValue reduces a completed string to expression text: the verbatim
// source when no placeholder occurred, otherwise a parenthesized
// concatenation of the literal runs and the placeholder replacements.
func (p *stringPart) finishValue() string {
	if !p.hasPh {
		return string(p.raw)
	}
	chunks := p.chunks
	if len(p.lit) > 0 || len(chunks) == 0 {
		chunks = append(chunks, p.quotedLit())
	}
	return "(" + strings.Join(chunks, "+") + ")"
}

func (p *stringPart) quotedLit() string {
	q := string(rune(p.quote))
	return q + string(p.lit) + q
}

func stringChar(s *Scanner, c byte) {
	p := topPart[*stringPart](s)
	switch {
	case c == p.quote:
		p.raw = append(p.raw, c)
		s.endString()
	case c == '\\':
		p.raw = append(p.raw, c)
		next := s.lookAtCharCodeAhead(0)
		switch {
		case next < 0:
			p.lit = append(p.lit, '\\')
		case s.placeholderLeadInAt(s.pos):
			// the backslash suppresses the placeholder; a literal "$"
			// remains and the braces flow as string content
			s.skip(1)
			p.raw = append(p.raw, '$')
			p.lit = append(p.lit, '$')
		default:
			s.skip(1)
			p.raw = append(p.raw, byte(next))
			p.lit = append(p.lit, '\\', byte(next))
		}
	case c == '$' && s.placeholderLeadIn() > 0:
		s.beginPlaceholder(s.placeholderLeadIn())
	default:
		p.raw = append(p.raw, c)
		p.lit = append(p.lit, c)
	}
}

func stringEOL(s *Scanner, newline string) {
	p := topPart[*stringPart](s)
	s.notify.error(ErrUnterminatedString,
		"string is missing its closing "+string(rune(p.quote)),
		p.pos, s.pos-len(newline))
	s.rewind(len(newline))
	s.endString()
}

func stringEOF(s *Scanner) {
	p := topPart[*stringPart](s)
	s.notify.error(ErrUnterminatedString,
		"string is missing its closing "+string(rune(p.quote)), p.pos, s.maxPos)
	s.endString()
	states[s.state].eof(s)
}

func stringPlaceholder(s *Scanner, ph *placeholderPart, replacement string) {
	p := topPart[*stringPart](s)
	p.raw = append(p.raw, s.data[ph.pos:s.pos]...)
	p.chunks = append(p.chunks, p.quotedLit(), "("+replacement+")")
	p.lit = p.lit[:0]
	p.hasPh = true
}

func (s *Scanner) beginTemplate() {
	p := &templatePart{partBase: partBase{pos: s.pos - 1}}
	p.raw = append(p.raw, '`')
	s.pushPart(p, stateTemplateString)
}

func (s *Scanner) endTemplate() {
	p := s.popPart().(*templatePart)
	if h := states[s.state].template; h != nil {
		h(s, p)
	}
}

func templateChar(s *Scanner, c byte) {
	p := topPart[*templatePart](s)
	p.raw = append(p.raw, c)
	switch c {
	case '\\':
		if next := s.lookAtCharCodeAhead(0); next >= 0 {
			s.skip(1)
			p.raw = append(p.raw, byte(next))
		}
	case '$':
		if s.lookAtCharCodeAhead(0) == '{' {
			s.skip(1)
			p.raw = append(p.raw, '{')
			p.interpDepth++
		}
	case '{':
		if p.interpDepth > 0 {
			p.interpDepth++
		}
	case '}':
		if p.interpDepth > 0 {
			p.interpDepth--
		}
	case '`':
		// a back-quote inside ${...} interpolation does not end the
		// template
		if p.interpDepth == 0 {
			s.endTemplate()
		}
	}
}

func templateEOL(s *Scanner, newline string) {
	p := topPart[*templatePart](s)
	p.raw = append(p.raw, newline...)
}

func templateEOF(s *Scanner) {
	p := topPart[*templatePart](s)
	s.notify.error(ErrUnterminatedTemplate,
		"template string is missing its closing back-quote", p.pos, s.maxPos)
	s.endTemplate()
	states[s.state].eof(s)
}
