package scan

// Placeholders: ${expr} escapes its output, $!{expr} does not. The
// expression text between the braces is preserved verbatim, nested
// braces, strings and comments included, so a listener can splice the
// source back together byte for byte.

// beginPlaceholder is called with the "$" already consumed; lead is the
// full lead-in length as reported by placeholderLeadIn.
func (s *Scanner) beginPlaceholder(lead int) {
	p := &placeholderPart{partBase: partBase{pos: s.pos - 1}, escape: lead == 2}
	s.skip(lead - 1)

	switch s.state {
	case stateHTMLContent, stateParsedText, stateQuotedText:
		p.withinBody = true
	case stateString:
		p.withinString = true
	case stateTagNameShorthand:
		p.withinTagName = true
	}
	if e := s.enclosingExpr(); e != nil {
		switch e.ctx {
		case exprTagName:
			p.withinTagName = true
		case exprAttrName, exprAttrValue:
			p.withinAttribute = true
		}
	}
	if s.tag != nil {
		p.withinOpenTag = true
	}
	s.pushPart(p, statePlaceholder)
}

func (s *Scanner) endPlaceholder() {
	p := s.popPart().(*placeholderPart)
	replacement := s.notify.placeholder(&Placeholder{
		Value:           string(p.value),
		Escape:          p.escape,
		WithinBody:      p.withinBody,
		WithinAttribute: p.withinAttribute,
		WithinString:    p.withinString,
		WithinOpenTag:   p.withinOpenTag,
		WithinTagName:   p.withinTagName,
		Pos:             p.pos,
		EndPos:          s.pos,
	})
	if h := states[s.state].placeholder; h != nil {
		h(s, p, replacement)
	}
}

func placeholderChar(s *Scanner, c byte) {
	p := topPart[*placeholderPart](s)
	switch c {
	case '{':
		p.depth++
		p.value = append(p.value, c)
	case '}':
		if p.depth == 0 {
			s.endPlaceholder()
			return
		}
		p.depth--
		p.value = append(p.value, c)
	case '"', '\'':
		s.beginString(c)
	case '`':
		s.beginTemplate()
	case '/':
		if p.depth == 0 {
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
		p.value = append(p.value, c)
	case '\\':
		p.value = append(p.value, c)
		if next := s.lookAtCharCodeAhead(0); next >= 0 {
			s.skip(1)
			p.value = append(p.value, byte(next))
		}
	default:
		p.value = append(p.value, c)
	}
}

func placeholderEOL(s *Scanner, newline string) {
	p := topPart[*placeholderPart](s)
	p.value = append(p.value, newline...)
}

func placeholderEOF(s *Scanner) {
	p := topPart[*placeholderPart](s)
	s.notify.error(ErrMalformedPlaceholder,
		"placeholder is missing its closing \"}\"", p.pos, s.maxPos)
	s.endPlaceholder()
	states[s.state].eof(s)
}

// Child parts nested in a placeholder are folded back into the value in
// their verbatim source form.

func placeholderString(s *Scanner, p *stringPart) {
	ph := topPart[*placeholderPart](s)
	ph.value = append(ph.value, p.raw...)
}

func placeholderTemplate(s *Scanner, p *templatePart) {
	ph := topPart[*placeholderPart](s)
	ph.value = append(ph.value, p.raw...)
}

func placeholderComment(s *Scanner, p *commentPart) {
	ph := topPart[*placeholderPart](s)
	ph.value = append(ph.value, s.data[p.pos:s.pos]...)
}
