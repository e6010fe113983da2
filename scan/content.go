package scan

// Bracket-mode body content, raw tag bodies, and concise quoted text
// lines. All of these accumulate pending text and recognize the
// constructs allowed in their mode; the shared eol handler deals with
// region fences and with leaving mixed mode.

func htmlChar(s *Scanner, c byte) {
	switch c {
	case '<':
		next := s.lookAtCharCodeAhead(0)
		switch {
		case next == '!':
			switch {
			case s.lookAheadFor("!--"):
				s.flushText()
				s.skip(3)
				s.pushPart(&htmlCommentPart{partBase: partBase{pos: s.pos - 4}}, stateHTMLComment)
			case s.lookAheadFor("![CDATA["):
				s.flushText()
				s.skip(8)
				s.pushPart(&cdataPart{partBase: partBase{pos: s.pos - 9}}, stateCDATA)
			default:
				s.flushText()
				s.skip(1)
				s.pushPart(&docTypePart{partBase: partBase{pos: s.pos - 2}}, stateDocumentType)
			}
		case next == '?':
			s.flushText()
			s.skip(1)
			s.pushPart(&declarationPart{partBase: partBase{pos: s.pos - 2}}, stateDeclaration)
		case next == '%':
			s.flushText()
			s.skip(1)
			s.pushPart(&scriptletPart{partBase: partBase{pos: s.pos - 2}}, stateScriptlet)
		case next == '/':
			s.flushText()
			s.skip(1)
			s.pushPart(&closeTagPart{partBase: partBase{pos: s.pos - 2}}, stateCloseTag)
		case next < 0 || next == ' ' || next == '\t' || next == '<' || next == '>' || next == '=':
			// a lone "<" that cannot start a tag degrades to literal
			// text rather than erroring
			s.addText(c)
		default:
			s.flushText()
			s.beginOpenTag(false, s.pos-1)
		}
	case '$':
		textDollar(s)
	case '\\':
		textBackslash(s)
	default:
		s.addText(c)
	}
}

// parsedTextChar scans a raw body that still honors placeholders. The
// matching close tag takes priority over every other construct.
func parsedTextChar(s *Scanner, c byte) {
	switch c {
	case '<':
		if s.rawCloseTagAhead() {
			s.flushText()
			s.skip(1)
			s.pushPart(&closeTagPart{partBase: partBase{pos: s.pos - 2}}, stateCloseTag)
			return
		}
		s.addText(c)
	case '$':
		textDollar(s)
	case '\\':
		textBackslash(s)
	default:
		s.addText(c)
	}
}

// staticTextChar scans a fully raw body: nothing but the matching close
// tag is recognized.
func staticTextChar(s *Scanner, c byte) {
	if c == '<' && s.rawCloseTagAhead() {
		s.flushText()
		s.skip(1)
		s.pushPart(&closeTagPart{partBase: partBase{pos: s.pos - 2}}, stateCloseTag)
		return
	}
	s.addText(c)
}

// rawCloseTagAhead reports whether the input at the current "<" begins
// the close tag of the innermost raw-body bracket-mode tag.
func (s *Scanner) rawCloseTagAhead() bool {
	b := s.topBlock()
	if b == nil || b.kind != blockTag || b.concise {
		return false
	}
	if s.lookAtCharCodeAhead(0) != '/' {
		return false
	}
	if !s.lookAheadForAt(b.name, s.pos+1) {
		return false
	}
	after := s.lookAtCharCodeAhead(1 + len(b.name))
	return after == '>' || after == ' ' || after == '\t'
}

func contentEOL(s *Scanner, newline string) {
	// single-line regions end at the line terminator unconditionally,
	// even when bracket-mode tags opened inside them were never closed
	if i := s.findSingleLineRegion(); i >= 0 {
		s.flushText()
		for len(s.blocks) > i+1 {
			t := s.popBlock()
			s.notify.error(ErrMissingEndTag,
				"missing end tag for <"+t.name+">", t.pos, s.pos)
		}
		s.popBlock()
		s.newConciseLine()
		return
	}

	if b := s.topBlock(); b != nil && b.kind == blockRegion {
		s.addTextString(newline)
		fence := b.indent + b.delimiter
		if s.lookAheadFor(fence) {
			s.flushText()
			s.skip(len(fence))
			s.popBlock()
			s.beginTrailingWS("after the closing \"" + b.delimiter + "\" delimiter")
		}
		return
	}

	if s.withinMixedMode && (s.endMixedModeAtEOL || !s.hasHTMLBlocks()) {
		s.flushText()
		s.withinMixedMode = false
		s.endMixedModeAtEOL = false
		s.newConciseLine()
		return
	}
	s.addTextString(newline)
}

func contentEOF(s *Scanner) {
	s.flushText()
	s.closeAllBlocks()
}

func contentPlaceholder(s *Scanner, p *placeholderPart, replacement string) {
	// the placeholder event has been delivered; body text resumes after
	// the closing brace
}

// Quoted text: a concise line whose content is a quoted run of body
// text, e.g. `"hello ${name}"`.

func quotedTextChar(s *Scanner, c byte) {
	switch {
	case c == s.quote:
		s.flushText()
		s.quote = 0
		s.beginTrailingWS("after quoted text")
	case c == '\\':
		next := s.lookAtCharCodeAhead(0)
		switch {
		case s.placeholderLeadInAt(s.pos):
			s.addText('$')
			s.skip(1)
		case next == '\\' && s.placeholderLeadInAt(s.pos+1):
			s.addText('\\')
			s.skip(1)
		case next == int(s.quote) || next == '\\':
			s.skip(1)
			s.addText(byte(next))
		default:
			s.addText('\\')
		}
	case c == '$':
		textDollar(s)
	default:
		s.addText(c)
	}
}

func quotedTextEOL(s *Scanner, newline string) {
	s.notify.error(ErrUnterminatedString,
		"quoted text was not terminated before the end of the line",
		s.textPos, s.pos-len(newline))
	s.flushText()
	s.quote = 0
	s.newConciseLine()
}

func quotedTextEOF(s *Scanner) {
	s.notify.error(ErrUnterminatedString,
		"quoted text was not terminated", s.textPos, s.maxPos)
	s.flushText()
	s.quote = 0
	s.closeAllBlocks()
}

// Shared escape handling for body text.

func textDollar(s *Scanner) {
	if n := s.placeholderLeadIn(); n > 0 {
		s.flushText()
		s.beginPlaceholder(n)
		return
	}
	s.addText('$')
}

func textBackslash(s *Scanner) {
	switch {
	case s.placeholderLeadInAt(s.pos):
		// \${ escapes to a literal sigil; the braces flow as text
		s.addText('$')
		s.skip(1)
	case s.lookAtCharCodeAhead(0) == '\\' && s.placeholderLeadInAt(s.pos+1):
		// \\${ is a literal backslash followed by a real placeholder
		s.addText('\\')
		s.skip(1)
	default:
		s.addText('\\')
	}
}

func (s *Scanner) beginTrailingWS(desc string) {
	s.pushPart(&trailingWSPart{partBase: partBase{pos: s.pos}, desc: desc}, stateCheckTrailingWhitespace)
}

func trailingWSChar(s *Scanner, c byte) {
	if isWhitespace(c) {
		return
	}
	p := topPart[*trailingWSPart](s)
	if !p.sawInvalid {
		p.sawInvalid = true
		s.notify.error(ErrInvalidCharacter,
			"only whitespace is allowed "+p.desc, s.pos-1, s.pos)
	}
}

func trailingWSEOL(s *Scanner, newline string) {
	s.popPart()
	s.newConciseLine()
}

func trailingWSEOF(s *Scanner) {
	s.popPart()
	s.closeAllBlocks()
}
