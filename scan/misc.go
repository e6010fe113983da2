package scan

// CDATA sections, scriptlets, XML declarations and document types. Each
// of these is a flat run of characters with a fixed closing sequence.

func (s *Scanner) endCDATA() {
	p := s.popPart().(*cdataPart)
	s.notify.cdata(string(p.value), p.pos, s.pos)
}

func cdataChar(s *Scanner, c byte) {
	if c == ']' && s.lookAheadFor("]>") {
		s.skip(2)
		s.endCDATA()
		return
	}
	p := topPart[*cdataPart](s)
	p.value = append(p.value, c)
}

func cdataEOL(s *Scanner, newline string) {
	p := topPart[*cdataPart](s)
	p.value = append(p.value, newline...)
}

func cdataEOF(s *Scanner) {
	p := topPart[*cdataPart](s)
	s.notify.error(ErrUnterminatedCDATA,
		"CDATA section is missing \"]]>\"", p.pos, s.maxPos)
	s.endCDATA()
	states[s.state].eof(s)
}

func (s *Scanner) endScriptlet() {
	p := s.popPart().(*scriptletPart)
	s.notify.scriptlet(string(p.value), p.pos, s.pos)
}

func scriptletChar(s *Scanner, c byte) {
	if c == '%' && s.lookAtCharCodeAhead(0) == '>' {
		s.skip(1)
		s.endScriptlet()
		return
	}
	p := topPart[*scriptletPart](s)
	p.value = append(p.value, c)
}

func scriptletEOL(s *Scanner, newline string) {
	p := topPart[*scriptletPart](s)
	p.value = append(p.value, newline...)
}

func scriptletEOF(s *Scanner) {
	p := topPart[*scriptletPart](s)
	s.notify.error(ErrUnterminatedScriptlet,
		"scriptlet is missing \"%>\"", p.pos, s.maxPos)
	s.endScriptlet()
	states[s.state].eof(s)
}

func (s *Scanner) endDeclaration() {
	p := s.popPart().(*declarationPart)
	s.notify.declaration(string(p.value), p.pos, s.pos)
}

// declarationChar accepts both "?>" and a bare ">" as terminators.
func declarationChar(s *Scanner, c byte) {
	if c == '?' && s.lookAtCharCodeAhead(0) == '>' {
		s.skip(1)
		s.endDeclaration()
		return
	}
	if c == '>' {
		s.endDeclaration()
		return
	}
	p := topPart[*declarationPart](s)
	p.value = append(p.value, c)
}

func declarationEOL(s *Scanner, newline string) {
	p := topPart[*declarationPart](s)
	p.value = append(p.value, newline...)
}

func declarationEOF(s *Scanner) {
	p := topPart[*declarationPart](s)
	s.notify.error(ErrUnterminatedDecl,
		"declaration is missing \"?>\"", p.pos, s.maxPos)
	s.endDeclaration()
	states[s.state].eof(s)
}

func (s *Scanner) endDocType() {
	p := s.popPart().(*docTypePart)
	s.notify.documentType(string(p.value), p.pos, s.pos)
}

// docTypeChar tracks [...] so an internal DTD subset may contain ">".
func docTypeChar(s *Scanner, c byte) {
	p := topPart[*docTypePart](s)
	switch c {
	case '[':
		p.depth++
	case ']':
		if p.depth > 0 {
			p.depth--
		}
	case '>':
		if p.depth == 0 {
			s.endDocType()
			return
		}
	}
	p.value = append(p.value, c)
}

func docTypeEOL(s *Scanner, newline string) {
	p := topPart[*docTypePart](s)
	p.value = append(p.value, newline...)
}

func docTypeEOF(s *Scanner) {
	p := topPart[*docTypePart](s)
	s.notify.error(ErrUnterminatedDocType,
		"document type is missing \">\"", p.pos, s.maxPos)
	s.endDocType()
	states[s.state].eof(s)
}
