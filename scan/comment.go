package scan

// JS line and block comments, and HTML comments.

func (s *Scanner) endComment() {
	p := s.popPart().(*commentPart)
	if h := states[s.state].comment; h != nil {
		h(s, p)
	}
}

func lineCommentChar(s *Scanner, c byte) {
	p := topPart[*commentPart](s)
	p.value = append(p.value, c)
}

func lineCommentEOL(s *Scanner, newline string) {
	s.rewind(len(newline))
	s.endComment()
}

func lineCommentEOF(s *Scanner) {
	s.endComment()
	states[s.state].eof(s)
}

func blockCommentChar(s *Scanner, c byte) {
	if c == '*' && s.lookAtCharCodeAhead(0) == '/' {
		s.skip(1)
		s.endComment()
		return
	}
	p := topPart[*commentPart](s)
	p.value = append(p.value, c)
}

func blockCommentEOL(s *Scanner, newline string) {
	p := topPart[*commentPart](s)
	p.value = append(p.value, newline...)
}

func blockCommentEOF(s *Scanner) {
	p := topPart[*commentPart](s)
	s.notify.error(ErrUnterminatedComment,
		"comment is missing \"*/\"", p.pos, s.maxPos)
	s.endComment()
	states[s.state].eof(s)
}

// HTML comments deliver an OnComment event directly; no enclosing
// accumulator consumes them.

func (s *Scanner) endHTMLComment() {
	p := s.popPart().(*htmlCommentPart)
	s.notify.comment(string(p.value), p.pos, s.pos)
}

func htmlCommentChar(s *Scanner, c byte) {
	if c == '-' && s.lookAheadFor("->") {
		s.skip(2)
		s.endHTMLComment()
		return
	}
	p := topPart[*htmlCommentPart](s)
	p.value = append(p.value, c)
}

func htmlCommentEOL(s *Scanner, newline string) {
	p := topPart[*htmlCommentPart](s)
	p.value = append(p.value, newline...)
}

func htmlCommentEOF(s *Scanner) {
	p := topPart[*htmlCommentPart](s)
	s.notify.error(ErrUnterminatedComment,
		"comment is missing \"-->\"", p.pos, s.maxPos)
	s.endHTMLComment()
	states[s.state].eof(s)
}
