package scan

import "strings"

// Close tags. "</>" closes the innermost open tag regardless of name.

func (s *Scanner) endCloseTag() {
	p := s.popPart().(*closeTagPart)
	name := strings.TrimSpace(string(p.name))

	b := s.topBlock()
	switch {
	case b == nil || b.kind != blockTag || b.concise:
		s.notify.error(ErrExtraClosingTag,
			"\""+name+"\" has no matching open tag", p.pos, s.pos)
	case name != "" && name != b.name:
		s.notify.error(ErrMismatchedClosingTag,
			"\""+name+"\" does not match the open tag \""+b.name+"\"",
			p.pos, s.pos)
		s.popBlock()
	default:
		s.popBlock()
		s.notify.closeTag(b.name, p.pos, s.pos)
	}

	if s.withinMixedMode && !s.hasHTMLBlocks() {
		// the bracket-mode excursion is over; indentation mode resumes
		// at the next line terminator
		s.endMixedModeAtEOL = true
	}
	s.resumeContent()
}

// resumeContent re-enters the content state implied by the block stack,
// which may have changed while the part was active.
func (s *Scanner) resumeContent() {
	if target := s.contentState(); s.state != target {
		s.enterState(target)
	}
}

func closeTagChar(s *Scanner, c byte) {
	if c == '>' {
		s.endCloseTag()
		return
	}
	p := topPart[*closeTagPart](s)
	p.name = append(p.name, c)
}

func closeTagEOL(s *Scanner, newline string) {
	p := topPart[*closeTagPart](s)
	s.notify.error(ErrMalformedCloseTag,
		"close tag is missing \">\"", p.pos, s.pos-len(newline))
	s.rewind(len(newline))
	s.endCloseTag()
}

func closeTagEOF(s *Scanner) {
	p := topPart[*closeTagPart](s)
	s.notify.error(ErrMalformedCloseTag,
		"close tag is missing \">\"", p.pos, s.maxPos)
	s.endCloseTag()
	states[s.state].eof(s)
}
