package scan

import "strings"

// Concise content: the indentation-significant surface syntax. The state
// is active only at line starts; every construct on the line switches to
// a more specific state and control returns here at the next terminator.

func conciseChar(s *Scanner, c byte) {
	if isWhitespace(c) {
		return // still collecting the line's indent
	}
	s.indent = s.data[s.indentStart : s.pos-1]
	s.closeBlocksForIndent(s.indent)

	if s.enclosingBodyMode() != BodyNestedMarkup && c != '-' {
		s.notify.error(ErrIllegalLineStart,
			"a line within a raw tag body must start with \"-\"",
			s.pos-1, s.pos)
		// keep the bookkeeping coherent: treat the rest of the line as
		// single-line raw content
		s.fencePos = s.pos - 1
		s.beginSingleLineRegion(true)
		return
	}

	switch {
	case c == '-':
		s.fencePos = s.pos - 1
		s.fenceSize = 1
		s.enterState(stateDelimitedBlock)
	case c == '/' && s.lookAtCharCodeAhead(0) == '/':
		s.skip(1)
		s.pushPart(&commentPart{partBase: partBase{pos: s.pos - 2}}, stateLineComment)
	case c == '<':
		// a bracket-mode construct nested in an indentation-mode
		// document: mixed mode until its blocks are closed again
		s.withinMixedMode = true
		s.rewind(1)
		s.enterState(stateHTMLContent)
	case c == '"' || c == '\'':
		s.quote = c
		s.markText(s.pos)
		s.enterState(stateQuotedText)
	default:
		s.rewind(1)
		s.beginOpenTag(true, s.pos)
	}
}

func conciseEOL(s *Scanner, newline string) {
	// blank or indent-only line: nothing to close, nothing to emit
	s.indent = ""
	s.indentStart = s.pos
}

func conciseEOF(s *Scanner) {
	s.closeAllBlocks()
}

// conciseComment receives a completed "//" line comment found at the
// start of a concise line.
func conciseComment(s *Scanner, p *commentPart) {
	s.notify.comment(string(p.value), p.pos, s.pos)
}

// enclosingBodyMode resolves the body mode of the innermost open tag
// block, which governs what may start an indentation-mode line.
func (s *Scanner) enclosingBodyMode() BodyMode {
	for i := len(s.blocks) - 1; i >= 0; i-- {
		if s.blocks[i].kind == blockTag {
			return s.blocks[i].bodyMode
		}
	}
	return BodyNestedMarkup
}

// Delimited block: a concise line starting with the "-" fence character.
// One fence character introduces a single-line region; two or more with
// nothing else on the line introduce a multi-line region terminated by
// the identical fence at the identical indent.

func fenceChar(s *Scanner, c byte) {
	if c == '-' {
		s.fenceSize++
		return
	}
	if isWhitespace(c) {
		if s.onlyWhitespaceRemainsOnLine(s.pos) {
			return // trailing whitespace; the eol handler decides
		}
		// exactly one whitespace character after the fence is skipped
		s.beginSingleLineRegion(false)
		return
	}
	s.beginSingleLineRegion(true)
}

func fenceEOL(s *Scanner, newline string) {
	if s.fenceSize >= 2 {
		mode := BodyRawTextWithPlaceholders
		if s.enclosingBodyMode() == BodyRawText {
			mode = BodyRawText
		}
		s.pushBlock(&block{
			kind:      blockRegion,
			pos:       s.fencePos,
			indent:    s.indent,
			bodyMode:  mode,
			delimiter: strings.Repeat("-", s.fenceSize),
		})
		s.enterState(s.contentState())
		return
	}
	// a lone "-" with nothing after it is an empty single-line region
	s.newConciseLine()
}

func fenceEOF(s *Scanner) {
	s.closeAllBlocks()
}

// beginSingleLineRegion makes the rest of the current line a raw/bracket
// content region; indentation mode resumes at the next line terminator.
func (s *Scanner) beginSingleLineRegion(rewind bool) {
	s.pushBlock(&block{
		kind:     blockRegion,
		pos:      s.fencePos,
		indent:   s.indent,
		bodyMode: s.enclosingBodyMode(),
	})
	if rewind {
		s.rewind(1)
	}
	s.enterState(s.contentState())
}

// findSingleLineRegion locates an open single-line region, looking
// through unterminated bracket-mode tags stacked above it.
func (s *Scanner) findSingleLineRegion() int {
	for i := len(s.blocks) - 1; i >= 0; i-- {
		b := s.blocks[i]
		if b.kind == blockRegion {
			if b.delimiter == "" {
				return i
			}
			return -1
		}
		if b.concise {
			return -1
		}
	}
	return -1
}
