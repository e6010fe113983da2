package scan

import "strings"

// Location converts a byte offset into a 1-based line/column pair within
// src. Columns count bytes. Offsets past the end of src report the
// position just after the final character.
func Location(src string, pos int) (line, column int) {
	if pos > len(src) {
		pos = len(src)
	}
	if pos < 0 {
		pos = 0
	}
	before := src[:pos]
	line = strings.Count(before, "\n") + 1
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		column = pos - i
	} else {
		column = pos + 1
	}
	return line, column
}
