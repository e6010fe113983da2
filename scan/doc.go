// Package scan implements a single-pass, event-driven scanner for
// templates that mix markup with embedded JS-flavored expressions.
//
// Two surface syntaxes coexist in one document. The concise syntax is
// indentation-significant: each line opens a tag, and deeper-indented
// lines form its body. The bracket syntax is conventional angle-bracket
// markup. A "<" at the start of a concise line switches into bracket
// mode until its tags are balanced again.
//
// The scanner does not build a tree. It delivers one Listener callback
// per recognized construct while scanning the input exactly once:
//
//	type collector struct {
//	    scan.BaseListener
//	    tags []string
//	}
//
//	func (c *collector) OnOpenTag(tag *scan.OpenTag) scan.BodyMode {
//	    c.tags = append(c.tags, tag.TagName)
//	    return scan.BodyNestedMarkup
//	}
//
//	err := scan.New().Parse(src, &collector{})
//
// The listener steers the scan through return values: OnOpenTag picks a
// BodyMode for the tag's body, and OnPlaceholder may rewrite the
// expression text that surrounding constructs embed. Positions are byte
// offsets; Location converts them to 1-based line/column pairs.
//
// Scanning never stops early. After the first error the scanner keeps
// consuming input so its internal bookkeeping stays coherent, but no
// further events are delivered; Parse returns that first error.
package scan
