package scan

// notifier is the boundary between internal completions and the public
// callback surface. After the first error every emit becomes a no-op; the
// scan itself keeps running so end-of-input bookkeeping stays uniform.
type notifier struct {
	listener Listener
	halted   bool
	first    *Error
}

func (n *notifier) firstError() error {
	if n.first == nil {
		return nil
	}
	return n.first
}

func (n *notifier) text(value string, pos, endPos int) {
	if n.halted {
		return
	}
	n.listener.OnText(value, pos, endPos)
}

func (n *notifier) openTag(tag *OpenTag) BodyMode {
	if n.halted {
		return BodyNestedMarkup
	}
	return n.listener.OnOpenTag(tag)
}

func (n *notifier) closeTag(tagName string, pos, endPos int) {
	if n.halted {
		return
	}
	n.listener.OnCloseTag(tagName, pos, endPos)
}

func (n *notifier) comment(value string, pos, endPos int) {
	if n.halted {
		return
	}
	n.listener.OnComment(value, pos, endPos)
}

func (n *notifier) cdata(value string, pos, endPos int) {
	if n.halted {
		return
	}
	n.listener.OnCDATA(value, pos, endPos)
}

func (n *notifier) declaration(value string, pos, endPos int) {
	if n.halted {
		return
	}
	n.listener.OnDeclaration(value, pos, endPos)
}

func (n *notifier) documentType(value string, pos, endPos int) {
	if n.halted {
		return
	}
	n.listener.OnDocumentType(value, pos, endPos)
}

func (n *notifier) scriptlet(value string, pos, endPos int) {
	if n.halted {
		return
	}
	n.listener.OnScriptlet(value, pos, endPos)
}

// placeholder returns the (possibly rewritten) expression text. Once
// halted the value passes through untouched.
func (n *notifier) placeholder(ph *Placeholder) string {
	if n.halted {
		return ph.Value
	}
	return n.listener.OnPlaceholder(ph)
}

func (n *notifier) error(code, message string, pos, endPos int) {
	if n.halted {
		return
	}
	err := &Error{Code: code, Message: message, Pos: pos, EndPos: endPos}
	n.first = err
	n.halted = true
	n.listener.OnError(err)
}
