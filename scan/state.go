package scan

import "fmt"

// stateID names one state of the scanner's machine. Exactly one state is
// active at a time and every transition funnels through enterState.
type stateID uint8

const (
	stateNone stateID = iota

	stateConciseContent
	stateDelimitedBlock
	stateHTMLContent
	stateParsedText
	stateStaticText
	stateQuotedText

	stateTagName
	stateTagNameShorthand
	stateWithinOpenTag
	stateAttrName
	stateAttrValue
	stateCloseTag

	stateExpression
	stateString
	stateTemplateString
	stateLineComment
	stateBlockComment
	stateHTMLComment
	stateCDATA
	stateScriptlet
	stateDeclaration
	stateDocumentType
	statePlaceholder
	stateCheckTrailingWhitespace

	stateCount
)

// state bundles the handlers of one machine state. char, eol and eof
// drive input; enter and exit are transition hooks; the remaining fields
// are completion handlers invoked when a child part finishes, named after
// the kind of part that completed.
type state struct {
	name  string
	enter func(*Scanner)
	exit  func(*Scanner)
	char  func(*Scanner, byte)
	eol   func(*Scanner, string)
	eof   func(*Scanner)

	expression  func(*Scanner, *exprPart)
	str         func(*Scanner, *stringPart)
	template    func(*Scanner, *templatePart)
	comment     func(*Scanner, *commentPart)
	placeholder func(*Scanner, *placeholderPart, string)
}

// states is populated in init: the handler functions themselves reach
// back into the table through enterState, so a composite-literal
// initializer would form an initialization cycle.
var states [stateCount]state

func init() {
	states = [stateCount]state{
		stateConciseContent: {
			name:    "CONCISE_CONTENT",
			enter:   func(s *Scanner) { s.concise = true },
			char:    conciseChar,
			eol:     conciseEOL,
			eof:     conciseEOF,
			comment: conciseComment,
		},
		stateDelimitedBlock: {
			name: "DELIMITED_BLOCK",
			char: fenceChar,
			eol:  fenceEOL,
			eof:  fenceEOF,
		},
		stateHTMLContent: {
			name:        "HTML_CONTENT",
			enter:       func(s *Scanner) { s.concise = false },
			char:        htmlChar,
			eol:         contentEOL,
			eof:         contentEOF,
			placeholder: contentPlaceholder,
		},
		stateParsedText: {
			name:        "PARSED_TEXT",
			enter:       func(s *Scanner) { s.concise = false },
			char:        parsedTextChar,
			eol:         contentEOL,
			eof:         contentEOF,
			placeholder: contentPlaceholder,
		},
		stateStaticText: {
			name:  "STATIC_TEXT",
			enter: func(s *Scanner) { s.concise = false },
			char:  staticTextChar,
			eol:   contentEOL,
			eof:   contentEOF,
		},
		stateQuotedText: {
			name:        "QUOTED_TEXT",
			char:        quotedTextChar,
			eol:         quotedTextEOL,
			eof:         quotedTextEOF,
			placeholder: contentPlaceholder,
		},

		stateTagName: {
			name:       "TAG_NAME",
			char:       tagNameChar,
			eol:        tagNameEOL,
			eof:        openTagEOF,
			expression: tagNameExpression,
		},
		stateTagNameShorthand: {
			name:        "TAG_NAME_SHORTHAND",
			char:        shorthandChar,
			eol:         shorthandEOL,
			eof:         shorthandEOF,
			placeholder: shorthandPlaceholder,
		},
		stateWithinOpenTag: {
			name:        "WITHIN_OPEN_TAG",
			char:        withinTagChar,
			eol:         withinTagEOL,
			eof:         openTagEOF,
			placeholder: withinTagPlaceholder,
		},
		stateAttrName: {
			name:       "ATTRIBUTE_NAME",
			char:       attrNameChar,
			eol:        attrEOL,
			eof:        openTagEOF,
			expression: attrNameExpression,
		},
		stateAttrValue: {
			name:       "ATTRIBUTE_VALUE",
			char:       attrValueChar,
			eol:        attrEOL,
			eof:        openTagEOF,
			expression: attrValueExpression,
		},
		stateCloseTag: {
			name: "CLOSE_TAG",
			char: closeTagChar,
			eol:  closeTagEOL,
			eof:  closeTagEOF,
		},

		stateExpression: {
			name:        "EXPRESSION",
			char:        exprChar,
			eol:         exprEOL,
			eof:         exprEOF,
			str:         exprString,
			template:    exprTemplate,
			comment:     exprComment,
			placeholder: exprPlaceholder,
		},
		stateString: {
			name:        "STRING",
			char:        stringChar,
			eol:         stringEOL,
			eof:         stringEOF,
			placeholder: stringPlaceholder,
		},
		stateTemplateString: {
			name: "TEMPLATE_STRING",
			char: templateChar,
			eol:  templateEOL,
			eof:  templateEOF,
		},
		stateLineComment: {
			name: "LINE_COMMENT",
			char: lineCommentChar,
			eol:  lineCommentEOL,
			eof:  lineCommentEOF,
		},
		stateBlockComment: {
			name: "BLOCK_COMMENT",
			char: blockCommentChar,
			eol:  blockCommentEOL,
			eof:  blockCommentEOF,
		},
		stateHTMLComment: {
			name: "HTML_COMMENT",
			char: htmlCommentChar,
			eol:  htmlCommentEOL,
			eof:  htmlCommentEOF,
		},
		stateCDATA: {
			name: "CDATA",
			char: cdataChar,
			eol:  cdataEOL,
			eof:  cdataEOF,
		},
		stateScriptlet: {
			name: "SCRIPTLET",
			char: scriptletChar,
			eol:  scriptletEOL,
			eof:  scriptletEOF,
		},
		stateDeclaration: {
			name: "DECLARATION",
			char: declarationChar,
			eol:  declarationEOL,
			eof:  declarationEOF,
		},
		stateDocumentType: {
			name: "DOCUMENT_TYPE",
			char: docTypeChar,
			eol:  docTypeEOL,
			eof:  docTypeEOF,
		},
		statePlaceholder: {
			name:     "PLACEHOLDER",
			char:     placeholderChar,
			eol:      placeholderEOL,
			eof:      placeholderEOF,
			str:      placeholderString,
			template: placeholderTemplate,
			comment:  placeholderComment,
		},
		stateCheckTrailingWhitespace: {
			name: "CHECK_TRAILING_WHITESPACE",
			char: trailingWSChar,
			eol:  trailingWSEOL,
			eof:  trailingWSEOF,
		},
	}
}

// enterState switches the active state, running the outgoing state's exit
// hook and the incoming state's enter hook. Entering the state that is
// already active is a programming error.
func (s *Scanner) enterState(id stateID) {
	if id == s.state {
		panic(fmt.Sprintf("scan: state %s entered while active", states[id].name))
	}
	if old := &states[s.state]; old.exit != nil {
		old.exit(s)
	}
	s.state = id
	if next := &states[id]; next.enter != nil {
		next.enter(s)
	}
}
