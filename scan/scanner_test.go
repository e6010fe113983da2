package scan

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recorder renders every callback as a compact string so tests can
// compare whole event streams at once.
type recorder struct {
	events       []string
	tags         []OpenTag
	placeholders []Placeholder
	errs         []*Error

	// modes maps a tag name to the BodyMode its body is scanned in.
	modes map[string]BodyMode
}

func (r *recorder) OnText(value string, pos, endPos int) {
	r.events = append(r.events, fmt.Sprintf("text(%s)", value))
}

func (r *recorder) OnOpenTag(tag *OpenTag) BodyMode {
	r.tags = append(r.tags, *tag)
	r.events = append(r.events, fmt.Sprintf("open(%s)", tag.TagName))
	if r.modes != nil {
		if m, ok := r.modes[tag.TagName]; ok {
			return m
		}
	}
	return BodyNestedMarkup
}

func (r *recorder) OnCloseTag(tagName string, pos, endPos int) {
	r.events = append(r.events, fmt.Sprintf("close(%s)", tagName))
}

func (r *recorder) OnComment(value string, pos, endPos int) {
	r.events = append(r.events, fmt.Sprintf("comment(%s)", value))
}

func (r *recorder) OnCDATA(value string, pos, endPos int) {
	r.events = append(r.events, fmt.Sprintf("cdata(%s)", value))
}

func (r *recorder) OnDeclaration(value string, pos, endPos int) {
	r.events = append(r.events, fmt.Sprintf("declaration(%s)", value))
}

func (r *recorder) OnDocumentType(value string, pos, endPos int) {
	r.events = append(r.events, fmt.Sprintf("doctype(%s)", value))
}

func (r *recorder) OnScriptlet(value string, pos, endPos int) {
	r.events = append(r.events, fmt.Sprintf("scriptlet(%s)", value))
}

func (r *recorder) OnPlaceholder(ph *Placeholder) string {
	r.placeholders = append(r.placeholders, *ph)
	bang := ""
	if !ph.Escape {
		bang = "!"
	}
	r.events = append(r.events, fmt.Sprintf("placeholder%s(%s)", bang, ph.Value))
	return ph.Value
}

func (r *recorder) OnError(err *Error) {
	r.errs = append(r.errs, err)
	r.events = append(r.events, fmt.Sprintf("error(%s)", err.Code))
}

func record(t *testing.T, src string, opts ...Option) *recorder {
	t.Helper()
	r := &recorder{}
	New(opts...).Parse(src, r)
	return r
}

func TestConciseNesting(t *testing.T) {
	r := record(t, "div\n  span\n    \"hi\"\n  p\n")
	want := []string{
		"open(div)",
		"open(span)",
		"text(hi)",
		"close(span)",
		"open(p)",
		"close(p)",
		"close(div)",
	}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestHTMLMode(t *testing.T) {
	r := record(t, `<div class="a">x</div>`, WithHTMLMode())
	want := []string{"open(div)", "text(x)", "close(div)"}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if len(r.tags) != 1 {
		t.Fatalf("tags = %d, want 1", len(r.tags))
	}
	attrs := r.tags[0].Attrs
	if len(attrs) != 1 {
		t.Fatalf("attrs = %d, want 1", len(attrs))
	}
	if attrs[0].Name != "class" {
		t.Errorf("Name = %q, want %q", attrs[0].Name, "class")
	}
	if attrs[0].Value != `"a"` {
		t.Errorf("Value = %q, want %q", attrs[0].Value, `"a"`)
	}
}

func TestAttributeStringWithPlaceholder(t *testing.T) {
	r := record(t, `<div class="a ${b}">x</div>`, WithHTMLMode())
	want := []string{"placeholder(b)", "open(div)", "text(x)", "close(div)"}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	a := r.tags[0].Attrs[0]
	if a.Value != `("a "+(b))` {
		t.Errorf("Value = %q, want %q", a.Value, `("a "+(b))`)
	}
	if a.RawValue != `"a ${b}"` {
		t.Errorf("RawValue = %q, want %q", a.RawValue, `"a ${b}"`)
	}

	ph := r.placeholders[0]
	if !ph.WithinString || !ph.WithinAttribute || !ph.WithinOpenTag {
		t.Errorf("context flags = %+v, want string+attribute+openTag", ph)
	}
	if ph.WithinBody {
		t.Errorf("WithinBody = true, want false")
	}
}

func TestMultiLineDelimitedRegion(t *testing.T) {
	r := record(t, "div\n  --\n  raw <text>\n  --\n")
	want := []string{
		"open(div)",
		"text(  raw <text>\n)",
		"close(div)",
	}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestSingleLineRegion(t *testing.T) {
	r := record(t, "div -- hello\n  span\n")
	want := []string{
		"open(div)",
		"text(hello)",
		"open(span)",
		"close(span)",
		"close(div)",
	}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestMixedMode(t *testing.T) {
	r := record(t, "div\n  <span>x</span>\n  p\n")
	want := []string{
		"open(div)",
		"open(span)",
		"text(x)",
		"close(span)",
		"open(p)",
		"close(p)",
		"close(div)",
	}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestQuotedTextLine(t *testing.T) {
	r := record(t, "div\n  \"hi ${name}!\"\n")
	want := []string{
		"open(div)",
		"text(hi )",
		"placeholder(name)",
		"text(!)",
		"close(div)",
	}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if !r.placeholders[0].WithinBody {
		t.Errorf("WithinBody = false, want true")
	}
}

func TestRawBodyMode(t *testing.T) {
	r := &recorder{modes: map[string]BodyMode{"script": BodyRawText}}
	New(WithHTMLMode()).Parse("<script>if (a<b) foo()</script>", r)
	want := []string{"open(script)", "text(if (a<b) foo())", "close(script)"}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestRawBodyConciseLineMustStartWithDash(t *testing.T) {
	r := &recorder{modes: map[string]BodyMode{"script": BodyRawTextWithPlaceholders}}
	New().Parse("script\n  var x\n", r)
	if len(r.errs) != 1 || r.errs[0].Code != ErrIllegalLineStart {
		t.Fatalf("errs = %v, want one %s", r.errs, ErrIllegalLineStart)
	}
}

func TestRawBodyConciseDashLine(t *testing.T) {
	r := &recorder{modes: map[string]BodyMode{"script": BodyRawTextWithPlaceholders}}
	New().Parse("script\n  - var x = 1\n", r)
	want := []string{"open(script)", "text(var x = 1)", "close(script)"}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestVoidAndSelfClosedTags(t *testing.T) {
	r := record(t, "<br>x<img/>", WithHTMLMode())
	want := []string{"open(br)", "text(x)", "open(img)"}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if !r.tags[0].OpenTagOnly {
		t.Errorf("br OpenTagOnly = false, want true")
	}
	if !r.tags[1].SelfClosed {
		t.Errorf("img SelfClosed = false, want true")
	}
}

func TestSpecialRegions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"comment", "<!-- hi -->", []string{"comment( hi )"}},
		{"cdata", "<![CDATA[a<b]]>", []string{"cdata(a<b)"}},
		{"declaration", "<?xml version=\"1.0\"?>", []string{"declaration(xml version=\"1.0\")"}},
		{"doctype", "<!DOCTYPE html>", []string{"doctype(DOCTYPE html)"}},
		{"scriptlet", "<% code %>", []string{"scriptlet( code )"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := record(t, tt.src, WithHTMLMode())
			if diff := cmp.Diff(tt.want, r.events); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		html bool
		code string
	}{
		{"extra closing tag", "</span>", true, ErrExtraClosingTag},
		{"mismatched closing tag", "<a>x</b>", true, ErrMismatchedClosingTag},
		{"missing end tag", "<div>x", true, ErrMissingEndTag},
		{"malformed close tag", "<div>x</div", true, ErrMalformedCloseTag},
		{"unterminated comment", "<!-- x", true, ErrUnterminatedComment},
		{"unterminated cdata", "<![CDATA[x", true, ErrUnterminatedCDATA},
		{"unterminated scriptlet", "<% x", true, ErrUnterminatedScriptlet},
		{"unterminated placeholder", "${x", true, ErrMalformedPlaceholder},
		{"unterminated string", `<a b="x`, true, ErrUnterminatedString},
		{"orphan indentation", " x\n", false, ErrBadIndentation},
		{"unterminated quoted text", "div\n  \"hi\n", false, ErrUnterminatedString},
		{"multiple arguments", "foo(a)(b)\n", false, ErrMultipleArguments},
		{"multiple shorthand ids", "div#a#b\n", false, ErrMultipleShorthandIDs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.html {
				opts = append(opts, WithHTMLMode())
			}
			r := &recorder{}
			err := New(opts...).Parse(tt.src, r)
			if err == nil {
				t.Fatalf("Parse() = nil, want %s", tt.code)
			}
			se, ok := err.(*Error)
			if !ok {
				t.Fatalf("Parse() = %T, want *Error", err)
			}
			if se.Code != tt.code {
				t.Errorf("Code = %s, want %s", se.Code, tt.code)
			}
			if len(r.errs) != 1 {
				t.Errorf("OnError calls = %d, want 1", len(r.errs))
			}
		})
	}
}

func TestEventsSuppressedAfterError(t *testing.T) {
	r := record(t, "</span><div>x</div>", WithHTMLMode())
	want := []string{"error(" + ErrExtraClosingTag + ")"}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestCloseShorthand(t *testing.T) {
	r := record(t, "<div><span>x</></div>", WithHTMLMode())
	want := []string{
		"open(div)", "open(span)", "text(x)", "close(span)", "close(div)",
	}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestInconsistentIndentation(t *testing.T) {
	r := record(t, "div\n  a\n  b\n    c\n   d\n")
	if len(r.errs) != 1 || r.errs[0].Code != ErrBadIndentation {
		t.Fatalf("errs = %v, want one %s", r.errs, ErrBadIndentation)
	}
}

func TestScannerReuse(t *testing.T) {
	s := New(WithHTMLMode())
	r1 := &recorder{}
	if err := s.Parse("<a>x</a>", r1); err != nil {
		t.Fatalf("first Parse() = %v", err)
	}
	r2 := &recorder{}
	if err := s.Parse("<b>y</b>", r2); err != nil {
		t.Fatalf("second Parse() = %v", err)
	}
	want := []string{"open(b)", "text(y)", "close(b)"}
	if diff := cmp.Diff(want, r2.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestBOMIsStripped(t *testing.T) {
	r := record(t, "\uFEFF<a>x</a>", WithHTMLMode())
	want := []string{"open(a)", "text(x)", "close(a)"}
	if diff := cmp.Diff(want, r.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestLocation(t *testing.T) {
	src := "ab\ncd\ne"
	tests := []struct {
		pos          int
		line, column int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{6, 3, 1},
	}
	for _, tt := range tests {
		line, column := Location(src, tt.pos)
		if line != tt.line || column != tt.column {
			t.Errorf("Location(%d) = %d:%d, want %d:%d",
				tt.pos, line, column, tt.line, tt.column)
		}
	}
}

func TestStateTableIsPopulated(t *testing.T) {
	for id := stateConciseContent; id < stateCount; id++ {
		st := &states[id]
		if st.name == "" {
			t.Errorf("state %d has no name", id)
		}
		if st.char == nil || st.eof == nil {
			t.Errorf("state %s is missing input handlers", st.name)
		}
	}
}
