// Package format renders scanned template events in machine-readable
// encodings. Record turns a source into a flat event list; the encoders
// serialize that list as indented JSON or as one tab-separated line per
// event.
package format

import (
	"encoding"

	"github.com/marqlang/marq/scan"
)

// Encoder serializes a recorded event list.
type Encoder interface {
	encoding.TextMarshaler
	Encode(events []Event) error
}

// Event is one scanner callback in serializable form. Exactly one of the
// payload fields is meaningful, selected by Kind.
type Event struct {
	Kind   string `json:"kind"`
	Pos    int    `json:"pos"`
	EndPos int    `json:"endPos"`
	Line   int    `json:"line"`
	Column int    `json:"column"`

	// Value holds text content, comment bodies, close tag names,
	// placeholder expressions and error messages.
	Value string `json:"value,omitempty"`

	Tag    *Tag   `json:"tag,omitempty"`    // kind "open"
	Escape bool   `json:"escape,omitempty"` // kind "placeholder"
	Code   string `json:"code,omitempty"`   // kind "error"
}

// Tag is the serializable form of scan.OpenTag.
type Tag struct {
	Name        string   `json:"name"`
	Dynamic     bool     `json:"dynamic,omitempty"`
	Argument    string   `json:"argument,omitempty"`
	ID          string   `json:"id,omitempty"`
	ClassNames  []string `json:"classNames,omitempty"`
	Attrs       []Attr   `json:"attrs,omitempty"`
	SelfClosed  bool     `json:"selfClosed,omitempty"`
	OpenTagOnly bool     `json:"openTagOnly,omitempty"`
	Concise     bool     `json:"concise,omitempty"`
}

// Attr is the serializable form of scan.Attr.
type Attr struct {
	Name     string `json:"name"`
	Value    string `json:"value,omitempty"`
	RawValue string `json:"rawValue,omitempty"`
	Argument string `json:"argument,omitempty"`
}

// Record scans src and returns every delivered event in order. A scan
// error is returned and also appears as the final "error" event, so
// callers that render events regardless of validity need no second pass.
func Record(src string, opts ...scan.Option) ([]Event, error) {
	rec := &recording{src: src}
	err := scan.New(opts...).Parse(src, rec)
	return rec.events, err
}

type recording struct {
	src    string
	events []Event
}

func (r *recording) add(ev Event) {
	ev.Line, ev.Column = scan.Location(r.src, ev.Pos)
	r.events = append(r.events, ev)
}

func (r *recording) OnText(value string, pos, endPos int) {
	r.add(Event{Kind: "text", Value: value, Pos: pos, EndPos: endPos})
}

func (r *recording) OnOpenTag(tag *scan.OpenTag) scan.BodyMode {
	var attrs []Attr
	for _, a := range tag.Attrs {
		attrs = append(attrs, Attr{
			Name:     a.Name,
			Value:    a.Value,
			RawValue: a.RawValue,
			Argument: a.Argument,
		})
	}
	r.add(Event{
		Kind:   "open",
		Pos:    tag.Pos,
		EndPos: tag.EndPos,
		Tag: &Tag{
			Name:        tag.TagName,
			Dynamic:     tag.TagNameIsDynamic,
			Argument:    tag.Argument,
			ID:          tag.ShorthandID,
			ClassNames:  tag.ShorthandClassNames,
			Attrs:       attrs,
			SelfClosed:  tag.SelfClosed,
			OpenTagOnly: tag.OpenTagOnly,
			Concise:     tag.Concise,
		},
	})
	return scan.BodyNestedMarkup
}

func (r *recording) OnCloseTag(tagName string, pos, endPos int) {
	r.add(Event{Kind: "close", Value: tagName, Pos: pos, EndPos: endPos})
}

func (r *recording) OnComment(value string, pos, endPos int) {
	r.add(Event{Kind: "comment", Value: value, Pos: pos, EndPos: endPos})
}

func (r *recording) OnCDATA(value string, pos, endPos int) {
	r.add(Event{Kind: "cdata", Value: value, Pos: pos, EndPos: endPos})
}

func (r *recording) OnDeclaration(value string, pos, endPos int) {
	r.add(Event{Kind: "declaration", Value: value, Pos: pos, EndPos: endPos})
}

func (r *recording) OnDocumentType(value string, pos, endPos int) {
	r.add(Event{Kind: "documentType", Value: value, Pos: pos, EndPos: endPos})
}

func (r *recording) OnScriptlet(value string, pos, endPos int) {
	r.add(Event{Kind: "scriptlet", Value: value, Pos: pos, EndPos: endPos})
}

func (r *recording) OnPlaceholder(ph *scan.Placeholder) string {
	r.add(Event{
		Kind:   "placeholder",
		Value:  ph.Value,
		Escape: ph.Escape,
		Pos:    ph.Pos,
		EndPos: ph.EndPos,
	})
	return ph.Value
}

func (r *recording) OnError(err *scan.Error) {
	r.add(Event{
		Kind:   "error",
		Code:   err.Code,
		Value:  err.Message,
		Pos:    err.Pos,
		EndPos: err.EndPos,
	})
}
