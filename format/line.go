package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type LineEncoder struct {
	w      io.Writer
	events []Event
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(events []Event) error {
	e.events = events
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, ev := range e.events {
		fmt.Fprintf(&sb, "%s\t%d:%d\t%s\n", ev.Kind, ev.Line, ev.Column, linePayload(ev))
	}
	return []byte(sb.String()), nil
}

func linePayload(ev Event) string {
	switch ev.Kind {
	case "open":
		return tagPayload(ev.Tag)
	case "placeholder":
		mode := "escape"
		if !ev.Escape {
			mode = "raw"
		}
		return mode + "\t" + strconv.Quote(ev.Value)
	case "error":
		return ev.Code + "\t" + strconv.Quote(ev.Value)
	default:
		return strconv.Quote(ev.Value)
	}
}

func tagPayload(tag *Tag) string {
	parts := []string{tag.Name}
	if tag.Argument != "" {
		parts = append(parts, "("+tag.Argument+")")
	}
	if tag.ID != "" {
		parts = append(parts, "#"+tag.ID)
	}
	for _, class := range tag.ClassNames {
		parts = append(parts, "."+class)
	}
	for _, a := range tag.Attrs {
		attr := a.Name
		if a.Argument != "" {
			attr += "(" + a.Argument + ")"
		}
		if a.Value != "" {
			attr += "=" + a.Value
		}
		parts = append(parts, attr)
	}
	if tag.SelfClosed {
		parts = append(parts, "/")
	}
	return strings.Join(parts, "\t")
}
