package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marqlang/marq/scan"
)

func TestRecord(t *testing.T) {
	events, err := Record("div\n  \"hi\"\n")
	require.NoError(t, err)

	kinds := make([]string, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind
	}
	assert.Equal(t, []string{"open", "text", "close"}, kinds)

	assert.Equal(t, "div", events[0].Tag.Name)
	assert.True(t, events[0].Tag.Concise)
	assert.Equal(t, 1, events[0].Line)
	assert.Equal(t, 1, events[0].Column)

	assert.Equal(t, "hi", events[1].Value)
	assert.Equal(t, 2, events[1].Line)
	assert.Equal(t, 4, events[1].Column)
}

func TestRecordError(t *testing.T) {
	events, err := Record("</b>", scan.WithHTMLMode())
	require.Error(t, err)
	require.NotEmpty(t, events)

	last := events[len(events)-1]
	assert.Equal(t, "error", last.Kind)
	assert.Equal(t, scan.ErrExtraClosingTag, last.Code)
}

func TestJSONEncoderRoundTrip(t *testing.T) {
	events, err := Record(`<a href="x">t${v}</a>`, scan.WithHTMLMode())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(events))

	var decoded []Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, events, decoded)
}

func TestJSONEncoderEmpty(t *testing.T) {
	text, err := NewJSONEncoder(&bytes.Buffer{}).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(text))
}

func TestLineEncoder(t *testing.T) {
	events, err := Record(`<a href="x">t</a>`, scan.WithHTMLMode())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(events))

	want := "open\t1:1\ta\thref=\"x\"\n" +
		"text\t1:13\t\"t\"\n" +
		"close\t1:14\t\"a\"\n"
	assert.Equal(t, want, buf.String())
}

func TestLineEncoderPlaceholder(t *testing.T) {
	events, err := Record("$!{html}", scan.WithHTMLMode())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(events))
	assert.Equal(t, "placeholder\t1:1\traw\t\"html\"\n", buf.String())
}
