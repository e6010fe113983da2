package lsp

import (
	"testing"

	"github.com/marqlang/marq/scan"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDiagnosticsForCleanSource(t *testing.T) {
	if diags := diagnosticsFor("file:///tmp/a.marq", "div -- ok\n"); len(diags) != 0 {
		t.Errorf("diagnostics = %v, want none", diags)
	}
}

func TestDiagnosticsForHTMLFile(t *testing.T) {
	diags := diagnosticsFor("file:///tmp/a.html", "<div>")
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v, want one", diags)
	}
	d := diags[0]
	if d.Code == nil || d.Code.Value != scan.ErrMissingEndTag {
		t.Errorf("code = %v, want %q", d.Code, scan.ErrMissingEndTag)
	}
	if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("severity = %v, want error", d.Severity)
	}
	if d.Message == "" {
		t.Error("message is empty")
	}
}

func TestDiagnosticRangeIsZeroBased(t *testing.T) {
	diags := diagnosticsFor("file:///tmp/a.marq", "div\n</span>\n")
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %v, want one", diags)
	}
	start := diags[0].Range.Start
	if start.Line != 1 || start.Character != 0 {
		t.Errorf("start = %d:%d, want 1:0", start.Line, start.Character)
	}
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///home/x/a.marq", "/home/x/a.marq"},
		{"file:///home/x/../y/a.marq", "/home/y/a.marq"},
		{"untitled:Untitled-1", "untitled:Untitled-1"},
	}
	for _, tt := range tests {
		got, err := uriToPath(tt.uri)
		if err != nil {
			t.Errorf("uriToPath(%q) error: %v", tt.uri, err)
			continue
		}
		if got != tt.want {
			t.Errorf("uriToPath(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestToPositionClampsToOrigin(t *testing.T) {
	if got := toPosition(0, 0); got.Line != 0 || got.Character != 0 {
		t.Errorf("toPosition(0, 0) = %v, want 0:0", got)
	}
}
