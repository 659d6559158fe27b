package indexer

import "testing"

func TestParseHeading(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantLevel int
		wantText  string
		wantOK    bool
	}{
		{name: "level 1", line: "# Title", wantLevel: 1, wantText: "Title", wantOK: true},
		{name: "level 2", line: "## Section", wantLevel: 2, wantText: "Section", wantOK: true},
		{name: "level 6", line: "###### Deep", wantLevel: 6, wantText: "Deep", wantOK: true},
		{name: "plain text", line: "plain text", wantOK: false},
		{name: "too deep", line: "####### too deep", wantOK: false},
		{name: "bare hash", line: "#", wantOK: false},
		{name: "hashes and spaces only", line: "###   ", wantOK: false},
		{name: "leading whitespace", line: "   ## Indented  ", wantLevel: 2, wantText: "Indented", wantOK: true},
		{name: "no space after hashes", line: "#Tight", wantLevel: 1, wantText: "Tight", wantOK: true},
		{name: "hash inside text", line: "text # not heading", wantOK: false},
		{name: "empty line", line: "", wantOK: false},
		{name: "trailing hashes kept", line: "## Title ##", wantLevel: 2, wantText: "Title ##", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, text, ok := ParseHeading(tt.line)

			if ok != tt.wantOK {
				t.Fatalf("ParseHeading(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if level != tt.wantLevel || text != tt.wantText {
				t.Errorf("ParseHeading(%q) = (%d, %q), want (%d, %q)", tt.line, level, text, tt.wantLevel, tt.wantText)
			}
		})
	}
}
