package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{" table ", FormatTable, false},
		{"xml", "", true},
	}

	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q) succeeded, want error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatTable, false)

	table := NewTable("Name", "State")
	table.AddRow("file1", "pending-create")
	table.AddRow("file2", "pending-delete")

	if err := p.Print(table); err != nil {
		t.Fatalf("Print() failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"NAME", "STATE", "file1", "pending-create", "file2"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatJSON, false)

	if err := p.Print(map[string]int{"creates": 2}); err != nil {
		t.Fatalf("Print() failed: %v", err)
	}

	var decoded map[string]int
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded["creates"] != 2 {
		t.Errorf("decoded = %v, want creates=2", decoded)
	}
}

func TestPrinter_YAML(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatYAML, false)

	if err := p.Print(map[string]string{"backend": "memory"}); err != nil {
		t.Fatalf("Print() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "backend: memory") {
		t.Errorf("Unexpected YAML output:\n%s", buf.String())
	}
}

func TestPrinter_ColorMessages(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatTable, true)

	p.Success("ok")
	p.Error("bad")
	p.Warning("careful")

	out := buf.String()
	if !strings.Contains(out, "\033[32mok\033[0m") {
		t.Error("Success message not colored green")
	}
	if !strings.Contains(out, "\033[31mbad\033[0m") {
		t.Error("Error message not colored red")
	}
	if !strings.Contains(out, "\033[33mcareful\033[0m") {
		t.Error("Warning message not colored yellow")
	}

	buf.Reset()
	plain := NewPrinter(&buf, FormatTable, false)
	plain.Success("ok")
	if strings.Contains(buf.String(), "\033[") {
		t.Error("Color codes emitted with color disabled")
	}
}
