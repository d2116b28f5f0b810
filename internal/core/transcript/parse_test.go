package transcript

import (
	"strings"
	"testing"
)

const sampleCSV = `ID,Hablante,Timestamp,Rol,Texto_Original,Texto_Normalizado,Nivel_de_Confianza
1,María López,00:00:01,I,Cuénteme sobre su experiencia,Cuénteme sobre su experiencia laboral,5
2,Juan Pérez,00:00:10,E,Trabajo desde hace diez años,Trabajo desde hace diez años en el sector,4
3,Sistema,--,S,Fin.,Fin.,5
`

func TestParseValid(t *testing.T) {
	rows, header, perrs := Parse(sampleCSV)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %+v", perrs)
	}
	if len(header) != 7 {
		t.Fatalf("expected 7 header fields, got %d: %v", len(header), header)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	r := rows[0]
	if r.ID != "1" || r.Speaker != "María López" || r.Role != RoleInterviewer {
		t.Fatalf("first row mapped wrong: %+v", r)
	}
	if rows[2].OriginalText != "Fin." || rows[2].Role != RoleSystem {
		t.Fatalf("last row mapped wrong: %+v", rows[2])
	}
}

func TestParseSkipsEmptyLines(t *testing.T) {
	content := strings.Replace(sampleCSV, "\n2,", "\n\n2,", 1)
	rows, _, perrs := Parse(content)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %+v", perrs)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
}

func TestParseMalformed(t *testing.T) {
	content := "ID,Hablante,Timestamp,Rol,Texto_Original,Texto_Normalizado,Nivel_de_Confianza\n" +
		`1,"sin cerrar`
	_, _, perrs := Parse(content)
	if len(perrs) == 0 {
		t.Fatalf("expected parse errors for unterminated quote")
	}
	if perrs[0].Line == 0 && perrs[0].Message == "" {
		t.Fatalf("parse error carries no context: %+v", perrs[0])
	}
}

func TestParseEmptyInput(t *testing.T) {
	rows, header, perrs := Parse("")
	if len(rows) != 0 || len(header) != 0 || len(perrs) != 0 {
		t.Fatalf("empty input should yield nothing, got rows=%d header=%d errs=%d",
			len(rows), len(header), len(perrs))
	}
}

func TestMissingColumns(t *testing.T) {
	header := []string{"ID", "Hablante", "Rol", "Texto_Original"}
	missing := MissingColumns(header)
	want := []string{"Timestamp", "Texto_Normalizado", "Nivel_de_Confianza"}
	if len(missing) != len(want) {
		t.Fatalf("missing = %v, want %v", missing, want)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Fatalf("missing = %v, want %v", missing, want)
		}
	}
	if m := MissingColumns(RequiredColumns()); len(m) != 0 {
		t.Fatalf("full header flagged missing: %v", m)
	}
}

func TestParsedID(t *testing.T) {
	tests := []struct {
		in string
		n  int
		ok bool
	}{
		{"1", 1, true},
		{" 42 ", 42, true},
		{"abc", 0, false},
		{"", 0, false},
		{"3.5", 0, false},
	}
	for _, tc := range tests {
		n, ok := Row{ID: tc.in}.ParsedID()
		if n != tc.n || ok != tc.ok {
			t.Fatalf("ParsedID(%q) = (%d,%v), want (%d,%v)", tc.in, n, ok, tc.n, tc.ok)
		}
	}
}

func TestMissingTimestamp(t *testing.T) {
	for _, ts := range []string{"", "--", "  ", " -- "} {
		if !(Row{Timestamp: ts}).MissingTimestamp() {
			t.Fatalf("timestamp %q should count as missing", ts)
		}
	}
	if (Row{Timestamp: "00:01:02"}).MissingTimestamp() {
		t.Fatalf("real timestamp flagged as missing")
	}
}
