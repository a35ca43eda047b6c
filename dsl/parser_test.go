package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/acta/dsl"
)

const sampleFlavor = `
// sample flavor
flavor handover {
  meta {
    title: "Acta de entrega"
    keywords: [
      "acta"
      "entrega"
    ]
  }

  title { bold "ACTA DE ENTREGA" }

  paragraph giver {
    bold "ENTREGA:" color #C00000
    "${giver.fullName}, con cédula ${giver.nationalID}."
    italic "nota" background #FF0
  }

  table {
    columns: [1.5, 2, 1]
    header: ["Código", "Nombre", "Descripción"]
  }

  signatures {
    giver: "ENTREGUÉ CONFORME"; receiver: "RECIBÍ CONFORME"
  }
}
`

func TestParseFlavor(t *testing.T) {
	file, err := dsl.ParseString("sample.acta", sampleFlavor)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	fl := file.Flavor
	if fl.Name != "handover" {
		t.Fatalf("expected flavor handover, got %s", fl.Name)
	}
	cmds := fl.Block.Commands()
	if len(cmds) != 5 {
		t.Fatalf("expected 5 top-level commands, got %d", len(cmds))
	}
	names := []string{"meta", "title", "paragraph", "table", "signatures"}
	for i, c := range cmds {
		if c.Name != names[i] {
			t.Fatalf("command %d: got %s want %s", i, c.Name, names[i])
		}
	}

	meta := cmds[0].Block.Assignments()
	if title, _ := meta["title"].Text(); title != "Acta de entrega" {
		t.Fatalf("unexpected title %q", title)
	}
	kw, err := meta["keywords"].Strings()
	if err != nil || strings.Join(kw, ",") != "acta,entrega" {
		t.Fatalf("unexpected keywords %v, %v", kw, err)
	}

	para := cmds[2]
	if len(para.Args) != 1 || para.Args[0].Value != "giver" {
		t.Fatalf("unexpected paragraph args %+v", para.Args)
	}
	stmts := para.Block.Statements
	if len(stmts) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(stmts))
	}
	bold := stmts[0].Command
	if bold == nil || bold.Name != "bold" || bold.Args[0].Value != "ENTREGA:" {
		t.Fatalf("unexpected first span %+v", stmts[0])
	}
	if bold.Args[1].Value != "color" || bold.Args[2].Type != "Color" || bold.Args[2].Value != "#C00000" {
		t.Fatalf("unexpected color args %+v", bold.Args)
	}
	if stmts[1].Text == nil || string(stmts[1].Text.Value) != "${giver.fullName}, con cédula ${giver.nationalID}." {
		t.Fatalf("unexpected literal %+v", stmts[1])
	}

	table := cmds[3].Block.Assignments()
	cols, err := table["columns"].Floats()
	if err != nil || len(cols) != 3 || cols[0] != 1.5 {
		t.Fatalf("unexpected columns %v, %v", cols, err)
	}

	sig := cmds[4].Block.Assignments()
	if r, _ := sig["receiver"].Text(); r != "RECIBÍ CONFORME" {
		t.Fatalf("unexpected receiver label %q", r)
	}
}

func TestParseFlavorErrors(t *testing.T) {
	cases := map[string]string{
		"missing name":   `flavor { }`,
		"unclosed block": `flavor x { title { "a" }`,
		"wrong root":     `doc x v1 { }`,
		"unit suffix":    `flavor x { table { columns: [2cm, 1] } }`,
		"block comment":  `flavor x { /* no */ }`,
	}
	for name, src := range cases {
		if _, err := dsl.ParseString(name, src); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string][3]int{
		"#C00000":   {192, 0, 0},
		"#ff0":      {255, 255, 0},
		"#0F62FEAA": {15, 98, 254},
	}
	for in, want := range cases {
		r, g, b, err := dsl.ParseColor(in)
		if err != nil || [3]int{r, g, b} != want {
			t.Fatalf("%s: got %d,%d,%d %v", in, r, g, b, err)
		}
	}
	if _, _, _, err := dsl.ParseColor("#12"); err == nil {
		t.Fatalf("short color accepted")
	}
}
