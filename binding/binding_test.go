package binding

import (
	"reflect"
	"testing"
)

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"code": "ACT-7",
		"giver": map[string]string{
			"fullName": "Juan Pérez",
			"grade":    "",
		},
		"items": []map[string]any{{"code": "PC-1"}},
	}
	cases := map[string]string{
		"Código: ${code}":                  "Código: ACT-7",
		"${giver.grade} ${giver.fullName}": " Juan Pérez",
		"${ items[0].code }":               "PC-1",
		"[${missing.path}]":                "[]",
		"[${items[3].code}]":               "[]",
		"sin marcadores":                   "sin marcadores",
	}
	for in, want := range cases {
		if got := Interpolate(in, data); got != want {
			t.Fatalf("%q: got %q want %q", in, got, want)
		}
	}
	if got := Interpolate("a ${x} b", nil); got != "a  b" {
		t.Fatalf("nil data: got %q", got)
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("${a} y ${ b.c } y ${d[0]}")
	if want := []string{"a", "b.c", "d[0]"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if !Resolves(map[string]any{"a": map[string]any{"b": 1}}, "a.b") {
		t.Fatalf("a.b should resolve")
	}
	if Resolves(map[string]any{}, "a") {
		t.Fatalf("a should not resolve")
	}
}
