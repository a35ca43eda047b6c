package fonts

import "testing"

func TestLoadEveryFace(t *testing.T) {
	for _, fam := range Families() {
		for _, v := range []Variant{{}, {Bold: true}, {Italic: true}, {Bold: true, Italic: true}} {
			data, err := Load(fam, v)
			if err != nil {
				t.Fatalf("%s %+v: %v", fam, v, err)
			}
			if len(data) < 1024 {
				t.Fatalf("%s %+v: suspiciously small font (%d bytes)", fam, v, len(data))
			}
		}
	}
	if _, err := Load("embed:serif", Variant{}); err != nil {
		t.Fatalf("embed prefix: %v", err)
	}
	if _, err := Load("comic", Variant{}); err == nil {
		t.Fatalf("unknown family accepted")
	}
}
