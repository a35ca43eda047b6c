package acta_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/ByLCY/acta/acta"
	fpdfrenderer "github.com/ByLCY/acta/renderer/fpdf"
	"github.com/ByLCY/acta/sink"
)

func TestPrintToFileWithCoreFonts(t *testing.T) {
	dir := t.TempDir()
	p, err := acta.NewPrinter(fpdfrenderer.NewRenderer(fpdfrenderer.Options{}), sink.FileSink{Dir: dir}, acta.Options{})
	if err != nil {
		t.Fatalf("NewPrinter: %v", err)
	}
	fl, err := acta.LoadFlavor("handover")
	if err != nil {
		t.Fatalf("LoadFlavor: %v", err)
	}
	rec := acta.Record{
		Code:        "ACT-9",
		Date:        "2025-01-15",
		Time:        "08:00",
		Giver:       acta.Person{Name: "Luis", Surname: "Mora", NationalID: "1"},
		Receiver:    acta.Person{Name: "Eva", Surname: "Sáenz", NationalID: "2"},
		Location:    "Almacén",
		Description: "Nuevo",
		Items:       []acta.Asset{{Code: "BN-1", Name: "Escritorio", Status: "Nuevo"}},
	}
	out, err := p.Print(context.Background(), rec, fl)
	if err != nil {
		t.Fatalf("Print: %v", err)
	}
	if out.Status != sink.StatusDelivered {
		t.Fatalf("status = %q", out.Status)
	}
	data, err := os.ReadFile(out.Location)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF: %q", data[:min(len(data), 16)])
	}
}
