package acta

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ByLCY/acta/layout"
	"github.com/ByLCY/acta/renderer"
	"github.com/ByLCY/acta/sink"
)

// Printer runs the whole pipeline: compose, render, deliver. The backend
// both measures text for layout and draws the result, so wrapped lines
// never overflow once rendered.
type Printer struct {
	composer *Composer
	backend  renderer.Backend
	sink     sink.Sink
	logger   *slog.Logger
}

// NewPrinter builds a Printer. opts.Measurer is ignored; the backend
// measures.
func NewPrinter(backend renderer.Backend, s sink.Sink, opts Options) (*Printer, error) {
	if backend == nil {
		return nil, errors.New("acta: nil rendering backend")
	}
	if s == nil {
		return nil, errors.New("acta: nil sink")
	}
	opts.Measurer = backend
	c, err := NewComposer(opts)
	if err != nil {
		return nil, err
	}
	return &Printer{composer: c, backend: backend, sink: s, logger: c.logger}, nil
}

// Composer returns the composer used by p.
func (p *Printer) Composer() *Composer { return p.composer }

// Render composes rec as fl and returns the named document without
// delivering it.
func (p *Printer) Render(rec Record, fl *Flavor) (sink.Document, *layout.Result, error) {
	res, err := p.composer.Compose(rec, fl)
	if err != nil {
		return sink.Document{}, nil, err
	}
	data, err := p.backend.Render(res)
	if err != nil {
		return sink.Document{}, res, fmt.Errorf("render: %w", err)
	}
	return sink.Document{
		Name:        DocumentName(rec, fl),
		ContentType: "application/pdf",
		Bytes:       data,
	}, res, nil
}

// Print composes, renders and hands the document to the sink. A sink that
// cannot take it yields sink.ErrPrintUnavailable together with an Outcome
// whose Status is sink.StatusUnavailable; nothing is retried.
func (p *Printer) Print(ctx context.Context, rec Record, fl *Flavor) (sink.Outcome, error) {
	doc, _, err := p.Render(rec, fl)
	if err != nil {
		return sink.Outcome{}, err
	}
	if err := ctx.Err(); err != nil {
		return sink.Outcome{}, err
	}
	out, err := p.sink.Deliver(ctx, doc)
	if err != nil {
		p.logger.Warn("delivery failed",
			slog.String("document", doc.Name),
			slog.String("status", string(out.Status)),
			slog.Any("error", err),
		)
		return out, err
	}
	p.logger.Info("acta delivered",
		slog.String("document", doc.Name),
		slog.String("status", string(out.Status)),
		slog.String("location", out.Location),
		slog.Int("bytes", out.Size),
	)
	return out, nil
}
