// Package sink delivers finished documents: to disk, to a print spooler,
// to an HTTP response or to Redis. Delivery is a single hand-off; sinks do
// not retry.
package sink

import (
	"context"
	"errors"
	"fmt"
)

// ErrPrintUnavailable is returned when the destination cannot take the
// document at all (no printer command, no response writer, storage down).
// The accompanying Outcome has Status StatusUnavailable.
var ErrPrintUnavailable = errors.New("sink: print unavailable")

// Status summarizes a delivery.
type Status string

const (
	StatusDelivered   Status = "delivered"
	StatusQueued      Status = "queued"
	StatusUnavailable Status = "unavailable"
)

// Document is a rendered file ready to hand off.
type Document struct {
	Name        string
	ContentType string
	Bytes       []byte
}

// Outcome reports where the document went.
type Outcome struct {
	Status Status `json:"status"`
	// Location is a path, spool job or storage key, depending on the sink.
	Location string `json:"location,omitempty"`
	Size     int    `json:"size"`
	Detail   string `json:"detail,omitempty"`
}

// Sink accepts a rendered document.
type Sink interface {
	Deliver(ctx context.Context, doc Document) (Outcome, error)
}

// Func adapts a plain function to Sink.
type Func func(ctx context.Context, doc Document) (Outcome, error)

func (fn Func) Deliver(ctx context.Context, doc Document) (Outcome, error) { return fn(ctx, doc) }

const pdfType = "application/pdf"

func contentType(doc Document) string {
	if doc.ContentType == "" {
		return pdfType
	}
	return doc.ContentType
}

// unavailable builds the Outcome and error pair every sink returns when
// its destination is missing.
func unavailable(format string, args ...any) (Outcome, error) {
	detail := fmt.Sprintf(format, args...)
	return Outcome{Status: StatusUnavailable, Detail: detail}, fmt.Errorf("%w: %s", ErrPrintUnavailable, detail)
}

func checkDocument(doc Document) error {
	if len(doc.Bytes) == 0 {
		return errors.New("sink: empty document")
	}
	return nil
}
