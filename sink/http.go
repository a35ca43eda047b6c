package sink

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// HTTPSink streams the document as the response body, inline so browsers
// open their print preview.
type HTTPSink struct {
	W http.ResponseWriter
}

func (s HTTPSink) Deliver(ctx context.Context, doc Document) (Outcome, error) {
	if err := checkDocument(doc); err != nil {
		return Outcome{}, err
	}
	if s.W == nil {
		return unavailable("no response writer")
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	h := s.W.Header()
	h.Set("Content-Type", contentType(doc))
	h.Set("Content-Length", strconv.Itoa(len(doc.Bytes)))
	if doc.Name != "" {
		h.Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.Name))
	}
	s.W.WriteHeader(http.StatusOK)
	n, err := s.W.Write(doc.Bytes)
	if err != nil {
		return Outcome{}, fmt.Errorf("sink: write response: %w", err)
	}
	return Outcome{Status: StatusDelivered, Location: doc.Name, Size: n}, nil
}
