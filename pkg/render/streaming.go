package render

import (
	"bytes"
	"io"
	"net/http"
)

// StreamingRenderer renders pages in sections, flushing after each one for
// faster time-to-first-byte. Unlike RenderPage, output that was already
// flushed stays written when a later section fails.
type StreamingRenderer struct {
	*Renderer
	flusher http.Flusher
	w       io.Writer
}

// NewStreamingRenderer creates a streaming renderer writing to w. If w
// implements http.Flusher, content is flushed after each section.
func NewStreamingRenderer(w io.Writer, config Config) *StreamingRenderer {
	flusher, _ := w.(http.Flusher)
	return &StreamingRenderer{
		Renderer: NewRenderer(config),
		flusher:  flusher,
		w:        w,
	}
}

// RenderPage renders a complete document. The head is flushed first, then
// each top-level child of the body as it completes.
func (s *StreamingRenderer) RenderPage(page Page) error {
	var buf bytes.Buffer
	s.renderDocumentStart(&buf, page)
	if err := s.flush(&buf); err != nil {
		return err
	}

	sections := page.Body.Children
	if !page.Body.IsFragment() {
		sections = nil
		if !page.Body.IsZero() {
			sections = append(sections, page.Body)
		}
	}
	for _, c := range sections {
		if err := s.renderNode(&buf, c, 0); err != nil {
			return err
		}
		if err := s.flush(&buf); err != nil {
			return err
		}
	}

	s.renderDocumentEnd(&buf, page)
	return s.flush(&buf)
}

// flush writes the buffered section and flushes the writer if it can.
func (s *StreamingRenderer) flush(buf *bytes.Buffer) error {
	if _, err := s.w.Write(buf.Bytes()); err != nil {
		return err
	}
	buf.Reset()
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}

// FlushableWriter wraps an io.Writer and counts flushes. It is useful for
// observing streaming behavior without an http.ResponseWriter.
type FlushableWriter struct {
	io.Writer
	FlushCount int
}

// Flush implements http.Flusher.
func (w *FlushableWriter) Flush() {
	w.FlushCount++
}
