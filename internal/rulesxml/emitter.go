// Package rulesxml streams a Sonar rule-definition XML document. The output
// is template-assembled rather than marshaled: the format is byte-exact,
// rule text is CDATA-wrapped verbatim, and consecutive <rule> elements run
// together without a separator.
package rulesxml

import (
	"fmt"
	"io"
	"os"
)

const (
	headerPreEncoding  = `<?xml version="1.0" encoding="`
	headerPostEncoding = "\"?>\n<rules>\n"
	footer             = "</rules>\n"
)

// Writer is a three-phase write session over one output path: Open writes
// the declaration and root open tag, AppendRule writes one rule, Close
// writes the root close tag. A failed write leaves whatever bytes were
// already flushed on disk.
type Writer struct {
	path string
	file *os.File
	out  io.WriteCloser
}

// Open truncates (or creates) path and writes the document header. The
// declared encoding is enc's canonical name.
func Open(path string, enc Encoding) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	w := &Writer{path: path, file: f, out: enc.NewWriter(f)}
	if err := w.write(headerPreEncoding + enc.Name + headerPostEncoding); err != nil {
		_ = f.Close()
		return nil, err
	}
	return w, nil
}

// NewStream writes the same document to an arbitrary writer (no file is
// owned; Close flushes the encoder only). Used to re-emit stored runs.
func NewStream(out io.Writer, enc Encoding) (*Writer, error) {
	w := &Writer{path: "(stream)", out: enc.NewWriter(out)}
	if err := w.write(headerPreEncoding + enc.Name + headerPostEncoding); err != nil {
		return nil, err
	}
	return w, nil
}

// AppendRule writes one <rule> element. name and description are injected
// into CDATA sections without escaping: a value containing "]]>" produces a
// malformed document. priority is written verbatim, empty string included.
func (w *Writer) AppendRule(key, priority, name, description string) error {
	return w.write(
		`  <rule key="` + key + `" priority="` + priority + "\">\n" +
			"    <name><![CDATA[" + name + "]]></name>\n" +
			"    <configKey><![CDATA[" + key + "]]></configKey>\n" +
			"    <description><![CDATA[" + description + "]]></description>\n" +
			"  </rule>")
}

// Close writes the footer and releases the file handle if one is owned.
func (w *Writer) Close() error {
	werr := w.write(footer)
	if cerr := w.out.Close(); werr == nil && cerr != nil {
		werr = fmt.Errorf("write %s: %w", w.path, cerr)
	}
	if w.file != nil {
		if cerr := w.file.Close(); werr == nil && cerr != nil {
			werr = fmt.Errorf("write %s: %w", w.path, cerr)
		}
	}
	return werr
}

func (w *Writer) write(s string) error {
	if _, err := io.WriteString(w.out, s); err != nil {
		return fmt.Errorf("write %s: %w", w.path, err)
	}
	return nil
}
