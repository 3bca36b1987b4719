package rulesxml

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// Encoding is a character encoding resolved from an IANA name. The Name is
// the canonical MIME name and is what gets embedded in XML declarations.
type Encoding struct {
	Name string
	enc  encoding.Encoding
}

// LookupEncoding resolves name ("UTF-8", "ISO-8859-1", ...) case-insensitively.
func LookupEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		// No transformer; written bytes are already UTF-8.
		return Encoding{Name: "UTF-8"}, nil
	}
	e, err := ianaindex.MIME.Encoding(name)
	if err != nil || e == nil {
		return Encoding{}, fmt.Errorf("unsupported encoding %q", name)
	}
	canonical, err := ianaindex.MIME.Name(e)
	if err != nil {
		return Encoding{}, fmt.Errorf("unsupported encoding %q", name)
	}
	return Encoding{Name: canonical, enc: e}, nil
}

func (e Encoding) utf8() bool { return e.Name == "UTF-8" }

// NewWriter wraps w so that written text is encoded. UTF-8 writes through
// untouched.
func (e Encoding) NewWriter(w io.Writer) io.WriteCloser {
	if e.utf8() || e.enc == nil {
		return nopWriteCloser{w}
	}
	return transform.NewWriter(w, e.enc.NewEncoder())
}

// NewReader wraps r so that encoded text is decoded to UTF-8.
func (e Encoding) NewReader(r io.Reader) io.Reader {
	if e.utf8() || e.enc == nil {
		return r
	}
	return transform.NewReader(r, e.enc.NewDecoder())
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
