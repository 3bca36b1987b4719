// Package catalog reads a FindBugs messages.xml document. The root
// MessageCollection mixes several element kinds; consumers filter the
// ordered entry sequence down to the variant they care about.
package catalog

import (
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

const rootElement = "MessageCollection"

// BugPattern is one <BugPattern type="..."> entry.
type BugPattern struct {
	Type             string `xml:"type,attr"`
	ShortDescription string `xml:"ShortDescription"`
	LongDescription  string `xml:"LongDescription"`
	Details          string `xml:"Details"`
}

// BugKind is one <BugCode abbrev="..."> entry.
type BugKind struct {
	Abbrev      string `xml:"abbrev,attr"`
	Description string `xml:"Description"`
}

// BugCategory is one <BugCategory category="..."> entry.
type BugCategory struct {
	Category    string `xml:"category,attr"`
	Description string `xml:"Description"`
}

type EntryKind int

const (
	KindBugPattern EntryKind = iota
	KindBugKind
	KindBugCategory
)

// Entry is a tagged variant over the catalog's element kinds. Exactly one
// of the pointer fields is set, matching Kind.
type Entry struct {
	Kind        EntryKind
	BugPattern  *BugPattern
	BugKind     *BugKind
	BugCategory *BugCategory
}

// Catalog holds the recognized entries in document order.
type Catalog struct {
	Entries []Entry
}

// BugPatterns filters the entry sequence to bug patterns, preserving
// document order.
func (c *Catalog) BugPatterns() []BugPattern {
	var out []BugPattern
	for _, e := range c.Entries {
		if e.Kind == KindBugPattern {
			out = append(out, *e.BugPattern)
		}
	}
	return out
}

// Parse decodes a messages document. The declared document encoding is
// honored. Elements other than BugPattern/BugCode/BugCategory (Detector,
// Plugin, ...) are skipped. Any well-formedness error aborts the parse.
func Parse(r io.Reader) (*Catalog, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	if err := expectRoot(dec); err != nil {
		return nil, err
	}

	cat := &Catalog{}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("parse messages: unexpected end of document")
		}
		if err != nil {
			return nil, fmt.Errorf("parse messages: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			entry, err := decodeEntry(dec, t)
			if err != nil {
				return nil, fmt.Errorf("parse messages: %w", err)
			}
			if entry != nil {
				cat.Entries = append(cat.Entries, *entry)
			}
		case xml.EndElement:
			// root closed
			return cat, nil
		}
	}
}

func expectRoot(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return fmt.Errorf("parse messages: no root element")
		}
		if err != nil {
			return fmt.Errorf("parse messages: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			if se.Name.Local != rootElement {
				return fmt.Errorf("parse messages: root element is <%s>, want <%s>", se.Name.Local, rootElement)
			}
			return nil
		}
	}
}

func decodeEntry(dec *xml.Decoder, se xml.StartElement) (*Entry, error) {
	switch se.Name.Local {
	case "BugPattern":
		var bp BugPattern
		if err := dec.DecodeElement(&bp, &se); err != nil {
			return nil, err
		}
		return &Entry{Kind: KindBugPattern, BugPattern: &bp}, nil
	case "BugCode":
		var bk BugKind
		if err := dec.DecodeElement(&bk, &se); err != nil {
			return nil, err
		}
		return &Entry{Kind: KindBugKind, BugKind: &bk}, nil
	case "BugCategory":
		var bc BugCategory
		if err := dec.DecodeElement(&bc, &se); err != nil {
			return nil, err
		}
		return &Entry{Kind: KindBugCategory, BugCategory: &bc}, nil
	default:
		return nil, dec.Skip()
	}
}
