// Package resx implements reading and writing of .resx resource catalogs.
//
// A catalog is the <root> element of a .resx document. Its <data> children
// are the named string entries; everything else directly under <root>
// (xsd:schema, resheader, assembly, metadata, comments) is carried as raw
// bytes and written back verbatim.
//
// Unmodified entries are also written back from their original bytes, so an
// unmodified Parse/Marshal round trip reproduces the input exactly. Entries
// whose value or comment changed are re-emitted in the Visual Studio layout.
package resx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ---------------------------------------------------------------------------
// Data model
// ---------------------------------------------------------------------------

// Entry is a single <data> element.
type Entry struct {
	// Name is the resource key (attribute name="…"), unique within a catalog.
	Name string
	// Value is the text of the <value> child.
	Value string
	// Comment is the text of the <comment> child, if any.
	Comment string
	// Type is the type="…" attribute (empty for plain strings).
	Type string
	// MimeType is the mimetype="…" attribute (empty for plain strings).
	MimeType string
	// Space is the xml:space="…" attribute, usually "preserve".
	Space string

	origValue   string
	origComment string
	raw         []byte
}

// node is one top-level child of <root>: either a data entry or an opaque
// element/comment kept verbatim.
type node struct {
	lead  []byte // whitespace preceding the node
	raw   []byte // original bytes; nil for nodes created in memory
	entry *Entry // nil for opaque nodes
}

// File is a parsed .resx catalog.
type File struct {
	prefix  []byte // everything up to and including <root …>
	suffix  []byte // whitespace before </root>, </root> and anything after
	nodes   []node
	entries []*Entry
	byName  map[string]int
}

// ErrDuplicateName is returned by Parse when two <data> elements share a name.
var ErrDuplicateName = errors.New("duplicate resource name")

const (
	defaultPrefix = "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<root>"
	defaultSuffix = "\n</root>\n"
	defaultLead   = "\n  "
)

// New returns an empty catalog that marshals as a minimal .resx document.
func New() *File {
	return &File{
		prefix: []byte(defaultPrefix),
		suffix: []byte(defaultSuffix),
		byName: make(map[string]int),
	}
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses a .resx file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// Parse parses .resx data.
func Parse(data []byte) (*File, error) {
	f := &File{byName: make(map[string]int)}
	dec := xml.NewDecoder(bytes.NewReader(data))

	inRoot := false
	var lastEnd int64

	for {
		off := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !inRoot {
				if t.Name.Local != "root" {
					return nil, fmt.Errorf("unexpected <%s>, want <root>", t.Name.Local)
				}
				inRoot = true
				lastEnd = dec.InputOffset()
				f.prefix = data[:lastEnd]
				continue
			}

			var e *Entry
			if t.Name.Local == "data" {
				e, err = parseData(dec, t)
			} else {
				err = dec.Skip()
			}
			if err != nil {
				return nil, err
			}
			end := dec.InputOffset()
			if e != nil {
				e.raw = data[off:end]
				if err := f.addNode(data[lastEnd:off], e.raw, e); err != nil {
					return nil, err
				}
			} else {
				f.nodes = append(f.nodes, node{lead: data[lastEnd:off], raw: data[off:end]})
			}
			lastEnd = end

		case xml.Comment:
			if inRoot {
				end := dec.InputOffset()
				f.nodes = append(f.nodes, node{lead: data[lastEnd:off], raw: data[off:end]})
				lastEnd = end
			}

		case xml.EndElement:
			if inRoot && t.Name.Local == "root" {
				f.suffix = data[lastEnd:]
				return f, nil
			}
		}
	}

	if !inRoot {
		return nil, errors.New("missing <root> element")
	}
	return nil, errors.New("unterminated <root> element")
}

// addNode appends a data node and registers its entry.
func (f *File) addNode(lead, raw []byte, e *Entry) error {
	if _, dup := f.byName[e.Name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
	}
	f.byName[e.Name] = len(f.entries)
	f.entries = append(f.entries, e)
	f.nodes = append(f.nodes, node{lead: lead, raw: raw, entry: e})
	return nil
}

// parseData parses a <data> element whose start tag was already consumed.
func parseData(dec *xml.Decoder, elem xml.StartElement) (*Entry, error) {
	e := &Entry{}
	for _, attr := range elem.Attr {
		switch attr.Name.Local {
		case "name":
			e.Name = attr.Value
		case "type":
			e.Type = attr.Value
		case "mimetype":
			e.MimeType = attr.Value
		case "space":
			e.Space = attr.Value
		}
	}
	if e.Name == "" {
		return nil, errors.New("<data> element without name")
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading <data name=%q>: %w", e.Name, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			text, err := readText(dec)
			if err != nil {
				return nil, fmt.Errorf("reading <%s> in <data name=%q>: %w", t.Name.Local, e.Name, err)
			}
			switch t.Name.Local {
			case "value":
				e.Value = text
			case "comment":
				e.Comment = text
			}
		case xml.EndElement:
			e.origValue = e.Value
			e.origComment = e.Comment
			return e, nil
		}
	}
}

// readText collects the character data of an element until its end tag.
func readText(dec *xml.Decoder) (string, error) {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return b.String(), nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Entries returns the data entries in document order. The slice is shared
// with the catalog; mutating an entry's Value mutates the catalog.
func (f *File) Entries() []*Entry {
	return f.entries
}

// Len returns the number of data entries.
func (f *File) Len() int { return len(f.entries) }

// Index returns the position of the named entry in Entries, or -1.
func (f *File) Index(name string) int {
	if idx, ok := f.byName[name]; ok {
		return idx
	}
	return -1
}

// Get returns the value of the named entry.
func (f *File) Get(name string) (string, bool) {
	idx, ok := f.byName[name]
	if !ok {
		return "", false
	}
	return f.entries[idx].Value, true
}

// Set updates the value of an existing entry. Returns false if the name is unknown.
func (f *File) Set(name, value string) bool {
	idx, ok := f.byName[name]
	if !ok {
		return false
	}
	f.entries[idx].Value = value
	return true
}

// Add appends a new string entry. Returns false if the name already exists.
func (f *File) Add(name, value string) bool {
	if _, ok := f.byName[name]; ok {
		return false
	}
	e := &Entry{Name: name, Value: value, Space: "preserve"}
	_ = f.addNode([]byte(defaultLead), nil, e)
	return true
}

// Clone returns a copy of the catalog whose entries can be modified without
// affecting f. Raw byte slices are shared; they are never written to.
func (f *File) Clone() *File {
	c := &File{
		prefix:  f.prefix,
		suffix:  f.suffix,
		nodes:   make([]node, len(f.nodes)),
		entries: make([]*Entry, 0, len(f.entries)),
		byName:  make(map[string]int, len(f.byName)),
	}
	for i, n := range f.nodes {
		if n.entry != nil {
			e := *n.entry
			n.entry = &e
			c.byName[e.Name] = len(c.entries)
			c.entries = append(c.entries, n.entry)
		}
		c.nodes[i] = n
	}
	return c
}

// ---------------------------------------------------------------------------
// Writing
// ---------------------------------------------------------------------------

// WriteFile marshals the catalog to path, creating parent directories.
func (f *File) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(path, f.Marshal(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Marshal produces the .resx document.
func (f *File) Marshal() []byte {
	var b bytes.Buffer
	b.Write(f.prefix)
	for _, n := range f.nodes {
		b.Write(n.lead)
		if n.entry != nil && (n.raw == nil || n.entry.modified()) {
			writeData(&b, n.entry)
			continue
		}
		b.Write(n.raw)
	}
	b.Write(f.suffix)
	return b.Bytes()
}

func (e *Entry) modified() bool {
	return e.Value != e.origValue || e.Comment != e.origComment
}

func writeData(b *bytes.Buffer, e *Entry) {
	fmt.Fprintf(b, `<data name="%s"`, attrEscaper.Replace(e.Name))
	if e.Type != "" {
		fmt.Fprintf(b, ` type="%s"`, attrEscaper.Replace(e.Type))
	}
	if e.MimeType != "" {
		fmt.Fprintf(b, ` mimetype="%s"`, attrEscaper.Replace(e.MimeType))
	}
	if e.Space != "" {
		fmt.Fprintf(b, ` xml:space="%s"`, attrEscaper.Replace(e.Space))
	}
	b.WriteString(">\n")
	fmt.Fprintf(b, "    <value>%s</value>\n", textEscaper.Replace(e.Value))
	if e.Comment != "" {
		fmt.Fprintf(b, "    <comment>%s</comment>\n", textEscaper.Replace(e.Comment))
	}
	b.WriteString("  </data>")
}

// encoding/xml's EscapeText also rewrites newlines, which resx keeps literal.
var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)
