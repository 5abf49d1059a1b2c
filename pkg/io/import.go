package io

import (
	"io"
	"maps"
	"os"
	"slices"

	"github.com/beevik/etree"

	errs "github.com/matzehuels/witness/pkg/errors"
	"github.com/matzehuels/witness/pkg/witness"
)

// Element names of the witness vocabulary.
const (
	tagGraphML = "graphml"
	tagGraph   = "graph"
	tagKey     = "key"
	tagNode    = "node"
	tagEdge    = "edge"
	tagData    = "data"
	tagDefault = "default"
)

// builder holds the per-call state of one import: the graph under
// construction, the name cache, the defaults table and the entry name.
type builder struct {
	g        *witness.Graph
	index    map[string]int
	defaults map[string]map[string]string
	entry    string
}

// resolve returns the index of the node named name, creating it on first sight.
func (b *builder) resolve(name string) int {
	if i, ok := b.index[name]; ok {
		return i
	}
	i := b.g.AddNode()
	b.g.Node(i).Name = name
	b.index[name] = i
	return i
}

// walk dispatches on the element name. The vocabulary is closed: anything
// outside it aborts the import.
func (b *builder) walk(el *etree.Element) error {
	switch el.Tag {
	case tagGraphML, tagGraph:
		for _, c := range el.ChildElements() {
			if err := b.walk(c); err != nil {
				return err
			}
		}
	case tagKey:
		b.key(el)
	case tagNode:
		return b.node(el)
	case tagEdge:
		b.edge(el)
	case tagData:
		// consumed by the enclosing node or edge
	default:
		return errs.New(errs.ErrCodeUnknownElement, "unrecognized element <%s>", el.FullTag())
	}
	return nil
}

// key registers defaults[for][id]. It only affects elements walked later.
func (b *builder) key(el *etree.Element) {
	for _, c := range el.ChildElements() {
		if c.Tag != tagDefault {
			continue
		}
		class := el.SelectAttrValue("for", "")
		if b.defaults[class] == nil {
			b.defaults[class] = make(map[string]string)
		}
		b.defaults[class][el.SelectAttrValue("id", "")] = c.Text()
	}
}

func (b *builder) node(el *etree.Element) error {
	name := el.SelectAttrValue("id", "")
	n := b.g.Node(b.resolve(name))
	n.Name = name
	n.IsViolation = false
	n.HasInvariant = false

	for _, c := range el.ChildElements() {
		if c.Tag != tagData {
			return errs.New(errs.ErrCodeUnknownElement, "unrecognized element <%s> in node %q", c.FullTag(), name)
		}
		if c.Text() != "true" {
			continue
		}
		switch c.SelectAttrValue("key", "") {
		case witness.KeyViolation:
			n.IsViolation = true
		case witness.KeyEntry:
			b.entry = name
		}
	}
	return nil
}

func (b *builder) edge(el *etree.Element) {
	s := b.resolve(el.SelectAttrValue("source", ""))
	t := b.resolve(el.SelectAttrValue("target", ""))

	present := make(map[string]bool)
	for _, c := range el.ChildElements() {
		present[c.SelectAttrValue("key", "")] = true
	}

	withDefaults := el.Copy()
	defaults := b.defaults[tagEdge]
	for _, k := range slices.Sorted(maps.Keys(defaults)) {
		if present[k] {
			continue
		}
		d := withDefaults.CreateElement(tagData)
		d.CreateAttr("key", k)
		d.SetText(defaults[k])
	}

	b.g.AddEdge(s, t, witness.NewAnnotation(withDefaults))
}

// BuildGraph builds a witness graph from an already parsed element tree and
// returns it together with the index of the entry node.
//
// The tree is walked once in document order:
//   - graphml and graph elements recurse into their children
//   - key elements with a default child register a default for their class
//   - node elements resolve (or create) the node named by their id and read
//     the violation and entry markers from their data children
//   - edge elements resolve both endpoints, copy their data children and
//     backfill every registered edge default the edge does not supply
//   - data elements outside a node or edge are ignored
//
// A default only applies to edges walked after its key declaration.
//
// BuildGraph returns an error with code:
//   - UNKNOWN_ELEMENT for any element outside the vocabulary above
//   - EMPTY_NODE_NAME if a node or edge endpoint has an empty identifier
//   - MISSING_ENTRY_NODE if no node carries data key="entry" set to true
//   - UNRESOLVED_ENTRY_NODE if the entry name does not name a known node
//
// On error the returned graph is nil.
func BuildGraph(root *etree.Element) (*witness.Graph, int, error) {
	if root == nil {
		return nil, 0, errs.New(errs.ErrCodeMalformedMarkup, "document has no root element")
	}

	b := &builder{
		g:        witness.New(),
		index:    make(map[string]int),
		defaults: make(map[string]map[string]string),
	}
	if err := b.walk(root); err != nil {
		return nil, 0, err
	}

	for i, n := range b.g.Nodes() {
		if n.Name == "" {
			return nil, 0, errs.New(errs.ErrCodeEmptyNodeName, "node %d has an empty name", i)
		}
	}
	if b.entry == "" {
		return nil, 0, errs.New(errs.ErrCodeMissingEntry, "no node is marked as entry")
	}
	entry, ok := b.index[b.entry]
	if !ok {
		return nil, 0, errs.New(errs.ErrCodeUnresolvedEntry, "entry node %q is not in the graph", b.entry)
	}
	return b.g, entry, nil
}

// ReadGraphML parses a GraphML witness from r and builds its graph.
//
// Markup that does not parse fails with MALFORMED_MARKUP before any graph
// construction is attempted. All other failures are those of [BuildGraph].
//
// The returned graph is independent of r. ReadGraphML does not close r.
func ReadGraphML(r io.Reader) (*witness.Graph, int, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, 0, errs.Wrap(errs.ErrCodeMalformedMarkup, err, "parse witness")
	}
	return BuildGraph(doc.Root())
}

// ImportGraphML reads the GraphML witness at path.
//
// Files ending in ".zst" are decompressed transparently. If the file cannot
// be opened, ImportGraphML returns FILE_NOT_FOUND wrapping the cause;
// otherwise it returns the same errors as [ReadGraphML].
func ImportGraphML(path string) (*witness.Graph, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()

	r, closeFn, err := decompress(path, f)
	if err != nil {
		return nil, 0, err
	}
	defer closeFn()
	return ReadGraphML(r)
}
