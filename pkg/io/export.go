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

// xmlDecl is the declaration line external tools expect ahead of the tree.
const xmlDecl = `version="1.0" encoding="UTF-8" standalone="no"`

// BuildDocument converts g into a GraphML witness document.
//
// The document consists of the fixed key preamble, a directed graph element
// carrying g.KeyValues as data entries in ascending key order, and one node
// element per node in index order. Each node is followed by its outgoing
// edges in ascending target order, replayed from their stored annotations.
//
// The entry marker is assigned on write: the first node whose name is not
// "sink" is marked as entry, regardless of which node was the entry when
// the graph was read. Re-exporting an imported witness therefore need not
// reproduce the original entry marker.
func BuildDocument(g *witness.Graph) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlDecl)

	root := doc.CreateElement(tagGraphML)
	root.CreateAttr("xmlns:xsi", xmlnsXSI)
	root.CreateAttr("xmlns", xmlnsGraphML)

	for _, k := range keyDecls {
		writeKey(root, k, g.KeyValues)
	}

	graph := root.CreateElement(tagGraph)
	graph.CreateAttr("edgedefault", "directed")

	for _, k := range slices.Sorted(maps.Keys(g.KeyValues)) {
		writeData(graph, k, g.KeyValues[k])
	}

	entryDone := false
	for _, n := range g.Nodes() {
		node := graph.CreateElement(tagNode)
		node.CreateAttr("id", n.Name)

		if !entryDone && n.Name != witness.SinkName {
			writeData(node, witness.KeyEntry, "true")
			entryDone = true
		}
		if n.IsViolation {
			writeData(node, witness.KeyViolation, "true")
		}
		if n.HasInvariant {
			writeData(node, witness.KeyInvariant, n.Invariant)
			writeData(node, witness.KeyInvariantScope, n.InvariantScope)
		}

		for _, t := range n.Successors() {
			a, _ := n.Out(t)
			graph.AddChild(a.Element())
		}
	}

	return doc
}

func writeKey(parent *etree.Element, k keyDecl, kv map[string]string) {
	key := parent.CreateElement(tagKey)
	key.CreateAttr("attr.name", k.name)
	key.CreateAttr("attr.type", k.typ)
	key.CreateAttr("for", k.class)
	key.CreateAttr("id", k.id)

	if !k.hasDefault {
		return
	}
	def := k.def
	if k.id == witness.KeyOriginFile {
		def = defaultOriginFile
		if pf, ok := kv[witness.KeyProgramFile]; ok {
			def = pf
		}
	}
	key.CreateElement(tagDefault).SetText(def)
}

func writeData(parent *etree.Element, key, value string) {
	d := parent.CreateElement(tagData)
	d.CreateAttr("key", key)
	d.SetText(value)
}

// WriteGraphML encodes g as a GraphML witness and writes it to w, preceded
// by the XML declaration. Output is indented by two spaces.
//
// Any error reported by w is returned as WRITE_FAILED; output written
// before the failure must be treated as invalid. WriteGraphML does not
// close w.
func WriteGraphML(g *witness.Graph, w io.Writer) error {
	doc := BuildDocument(g)
	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return errs.Wrap(errs.ErrCodeWriteFailed, err, "write witness")
	}
	return nil
}

// ExportGraphML writes g to a GraphML file at path.
// Paths ending in ".zst" are written zstd-compressed.
func ExportGraphML(g *witness.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()

	w, closeFn, err := compress(path, f)
	if err != nil {
		return err
	}
	if err := WriteGraphML(g, w); err != nil {
		_ = closeFn()
		return err
	}
	if err := closeFn(); err != nil {
		return errs.Wrap(errs.ErrCodeWriteFailed, err, "flush %s", path)
	}
	if err := f.Close(); err != nil {
		return errs.Wrap(errs.ErrCodeWriteFailed, err, "close %s", path)
	}
	return nil
}
