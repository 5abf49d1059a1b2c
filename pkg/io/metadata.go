package io

import (
	"os"

	"github.com/beevik/etree"

	errs "github.com/matzehuels/witness/pkg/errors"
)

// GraphMetadata collects the data children of every graph element under
// root, keyed by their key attribute. Later entries override earlier ones.
//
// The import walk ignores these entries, so a witness read with
// [BuildGraph] starts with empty KeyValues; callers that want to carry the
// producer, program hash and similar fields forward read them here.
func GraphMetadata(root *etree.Element) map[string]string {
	kv := make(map[string]string)
	if root == nil {
		return kv
	}
	graphs := root.SelectElements(tagGraph)
	if root.Tag == tagGraph {
		graphs = append(graphs, root)
	}
	for _, g := range graphs {
		for _, d := range g.SelectElements(tagData) {
			kv[d.SelectAttrValue("key", "")] = d.Text()
		}
	}
	return kv
}

// ImportMetadata reads the graph-level metadata of the witness at path.
// It accepts the same files as [ImportGraphML] and fails with
// FILE_NOT_FOUND or MALFORMED_MARKUP.
func ImportMetadata(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()

	r, closeFn, err := decompress(path, f)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errs.Wrap(errs.ErrCodeMalformedMarkup, err, "parse %s", path)
	}
	return GraphMetadata(doc.Root()), nil
}
