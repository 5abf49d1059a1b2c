package witness

import "github.com/beevik/etree"

// Data is a single key/value entry of an edge annotation.
type Data struct {
	Key   string
	Value string
}

// Annotation is the attributed fragment attached to an edge: the edge
// element itself with its data children, exactly as captured at import
// (plus any backfilled defaults). It is opaque to the graph and replayed
// verbatim on export.
//
// Annotations are read-only once created; callers that need to change an
// edge build a new annotation and call [Graph.AddEdge] again.
type Annotation struct {
	el *etree.Element
}

// NewAnnotation captures a deep copy of el.
func NewAnnotation(el *etree.Element) *Annotation {
	return &Annotation{el: el.Copy()}
}

// EdgeAnnotation builds an edge fragment from scratch:
//
//	<edge source="A1" target="A2"><data key="threadId">1</data></edge>
func EdgeAnnotation(source, target string, data ...Data) *Annotation {
	el := etree.NewElement("edge")
	el.CreateAttr("source", source)
	el.CreateAttr("target", target)
	for _, d := range data {
		de := el.CreateElement("data")
		de.CreateAttr("key", d.Key)
		de.SetText(d.Value)
	}
	return &Annotation{el: el}
}

// Source returns the source attribute of the fragment.
func (a *Annotation) Source() string { return a.el.SelectAttrValue("source", "") }

// Target returns the target attribute of the fragment.
func (a *Annotation) Target() string { return a.el.SelectAttrValue("target", "") }

// Value returns the text of the first data child with the given key.
func (a *Annotation) Value(key string) (string, bool) {
	for _, c := range a.el.ChildElements() {
		if c.Tag == "data" && c.SelectAttrValue("key", "") == key {
			return c.Text(), true
		}
	}
	return "", false
}

// Keys returns the keys of all data children in document order.
func (a *Annotation) Keys() []string {
	var keys []string
	for _, c := range a.el.ChildElements() {
		if c.Tag == "data" {
			keys = append(keys, c.SelectAttrValue("key", ""))
		}
	}
	return keys
}

// Data returns all data entries in document order.
func (a *Annotation) Data() []Data {
	var out []Data
	for _, c := range a.el.ChildElements() {
		if c.Tag == "data" {
			out = append(out, Data{Key: c.SelectAttrValue("key", ""), Value: c.Text()})
		}
	}
	return out
}

// Element returns a deep copy of the stored fragment.
func (a *Annotation) Element() *etree.Element { return a.el.Copy() }
