package io

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/beevik/etree"

	errs "github.com/matzehuels/witness/pkg/errors"
	"github.com/matzehuels/witness/pkg/witness"
)

const wantDecl = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>`

func writeDoc(t *testing.T, g *witness.Graph) (string, *etree.Element) {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteGraphML(g, &buf); err != nil {
		t.Fatalf("WriteGraphML() error: %v", err)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(buf.Bytes()); err != nil {
		t.Fatalf("output does not parse: %v\n%s", err, buf.String())
	}
	return buf.String(), doc.Root()
}

func dataOf(el *etree.Element) map[string]string {
	out := make(map[string]string)
	for _, d := range el.SelectElements("data") {
		out[d.SelectAttrValue("key", "")] = d.Text()
	}
	return out
}

func TestWriteGraphMLEmptyGraph(t *testing.T) {
	out, root := writeDoc(t, witness.New())

	if !strings.HasPrefix(out, wantDecl) {
		t.Errorf("output does not start with XML declaration:\n%s", out)
	}
	if root.Tag != "graphml" {
		t.Fatalf("root = <%s>, want <graphml>", root.Tag)
	}
	if got := root.SelectAttrValue("xmlns", ""); got != xmlnsGraphML {
		t.Errorf("xmlns = %q", got)
	}
	if got := root.SelectAttrValue("xmlns:xsi", ""); got != xmlnsXSI {
		t.Errorf("xmlns:xsi = %q", got)
	}
	if n := len(root.SelectElements("key")); n != len(keyDecls) {
		t.Errorf("key declarations = %d, want %d", n, len(keyDecls))
	}
	graph := root.SelectElement("graph")
	if graph == nil {
		t.Fatal("missing <graph>")
	}
	if got := graph.SelectAttrValue("edgedefault", ""); got != "directed" {
		t.Errorf("edgedefault = %q, want directed", got)
	}
	if n := len(graph.ChildElements()); n != 0 {
		t.Errorf("empty graph has %d children", n)
	}
}

func TestWriteGraphMLKeyPreamble(t *testing.T) {
	want := []struct {
		name, typ, class, id, def string
		hasDefault                bool
	}{
		{"originFileName", "string", "edge", "originfile", "<command-line>", true},
		{"invariant", "string", "node", "invariant", "", false},
		{"invariant.scope", "string", "node", "invariant.scope", "", false},
		{"isViolationNode", "boolean", "node", "violation", "false", true},
		{"isEntryNode", "boolean", "node", "entry", "false", true},
		{"isSinkNode", "boolean", "node", "sink", "false", true},
		{"enterLoopHead", "boolean", "edge", "enterLoopHead", "false", true},
		{"cyclehead", "boolean", "edge", "cyclehead", "false", true},
		{"threadId", "int", "edge", "threadId", "0", true},
		{"createThread", "int", "edge", "createThread", "0", true},
		{"sourcecodeLanguage", "string", "graph", "sourcecodelang", "", false},
		{"programFile", "string", "graph", "programfile", "", false},
		{"programHash", "string", "graph", "programhash", "", false},
		{"specification", "string", "graph", "specification", "", false},
		{"architecture", "string", "graph", "architecture", "", false},
		{"producer", "string", "graph", "producer", "", false},
		{"startline", "int", "edge", "startline", "", false},
		{"control", "string", "edge", "control", "", false},
		{"assumption", "string", "edge", "assumption", "", false},
		{"assumption.resultfunction", "string", "edge", "assumption.resultfunction", "", false},
		{"assumption.scope", "string", "edge", "assumption.scope", "", false},
		{"enterFunction", "string", "edge", "enterFunction", "", false},
		{"returnFromFunction", "string", "edge", "returnFrom", "", false},
		{"witness-type", "string", "graph", "witness-type", "", false},
	}

	_, root := writeDoc(t, witness.New())
	keys := root.SelectElements("key")
	if len(keys) != len(want) {
		t.Fatalf("got %d keys, want %d", len(keys), len(want))
	}
	for i, w := range want {
		k := keys[i]
		var attrs []string
		for _, a := range k.Attr {
			attrs = append(attrs, a.Key)
		}
		if !slices.Equal(attrs, []string{"attr.name", "attr.type", "for", "id"}) {
			t.Errorf("key %d attribute order = %v", i, attrs)
		}
		got := [4]string{
			k.SelectAttrValue("attr.name", ""),
			k.SelectAttrValue("attr.type", ""),
			k.SelectAttrValue("for", ""),
			k.SelectAttrValue("id", ""),
		}
		if got != [4]string{w.name, w.typ, w.class, w.id} {
			t.Errorf("key %d = %v, want %v", i, got, [4]string{w.name, w.typ, w.class, w.id})
		}
		def := k.SelectElement("default")
		if (def != nil) != w.hasDefault {
			t.Errorf("key %s: default present = %v, want %v", w.id, def != nil, w.hasDefault)
			continue
		}
		if def != nil && def.Text() != w.def {
			t.Errorf("key %s: default = %q, want %q", w.id, def.Text(), w.def)
		}
	}
}

func TestWriteGraphMLOriginFileFromProgramFile(t *testing.T) {
	g := witness.New()
	g.KeyValues[witness.KeyProgramFile] = "/tmp/main.c"

	_, root := writeDoc(t, g)
	def := root.SelectElements("key")[0].SelectElement("default")
	if def == nil || def.Text() != "/tmp/main.c" {
		t.Errorf("originfile default = %v, want /tmp/main.c", def)
	}
}

func TestWriteGraphMLMetadataSorted(t *testing.T) {
	g := witness.New()
	g.KeyValues[witness.KeyProducer] = "CBMC"
	g.KeyValues[witness.KeyArchitecture] = "64bit"
	g.KeyValues[witness.KeySpecification] = "CHECK( init(main()), LTL(G ! call(reach_error())) )"

	_, root := writeDoc(t, g)
	var keys []string
	for _, d := range root.SelectElement("graph").SelectElements("data") {
		keys = append(keys, d.SelectAttrValue("key", ""))
	}
	if !slices.Equal(keys, []string{"architecture", "producer", "specification"}) {
		t.Errorf("graph data keys = %v", keys)
	}
	if got := dataOf(root.SelectElement("graph"))["specification"]; got != g.KeyValues[witness.KeySpecification] {
		t.Errorf("specification = %q", got)
	}
}

func TestWriteGraphMLNodes(t *testing.T) {
	g := witness.New()
	for _, name := range []string{"sink", "A1", "A2", "A3"} {
		g.Node(g.AddNode()).Name = name
	}
	g.Node(2).IsViolation = true
	n3 := g.Node(3)
	n3.HasInvariant = true
	n3.Invariant = "x >= 0"
	n3.InvariantScope = "main"

	_, root := writeDoc(t, g)
	nodes := root.SelectElement("graph").SelectElements("node")
	if len(nodes) != 4 {
		t.Fatalf("nodes = %d, want 4", len(nodes))
	}

	want := []map[string]string{
		{},
		{"entry": "true"},
		{"violation": "true"},
		{"invariant": "x >= 0", "invariant.scope": "main"},
	}
	for i, n := range nodes {
		if got := n.SelectAttrValue("id", ""); got != g.Node(i).Name {
			t.Errorf("node %d id = %q, want %q", i, got, g.Node(i).Name)
		}
		got := dataOf(n)
		if len(got) != len(want[i]) {
			t.Errorf("node %s data = %v, want %v", g.Node(i).Name, got, want[i])
			continue
		}
		for k, v := range want[i] {
			if got[k] != v {
				t.Errorf("node %s %s = %q, want %q", g.Node(i).Name, k, got[k], v)
			}
		}
	}
}

func TestWriteGraphMLEdgesFollowSourceNode(t *testing.T) {
	g := witness.New()
	for _, name := range []string{"A1", "A2", "A3"} {
		g.Node(g.AddNode()).Name = name
	}
	g.AddEdge(0, 2, witness.EdgeAnnotation("A1", "A3", witness.Data{Key: "startline", Value: "9"}))
	g.AddEdge(0, 1, witness.EdgeAnnotation("A1", "A2", witness.Data{Key: "startline", Value: "4"}))
	g.AddEdge(1, 2, witness.EdgeAnnotation("A2", "A3"))

	_, root := writeDoc(t, g)
	var order []string
	for _, c := range root.SelectElement("graph").ChildElements() {
		switch c.Tag {
		case "node":
			order = append(order, c.SelectAttrValue("id", ""))
		case "edge":
			order = append(order, c.SelectAttrValue("source", "")+">"+c.SelectAttrValue("target", ""))
		}
	}
	want := []string{"A1", "A1>A2", "A1>A3", "A2", "A2>A3", "A3"}
	if !slices.Equal(order, want) {
		t.Errorf("graph body order = %v, want %v", order, want)
	}
}

func TestRoundTripReplaysAnnotations(t *testing.T) {
	g, _, err := ImportGraphML(filepath.Join("testdata", "violation.graphml"))
	if err != nil {
		t.Fatalf("ImportGraphML() error: %v", err)
	}

	_, root := writeDoc(t, g)
	edges := root.SelectElement("graph").SelectElements("edge")
	if len(edges) != 3 {
		t.Fatalf("edges = %d, want 3", len(edges))
	}
	got := dataOf(edges[1])
	want := map[string]string{"startline": "5", "control": "condition-true", "originfile": "main.c", "threadId": "0"}
	if len(got) != len(want) {
		t.Errorf("edge A2->A3 data = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("edge A2->A3 %s = %q, want %q", k, got[k], v)
		}
	}
}

// The entry marker is re-derived on write, so a witness whose entry node is
// not the first non-sink node in index order changes entry on round trip.
func TestRoundTripEntryAsymmetry(t *testing.T) {
	src := `<graphml><graph>
  <edge source="A1" target="A2"/>
  <node id="A2"><data key="entry">true</data></node>
</graph></graphml>`

	g, entry := mustRead(t, src)
	if g.Node(entry).Name != "A2" {
		t.Fatalf("imported entry = %q, want A2", g.Node(entry).Name)
	}

	var buf bytes.Buffer
	if err := WriteGraphML(g, &buf); err != nil {
		t.Fatalf("WriteGraphML() error: %v", err)
	}
	g2, entry2, err := ReadGraphML(&buf)
	if err != nil {
		t.Fatalf("re-import error: %v", err)
	}
	if g2.Node(entry2).Name != "A1" {
		t.Errorf("re-imported entry = %q, want A1 (first non-sink node)", g2.Node(entry2).Name)
	}
	if g2.Size() != g.Size() || g2.EdgeCount() != g.EdgeCount() {
		t.Errorf("round trip changed shape: %d/%d -> %d/%d", g.Size(), g.EdgeCount(), g2.Size(), g2.EdgeCount())
	}
}

func TestRoundTripEntrySkipsSink(t *testing.T) {
	src := `<graphml><graph>
  <node id="sink"/>
  <node id="A1"><data key="entry">true</data></node>
  <edge source="A1" target="sink"/>
</graph></graphml>`

	g, _ := mustRead(t, src)
	var buf bytes.Buffer
	if err := WriteGraphML(g, &buf); err != nil {
		t.Fatalf("WriteGraphML() error: %v", err)
	}
	g2, entry2, err := ReadGraphML(&buf)
	if err != nil {
		t.Fatalf("re-import error: %v", err)
	}
	if g2.Node(entry2).Name != "A1" {
		t.Errorf("re-imported entry = %q, want A1", g2.Node(entry2).Name)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteGraphMLSinkFailure(t *testing.T) {
	err := WriteGraphML(witness.New(), failingWriter{})
	if !errs.Is(err, errs.ErrCodeWriteFailed) {
		t.Errorf("WriteGraphML() error = %v, want WRITE_FAILED", err)
	}
}

func TestExportGraphML(t *testing.T) {
	src, entry, err := ImportGraphML(filepath.Join("testdata", "violation.graphml"))
	if err != nil {
		t.Fatalf("ImportGraphML() error: %v", err)
	}
	src.KeyValues[witness.KeyProducer] = "witness-test"

	for _, name := range []string{"out.graphml", "out.graphml.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := ExportGraphML(src, path); err != nil {
				t.Fatalf("ExportGraphML() error: %v", err)
			}
			g, e, err := ImportGraphML(path)
			if err != nil {
				t.Fatalf("ImportGraphML() error: %v", err)
			}
			if g.Size() != src.Size() || g.EdgeCount() != src.EdgeCount() {
				t.Errorf("shape = %d/%d, want %d/%d", g.Size(), g.EdgeCount(), src.Size(), src.EdgeCount())
			}
			if g.Node(e).Name != src.Node(entry).Name {
				t.Errorf("entry = %q, want %q", g.Node(e).Name, src.Node(entry).Name)
			}
			if !slices.Equal(g.Violations(), src.Violations()) {
				t.Errorf("violations = %v, want %v", g.Violations(), src.Violations())
			}
		})
	}
}

func TestExportGraphMLBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.graphml")
	if err := ExportGraphML(witness.New(), path); !errs.Is(err, errs.ErrCodeInvalidPath) {
		t.Errorf("ExportGraphML() error = %v, want INVALID_PATH", err)
	}
}

func TestImportGraphMLCorruptCompressed(t *testing.T) {
	path := filepath.Join("testdata", "violation.graphml")
	g, _, err := ImportGraphML(path)
	if err != nil {
		t.Fatalf("ImportGraphML() error: %v", err)
	}
	// a plain file renamed to .zst is not a zstd stream
	plain := filepath.Join(t.TempDir(), "w.graphml.zst")
	if err := ExportGraphML(g, strings.TrimSuffix(plain, ".zst")); err != nil {
		t.Fatalf("ExportGraphML() error: %v", err)
	}
	if err := os.Rename(strings.TrimSuffix(plain, ".zst"), plain); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ImportGraphML(plain); !errs.Is(err, errs.ErrCodeMalformedMarkup) {
		t.Errorf("ImportGraphML() error = %v, want MALFORMED_MARKUP", err)
	}
}
