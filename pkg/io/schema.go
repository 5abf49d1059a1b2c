package io

import "github.com/matzehuels/witness/pkg/witness"

const (
	xmlnsXSI     = "http://www.w3.org/2001/XMLSchema-instance"
	xmlnsGraphML = "http://graphml.graphdrawing.org/xmlns"

	// defaultOriginFile is the originfile default when no programfile is known.
	defaultOriginFile = "<command-line>"
)

// keyDecl is one <key> declaration of the witness preamble.
type keyDecl struct {
	name, typ, class, id string
	def                  string
	hasDefault           bool
}

// keyDecls is the fixed preamble, in emission order. External tools parse
// these literally; the originfile default is filled in at write time.
var keyDecls = []keyDecl{
	{name: "originFileName", typ: "string", class: "edge", id: witness.KeyOriginFile, hasDefault: true},
	{name: "invariant", typ: "string", class: "node", id: witness.KeyInvariant},
	{name: "invariant.scope", typ: "string", class: "node", id: witness.KeyInvariantScope},
	{name: "isViolationNode", typ: "boolean", class: "node", id: witness.KeyViolation, def: "false", hasDefault: true},
	{name: "isEntryNode", typ: "boolean", class: "node", id: witness.KeyEntry, def: "false", hasDefault: true},
	{name: "isSinkNode", typ: "boolean", class: "node", id: witness.KeySink, def: "false", hasDefault: true},
	{name: "enterLoopHead", typ: "boolean", class: "edge", id: "enterLoopHead", def: "false", hasDefault: true},
	{name: "cyclehead", typ: "boolean", class: "edge", id: "cyclehead", def: "false", hasDefault: true},
	{name: "threadId", typ: "int", class: "edge", id: witness.KeyThreadID, def: "0", hasDefault: true},
	{name: "createThread", typ: "int", class: "edge", id: witness.KeyCreateThread, def: "0", hasDefault: true},
	{name: "sourcecodeLanguage", typ: "string", class: "graph", id: witness.KeySourceCodeLang},
	{name: "programFile", typ: "string", class: "graph", id: witness.KeyProgramFile},
	{name: "programHash", typ: "string", class: "graph", id: witness.KeyProgramHash},
	{name: "specification", typ: "string", class: "graph", id: witness.KeySpecification},
	{name: "architecture", typ: "string", class: "graph", id: witness.KeyArchitecture},
	{name: "producer", typ: "string", class: "graph", id: witness.KeyProducer},
	{name: "startline", typ: "int", class: "edge", id: witness.KeyStartLine},
	{name: "control", typ: "string", class: "edge", id: witness.KeyControl},
	{name: "assumption", typ: "string", class: "edge", id: witness.KeyAssumption},
	{name: "assumption.resultfunction", typ: "string", class: "edge", id: "assumption.resultfunction"},
	{name: "assumption.scope", typ: "string", class: "edge", id: "assumption.scope"},
	{name: "enterFunction", typ: "string", class: "edge", id: witness.KeyEnterFunction},
	{name: "returnFromFunction", typ: "string", class: "edge", id: witness.KeyReturnFrom},
	{name: "witness-type", typ: "string", class: "graph", id: witness.KeyWitnessType},
}
