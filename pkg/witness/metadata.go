package witness

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	errs "github.com/matzehuels/witness/pkg/errors"
)

// Graph-level metadata keys understood by witness consumers.
const (
	KeySourceCodeLang = "sourcecodelang"
	KeyProgramFile    = "programfile"
	KeyProgramHash    = "programhash"
	KeySpecification  = "specification"
	KeyArchitecture   = "architecture"
	KeyProducer       = "producer"
	KeyWitnessType    = "witness-type"
)

// Node-level and edge-level data keys.
const (
	KeyEntry          = "entry"
	KeyViolation      = "violation"
	KeySink           = "sink"
	KeyInvariant      = "invariant"
	KeyInvariantScope = "invariant.scope"
	KeyOriginFile     = "originfile"
	KeyThreadID       = "threadId"
	KeyCreateThread   = "createThread"
	KeyStartLine      = "startline"
	KeyControl        = "control"
	KeyAssumption     = "assumption"
	KeyEnterFunction  = "enterFunction"
	KeyReturnFrom     = "returnFrom"
)

// SinkName is the conventional name of the terminal node.
const SinkName = "sink"

// ProgramHash computes the SHA-256 of r and returns the 64-character hex string
// stored under [KeyProgramHash].
func ProgramHash(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashProgramFile hashes the file at path with [ProgramHash].
// An unreadable path is reported as FILE_NOT_FOUND.
func HashProgramFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	sum, err := ProgramHash(f)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeFileNotFound, err, "read %s", path)
	}
	return sum, nil
}
