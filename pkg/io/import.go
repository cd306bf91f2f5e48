package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/felipe/pkg/errors"
	"github.com/matzehuels/felipe/pkg/model"
)

// ReadRecord decodes one JSON record document from r.
//
// The document must be a single JSON object. Malformed JSON, trailing data
// after the object, or fields of the wrong shape (for example a string
// where the dependency list belongs) return an INVALID_RECORD error.
// ReadRecord does not close r.
func ReadRecord(r io.Reader) (*model.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var rec model.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "decode record")
	}
	if dec.More() {
		return nil, errors.New(errors.ErrCodeInvalidRecord, "decode record: unexpected data after document")
	}
	return &rec, nil
}

// ImportRecord reads the JSON record file at path.
//
// A missing file returns FILE_NOT_FOUND and any other read failure
// IO_ERROR; decoding errors are those of [ReadRecord]. The error message
// includes path.
func ImportRecord(path string) (*model.Record, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()

	rec, err := ReadRecord(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}
