package folio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// this file contains functions to handle the JSON import/export format.
// It is the same document as the one persisted under KeyPortfolios, pretty
// printed to remain human readable.

// JSONFilename is the default name of the JSON export.
const JSONFilename = "portfolios.json"

// EncodeSnapshots writes snapshots to w as a JSON array indented with two spaces.
func EncodeSnapshots(w io.Writer, snapshots []Snapshot) error {
	if snapshots == nil {
		snapshots = []Snapshot{}
	}
	data, err := json.MarshalIndent(snapshots, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal portfolios: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write portfolios: %w", err)
	}
	return nil
}

// DecodeSnapshots reads a JSON array of snapshots from r.
//
// Any malformed document, or any record with a wrong shape, is an ErrParse.
func DecodeSnapshots(r io.Reader) ([]Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, parseErrorf("cannot read portfolios: %v", err)
	}
	var snapshots []Snapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		if errors.Is(err, ErrParse) {
			return nil, err
		}
		return nil, parseErrorf("not a list of portfolios: %v", err)
	}
	if snapshots == nil {
		// "null" is not a list.
		return nil, parseErrorf("not a list of portfolios")
	}
	return snapshots, nil
}

// QuerySnapshots evaluates the JSONPath expression path on the JSON encoding
// of snapshots and returns the id of the first snapshot it selects.
func QuerySnapshots(snapshots []Snapshot, path string) (string, error) {
	data, err := json.Marshal(snapshots)
	if err != nil {
		return "", fmt.Errorf("cannot marshal portfolios: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return "", fmt.Errorf("cannot unmarshal portfolios: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", validationErrorf("invalid query %q: %v", path, err)
	}
	// filters and slices return a list of matches, keep the first one.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return "", fmt.Errorf("%w: no portfolio matches %q", ErrNotFound, path)
		}
		jval = jlist[0]
	}
	record, ok := jval.(map[string]any)
	if !ok {
		return "", validationErrorf("query %q does not select a portfolio", path)
	}
	id, ok := record["id"].(string)
	if !ok {
		return "", validationErrorf("query %q does not select a portfolio", path)
	}
	return id, nil
}
