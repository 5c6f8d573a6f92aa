package batch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Lchiki-nl/Stamp-Image-Tools-sub000/internal/archive"
)

// Status is an item's position in the decode -> transform -> encode pipeline.
type Status int

const (
	StatusPending Status = iota
	StatusDecoding
	StatusTransformed
	StatusEncoded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusDecoding:
		return "decoding"
	case StatusTransformed:
		return "transformed"
	case StatusEncoded:
		return "encoded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText renders the status name in JSON reports.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name written by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	for st := StatusPending; st <= StatusFailed; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Item is the outcome for one source. Encoded items carry one or more PNG
// outputs; Failed items carry an error and no outputs.
type Item struct {
	Index   int      `json:"index"`
	Name    string   `json:"name"`
	Status  Status   `json:"status"`
	Outputs [][]byte `json:"-"`
	Err     error    `json:"-"`
	Message string   `json:"error,omitempty"`
}

func (it *Item) fail(err error) {
	it.Status = StatusFailed
	it.Outputs = nil
	it.Err = err
	it.Message = err.Error()
}

// OK reports whether the item finished with outputs.
func (it Item) OK() bool {
	return it.Status == StatusEncoded
}

// Report is the complete result of a batch, one Item per source in input order.
type Report struct {
	Operation Operation `json:"operation"`
	Config    Config    `json:"-"`
	Items     []Item    `json:"items"`
}

// Succeeded returns the encoded items in input order.
func (r *Report) Succeeded() []Item {
	var out []Item
	for _, it := range r.Items {
		if it.OK() {
			out = append(out, it)
		}
	}
	return out
}

// Failed returns the failed items in input order.
func (r *Report) Failed() []Item {
	var out []Item
	for _, it := range r.Items {
		if it.Status == StatusFailed {
			out = append(out, it)
		}
	}
	return out
}

// FailedIndexes returns the source indexes of failed items, for retrying just
// that subset.
func (r *Report) FailedIndexes() []int {
	var out []int
	for _, it := range r.Failed() {
		out = append(out, it.Index)
	}
	return out
}

// Files names every output for export.
//
// Single-output operations produce "<stem>_<operation>.png". Split produces
// "<stem>_r<row>c<col>.png" with 1-based row and column. Items without a usable
// name use "image<N>" with N the 1-based source index. A colliding stem gets
// the source index appended, counting upward until the stem is unused.
func (r *Report) Files() []archive.File {
	cols := 0
	if sc, ok := r.Config.(SplitConfig); ok {
		cols = sc.Cols
	}

	used := make(map[string]bool)
	var files []archive.File
	for _, it := range r.Succeeded() {
		stem := fileStem(it.Name)
		if stem == "" {
			stem = fmt.Sprintf("image%d", it.Index+1)
		}
		base := stem
		for k := it.Index + 1; used[stem]; k++ {
			stem = fmt.Sprintf("%s_%d", base, k)
		}
		used[stem] = true

		for n, data := range it.Outputs {
			var name string
			if r.Operation == OpSplit && cols > 0 {
				name = fmt.Sprintf("%s_r%dc%d.png", stem, n/cols+1, n%cols+1)
			} else if len(it.Outputs) > 1 {
				name = fmt.Sprintf("%s_%s_%d.png", stem, r.Operation, n+1)
			} else {
				name = fmt.Sprintf("%s_%s.png", stem, r.Operation)
			}
			files = append(files, archive.File{Name: name, Data: data})
		}
	}
	return files
}

func fileStem(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
