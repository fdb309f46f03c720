package bitinfo

import (
	"encoding/json"
	"fmt"

	"github.com/scigolib/bitinfo/internal/core"
	"github.com/scigolib/bitinfo/internal/utils"
)

// AnalysisRecord is the narrow, JSON-serialisable contract produced by the
// Analyser and consumed read-only by the Compressor (spec §3). It carries
// everything the Compressor needs to build a Quantiser without re-reading
// the source data.
type AnalysisRecord struct {
	Type       string    `json:"type"`
	ItemSize   int       `json:"itemsize"`
	ByteOrder  string    `json:"byteorder"`
	SignBit    int       `json:"signbit"`
	ManBit     [2]int    `json:"manbit"`
	ExpBit     [2]int    `json:"expbit"`
	Elements   uint64    `json:"elements"`
	BitInfo    []float64 `json:"bitinfo"`
	TimeStart  *uint64   `json:"time_start,omitempty"`
	TimeEnd    *uint64   `json:"time_end,omitempty"`
	Level      *uint64   `json:"level,omitempty"`
	Axis       int       `json:"axis"`
	RetainBits *int      `json:"retainbits,omitempty"`

	// BitEntropy is the whole-word Shannon entropy of the analysed slice
	// (core.BitEntropy), a coarse diagnostic independent of bit position
	// carried alongside the per-bit BitInfo vector. Optional: omitted for
	// records built by callers that never ran the analyser (e.g. a
	// retainbits-only compress invocation).
	BitEntropy *float64 `json:"bitentropy,omitempty"`
}

// Document is the full JSON analysis-file carrier (spec §6): one document
// per analysed source file, grouping variable records by group name.
type Document struct {
	Analysis string                 `json:"Analysis"`
	Date     string                 `json:"date"`
	File     string                 `json:"file"`
	Version  string                 `json:"version"`
	Groups   map[string]GroupRecord `json:"groups"`
}

// GroupRecord holds the variable records for one group.
type GroupRecord struct {
	Vars map[string]AnalysisRecord `json:"vars"`
}

// requiredVarKeys are the keys ParseDocument treats as mandatory on every
// variable record; their absence is an InconsistentAnalysis error rather
// than a zero-valued field (spec §7).
var requiredVarKeys = []string{"bitinfo", "manbit", "elements"}

// ParseDocument decodes a JSON analysis document, validating that every
// variable record carries the keys the Compressor depends on.
func ParseDocument(data []byte) (*Document, error) {
	var raw struct {
		Groups map[string]struct {
			Vars map[string]json.RawMessage `json:"vars"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, utils.WrapError("parsing analysis document", err)
	}

	for groupName, group := range raw.Groups {
		for varName, varData := range group.Vars {
			var keys map[string]json.RawMessage
			if err := json.Unmarshal(varData, &keys); err != nil {
				return nil, utils.WrapError(
					fmt.Sprintf("parsing variable %s/%s", groupName, varName), err)
			}
			for _, k := range requiredVarKeys {
				if _, ok := keys[k]; !ok {
					return nil, utils.WrapError(
						fmt.Sprintf("parsing variable %s/%s", groupName, varName),
						fmt.Errorf("%w: missing key %q", utils.ErrInconsistentAnalysis, k))
				}
			}
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, utils.WrapError("parsing analysis document", err)
	}

	for groupName, group := range doc.Groups {
		for varName, rec := range group.Vars {
			if _, err := kindFromTypeName(rec.Type); err != nil {
				return nil, utils.WrapError(
					fmt.Sprintf("parsing variable %s/%s", groupName, varName),
					fmt.Errorf("%w: unknown dtype %q", utils.ErrInconsistentAnalysis, rec.Type))
			}
		}
	}

	return &doc, nil
}

// Marshal serialises the document to its canonical JSON form.
func (d *Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, utils.WrapError("marshalling analysis document", err)
	}
	return data, nil
}

func kindFromTypeName(name string) (core.Kind, error) {
	switch name {
	case "float16":
		return core.KindFloat16, nil
	case "float32":
		return core.KindFloat32, nil
	case "float64":
		return core.KindFloat64, nil
	default:
		return 0, utils.ErrUnsupportedType
	}
}

func typeNameFromKind(k core.Kind) string {
	return k.String()
}

func byteOrderTag(o core.ByteOrder) string {
	return string(rune(o))
}

func byteOrderFromTag(tag string) core.ByteOrder {
	if len(tag) != 1 {
		return core.NativeOrder
	}
	return core.ByteOrder(tag[0])
}

// ByteOrderFromTag parses a `byteorder` tag from the JSON carrier (spec §6:
// `<`, `>`, `=`, or `|`) into a core.ByteOrder, defaulting to NativeOrder
// for anything else. Exported so CLI front-ends can honour an analysis
// record's declared byte order when rebuilding the array it was computed
// over, instead of assuming the host's order.
func ByteOrderFromTag(tag string) core.ByteOrder {
	return byteOrderFromTag(tag)
}
