package material

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// DomainCatalog is the domain prefix for catalog fingerprints.
// Version suffix enables future algorithm migration.
const DomainCatalog = "thermex/catalog/v1"

// Fingerprint returns a content-addressed identity for the catalog:
// SHA256(DomainCatalog + 0x00 + canonical JSON of all entries).
//
// The fingerprint depends only on the coefficient values, so the same
// materials loaded from CUE, YAML or SQLite fingerprint identically.
func (c *Catalog) Fingerprint() string {
	list := make([]any, 0, len(c.ids))
	for _, id := range c.ids {
		list = append(list, canonicalEntry(c.entries[id]))
	}

	data, err := marshalCanonical(list)
	if err != nil {
		// Entries are validated finite strings and floats; unreachable.
		panic("material: fingerprint: " + err.Error())
	}

	h := sha256.New()
	h.Write([]byte(DomainCatalog))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

func canonicalEntry(e Coefficients) map[string]any {
	return map[string]any{
		"id":                   e.ID,
		"name":                 e.Name,
		"category":             e.Category.String(),
		"alpha1":               e.Alpha1,
		"alpha1_uncertainty":   e.Alpha1Uncertainty,
		"alpha2":               e.Alpha2,
		"alpha3":               e.Alpha3,
		"thermal_conductivity": e.ThermalConductivity,
		"specific_heat":        e.SpecificHeat,
		"density":              e.Density,
		"elastic_modulus":      e.ElasticModulus,
		"range_min":            e.Range.Min,
		"range_max":            e.Range.Max,
		"quality_factor":       e.QualityFactor,
	}
}

// marshalCanonical produces RFC 8785 style canonical JSON:
// keys sorted by UTF-16 code units, NFC strings, no HTML escaping.
// Floats are written as their shortest round-trip decimal string so that
// the encoding never depends on float formatting rules of a JSON library.
func marshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		return marshalCanonicalString(val)
	case float64:
		return marshalCanonicalString(strconv.FormatFloat(val, 'g', -1, 64))
	case int:
		return []byte(strconv.Itoa(val)), nil
	case []any:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := marshalCanonical(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			return lessUTF16(keys[i], keys[j])
		})

		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := marshalCanonicalString(k)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := marshalCanonical(val[k])
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// marshalCanonicalString NFC normalizes s and encodes it without HTML escaping.
func marshalCanonicalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return nil, err
	}
	// json.Encoder adds trailing newline, remove it
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// lessUTF16 compares strings by UTF-16 code units (RFC 8785 key order).
func lessUTF16(a, b string) bool {
	ua := utf16.Encode([]rune(a))
	ub := utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			return ua[i] < ub[i]
		}
	}
	return len(ua) < len(ub)
}
