// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"encoding/binary"
	"encoding/json"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored items.
// It is generated from content so that identical content produces identical IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Record is one extracted business item: a product, an FAQ entry, a contact
// block, and so on. Keys map to string, number, bool, nested mapping, or list
// values, exactly as decoded from the extraction JSON.
type Record map[string]any

// CanonicalText serializes the record to its canonical text form. Object keys
// are emitted in sorted order, so identical records always produce identical
// text (and therefore identical content IDs).
func (r Record) CanonicalText() string {
	data, err := json.Marshal(r)
	if err != nil {
		// Records come from decoded JSON, so marshaling cannot normally fail.
		return ""
	}
	return string(data)
}

// RecordsFrom converts a decoded extraction value into a flat record list.
// A single mapping becomes a one-element list; list entries that are not
// mappings are skipped. Returns nil if the value holds no records.
func RecordsFrom(value any) []Record {
	switch v := value.(type) {
	case map[string]any:
		if len(v) == 0 {
			return nil
		}
		return []Record{Record(v)}
	case []any:
		records := make([]Record, 0, len(v))
		for _, entry := range v {
			if m, ok := entry.(map[string]any); ok && len(m) > 0 {
				records = append(records, Record(m))
			}
		}
		if len(records) == 0 {
			return nil
		}
		return records
	case Record:
		if len(v) == 0 {
			return nil
		}
		return []Record{v}
	case []Record:
		if len(v) == 0 {
			return nil
		}
		return v
	default:
		return nil
	}
}
