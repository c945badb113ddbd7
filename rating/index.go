package rating

import (
	"github.com/brequin/brequin/soc/names"
)

// Index maps every normalized name variant of a professor to its record.
// Keys remember their first insertion position so scans are deterministic;
// the record behind a key is the last one inserted for it.
type Index struct {
	entries map[string]*ProfessorRecord
	keys    []string
}

func BuildIndex(records []ProfessorRecord) *Index {
	index := &Index{entries: make(map[string]*ProfessorRecord)}
	for i := range records {
		index.Add(&records[i])
	}
	return index
}

// Add indexes record under each variant of its full name. Records without a
// name are ignored.
func (i *Index) Add(record *ProfessorRecord) {
	for _, key := range names.Keys(record.FullName()) {
		if _, exists := i.entries[key]; !exists {
			i.keys = append(i.keys, key)
		}
		i.entries[key] = record
	}
}

func (i *Index) Lookup(key string) (*ProfessorRecord, bool) {
	record, ok := i.entries[key]
	return record, ok
}

func (i *Index) Len() int {
	return len(i.keys)
}

// Keys returns the index keys in insertion order.
func (i *Index) Keys() []string {
	keys := make([]string, len(i.keys))
	copy(keys, i.keys)
	return keys
}
