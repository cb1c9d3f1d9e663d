package sstable

import "math"

// Special field IDs reserved near the top of the 32-bit signed range,
// mirroring original_source's SpecialFieldIds/SpecialFields. The SST
// core itself never inspects these - they exist so callers building
// schemas on top of this package share one reserved-ID convention.
const (
	fieldIDEnd = math.MaxInt32 - 10000

	// SequenceNumberFieldID is reserved for a record's sequence number.
	SequenceNumberFieldID int32 = math.MaxInt32 - 1
	// ValueKindFieldID is reserved for a record's value kind (e.g.
	// put/delete tombstone tag).
	ValueKindFieldID int32 = math.MaxInt32 - 2
	// RowIDFieldID is reserved for a synthetic row identifier.
	RowIDFieldID int32 = math.MaxInt32 - 5
	// IndexScoreFieldID is reserved for an index-assigned relevance
	// score.
	IndexScoreFieldID int32 = fieldIDEnd - 1
)

// KeyFieldPrefix names the prefix used for synthesized primary-key
// fields, mirroring SpecialFields::KEY_FIELD_PREFIX.
const KeyFieldPrefix = "_KEY_"

// Special field names, matching original_source's SpecialFields
// accessors.
const (
	SequenceNumberFieldName = "_SEQUENCE_NUMBER"
	ValueKindFieldName      = "_VALUE_KIND"
	RowIDFieldName          = "_ROW_ID"
	IndexScoreFieldName     = "_INDEX_SCORE"
)

// IsSpecialFieldName reports whether name is one of the four reserved
// special field names.
func IsSpecialFieldName(name string) bool {
	switch name {
	case SequenceNumberFieldName, ValueKindFieldName, RowIDFieldName, IndexScoreFieldName:
		return true
	default:
		return false
	}
}

// IsUserFieldID reports whether id is available for user schemas (below
// the reserved range).
func IsUserFieldID(id int32) bool {
	return id < fieldIDEnd
}
