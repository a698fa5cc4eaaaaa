// Package models defines data structures for image panel rendering.
package models

// FieldType is the declared scalar type of a field.
type FieldType string

const (
	// FieldTypeString marks text columns.
	FieldTypeString FieldType = "string"
	// FieldTypeNumber marks numeric columns.
	FieldTypeNumber FieldType = "number"
	// FieldTypeOther covers time, boolean and anything else.
	FieldTypeOther FieldType = "other"
)

// Field is a single named column of a result table.
type Field struct {
	// Name is the declared column name.
	Name string `json:"name"`
	// Type is the declared scalar type.
	Type FieldType `json:"type"`
	// Values holds one entry per row. Entries may be nil.
	Values []any `json:"values"`
}

// Frame is a result table: an ordered list of equally long fields.
type Frame struct {
	// Name is the series name (optional).
	Name string `json:"name,omitempty"`
	// Fields is the ordered list of columns.
	Fields []Field `json:"fields"`
}

// Len returns the row count, taken from the first field.
func (f Frame) Len() int {
	if len(f.Fields) == 0 {
		return 0
	}
	return len(f.Fields[0].Values)
}

// LoadingState is the query state reported by the data source.
type LoadingState string

const (
	LoadingStateNotStarted LoadingState = "NotStarted"
	LoadingStateLoading    LoadingState = "Loading"
	LoadingStateStreaming  LoadingState = "Streaming"
	LoadingStateDone       LoadingState = "Done"
	LoadingStateError      LoadingState = "Error"
)

// PanelData is the data handed to a render pass.
type PanelData struct {
	// State is the loading state of the query.
	State LoadingState `json:"state"`
	// Series holds the result tables. Only the first one is rendered.
	Series []Frame `json:"series"`
}

// Ready reports whether the query finished and produced at least one series.
func (d PanelData) Ready() bool {
	return d.State == LoadingStateDone && len(d.Series) > 0
}
