package source

import (
	"encoding/json"
	"testing"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"
)

func TestDecodeJSONPanel(t *testing.T) {
	raw := []byte(`{
		"state": "Loading",
		"series": [{"name": "cams", "fields": [
			{"name": "image", "type": "string", "values": ["AAAA"]},
			{"name": "value1", "type": "number", "values": [12.5]}
		]}]
	}`)

	data, err := DecodeJSON(raw)
	if err != nil {
		t.Fatal(err)
	}
	if data.State != models.LoadingStateLoading {
		t.Errorf("Expected Loading state, got %q", data.State)
	}
	if len(data.Series) != 1 || data.Series[0].Name != "cams" {
		t.Fatalf("Unexpected series: %+v", data.Series)
	}
	if v := data.Series[0].Fields[1].Values[0]; v != json.Number("12.5") {
		t.Errorf("Expected json.Number 12.5, got %v (type: %T)", v, v)
	}
}

func TestDecodeJSONFrame(t *testing.T) {
	raw := []byte(`{"fields": [
		{"name": "image", "values": [null, "BBBB"]},
		{"name": "label", "values": [3, 4]},
		{"name": "flag", "values": [true]},
		{"name": "empty", "values": []}
	]}`)

	data, err := DecodeJSON(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !data.Ready() {
		t.Fatalf("Expected a completed query, got %+v", data)
	}

	tests := []struct {
		name string
		typ  models.FieldType
	}{
		{"image", models.FieldTypeString},
		{"label", models.FieldTypeNumber},
		{"flag", models.FieldTypeOther},
		{"empty", models.FieldTypeOther},
	}

	fields := data.Series[0].Fields
	for i, tt := range tests {
		if fields[i].Name != tt.name || fields[i].Type != tt.typ {
			t.Errorf("field %d = (%q, %q), expected (%q, %q)", i, fields[i].Name, fields[i].Type, tt.name, tt.typ)
		}
	}
}

func TestDecodeJSONInvalid(t *testing.T) {
	if _, err := DecodeJSON([]byte(`{"fields": [`)); err == nil {
		t.Errorf("Expected error for truncated JSON")
	}
}
