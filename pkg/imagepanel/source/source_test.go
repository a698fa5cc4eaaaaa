package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		path     string
		expected Kind
		wantErr  bool
	}{
		{"a.xlsx", KindXLSX, false},
		{"a.XLSM", KindXLSX, false},
		{"a.db", KindSQLite, false},
		{"a.sqlite3", KindSQLite, false},
		{"a.json", KindJSON, false},
		{"a.csv", "", true},
	}

	for _, tt := range tests {
		kind, err := DetectKind(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("DetectKind(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
		if kind != tt.expected {
			t.Errorf("DetectKind(%q) = %q, expected %q", tt.path, kind, tt.expected)
		}
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	if _, err := Load(ctx, filepath.Join(dir, "missing.json"), Config{}); !errors.Is(err, imagepanel.ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}

	csv := filepath.Join(dir, "table.csv")
	os.WriteFile(csv, []byte("image\n"), 0644)
	if _, err := Load(ctx, csv, Config{}); !errors.Is(err, imagepanel.ErrUnsupportedSource) {
		t.Errorf("Expected ErrUnsupportedSource, got %v", err)
	}

	js := filepath.Join(dir, "table.json")
	os.WriteFile(js, []byte(`{"fields": [{"name": "image", "type": "string", "values": ["A"]}]}`), 0644)
	data, err := Load(ctx, js, Config{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !data.Ready() || data.Series[0].Len() != 1 {
		t.Errorf("Unexpected data: %+v", data)
	}

	db := setupTestDB(t)
	data, err = Load(ctx, db, Config{})
	if err != nil {
		t.Fatalf("Load with default query failed: %v", err)
	}
	if data.Series[0].Len() != 2 {
		t.Errorf("Expected 2 rows from default query, got %d", data.Series[0].Len())
	}
}
