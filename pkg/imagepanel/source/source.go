// Package source loads result tables from spreadsheets, SQLite databases and JSON frames.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"
)

// DefaultQuery is run against SQLite sources when no query is given.
const DefaultQuery = "SELECT * FROM images"

// Config selects what to read from a source.
type Config struct {
	// Sheet is the worksheet to read from spreadsheets. Empty means the first sheet.
	Sheet string
	// Query is the SQL run against SQLite sources. Empty means DefaultQuery.
	Query string
}

// Kind is the source format.
type Kind string

const (
	KindXLSX   Kind = "xlsx"
	KindSQLite Kind = "sqlite"
	KindJSON   Kind = "json"
)

// DetectKind picks the source format from the file extension.
func DetectKind(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return KindXLSX, nil
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite, nil
	case ".json":
		return KindJSON, nil
	}
	return "", fmt.Errorf("%w: %s", imagepanel.ErrUnsupportedSource, path)
}

// Load reads the table at path. The result is always a single completed query.
func Load(ctx context.Context, path string, cfg Config) (models.PanelData, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return models.PanelData{}, fmt.Errorf("%w: %s", imagepanel.ErrFileNotFound, path)
	}

	kind, err := DetectKind(path)
	if err != nil {
		return models.PanelData{}, err
	}

	switch kind {
	case KindXLSX:
		frame, err := LoadXLSX(path, cfg.Sheet)
		if err != nil {
			return models.PanelData{}, err
		}
		return completed(frame), nil
	case KindSQLite:
		query := cfg.Query
		if query == "" {
			query = DefaultQuery
		}
		frame, err := LoadSQLite(ctx, path, query)
		if err != nil {
			return models.PanelData{}, err
		}
		return completed(frame), nil
	default:
		return LoadJSON(path)
	}
}

func completed(frame models.Frame) models.PanelData {
	return models.PanelData{
		State:  models.LoadingStateDone,
		Series: []models.Frame{frame},
	}
}

// inferType picks a field type from the first non-nil value.
func inferType(values []any) models.FieldType {
	for _, v := range values {
		switch v.(type) {
		case nil:
			continue
		case string, []byte:
			return models.FieldTypeString
		case float64, float32, int, int64, int32:
			return models.FieldTypeNumber
		default:
			if _, ok := v.(interface{ Float64() (float64, error) }); ok {
				return models.FieldTypeNumber
			}
			return models.FieldTypeOther
		}
	}
	return models.FieldTypeOther
}
