package source

import (
	"context"
	"database/sql"
	"encoding/base64"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"
)

// LoadSQLite runs query against the database at path and returns the result as a frame.
func LoadSQLite(ctx context.Context, path, query string) (models.Frame, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return models.Frame{}, imagepanel.NewSourceError(path, "open", err)
	}
	defer db.Close()

	frame, err := QueryFrame(ctx, db, query)
	if err != nil {
		return models.Frame{}, imagepanel.NewSourceError(path, "query", err)
	}
	return frame, nil
}

// QueryFrame runs query and maps each result column to a field.
// Column types follow SQLite affinity; BLOB values are base64-encoded.
func QueryFrame(ctx context.Context, db *sql.DB, query string) (models.Frame, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return models.Frame{}, err
	}
	defer rows.Close()

	cols, err := rows.ColumnTypes()
	if err != nil {
		return models.Frame{}, err
	}

	fields := make([]models.Field, len(cols))
	for i, c := range cols {
		fields[i] = models.Field{Name: c.Name(), Type: affinity(c.DatabaseTypeName())}
	}

	dest := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range dest {
		ptrs[i] = &dest[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return models.Frame{}, err
		}
		for i, v := range dest {
			fields[i].Values = append(fields[i].Values, sqlValue(v))
		}
	}
	if err := rows.Err(); err != nil {
		return models.Frame{}, err
	}

	for i := range fields {
		if fields[i].Type == "" {
			fields[i].Type = inferType(fields[i].Values)
		}
		if fields[i].Values == nil {
			fields[i].Values = []any{}
		}
	}

	return models.Frame{Fields: fields}, nil
}

// affinity maps a declared column type to a field type using SQLite's
// affinity rules. It returns "" when the type must be inferred from values.
func affinity(decl string) models.FieldType {
	d := strings.ToUpper(decl)
	switch {
	case d == "":
		return ""
	case strings.Contains(d, "INT"):
		return models.FieldTypeNumber
	case strings.Contains(d, "CHAR"), strings.Contains(d, "CLOB"), strings.Contains(d, "TEXT"):
		return models.FieldTypeString
	case strings.Contains(d, "BLOB"):
		return models.FieldTypeString
	case strings.Contains(d, "REAL"), strings.Contains(d, "FLOA"), strings.Contains(d, "DOUB"):
		return models.FieldTypeNumber
	case strings.Contains(d, "NUM"), strings.Contains(d, "DEC"):
		return models.FieldTypeNumber
	}
	return models.FieldTypeOther
}

func sqlValue(v any) any {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case []byte:
		return base64.StdEncoding.EncodeToString(x)
	default:
		return x
	}
}
