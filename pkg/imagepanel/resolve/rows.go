package resolve

import (
	"encoding/json"
	"fmt"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"
)

// Row projects row idx of frame using the precomputed role map.
// Unbound roles keep their defaults.
func Row(frame models.Frame, roles models.RoleMap, idx int, opts models.Options) (models.RowRecord, error) {
	rec := models.RowRecord{
		Index:     idx,
		ImageType: DefaultImageType,
	}

	for _, role := range models.Roles() {
		col := roles.Index(role)
		if col == models.Absent {
			continue
		}
		if col >= len(frame.Fields) {
			return models.RowRecord{}, NewRowError(idx, role.String(), ErrValueMissing)
		}
		field := frame.Fields[col]
		if idx < 0 || idx >= len(field.Values) {
			return models.RowRecord{}, NewRowError(idx, field.Name, ErrValueMissing)
		}
		if err := assign(&rec, role, field.Values[idx]); err != nil {
			return models.RowRecord{}, NewRowError(idx, field.Name, err)
		}
	}

	rec.Colors = Colors(rec.PrimaryValue, rec.SecondaryValue, opts)
	rec.Overlay = Rescale(rec.RawOverlay, opts.ImageSize)

	return rec, nil
}

// Rows projects every row of frame in ascending order. The first failure
// aborts the pass and no rows are returned.
func Rows(frame models.Frame, roles models.RoleMap, opts models.Options) ([]models.RowRecord, error) {
	n := frame.Len()
	records := make([]models.RowRecord, 0, n)
	for idx := 0; idx < n; idx++ {
		rec, err := Row(frame, roles, idx, opts)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func assign(rec *models.RowRecord, role models.Role, v any) error {
	var err error
	switch role {
	case models.RoleImage:
		rec.Image, err = toString(v)
	case models.RoleLabel:
		rec.Label, err = toLabel(v)
	case models.RoleImageType:
		var s string
		if s, err = toString(v); err == nil && s != "" {
			rec.ImageType = s
		}
	case models.RolePrimaryValue:
		rec.PrimaryValue, err = toNumber(v)
	case models.RoleSecondaryValue:
		rec.SecondaryValue, err = toNumber(v)
	case models.RoleOverlayTop:
		rec.RawOverlay.Top, err = toNumber(v)
	case models.RoleOverlayLeft:
		rec.RawOverlay.Left, err = toNumber(v)
	case models.RoleOverlayWidth:
		rec.RawOverlay.Width, err = toNumber(v)
	case models.RoleOverlayHeight:
		rec.RawOverlay.Height, err = toNumber(v)
	}
	return err
}

// toNumber converts a numeric cell. Nil reads as 0.
func toNumber(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: expected number, got %T", ErrTypeMismatch, v)
	}
}

// toString converts a text cell. Nil reads as "".
func toString(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	default:
		return "", fmt.Errorf("%w: expected string, got %T", ErrTypeMismatch, v)
	}
}

// toLabel keeps strings and numbers as-is. Nil stays nil.
func toLabel(v any) (any, error) {
	switch v.(type) {
	case nil, string:
		return v, nil
	}
	n, err := toNumber(v)
	if err != nil {
		return nil, fmt.Errorf("%w: expected string or number, got %T", ErrTypeMismatch, v)
	}
	return n, nil
}
