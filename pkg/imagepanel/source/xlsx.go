package source

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"
)

// LoadXLSX reads a result table from a worksheet.
//
// The first non-empty row of the data region is the header. A header may force
// a type with a suffix ("label:string"); otherwise a column is numeric when every
// non-empty cell parses as a number. Pictures embedded in the cells of an
// "image" column are read as base64 payloads, and an "imagetype" column is
// added from their extensions when the sheet has none.
func LoadXLSX(path, sheet string) (models.Frame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.Frame{}, imagepanel.NewSourceError(path, "open", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return models.Frame{}, imagepanel.NewSourceError(path, "sheet", fmt.Errorf("workbook has no sheets"))
		}
		sheet = sheets[0]
	}

	frame, err := ReadSheet(f, sheet)
	if err != nil {
		return models.Frame{}, imagepanel.NewSourceError(path, "sheet", err)
	}
	return frame, nil
}

// ReadSheet converts one worksheet of an open workbook into a frame.
func ReadSheet(f *excelize.File, sheet string) (models.Frame, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Frame{}, err
	}

	frame := models.Frame{Name: sheet}

	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return frame, nil
	}
	maxRow, err = pictureRowBound(f, sheet, rows, minRow, minCol, maxCol, maxRow)
	if err != nil {
		return models.Frame{}, err
	}

	var pictureTypes []any
	hasImageType := false

	for col := minCol; col <= maxCol; col++ {
		name, forced := parseHeader(cellAt(rows, minRow, col))
		if name == "" {
			continue
		}
		if name == "imagetype" {
			hasImageType = true
		}

		raw := make([]string, 0, maxRow-minRow)
		for row := minRow + 1; row <= maxRow; row++ {
			raw = append(raw, cellAt(rows, row, col))
		}

		field := buildField(name, forced, raw)

		if name == "image" && field.Type == models.FieldTypeString {
			types, err := readPictures(f, sheet, col, minRow+1, field.Values)
			if err != nil {
				return models.Frame{}, err
			}
			if pictureTypes == nil {
				pictureTypes = types
			}
		}

		frame.Fields = append(frame.Fields, field)
	}

	if !hasImageType && hasAny(pictureTypes) {
		frame.Fields = append(frame.Fields, models.Field{
			Name:   "imagetype",
			Type:   models.FieldTypeString,
			Values: pictureTypes,
		})
	}

	return frame, nil
}

// pictureRowBound extends maxRow to the last picture anchored below the
// header of an "image" column. Such rows may hold no text at all.
func pictureRowBound(f *excelize.File, sheet string, rows [][]string, headerRow, minCol, maxCol, maxRow int) (int, error) {
	cells, err := f.GetPictureCells(sheet)
	if err != nil {
		return maxRow, err
	}
	for _, cell := range cells {
		col, row, err := excelize.CellNameToCoordinates(cell)
		if err != nil {
			return maxRow, err
		}
		col, row = col-1, row-1
		if col < minCol || col > maxCol || row <= maxRow {
			continue
		}
		if name, _ := parseHeader(cellAt(rows, headerRow, col)); name == "image" {
			maxRow = row
		}
	}
	return maxRow, nil
}

// readPictures fills empty image cells from embedded pictures. It returns the
// picture extension per row, nil where the cell held text.
func readPictures(f *excelize.File, sheet string, col, firstRow int, values []any) ([]any, error) {
	types := make([]any, len(values))
	for i, v := range values {
		if v != nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, firstRow+i+1)
		if err != nil {
			return nil, err
		}
		pics, err := f.GetPictures(sheet, cell)
		if err != nil {
			return nil, err
		}
		if len(pics) == 0 {
			continue
		}
		values[i] = base64.StdEncoding.EncodeToString(pics[0].File)
		types[i] = strings.TrimPrefix(strings.ToLower(pics[0].Extension), ".")
	}
	return types, nil
}

// parseHeader splits "name:type" headers.
func parseHeader(s string) (string, models.FieldType) {
	s = strings.TrimSpace(s)
	name, typ, ok := strings.Cut(s, ":")
	if !ok {
		return s, ""
	}
	switch models.FieldType(strings.ToLower(strings.TrimSpace(typ))) {
	case models.FieldTypeString:
		return strings.TrimSpace(name), models.FieldTypeString
	case models.FieldTypeNumber:
		return strings.TrimSpace(name), models.FieldTypeNumber
	case models.FieldTypeOther:
		return strings.TrimSpace(name), models.FieldTypeOther
	}
	return s, ""
}

func buildField(name string, forced models.FieldType, raw []string) models.Field {
	typ := forced
	if typ == "" {
		typ = columnType(raw)
	}

	values := make([]any, len(raw))
	for i, s := range raw {
		if s == "" {
			continue
		}
		if typ != models.FieldTypeNumber {
			values[i] = s
			continue
		}
		// A forced number column keeps unparsable cells as text.
		switch v := parseValue(s).(type) {
		case int64:
			values[i] = float64(v)
		default:
			values[i] = v
		}
	}

	return models.Field{Name: name, Type: typ, Values: values}
}

// columnType returns number when every non-empty cell is numeric.
func columnType(raw []string) models.FieldType {
	seen := false
	for _, s := range raw {
		if s == "" {
			continue
		}
		seen = true
		if _, ok := parseValue(s).(string); ok {
			return models.FieldTypeString
		}
	}
	if !seen {
		return models.FieldTypeString
	}
	return models.FieldTypeNumber
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for finite decimals, or the original string.
// Words such as "nan" and "inf" stay text.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

func cellAt(rows [][]string, row, col int) string {
	if row >= len(rows) || col >= len(rows[row]) {
		return ""
	}
	return rows[row][col]
}

func hasAny(values []any) bool {
	for _, v := range values {
		if v != nil {
			return true
		}
	}
	return false
}
