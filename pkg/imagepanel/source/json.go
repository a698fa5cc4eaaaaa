package source

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"
)

// LoadJSON reads either a full panel payload ({"state": ..., "series": [...]})
// or a single frame ({"fields": [...]}). Fields without a type get one inferred
// from their values. Numbers are kept as json.Number.
func LoadJSON(path string) (models.PanelData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.PanelData{}, imagepanel.NewSourceError(path, "open", err)
	}
	data, err := DecodeJSON(raw)
	if err != nil {
		return models.PanelData{}, imagepanel.NewSourceError(path, "decode", err)
	}
	return data, nil
}

// DecodeJSON decodes the payload accepted by LoadJSON.
func DecodeJSON(raw []byte) (models.PanelData, error) {
	var probe struct {
		State  *models.LoadingState `json:"state"`
		Series []models.Frame       `json:"series"`
		Fields []models.Field       `json:"fields"`
		Name   string               `json:"name"`
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&probe); err != nil {
		return models.PanelData{}, err
	}

	var data models.PanelData
	if probe.Series != nil || probe.State != nil {
		data.Series = probe.Series
		data.State = models.LoadingStateDone
		if probe.State != nil {
			data.State = *probe.State
		}
	} else {
		data = completed(models.Frame{Name: probe.Name, Fields: probe.Fields})
	}

	for i := range data.Series {
		for j := range data.Series[i].Fields {
			f := &data.Series[i].Fields[j]
			if f.Type == "" {
				f.Type = inferType(f.Values)
			}
		}
	}

	return data, nil
}
