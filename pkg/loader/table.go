package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taipamap/pkg/model"
)

// Recognized columns of a coordinate table.
const (
	colLng   = "X"    // longitude, decimal degrees
	colLat   = "Y"    // latitude, decimal degrees
	colPhoto = "Name" // photo identifier, may be quoted
)

// ParseTable reads one coordinate table: first row is the header, rows
// missing longitude, latitude or photo identifier are dropped silently.
// Row order is preserved.
func ParseTable(r io.Reader) ([]model.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read table header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	xi, xok := idx[strings.ToLower(colLng)]
	yi, yok := idx[strings.ToLower(colLat)]
	ni, nok := idx[strings.ToLower(colPhoto)]
	if !xok || !yok || !nok {
		return nil, fmt.Errorf("table header missing one of %s/%s/%s columns", colLng, colLat, colPhoto)
	}

	var rows []model.Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read table row: %w", err)
		}

		row, ok := parseRow(record, xi, yi, ni)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseRow validates one record. A row is valid only if longitude,
// latitude and photo identifier are all present and non-empty after
// normalization.
func parseRow(record []string, xi, yi, ni int) (model.Row, bool) {
	if xi >= len(record) || yi >= len(record) || ni >= len(record) {
		return model.Row{}, false
	}

	lngStr := strings.TrimSpace(record[xi])
	latStr := strings.TrimSpace(record[yi])
	photo := model.NormalizePhoto(record[ni])
	if lngStr == "" || latStr == "" || photo == "" {
		return model.Row{}, false
	}

	lng, lngErr := strconv.ParseFloat(lngStr, 64)
	lat, latErr := strconv.ParseFloat(latStr, 64)
	if lngErr != nil || latErr != nil {
		return model.Row{}, false
	}

	return model.Row{Lng: lng, Lat: lat, Photo: photo}, true
}
