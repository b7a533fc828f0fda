package services

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"solar-leads/models"
)

// SummaryHeader is the column order of the condensed summary.
var SummaryHeader = []string{
	"id",
	"streetAddress",
	"wholeRoofArea",
	"maxSunshineHours",
	"maxArrayArea",
	"maxPanelCount",
	"carbonOffsetFactor",
}

// BuildSummaryCSV serializes rows under SummaryHeader. Fields containing
// commas, quotes or newlines are quoted.
func BuildSummaryCSV(rows []models.CondensedInsight) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(SummaryHeader); err != nil {
		return "", err
	}
	for _, r := range rows {
		record := []string{
			r.ID,
			r.StreetAddress,
			formatFloat(r.WholeRoofArea),
			formatFloat(r.MaxSunshineHours),
			formatFloat(r.MaxArrayArea),
			strconv.Itoa(r.MaxPanelCount),
			formatFloat(r.CarbonOffsetFactor),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
