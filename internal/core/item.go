package core

import "strings"

// BuildItem maps a validated row into an Item using the field mapping.
// The row must already have passed CheckRow.
func BuildItem(row []string, fm FieldMap) Item {
	return Item{
		MediaType:   fm.Cell(row, FieldMediaType),
		Name:        fm.Cell(row, FieldName),
		Description: optional(fm.Cell(row, FieldDescription)),
		DownloadURL: fm.Cell(row, FieldDownloadURL),
		UserID:      fm.Cell(row, FieldUserID),
		Tags:        splitList(fm.Cell(row, FieldTags)),
		Categories:  splitList(fm.Cell(row, FieldCategories)),
		StartDate:   optional(fm.Cell(row, FieldStartDate)),
		EndDate:     optional(fm.Cell(row, FieldEndDate)),
	}
}

// optional returns nil for an empty cell.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// splitList splits a comma-separated cell into trimmed, non-empty values.
// The result is never nil.
func splitList(s string) []string {
	out := []string{}
	if s == "" {
		return out
	}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
