package admin

import (
	"encoding/csv"
	"io"
	"strings"
)

// ImportDetail records why one row was rejected.
type ImportDetail struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

// ImportSummary is the outcome of a bulk user import.
type ImportSummary struct {
	Success    int            `json:"success"`
	Failure    int            `json:"failure"`
	Duplicates int            `json:"duplicates"`
	Updated    int            `json:"updated"`
	Details    []ImportDetail `json:"details"`
}

// ParseUserCSV reads a user CSV into rows keyed by trimmed, lowercased
// headers, so "Name", " name " and "NAME" all map to "name".
func ParseUserCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, value := range record {
			if i < len(headers) && headers[i] != "" {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// TempPassword derives the initial password for an imported user: the first
// two letters of the name uppercased plus the last four digits of the mobile.
// The name is sliced by runes so multibyte letters survive intact.
func TempPassword(name, mobile string) string {
	nameRunes := []rune(name)
	if len(nameRunes) > 2 {
		nameRunes = nameRunes[:2]
	}
	mobilePart := mobile
	if len(mobilePart) > 4 {
		mobilePart = mobilePart[len(mobilePart)-4:]
	}
	return strings.ToUpper(string(nameRunes)) + mobilePart
}

// ParseAccessFlag treats anything except an explicit "false" as enabled.
func ParseAccessFlag(s string) bool {
	return strings.ToLower(strings.TrimSpace(s)) != "false"
}
