package swiftpass

import (
	"strings"
)

// Bill is a decoded reconciliation report.
type Bill struct {
	List []map[string]string `json:"list"`
	Stat map[string]string   `json:"stat"`
}

// DecodeBill parses the backtick CSV report. The first row holds the column
// titles, the last two rows are the statistics header and values. Cells are
// zipped with titles by position and carry their value after the first
// backtick.
func DecodeBill(body []byte) (*Bill, error) {
	rows := splitRows(string(body))
	if len(rows) < 3 {
		return nil, &Error{Kind: KindReportParse, Message: "report needs a title row and two stat rows", Raw: body}
	}

	titles := splitCells(rows[0])
	for i := range titles {
		titles[i] = strings.TrimSpace(titles[i])
	}

	data := rows[1 : len(rows)-2]
	bill := &Bill{
		List: make([]map[string]string, 0, len(data)),
		Stat: zipRow(titles, rows[len(rows)-1]),
	}
	for _, row := range data {
		bill.List = append(bill.List, zipRow(titles, row))
	}
	return bill, nil
}

func splitRows(s string) []string {
	s = strings.TrimRight(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func splitCells(row string) []string {
	return strings.Split(strings.TrimRight(row, "\r"), ",")
}

func zipRow(titles []string, row string) map[string]string {
	cells := splitCells(row)
	out := make(map[string]string, len(titles))
	for i, title := range titles {
		if i >= len(cells) {
			break
		}
		out[title] = cellValue(cells[i])
	}
	return out
}

func cellValue(cell string) string {
	if i := strings.IndexByte(cell, '`'); i >= 0 {
		return strings.TrimSpace(cell[i+1:])
	}
	return strings.TrimSpace(cell)
}
