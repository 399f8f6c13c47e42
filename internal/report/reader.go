package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Row is one decoded report entry.
type Row struct {
	ID     string
	Status Status
}

// ReadRows decodes the report file. A missing file yields no rows; a row
// that cannot be decoded is returned as an error because the report is the
// audit trail and silently dropping entries would falsify it.
func ReadRows(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open status report: %w", err)
	}
	defer file.Close()

	var rows []Row
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		row, err := decodeRow(line)
		if err != nil {
			return nil, fmt.Errorf("status report line %d: %w", lineNo, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read status report: %w", err)
	}
	return rows, nil
}

// Summarize counts rows per outcome.
func Summarize(rows []Row) map[Status]int {
	counts := make(map[Status]int)
	for _, row := range rows {
		counts[row.Status]++
	}
	return counts
}

func decodeRow(line string) (Row, error) {
	// The identifier field may itself contain an escaped comma, so split
	// on the quote boundary between the two JSON strings rather than the
	// first comma.
	sep := strings.Index(line, `","`)
	if sep < 0 {
		return Row{}, fmt.Errorf("malformed row %q", line)
	}
	idField := line[:sep+1]
	statusField := line[sep+2:]

	var id, status string
	if err := json.Unmarshal([]byte(idField), &id); err != nil {
		return Row{}, fmt.Errorf("decode identifier: %w", err)
	}
	if err := json.Unmarshal([]byte(statusField), &status); err != nil {
		return Row{}, fmt.Errorf("decode status: %w", err)
	}
	return Row{ID: id, Status: Status(status)}, nil
}
