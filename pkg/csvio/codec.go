// Package csvio implements the roster file codec: a tolerant reader
// for spreadsheets exported by school staff and a writer whose output
// the reader reconstructs exactly.
package csvio

import (
	"strings"
)

// BOM is the UTF-8 byte-order-mark prefixed to serialized output for
// spreadsheet compatibility with non-ASCII text.
const BOM = "\uFEFF"

// Row maps a normalized header name to the raw cell value.
type Row map[string]string

// NormalizeHeader lowercases a header and strips every non-alphanumeric
// rune, so "Sem1_English" and "Father Name" match as "sem1english" and
// "fathername".
func NormalizeHeader(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(header) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Parse decodes raw file text into ordered row mappings keyed by
// normalized header. The delimiter is sniffed from the header line
// (comma vs semicolon, ties favor comma). Empty lines are skipped and
// rows with fewer cells than headers are dropped.
func Parse(raw string) []Row {
	raw = strings.TrimPrefix(raw, BOM)
	lines := splitLines(raw)
	if len(lines) == 0 {
		return nil
	}

	delim := sniffDelimiter(lines[0])
	headers := make([]string, 0)
	for _, cell := range splitFields(lines[0], delim) {
		headers = append(headers, NormalizeHeader(cell))
	}
	if len(headers) == 0 {
		return nil
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := splitFields(line, delim)
		if len(cells) < len(headers) {
			continue
		}
		row := make(Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			row[header] = cells[i]
		}
		rows = append(rows, row)
	}
	return rows
}

// Serialize encodes rows under the given headers. Every field is
// double-quoted with interior quotes doubled, rows join with CRLF and
// the output carries a leading BOM, which guarantees
// Parse(Serialize(...)) reconstructs the field values exactly.
func Serialize(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(BOM)
	writeRecord(&b, headers)
	for _, row := range rows {
		b.WriteString("\r\n")
		record := make([]string, len(headers))
		copy(record, row)
		writeRecord(&b, record)
	}
	return b.String()
}

func writeRecord(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
}

func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func sniffDelimiter(headerLine string) byte {
	commas := strings.Count(headerLine, ",")
	semis := strings.Count(headerLine, ";")
	if semis > commas {
		return ';'
	}
	return ','
}

// splitFields tokenizes one line, honoring double-quoted fields. A
// doubled quote inside a quoted field decodes to a literal quote.
func splitFields(line string, delim byte) []string {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if quoted && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
				continue
			}
			quoted = !quoted
		case c == delim && !quoted:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	fields = append(fields, current.String())
	return fields
}
