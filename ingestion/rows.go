package ingestion

// scanRows splits raw delimited text into rows of fields in a single pass.
//
// Fields are separated by commas. A field may be wrapped in double quotes;
// inside quotes a doubled quote is an escaped quote, and separators and
// newlines do not terminate the field or row. Rows end at '\n', "\r\n" or a
// bare '\r' outside quotes. Malformed quoting never fails: a quote opening
// mid-field starts a quoted section, and an unterminated quote runs to the
// end of the input.
func scanRows(text string) [][]string {
	var (
		rows     [][]string
		fields   []string
		field    []byte
		inQuotes bool
	)

	endField := func() {
		fields = append(fields, string(field))
		field = field[:0]
	}
	endRow := func() {
		endField()
		rows = append(rows, fields)
		fields = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					field = append(field, '"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field = append(field, c)
			continue
		}

		switch c {
		case '"':
			inQuotes = true
		case ',':
			endField()
		case '\n':
			endRow()
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			endRow()
		default:
			field = append(field, c)
		}
	}

	// Flush a final row without a trailing terminator.
	if len(field) > 0 || len(fields) > 0 {
		endRow()
	}

	return rows
}

// isBlankRow reports whether a scanned row carries no content at all.
func isBlankRow(row []string) bool {
	for _, field := range row {
		if field != "" {
			return false
		}
	}
	return true
}
