// Package export serializes transaction views into the delimited text format
// used for the downloadable export artifact.
//
// The header row is the bare comma-joined field names; every data-row value is
// quoted unconditionally (doubling any inner quotes). That mix is why this
// does not sit on encoding/csv: that writer only quotes on demand and cannot
// quote one class of rows but not the other.
package export

import (
	"io"
	"os"
	"strings"

	"fintrack/internal/core"
)

// FileName is the fixed name of the export artifact.
const FileName = "transactions.csv"

// MIMEType identifies the artifact as delimited text.
const MIMEType = "text/csv"

// header lists the transaction fields in their natural enumeration order;
// every row holds the same fields in the same order.
var header = []string{"userId", "transactionId", "amount", "category", "type", "date", "description"}

// EncodeCSV writes records to w. An empty input produces no output at all.
func EncodeCSV(w io.Writer, records []core.Transaction) error {
	if len(records) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	for _, tx := range records {
		b.WriteByte('\n')
		writeRow(&b, []string{
			tx.UserID,
			tx.TransactionID,
			tx.Amount,
			tx.Category,
			string(tx.Type),
			tx.Date,
			tx.Description,
		})
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFile encodes records into path. Writing zero records produces an empty
// file rather than an error.
func WriteFile(path string, records []core.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
}
