// Package csvexport renders submission records as CSV for back-office
// reporting.
package csvexport

import (
	"encoding/csv"
	"io"
	"time"

	"notaryflow/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns defines the CSV header row.
var Columns = []string{
	"Reference Number",
	"First Name",
	"Last Name",
	"Email",
	"Document Type",
	"Category",
	"Signing Option",
	"Signing State",
	"Status",
	"Meeting ID",
	"Signed Date",
	"Submitted At",
	"Created At",
}

// Writer wraps csv.Writer for exporting submissions as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteSubmissions converts a batch of submissions to CSV rows and writes
// them.
func (w *Writer) WriteSubmissions(subs []domain.SubmissionRecord) error {
	for i := range subs {
		if err := w.csv.Write(SubmissionToRow(&subs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// SubmissionToRow converts a single submission to a string slice matching
// Columns. The signed date column is blank when no timestamp resolves.
func SubmissionToRow(sub *domain.SubmissionRecord) []string {
	row := make([]string, len(Columns))
	row[0] = sub.ReferenceNumber
	row[1] = sub.FirstName
	row[2] = sub.LastName
	row[3] = sub.Email
	row[4] = sub.DocumentType
	row[5] = sub.Category
	row[6] = string(sub.SigningOption)
	row[7] = string(sub.SigningState)
	row[8] = string(sub.Status)
	row[9] = sub.MeetingID
	if signed, ok := sub.SignedDate(); ok {
		row[10] = signed.String()
	}
	row[11] = sub.SubmittedAt.UTC().Format(time.RFC3339)
	row[12] = sub.CreatedAt.UTC().Format(time.RFC3339)
	return row
}
