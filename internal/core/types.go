package core

import (
	"time"
)

// Delimiter separates cells in the input and in the reject log.
const Delimiter = ';'

// Field is a logical column name recognised in the header row.
type Field string

const (
	FieldMediaType   Field = "mediaType"
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldDownloadURL Field = "downloadUrl"
	FieldUserID      Field = "userId"
	FieldTags        Field = "tags"
	FieldCategories  Field = "categories"
	FieldStartDate   Field = "startDate"
	FieldEndDate     Field = "endDate"
)

// Fields lists every field the header must contain, in template order.
var Fields = []Field{
	FieldMediaType,
	FieldName,
	FieldDescription,
	FieldDownloadURL,
	FieldUserID,
	FieldTags,
	FieldCategories,
	FieldStartDate,
	FieldEndDate,
}

// FieldMap maps each logical field to its column position in a row.
// It is built once from the header and never modified afterwards.
type FieldMap map[Field]int

// Item is one converted media record, destined for one <item> element.
type Item struct {
	MediaType   string
	Name        string
	Description *string // nil when the cell was empty
	DownloadURL string
	UserID      string
	Tags        []string // never nil
	Categories  []string // never nil
	StartDate   *string
	EndDate     *string
}

// Result summarises a completed conversion run.
type Result struct {
	RunID          string
	RowsRead       int // data rows, header excluded
	ItemsWritten   int
	RowsRejected   int
	BatchesWritten int
	BatchesDropped int      // only non-zero with Options.KeepGoing
	ItemsDropped   int      // items lost with dropped batches
	Files          []string // written batch files, in order
	RejectLog      string   // bad_rows.txt path, empty when nothing was rejected
	BytesRead      int64
	Duration       time.Duration
}
