package record

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/colegioelo/estoque/internal/catalog"
)

// Source identifies where a snapshot came from.
type Source string

const (
	SourceAPI  Source = "api"
	SourceTSV  Source = "tsv"
	SourceJSON Source = "json"
)

// Record is one settled billing line for one student and one product.
type Record struct {
	Unit           catalog.Unit
	ProductCode    string
	ClassSection   string
	StudentID      string
	StudentName    string
	DocumentRef    string
	Installment    string
	SettledOn      *time.Time
	Amount         int64 // Amount in cents
	AmountReceived int64 // Amount in cents
	Grade          string
}

// StudentKey identifies a student within a unit.
type StudentKey struct {
	StudentID string
	Unit      catalog.Unit
}

func (r Record) Key() StudentKey {
	return StudentKey{StudentID: NormalizeStudentID(r.StudentID), Unit: r.Unit}
}

// NormalizeStudentID drops whitespace and hyphens, strips leading zeros and upper-cases
// letters so the same enrollment id written differently by two sources joins.
func NormalizeStudentID(id string) string {
	id = strings.ToUpper(strings.Join(strings.Fields(id), ""))
	id = strings.ReplaceAll(id, "-", "")

	trimmed := strings.TrimLeft(id, "0")
	if trimmed == "" && id != "" {
		return "0"
	}

	return trimmed
}

// Snapshot is one complete extraction of the billing feed.
type Snapshot struct {
	ID      uuid.UUID
	TakenAt time.Time
	Source  Source
	Records []Record
}
