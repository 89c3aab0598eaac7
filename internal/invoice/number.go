package invoice

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Length of the random invoice number suffix. Five uppercase hex characters
// give roughly a million values per month, which is practically
// collision-free for a single issuer but not globally guaranteed.
const numberSuffixLen = 5

// NewInvoiceNumber generates an invoice number of the form
// INV-<year>-<month>-<suffix> for the given time, e.g. INV-2026-08-3F2A1.
func NewInvoiceNumber(t time.Time) string {
	id := uuid.New()
	suffix := strings.ToUpper(hex.EncodeToString(id[:]))[:numberSuffixLen]
	return fmt.Sprintf("INV-%d-%02d-%s", t.Year(), int(t.Month()), suffix)
}
