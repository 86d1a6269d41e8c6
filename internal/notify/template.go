// Package notify renders the operator's outbound message template per
// order. Templating only; delivery is somebody else's problem.
package notify

import (
	"strconv"
	"strings"

	feesdomain "github.com/smallbiznis/storewatch/internal/fees/domain"
)

// DefaultTemplate is the starting template offered to the operator.
const DefaultTemplate = "Hola {CUSTOMER}! Tu orden #{ORDER} del {DATE} por ${TOTAL} fue registrada."

// Render substitutes the supported tokens with order values. Unknown tokens
// are left as typed; a best-effort message beats an error here.
func Render(template string, o feesdomain.AnnotatedOrder) string {
	replacer := strings.NewReplacer(
		"{ORDER}", o.Number,
		"{CUSTOMER}", o.Customer,
		"{DATE}", o.Date,
		"{TOTAL}", formatAmount(o.Gross),
		"{NET}", formatAmount(o.Fees.Net),
		"{METHOD}", o.Method,
	)
	return replacer.Replace(template)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
