// internal/minutes/clause.go
package minutes

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"minutes-service/internal/models"
)

// Clause is one candidate numbered point of a document section. When reports
// whether the point participates at all; Render produces its text. A rendered
// point that trims to empty is dropped, so numbering stays dense.
type Clause struct {
	When   func() bool
	Render func() string
}

// always is the When of unconditional clauses.
func always() bool { return true }

// renderClauses numbers the surviving clauses 1、2、3… and terminates each
// with a full stop.
func renderClauses(clauses []Clause) string {
	var lines []string
	n := 0
	for _, c := range clauses {
		if c.When != nil && !c.When() {
			continue
		}
		text := strings.TrimSpace(c.Render())
		if text == "" {
			continue
		}
		n++
		lines = append(lines, fmt.Sprintf("%d、%s", n, ensurePeriod(text)))
	}
	return strings.Join(lines, "\n")
}

// safeFloat parses a decimal amount, treating anything unparseable as zero.
func safeFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// ensurePeriod appends a full-width full stop unless the text already ends
// with a full stop of either width.
func ensurePeriod(s string) string {
	if strings.HasSuffix(s, "。") || strings.HasSuffix(s, ".") {
		return s
	}
	return s + "。"
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", time.RFC3339}

// formatDate renders a date as YYYY年M月D日. Unparseable input passes through
// verbatim so a hand-typed value still reads sensibly in the document.
func formatDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
		}
	}
	return s
}

// percent renders a 0..1 ratio as a percentage with two decimals.
func percent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}

// docContext bundles the snapshot with the derived metrics while a document
// is being assembled.
type docContext struct {
	form    models.FormSnapshot
	rows    []models.DeliveryRow
	roles   RoleSet
	metrics CommonMetrics
}

func newDocContext(form models.FormSnapshot, rows []models.DeliveryRow) *docContext {
	roles, _ := ExtractRoles(form.Get(models.FieldIronTriangle))
	return &docContext{
		form:    form,
		rows:    rows,
		roles:   roles,
		metrics: DeriveCommonMetrics(form, rows),
	}
}

// val returns the trimmed field value, or the given placeholder when empty.
// Placeholders keep generation total: missing data degrades the text, never
// fails it.
func (c *docContext) val(field, placeholder string) string {
	if v := c.form.GetTrimmed(field); v != "" {
		return v
	}
	return placeholder
}

// triState maps a 是/否 selector to one of three renderings: the detail text
// (with placeholder) when yes, a fixed not-applicable sentence when no, and
// an assess-me placeholder when unset.
func (c *docContext) triState(selector, detailField, detailPlaceholder, noText, unsetText string) string {
	switch c.form.GetTrimmed(selector) {
	case models.AnswerYes:
		return c.val(detailField, detailPlaceholder)
	case models.AnswerNo:
		return noText
	default:
		return unsetText
	}
}

// clientDescription names the contracting client, and the end client when it
// differs. A missing contract client yields the bare placeholder, with no
// terminator and no end-client fragment.
func (c *docContext) clientDescription() string {
	contract := c.form.GetTrimmed(models.FieldContractClient)
	if contract == "" {
		return "【请补充签约客户】"
	}
	end := c.form.GetTrimmed(models.FieldEndClient)
	if end == "" || end == contract {
		return contract + "。"
	}
	return contract + "，最终客户是" + end + "。"
}
