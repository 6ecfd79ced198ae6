// internal/minutes/common.go
package minutes

import (
	"fmt"
	"strings"

	"minutes-service/internal/models"
)

// UnknownDepartment stands in for the lead department when the iron-triangle
// block yields no project-manager department.
const UnknownDepartment = "【未知事业部】"

// CommonMetrics carries the figures and fragments shared by all three
// document types.
type CommonMetrics struct {
	BudgetWan        float64 // total budget, 万元
	ProcurementWan   float64 // procurement budget, 万元
	ProcurementRatio float64 // procurement / budget, 0 when budget is 0
	LeadDepartment   string
	AssistDepts      string // "A、B协助交付。" or ""
	DeliverySummary  string // numbered per-row breakdown or ""
}

// DeriveCommonMetrics computes the shared figures from the snapshot, the
// delivery table and the iron-triangle block.
func DeriveCommonMetrics(form models.FormSnapshot, rows []models.DeliveryRow) CommonMetrics {
	m := CommonMetrics{
		BudgetWan:      safeFloat(form.Get(models.FieldBudgetAmount)) / 10000,
		ProcurementWan: safeFloat(form.Get(models.FieldProcurementAmount)) / 10000,
	}
	if m.BudgetWan > 0 {
		m.ProcurementRatio = m.ProcurementWan / m.BudgetWan
	}

	m.LeadDepartment = ProjectManagerDepartment(form.Get(models.FieldIronTriangle))
	if m.LeadDepartment == "" {
		m.LeadDepartment = UnknownDepartment
	}

	qualifying := models.QualifyingRows(rows)
	if form.GetTrimmed(models.FieldCapacityType) != models.CapacitySingle && len(qualifying) > 0 {
		m.AssistDepts = assistingDepartments(qualifying)
		m.DeliverySummary = deliverySummary(qualifying)
	}
	return m
}

// assistingDepartments lists the non-lead departments of the table, in row
// order, as a closed fragment. Empty when every row is the lead row.
func assistingDepartments(rows []models.DeliveryRow) string {
	var depts []string
	for _, r := range rows {
		if !r.IsLead() {
			depts = append(depts, strings.TrimSpace(r.Department))
		}
	}
	if len(depts) == 0 {
		return ""
	}
	return strings.Join(depts, "、") + "协助交付。"
}

// deliverySummary renders the per-row delivery breakdown. Lead rows name a
// 项目经理, assisting rows a 子项目经理. Zero or unparseable budgets drop the
// budget fragment.
func deliverySummary(rows []models.DeliveryRow) string {
	var parts []string
	for i, r := range rows {
		var b strings.Builder
		fmt.Fprintf(&b, "%d）%s", i+1, strings.TrimSpace(r.Department))
		if content := strings.TrimSpace(r.DeliveryContent); content != "" {
			b.WriteString("负责交付" + content)
		}
		if budget := safeFloat(r.Budget); budget > 0 {
			fmt.Fprintf(&b, "，预算%.2f万元", budget)
		}
		if pm := strings.TrimSpace(r.ProjectManager); pm != "" {
			if r.IsLead() {
				b.WriteString("，项目经理是" + pm)
			} else {
				b.WriteString("，子项目经理是" + pm)
			}
		}
		parts = append(parts, b.String())
	}
	return "\n" + strings.Join(parts, "；\n") + "。"
}
