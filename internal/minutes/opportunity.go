// internal/minutes/opportunity.go
package minutes

import (
	"fmt"

	"minutes-service/internal/models"
)

// GenerateOpportunity assembles the opportunity-review (商机评估会) minutes.
// Generation is total: gaps in the snapshot surface as 【…】 placeholders in
// the text, never as errors.
func GenerateOpportunity(form models.FormSnapshot, rows []models.DeliveryRow) string {
	c := newDocContext(form, rows)

	projectName := c.val(models.FieldProjectName, "【请补充项目名称】")
	businessCode := c.val(models.FieldBusinessCode, "【请补充项目商机编码】")
	content := c.val(models.FieldConstructionContent, "【请补充建设内容】")
	capacity := c.val(models.FieldCapacityType, "【请选择产能能力】")
	level := c.val(models.FieldProjectLevel, "【请选择项目级别】")

	var procText string
	switch c.form.GetTrimmed(models.FieldProcurement) {
	case models.AnswerYes:
		procText = fmt.Sprintf("涉及外采，外采预算%.2f万元（含税），", c.metrics.ProcurementWan)
	case models.AnswerNo:
		procText = "不涉及外采，"
	default:
		procText = "【请选择是否后向外采】，"
	}

	key1 := fmt.Sprintf("本项目是%s，项目签约客户是%s项目建设内容为%s",
		projectName, c.clientDescription(), content)
	key2 := fmt.Sprintf("本项目属于%s%s项目，由%s牵头，%s%s%s",
		capacity, level, c.metrics.LeadDepartment,
		c.metrics.AssistDepts, c.roles.Summary(), c.metrics.DeliverySummary)
	key3 := fmt.Sprintf("本项目预算%.2f万元（含税），%s毛利率预估%.2f%%（不含税），利润率预估%.2f%%（不含税）",
		c.metrics.BudgetWan, procText,
		safeFloat(c.form.Get(models.FieldSJGrossMargin)),
		safeFloat(c.form.Get(models.FieldSJNetMargin)))

	points := []Clause{
		{always, func() string { return key1 }},
		{always, func() string { return key2 }},
		{always, func() string { return key3 }},
		{always, func() string {
			return "本项目存在风险：\n" + c.val(models.FieldSJProjectRisk, "【请补充项目风险（商机）】")
		}},
		{always, func() string {
			return c.triState(models.FieldProcurement,
				models.FieldProcurementRisk, "【请补充外采风险】",
				"本项目不涉及外采", "【请评估是否涉及外采】")
		}},
		{always, func() string {
			return c.triState(models.FieldSJCooperationNeeded,
				models.FieldSJCooperationAssessment, "【请补充项目合作评估】",
				"本项目不涉及项目合作", "【请评估是否项目合作】")
		}},
		{always, func() string {
			return c.triState(models.FieldSJPreInvestmentNeeded,
				models.FieldSJPreInvestmentDetails, "【请补充预投入情况】",
				"本项目不涉及预投入情况", "【请评估是否涉及预投入】")
		}},
		{always, func() string { return c.val(models.FieldSJAtomicCapability, "【请补充原子能力评估】") }},
		// Other-risk has no placeholder: an empty value drops the point.
		{always, func() string { return c.form.GetTrimmed(models.FieldOtherRisk) }},
	}

	out := fmt.Sprintf("%s（%s）\n\n商机评估会\n", projectName, businessCode)
	if body := renderClauses(points); body != "" {
		out += body + "\n"
	}
	out += "综合评估各要素，铁三角成员评估跟进此商机。"
	return out
}
