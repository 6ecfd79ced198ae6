// internal/minutes/bidding.go
package minutes

import (
	"fmt"
	"strings"

	"minutes-service/internal/models"
)

// Bidding methods that carry bid-opening risk. Everything else either gets a
// response-style description or passes through verbatim.
var bidMethodsWithRisk = map[string]bool{
	"公开招标": true,
	"邀请招标": true,
	"比选":   true,
}

var bidMethodsByResponse = map[string]bool{
	"单一来源":  true,
	"询价":    true,
	"竞争性谈判": true,
}

// GenerateBidding assembles the bidding-review (投标评估会) minutes. The
// document is sectioned: basic info with three fixed points, then the
// densely numbered risk points, then the fixed conclusion.
func GenerateBidding(form models.FormSnapshot, rows []models.DeliveryRow) string {
	c := newDocContext(form, rows)

	projectName := c.val(models.FieldProjectName, "【请补充项目名称】")
	businessCode := c.val(models.FieldBusinessCode, "【请补充项目商机编码】")
	businessType := c.val(models.FieldTBBusinessType, "【请补充业务类型】")
	content := c.val(models.FieldConstructionContent, "【请补充建设内容】")
	capacity := c.val(models.FieldCapacityType, "【请选择产能能力】")
	level := c.val(models.FieldProjectLevel, "【请选择项目级别】")

	method := c.form.GetTrimmed(models.FieldTBBiddingMethod)
	var methodDesc string
	switch {
	case method == "":
		methodDesc = "【请选择投标方式】"
	case bidMethodsWithRisk[method]:
		methodDesc = fmt.Sprintf("%s方式，拟以%s名义投标，开标时间为%s",
			method, c.val(models.FieldTBBiddingEntity, "【请选择投标主体】"),
			formatDate(c.form.Get(models.FieldTBBidOpeningDate)))
	case bidMethodsByResponse[method]:
		methodDesc = fmt.Sprintf("%s方式，拟以%s名义应答，应答时间为%s",
			method, c.val(models.FieldTBBiddingEntity, "【请选择投标主体】"),
			formatDate(c.form.Get(models.FieldTBBidResponseDate)))
	default:
		methodDesc = method
	}

	var riskDesc string
	switch {
	case bidMethodsWithRisk[method]:
		riskDesc = c.val(models.FieldTBBiddingRisk, "【请补充招投标风险评估】")
	case method != "":
		riskDesc = fmt.Sprintf("本项目客户采用%s方式，不涉及招投标风险", method)
	default:
		riskDesc = "【请选择投标方式】"
	}

	var procText string
	switch c.form.GetTrimmed(models.FieldProcurement) {
	case models.AnswerYes:
		procText = fmt.Sprintf("涉及外采，外采预算%.2f万元（含税），外采占比%s，",
			c.metrics.ProcurementWan, percent(c.metrics.ProcurementRatio))
	case models.AnswerNo:
		procText = "不涉及外采，"
	default:
		procText = "【请选择是否后向外采】，"
	}

	key1 := fmt.Sprintf("本项目为%s项目，项目签约客户是%s客户计划采用%s。",
		businessType, c.clientDescription(), methodDesc)
	key2 := fmt.Sprintf("项目建设内容为：%s。由%s牵头，%s%s%s",
		strings.TrimSuffix(content, "。"), c.metrics.LeadDepartment,
		c.metrics.AssistDepts, c.roles.Summary(), c.metrics.DeliverySummary)
	key3 := fmt.Sprintf("本项目预算%.2f万元（含税），属于%s%s项目，%s毛利率预估%.2f%%（不含税）。",
		c.metrics.BudgetWan, capacity, level, procText,
		safeFloat(c.form.Get(models.FieldTBGrossMargin)))

	riskPoints := []Clause{
		{always, func() string { return riskDesc }},
		{always, func() string {
			return fmt.Sprintf("本项目交付要求：交付周期为%s，%s",
				c.val(models.FieldTBDeliveryPeriod, "【请补充交付周期】"),
				c.val(models.FieldTBDeliveryRisk, "【请补充交付风险】"))
		}},
		{always, func() string {
			return c.triState(models.FieldProcurement,
				models.FieldProcurementRisk, "【请补充外采风险】",
				"本项目不涉及外采", "【请评估是否涉及外采】")
		}},
		{always, func() string {
			return c.triState(models.FieldTBCooperationNeeded,
				models.FieldTBCooperationAssessment, "【请补充项目合作评估】",
				"本项目不涉及项目合作", "【请评估是否项目合作】")
		}},
		{always, func() string { return c.val(models.FieldTBMaintenanceReqs, "【请补充运维要求】") }},
		{always, func() string {
			return c.triState(models.FieldTBIsPrimarySystem,
				models.FieldTBSecurityAssessment, "【请补充网络和信息安全评估】",
				"本项目不涉及亿迅主责系统", "【请评估是否亿迅主责系统】")
		}},
		{always, func() string { return c.val(models.FieldTBMaintenanceAssessment, "【请补充运维服务评估意见】") }},
		{always, func() string { return c.val(models.FieldTBFinancialAssessment, "【请补充财务评估】") }},
		{always, func() string { return c.val(models.FieldTBTestingReqs, "【请补充等保测评、第三方测评要求】") }},
		{always, func() string { return c.val(models.FieldTBTrialRun, "【请补充试运行情况】") }},
		{always, func() string { return c.form.GetTrimmed(models.FieldOtherRisk) }},
	}

	// Header parentheses are half-width here, unlike the other two documents.
	out := fmt.Sprintf("%s(%s)\n\n投标评估会\n一、项目基本信息\n1、%s\n2、%s\n3、%s\n二、风险及应对措施\n",
		projectName, businessCode, key1, key2, key3)
	if body := renderClauses(riskPoints); body != "" {
		out += body + "\n"
	}
	out += "三、会议结论\n综合评估各要素，铁三角评估可参与此项目投标，并根据内控审批权限作投标审批决策。"
	return out
}
