// internal/minutes/handoff.go
package minutes

import (
	"fmt"
	"strings"

	"minutes-service/internal/models"
)

// Fixed file-handover checklist of the handoff meeting. The block carries its
// own numbering, independent of the risk-point numbering below it.
const handoffChecklist = "1、项目售前资料交底：销售经理、方案经理已对项目所有售前的会议纪要、客户沟通记录、客户需求及交付要求等资料交接给交付经理、项目经理；\n" +
	"2、项目投标资料交底：销售经理、方案经理已对招标文件、投标文件、技术规范书等资料交接给交付经理、项目经理；\n" +
	"3、项目实施计划交底：项目经理已完成项目里程碑计划，各关键节点已有明确的交付成果要求，铁三角已确认该时间节点可行；\n" +
	"4、项目干系人交底：销售经理已上传项目干系人清单，清单已包含客户（签约客户/最终客户）以及合作伙伴干系人的名单和联系方式，铁三角对项目干系人已知晓。"

// GenerateHandoff assembles the project-handoff (项目交底会) minutes.
func GenerateHandoff(form models.FormSnapshot, rows []models.DeliveryRow) string {
	c := newDocContext(form, rows)

	projectName := c.val(models.FieldProjectName, "【请补充项目名称】")
	businessCode := c.val(models.FieldBusinessCode, "【请补充项目商机编码】")
	businessType := c.val(models.FieldJDBusinessType, "【请补充业务类型】")
	content := c.val(models.FieldConstructionContent, "【请补充建设内容】")
	capacity := c.val(models.FieldCapacityType, "【请选择产能能力】")
	level := c.val(models.FieldProjectLevel, "【请选择项目级别】")

	methodDesc := handoffMethodDescription(c)

	var procText string
	switch c.form.GetTrimmed(models.FieldProcurement) {
	case models.AnswerYes:
		procText = fmt.Sprintf("涉及外采，外采预算%.2f万元（含税），外采占比%s。",
			c.metrics.ProcurementWan, percent(c.metrics.ProcurementRatio))
	case models.AnswerNo:
		procText = "不涉及外采。"
	default:
		procText = "【请选择是否后向外采】，"
	}

	key1 := fmt.Sprintf("本项目为%s项目，项目签约客户是%s客户采用%s。",
		businessType, c.clientDescription(), methodDesc)
	key2 := fmt.Sprintf("本项目预算%.2f万元（含税），%s", c.metrics.BudgetWan, procText)
	key3 := fmt.Sprintf("项目建设内容为：%s。本项目属于%s%s项目，由%s牵头，%s%s%s",
		strings.TrimSuffix(content, "。"), capacity, level, c.metrics.LeadDepartment,
		c.metrics.AssistDepts, c.roles.Summary(), c.metrics.DeliverySummary)

	riskPoints := []Clause{
		{always, func() string {
			return fmt.Sprintf("本项目交付要求：交付周期为%s，%s",
				c.val(models.FieldJDDeliveryPeriod, "【请补充交付周期】"),
				c.val(models.FieldJDDeliveryRisk, "【请补充交付风险】"))
		}},
		{always, func() string { return c.val(models.FieldJDMaintenanceReqs, "【请补充运维要求】") }},
		{always, func() string {
			return c.triState(models.FieldProcurement,
				models.FieldProcurementRisk, "【请补充外采风险】",
				"本项目不涉及外采", "【请评估是否涉及外采】")
		}},
		{always, func() string { return c.val(models.FieldJDTrialRun, "【请补充试运行情况】") }},
		{always, func() string { return c.val(models.FieldJDMaintenanceAssessment, "【请补充运维服务评估意见】") }},
		{always, func() string { return c.val(models.FieldJDTestingReqs, "【请补充等保测评、第三方测评要求】") }},
		{always, func() string { return c.form.GetTrimmed(models.FieldOtherRisk) }},
	}

	out := fmt.Sprintf("%s（%s）\n\n项目交底会\n一、项目基本信息\n1、%s\n2、%s\n3、%s\n二、项目文件交底\n%s\n三、风险及应对举措\n",
		projectName, businessCode, key1, key2, key3, handoffChecklist)
	if body := renderClauses(riskPoints); body != "" {
		out += body + "\n"
	}
	out += "四、其他参会部门意见\n公共架构评估师意见详见会议纪要中【公共架构结论】部分。\n" +
		"五、会议结论\n项目铁三角对项目情况、项目角色分工、项目计划及里程碑节点、项目风险及问题解决方案等内容均已了解清晰，交底完成，请项目组尽快完成合同签约。"
	return out
}

// handoffMethodDescription narrates how the contract will be reached for each
// procurement route known at handoff time. Unknown routes pass through
// verbatim.
func handoffMethodDescription(c *docContext) string {
	method := c.form.GetTrimmed(models.FieldJDBiddingMethod)
	if method == "" {
		return "【请选择投标方式】"
	}

	openDate := formatDate(c.form.Get(models.FieldJDBidOpeningDate))
	awardDate := formatDate(c.form.Get(models.FieldJDAwardDate))
	signingDate := formatDate(c.form.Get(models.FieldJDSigningDate))
	responseDate := formatDate(c.form.Get(models.FieldJDBidResponseDate))

	switch {
	case bidMethodsWithRisk[method]:
		return fmt.Sprintf("%s方式，开标时间为%s，中标时间为%s，计划%s前完成签约",
			method, openDate, awardDate, signingDate)
	case method == "单一来源":
		return fmt.Sprintf("%s方式，无需招投标，%s已完成应答，计划%s前完成签约",
			method, responseDate, signingDate)
	case method == "原子能力下单" || method == "订单方式":
		return fmt.Sprintf("%s方式，预计客户在%s前完成下单", method, signingDate)
	case method == "询价" || method == "竞争性谈判":
		return fmt.Sprintf("%s方式，%s已完成应答，预计客户在%s前完成签约",
			method, responseDate, signingDate)
	case method == "电商采购" || method == "直接采购":
		return fmt.Sprintf("%s方式，预计客户在%s前完成签约", method, signingDate)
	default:
		return method
	}
}
