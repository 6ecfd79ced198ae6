// internal/minutes/documents_test.go
package minutes

import (
	"strings"
	"testing"

	"minutes-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func fullForm() models.FormSnapshot {
	form := baseForm()
	form[models.FieldConstructionContent] = "园区综合管理平台建设"
	form[models.FieldProjectLevel] = "B类"
	form[models.FieldProcurement] = models.AnswerYes
	form[models.FieldProcurementAmount] = "120000"
	form[models.FieldProcurementRisk] = "外采设备交期存在不确定性"
	form[models.FieldSJGrossMargin] = "35.5"
	form[models.FieldSJNetMargin] = "12"
	form[models.FieldSJProjectRisk] = "客户预算尚未最终批复"
	form[models.FieldSJCooperationNeeded] = models.AnswerNo
	form[models.FieldSJPreInvestmentNeeded] = models.AnswerNo
	form[models.FieldSJAtomicCapability] = "具备平台研发原子能力"
	return form
}

// ==========================
// Opportunity Document Tests
// ==========================

func TestGenerateOpportunity_FullForm(t *testing.T) {
	got := GenerateOpportunity(fullForm(), sampleRows())

	assert.True(t, strings.HasPrefix(got, "智慧园区平台建设（SJ2026001）\n\n商机评估会\n"))
	assert.Contains(t, got, "1、本项目是智慧园区平台建设，项目签约客户是广东电信。项目建设内容为园区综合管理平台建设。")
	assert.Contains(t, got, "2、本项目属于多产能B类项目，由IT系统事业部牵头，云网事业部协助交付。")
	assert.Contains(t, got, "项目经理是张三(IT系统事业部)")
	assert.Contains(t, got, "3、本项目预算50.00万元（含税），涉及外采，外采预算12.00万元（含税），毛利率预估35.50%（不含税），利润率预估12.00%（不含税）。")
	assert.Contains(t, got, "4、本项目存在风险：\n客户预算尚未最终批复。")
	assert.Contains(t, got, "5、外采设备交期存在不确定性。")
	assert.Contains(t, got, "6、本项目不涉及项目合作。")
	assert.Contains(t, got, "7、本项目不涉及预投入情况。")
	assert.Contains(t, got, "8、具备平台研发原子能力。")
	assert.NotContains(t, got, "9、")
	assert.True(t, strings.HasSuffix(got, "综合评估各要素，铁三角成员评估跟进此商机。"))
}

func TestGenerateOpportunity_EmptyFormIsTotal(t *testing.T) {
	got := GenerateOpportunity(models.FormSnapshot{}, nil)

	assert.True(t, strings.HasPrefix(got, "【请补充项目名称】（【请补充项目商机编码】）"))
	assert.Contains(t, got, "【请补充签约客户】")
	assert.Contains(t, got, "【请选择是否后向外采】")
	assert.Contains(t, got, "【请评估是否涉及外采】")
	assert.Contains(t, got, "【铁三角信息未填写】")
	assert.Contains(t, got, "由【未知事业部】牵头")
	assert.Contains(t, got, "本项目预算0.00万元（含税）")
}

func TestGenerateOpportunity_ClientDescription(t *testing.T) {
	t.Run("differing end client is appended", func(t *testing.T) {
		form := fullForm()
		form[models.FieldEndClient] = "园区管委会"
		got := GenerateOpportunity(form, nil)
		assert.Contains(t, got, "项目签约客户是广东电信，最终客户是园区管委会。项目建设内容为")
	})

	t.Run("matching end client collapses", func(t *testing.T) {
		form := fullForm()
		form[models.FieldEndClient] = "广东电信"
		got := GenerateOpportunity(form, nil)
		assert.Contains(t, got, "项目签约客户是广东电信。项目建设内容为")
	})

	// A missing contract client yields the bare placeholder: no terminator,
	// and the end client is ignored.
	t.Run("missing contract client short-circuits", func(t *testing.T) {
		form := fullForm()
		delete(form, models.FieldContractClient)
		form[models.FieldEndClient] = "园区管委会"
		got := GenerateOpportunity(form, nil)
		assert.Contains(t, got, "项目签约客户是【请补充签约客户】项目建设内容为")
		assert.NotContains(t, got, "最终客户")
	})
}

func TestGenerateOpportunity_OtherRiskDroppedWhenEmpty(t *testing.T) {
	form := fullForm()
	withRisk := GenerateOpportunity(form.Clone(), nil)
	assert.NotContains(t, withRisk, "设备供应链风险")

	form[models.FieldOtherRisk] = "设备供应链风险"
	got := GenerateOpportunity(form, nil)
	assert.Contains(t, got, "设备供应链风险。")
}

// ==========================
// Bidding Document Tests
// ==========================

func biddingForm() models.FormSnapshot {
	form := fullForm()
	form[models.FieldTBBusinessType] = "自有业务"
	form[models.FieldTBBiddingMethod] = "公开招标"
	form[models.FieldTBBiddingEntity] = "亿迅科技"
	form[models.FieldTBBidOpeningDate] = "2026-04-10"
	form[models.FieldTBBiddingRisk] = "存在低价竞争风险"
	form[models.FieldTBGrossMargin] = "30"
	form[models.FieldTBDeliveryPeriod] = "6个月"
	form[models.FieldTBDeliveryRisk] = "交付风险可控"
	form[models.FieldTBCooperationNeeded] = models.AnswerNo
	form[models.FieldTBMaintenanceReqs] = "质保期3年"
	form[models.FieldTBIsPrimarySystem] = models.AnswerNo
	form[models.FieldTBMaintenanceAssessment] = "运维工作量可承接"
	form[models.FieldTBFinancialAssessment] = "现金流满足要求"
	form[models.FieldTBTestingReqs] = "等保三级测评"
	form[models.FieldTBTrialRun] = "试运行1个月"
	return form
}

func TestGenerateBidding_FullForm(t *testing.T) {
	got := GenerateBidding(biddingForm(), sampleRows())

	// Half-width parens in this header only.
	assert.True(t, strings.HasPrefix(got, "智慧园区平台建设(SJ2026001)\n\n投标评估会\n一、项目基本信息\n"))
	assert.Contains(t, got, "1、本项目为自有业务项目，项目签约客户是广东电信。客户计划采用公开招标方式，拟以亿迅科技名义投标，开标时间为2026年4月10日。")
	assert.Contains(t, got, "2、项目建设内容为：园区综合管理平台建设。由IT系统事业部牵头，")
	assert.Contains(t, got, "3、本项目预算50.00万元（含税），属于多产能B类项目，涉及外采，外采预算12.00万元（含税），外采占比24.00%，毛利率预估30.00%（不含税）。")
	assert.Contains(t, got, "二、风险及应对措施\n1、存在低价竞争风险。\n2、本项目交付要求：交付周期为6个月，交付风险可控。")
	assert.Contains(t, got, "本项目不涉及亿迅主责系统。")
	assert.True(t, strings.HasSuffix(got, "三、会议结论\n综合评估各要素，铁三角评估可参与此项目投标，并根据内控审批权限作投标审批决策。"))
}

func TestGenerateBidding_MethodDescriptions(t *testing.T) {
	tests := []struct {
		name   string
		method string
		want   string
	}{
		{"unset method", "", "客户计划采用【请选择投标方式】。"},
		{"response method", "竞争性谈判", "名义应答，应答时间为"},
		{"unrecognized method passes through", "框架采购", "客户计划采用框架采购。"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := biddingForm()
			form[models.FieldTBBiddingMethod] = tt.method
			got := GenerateBidding(form, nil)
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestGenerateBidding_RiskAssessmentFollowsMethod(t *testing.T) {
	t.Run("non-tender method waives bidding risk", func(t *testing.T) {
		form := biddingForm()
		form[models.FieldTBBiddingMethod] = "单一来源"
		got := GenerateBidding(form, nil)
		assert.Contains(t, got, "本项目客户采用单一来源方式，不涉及招投标风险。")
		assert.NotContains(t, got, "存在低价竞争风险")
	})

	t.Run("tender method keeps bidding risk", func(t *testing.T) {
		got := GenerateBidding(biddingForm(), nil)
		assert.Contains(t, got, "存在低价竞争风险。")
	})
}

func TestGenerateBidding_ContentPeriodNotDoubled(t *testing.T) {
	form := biddingForm()
	form[models.FieldConstructionContent] = "园区综合管理平台建设。"
	got := GenerateBidding(form, nil)
	assert.Contains(t, got, "项目建设内容为：园区综合管理平台建设。由")
	assert.NotContains(t, got, "园区综合管理平台建设。。")
}

// ==========================
// Handoff Document Tests
// ==========================

func handoffForm() models.FormSnapshot {
	form := fullForm()
	form[models.FieldJDBusinessType] = "集成业务"
	form[models.FieldJDBiddingMethod] = "公开招标"
	form[models.FieldJDBidOpeningDate] = "2026-04-10"
	form[models.FieldJDAwardDate] = "2026-04-20"
	form[models.FieldJDSigningDate] = "2026-05-31"
	form[models.FieldJDDeliveryPeriod] = "8个月"
	form[models.FieldJDDeliveryRisk] = "需关注春节停工窗口"
	form[models.FieldJDMaintenanceReqs] = "质保期2年"
	form[models.FieldJDTrialRun] = "试运行2个月"
	form[models.FieldJDMaintenanceAssessment] = "运维可承接"
	form[models.FieldJDTestingReqs] = "第三方测评"
	return form
}

func TestGenerateHandoff_FullForm(t *testing.T) {
	got := GenerateHandoff(handoffForm(), sampleRows())

	assert.True(t, strings.HasPrefix(got, "智慧园区平台建设（SJ2026001）\n\n项目交底会\n一、项目基本信息\n"))
	assert.Contains(t, got, "1、本项目为集成业务项目，项目签约客户是广东电信。客户采用公开招标方式，开标时间为2026年4月10日，中标时间为2026年4月20日，计划2026年5月31日前完成签约。")
	assert.Contains(t, got, "2、本项目预算50.00万元（含税），涉及外采，外采预算12.00万元（含税），外采占比24.00%。")
	assert.Contains(t, got, "3、项目建设内容为：园区综合管理平台建设。本项目属于多产能B类项目，由IT系统事业部牵头，")
	assert.Contains(t, got, "二、项目文件交底\n1、项目售前资料交底：")
	assert.Contains(t, got, "4、项目干系人交底：")
	assert.Contains(t, got, "三、风险及应对举措\n1、本项目交付要求：交付周期为8个月，需关注春节停工窗口。")
	assert.Contains(t, got, "四、其他参会部门意见\n公共架构评估师意见详见会议纪要中【公共架构结论】部分。")
	assert.True(t, strings.HasSuffix(got, "请项目组尽快完成合同签约。"))
}

func TestHandoffMethodDescriptions(t *testing.T) {
	tests := []struct {
		name   string
		method string
		want   string
	}{
		{"single source", "单一来源", "单一来源方式，无需招投标，"},
		{"order based", "订单方式", "订单方式方式，预计客户在2026年5月31日前完成下单"},
		{"inquiry", "询价", "已完成应答，预计客户在2026年5月31日前完成签约"},
		{"e-commerce", "电商采购", "电商采购方式，预计客户在2026年5月31日前完成签约"},
		{"unset", "", "客户采用【请选择投标方式】。"},
		{"unknown passes through", "特殊渠道", "客户采用特殊渠道。"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := handoffForm()
			form[models.FieldJDBiddingMethod] = tt.method
			got := GenerateHandoff(form, nil)
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestGenerateHandoff_NoProcurement(t *testing.T) {
	form := handoffForm()
	form[models.FieldProcurement] = models.AnswerNo
	got := GenerateHandoff(form, nil)
	assert.Contains(t, got, "2、本项目预算50.00万元（含税），不涉及外采。")
	assert.Contains(t, got, "本项目不涉及外采。")
}
