// internal/models/form.go
package models

import "strings"

// FormSnapshot holds the raw form field values keyed by field id.
// A field absent from the snapshot reads as empty, never as an error.
type FormSnapshot map[string]string

// Get returns the raw value for a field id, or "" when absent.
func (s FormSnapshot) Get(id string) string {
	if s == nil {
		return ""
	}
	return s[id]
}

// GetTrimmed returns the trimmed value for a field id.
func (s FormSnapshot) GetTrimmed(id string) string {
	return strings.TrimSpace(s.Get(id))
}

// Clone returns an independent copy of the snapshot.
func (s FormSnapshot) Clone() FormSnapshot {
	out := make(FormSnapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Field ids mirror the capture form. The SJ_/TB_/JD_ prefixes mark the
// opportunity-review, bidding-review and handoff views of the form.
const (
	FieldProjectName         = "projectName"
	FieldBusinessCode        = "businessCode"
	FieldContractClient      = "contractClient"
	FieldEndClient           = "endClient"
	FieldConstructionContent = "constructionContent"
	FieldCapacityType        = "capacityType"
	FieldProjectLevel        = "projectLevel"
	FieldBudgetAmount        = "budgetAmount"
	FieldProcurement         = "procurement"
	FieldProcurementAmount   = "procurementAmount"
	FieldProcurementRisk     = "procurementRisk"
	FieldCoreCapability      = "coreCapability"
	FieldIronTriangle        = "ironTriangleInput"
	FieldOtherRisk           = "OT_risk"

	FieldSJGrossMargin           = "SJ_grossMargin"
	FieldSJNetMargin             = "SJ_netMargin"
	FieldSJProjectRisk           = "SJ_projectRisk"
	FieldSJCooperationNeeded     = "SJ_projectCooperationNeeded"
	FieldSJCooperationAssessment = "SJ_projectCooperationAssessment"
	FieldSJPreInvestmentNeeded   = "SJ_preInvestmentNeeded"
	FieldSJPreInvestmentDetails  = "SJ_preInvestmentDetails"
	FieldSJAtomicCapability      = "SJ_atomicCapability"

	FieldTBBusinessType           = "TB_businessType"
	FieldTBBiddingMethod          = "TB_biddingMethod"
	FieldTBBiddingEntity          = "TB_biddingEntity"
	FieldTBBidOpeningDate         = "TB_bidOpeningDate"
	FieldTBBidResponseDate        = "TB_bidResponseDate"
	FieldTBBiddingRisk            = "TB_biddingRisk"
	FieldTBGrossMargin            = "TB_grossMargin"
	FieldTBDeliveryPeriod         = "TB_deliveryPeriod"
	FieldTBDeliveryRisk           = "TB_deliveryRisk"
	FieldTBMaintenanceReqs        = "TB_maintenanceRequirements"
	FieldTBMaintenanceAssessment  = "TB_maintenanceAssessment"
	FieldTBFinancialAssessment    = "TB_financialAssessment"
	FieldTBTestingReqs            = "TB_testingRequirements"
	FieldTBTrialRun               = "TB_trialRun"
	FieldTBCooperationNeeded      = "TB_projectCooperationNeeded"
	FieldTBCooperationAssessment  = "TB_projectCooperationAssessment"
	FieldTBIsPrimarySystem        = "TB_isPrimarySystem"
	FieldTBSecurityAssessment     = "TB_securityAssessment"

	FieldJDBusinessType          = "JD_businessType"
	FieldJDBiddingMethod         = "JD_biddingMethod"
	FieldJDBidOpeningDate        = "JD_bidOpeningDate"
	FieldJDBidResponseDate       = "JD_bidResponseDate"
	FieldJDAwardDate             = "JD_awardDate"
	FieldJDSigningDate           = "JD_signingDate"
	FieldJDDeliveryPeriod        = "JD_deliveryPeriod"
	FieldJDDeliveryRisk          = "JD_deliveryRisk"
	FieldJDMaintenanceReqs       = "JD_maintenanceRequirements"
	FieldJDMaintenanceAssessment = "JD_maintenanceAssessment"
	FieldJDTestingReqs           = "JD_testingRequirements"
	FieldJDTrialRun              = "JD_trialRun"
)

// Capacity classifications. Only the single-capacity value suppresses the
// delivery-table summaries.
const (
	CapacitySingle      = "单产能"
	CapacityMulti       = "多产能"
	CapacityIntegration = "大集成"
)

// Tri-state selector values (an empty string means unset).
const (
	AnswerYes = "是"
	AnswerNo  = "否"
)

// LeadRowType labels the lead delivery row. The label, not the position,
// determines a row's role.
const LeadRowType = "牵头交付事业部"

// DeliveryRow is one row of the delivery-details table. JSON keys match the
// exported snapshot format.
type DeliveryRow struct {
	RowType         string `json:"类型"`
	Department      string `json:"事业部"`
	ProjectManager  string `json:"项目经理"`
	DeliveryContent string `json:"交付内容"`
	Budget          string `json:"预算（万元）"`
}

// IsLead reports whether the row is the lead delivery row.
func (r DeliveryRow) IsLead() bool {
	return r.RowType == LeadRowType
}

// QualifyingRows drops rows without a department; such rows are excluded
// from every downstream summary.
func QualifyingRows(rows []DeliveryRow) []DeliveryRow {
	var out []DeliveryRow
	for _, r := range rows {
		if strings.TrimSpace(r.Department) != "" {
			out = append(out, r)
		}
	}
	return out
}
