// internal/minutes/attendees.go
package minutes

import (
	"fmt"
	"strings"

	"minutes-service/internal/models"
)

// Meeting types the attendee planner knows.
const (
	MeetingOpportunity = "商机评估会"
	MeetingBidding     = "投标评估会"
	MeetingHandoff     = "项目交底会"
	MeetingCombined    = "商机、投标评估会"
)

// Reviewer slot names beyond the four iron-triangle roles.
const (
	slotLegalRisk   = "法律风险评估"
	slotCooperation = "项目合作"
	slotProcurement = "采购评估"
	slotSecurity    = "网信安评估"
	slotMaintenance = "运维服务评估意见"
	slotArchitect   = "公共架构评估"
	slotFinance     = "财务评估"
)

// mandatorySlots lists the slot order per meeting type. Unknown types yield
// no mandatory slots; optional reviewers can still apply.
var mandatorySlots = map[string][]string{
	MeetingOpportunity: {RoleProjectManager, RoleSalesManager, RoleSolutionManager, RoleDeliveryManager},
	MeetingBidding:     {RoleProjectManager, RoleSalesManager, RoleSolutionManager, RoleDeliveryManager, slotMaintenance, slotFinance},
	MeetingHandoff:     {RoleProjectManager, RoleSalesManager, RoleSolutionManager, RoleDeliveryManager, slotArchitect},
	MeetingCombined:    {RoleProjectManager, RoleSalesManager, RoleSolutionManager, RoleDeliveryManager, slotMaintenance, slotFinance},
}

// architectsByDepartment assigns public-architecture reviewers by the project
// manager's department.
var architectsByDepartment = map[string]string{
	"IT系统事业部":                "王沛文、高航",
	"大数据AI应用事业部":             "许智洋",
	"数字政府事业部/社会治理大数据研究院广州分院": "李佳鑫、许伟明",
	"云网事业部":                  "许智洋",
	"智呼事业部":                  "郑辉",
	"智慧企业集成事业部/工业主研院":        "郑辉、陈家辉",
	"智慧网络运营事业部":              "周宏江、高航、许伟明",
	"智慧业财事业部":                "王沛文",
}

// DeliveryDepartments lists the departments eligible for the delivery table;
// the set coincides with the architect assignment table.
func DeliveryDepartments() []string {
	return []string{
		"IT系统事业部",
		"大数据AI应用事业部",
		"数字政府事业部/社会治理大数据研究院广州分院",
		"云网事业部",
		"智呼事业部",
		"智慧企业集成事业部/工业主研院",
		"智慧网络运营事业部",
		"智慧业财事业部",
	}
}

// AttendeesInput carries the planner's questionnaire answers. BudgetAmount is
// in 万元 here, unlike the document forms.
type AttendeesInput struct {
	MeetingType   string
	IronTriangle  string
	BudgetAmount  string
	ProjectLevel  string
	Procurement   string // 是/否, drives both finance routing and the optional procurement reviewer
	Cooperation   string
	PrimarySystem string
	LegalRisk     string
}

// DeriveAttendees builds the attendee list for a meeting: the meeting type's
// mandatory slots first, then the flagged optional reviewers, deduplicated
// keeping first occurrence.
func DeriveAttendees(in AttendeesInput) []string {
	roles, _ := ExtractRoles(in.IronTriangle)

	roleLine := func(role string) string {
		info, ok := roles[role]
		if !ok || info.Name == "" || info.Department == "" {
			return role
		}
		return fmt.Sprintf("%s：%s【%s】", role, info.Name, info.Department)
	}

	lines := map[string]string{
		RoleProjectManager:  roleLine(RoleProjectManager),
		RoleSalesManager:    roleLine(RoleSalesManager),
		RoleSolutionManager: roleLine(RoleSolutionManager),
		RoleDeliveryManager: roleLine(RoleDeliveryManager),
		slotLegalRisk:       "法律风险评估: 李屹【法律合规部】",
		slotCooperation:     "项目合作评估: 高仲凯/许海燕【市场及渠道支撑部（标前）】",
		slotProcurement:     "采购评估: 梁其容/罗晓纯【采购部】",
		slotSecurity:        "网信安评估: 吴中华/陆艺阳【运营管理部/研发与质量管理中心、安全事业部】",
		slotMaintenance:     "运维服务评估: 熊俊伟, 蒋朝豪【运营管理部/研发与质量管理中心】",
		slotArchitect: fmt.Sprintf("公共架构评估师： %s【运营管理部/研发与质量管理中心】",
			architectsByDepartment[roles.Get(RoleProjectManager).Department]),
	}

	// Finance joins only from 50万 upward. Below-threshold projects carry no
	// finance line at all, even where the meeting type asks for the slot.
	if safeFloat(in.BudgetAmount) >= 50 {
		if in.Procurement == models.AnswerNo && (in.ProjectLevel == "B类" || in.ProjectLevel == "C类") {
			lines[slotFinance] = "财务评估: 刘椰韵【财务部】"
		} else {
			lines[slotFinance] = "财务评估: 戴亮【财务部】"
		}
	}

	var out []string
	for _, slot := range mandatorySlots[in.MeetingType] {
		if line := lines[slot]; line != "" {
			out = append(out, line)
		}
	}

	optional := []struct {
		slot string
		on   bool
	}{
		{slotCooperation, in.Cooperation == models.AnswerYes},
		{slotProcurement, in.Procurement == models.AnswerYes},
		{slotSecurity, in.PrimarySystem == models.AnswerYes},
		{slotLegalRisk, in.LegalRisk == models.AnswerYes},
	}
	for _, opt := range optional {
		if opt.on {
			if line := lines[opt.slot]; line != "" {
				out = append(out, line)
			}
		}
	}

	return dedupStrings(out)
}

// FormatAttendees joins the attendee lines one per line.
func FormatAttendees(lines []string) string {
	return strings.Join(lines, "\n")
}

func dedupStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
