// internal/minutes/roles.go
package minutes

import (
	"fmt"
	"regexp"
	"strings"
)

// The four iron-triangle roles.
const (
	RoleProjectManager  = "项目经理"
	RoleSalesManager    = "销售经理"
	RoleSolutionManager = "方案经理"
	RoleDeliveryManager = "交付经理"
)

// Pending is substituted for the name and department of an unresolved role.
const Pending = "【待定】"

// RoleInfo is the resolved person for one role.
type RoleInfo struct {
	Name       string
	Department string
}

// RoleMatch is one successfully parsed entry of the iron-triangle block, in
// scan order. Fragments without a colon or a closing parenthesis produce no
// match and are skipped silently.
type RoleMatch struct {
	Role       string
	Name       string
	Department string
}

// RoleSet maps role label to the resolved person. When a label occurs more
// than once in the block, the later match overwrites the earlier one.
type RoleSet map[string]RoleInfo

var (
	// label: name (department), tolerant of full/half-width colons and
	// parentheses and of line breaks inside a match.
	rolePattern = regexp.MustCompile(`(?s)(.+?)\s*[:：]\s*(.+?)\s*[(（](.+?)[)）]`)

	// Single-role variant anchored on the project-manager label.
	pmDeptPattern = regexp.MustCompile(`(?s)项目经理\s*[:：]\s*.+?\s*[(（](.+?)[)）]`)

	// Recipient resolution uses a deliberately stricter shape: the label with
	// a full-width colon, the name on its own line, the department in ASCII
	// parentheses. Departments that do not match stay subject to manual
	// selection.
	salesDeptPattern = regexp.MustCompile(`(?s)销售经理：\n.+?\((.+?)\)`)
)

// ExtractRoles scans the iron-triangle block left to right and returns the
// collapsed role set together with the ordered match list. Empty input yields
// an empty set.
func ExtractRoles(text string) (RoleSet, []RoleMatch) {
	set := RoleSet{}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return set, nil
	}
	var matches []RoleMatch
	for _, m := range rolePattern.FindAllStringSubmatch(trimmed, -1) {
		match := RoleMatch{
			Role:       strings.TrimSpace(m[1]),
			Name:       strings.TrimSpace(m[2]),
			Department: strings.TrimSpace(m[3]),
		}
		matches = append(matches, match)
		set[match.Role] = RoleInfo{Name: match.Name, Department: match.Department}
	}
	return set, matches
}

// Get returns the resolved person for a role, or pending placeholders.
func (s RoleSet) Get(role string) RoleInfo {
	if info, ok := s[role]; ok {
		return info
	}
	return RoleInfo{Name: Pending, Department: Pending}
}

// Summary renders the one-sentence iron-triangle line used by every document
// type. An empty set collapses to a fill-me-in placeholder.
func (s RoleSet) Summary() string {
	if len(s) == 0 {
		return "【铁三角信息未填写】。"
	}
	pm := s.Get(RoleProjectManager)
	sales := s.Get(RoleSalesManager)
	solution := s.Get(RoleSolutionManager)
	delivery := s.Get(RoleDeliveryManager)
	return fmt.Sprintf("项目经理是%s(%s)，销售经理是%s(%s)，方案经理是%s(%s)，交付经理是%s(%s)。",
		pm.Name, pm.Department,
		sales.Name, sales.Department,
		solution.Name, solution.Department,
		delivery.Name, delivery.Department)
}

// ProjectManagerDepartment extracts only the project manager's department
// without building the full role set. It keeps the overwrite semantics of
// ExtractRoles: the last occurrence wins.
func ProjectManagerDepartment(text string) string {
	matches := pmDeptPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return ""
	}
	return strings.TrimSpace(matches[len(matches)-1][1])
}

// SalesDepartment extracts the sales manager's department using the strict
// recipient-resolution pattern, or "" when the block does not match it.
func SalesDepartment(text string) string {
	if m := salesDeptPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
