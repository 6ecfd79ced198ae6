// internal/minutes/roles_test.go
package minutes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleTriangle = "项目经理：张三（IT系统事业部）\n销售经理：李四（政企客户部）\n方案经理：王五（云网事业部）\n交付经理：赵六（智呼事业部）"

// ==========================
// Role Extraction Tests
// ==========================

func TestExtractRoles(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantSet     RoleSet
		wantMatches int
	}{
		{
			name:  "full-width punctuation block",
			input: sampleTriangle,
			wantSet: RoleSet{
				RoleProjectManager:  {Name: "张三", Department: "IT系统事业部"},
				RoleSalesManager:    {Name: "李四", Department: "政企客户部"},
				RoleSolutionManager: {Name: "王五", Department: "云网事业部"},
				RoleDeliveryManager: {Name: "赵六", Department: "智呼事业部"},
			},
			wantMatches: 4,
		},
		{
			name:  "half-width punctuation accepted",
			input: "项目经理: 张三 (IT系统事业部)",
			wantSet: RoleSet{
				RoleProjectManager: {Name: "张三", Department: "IT系统事业部"},
			},
			wantMatches: 1,
		},
		{
			name:  "duplicate label keeps last occurrence",
			input: "项目经理：张三（IT系统事业部）\n项目经理：李四（云网事业部）",
			wantSet: RoleSet{
				RoleProjectManager: {Name: "李四", Department: "云网事业部"},
			},
			wantMatches: 2,
		},
		{
			name:        "empty input",
			input:       "   \n ",
			wantSet:     RoleSet{},
			wantMatches: 0,
		},
		{
			name:        "malformed fragment skipped",
			input:       "项目经理 张三 没有括号",
			wantSet:     RoleSet{},
			wantMatches: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, matches := ExtractRoles(tt.input)
			assert.Equal(t, tt.wantSet, set)
			assert.Len(t, matches, tt.wantMatches)
		})
	}
}

func TestRoleSet_Get_MissingRoleIsPending(t *testing.T) {
	set, _ := ExtractRoles("项目经理：张三（IT系统事业部）")
	info := set.Get(RoleSalesManager)
	assert.Equal(t, Pending, info.Name)
	assert.Equal(t, Pending, info.Department)
}

func TestRoleSet_Summary(t *testing.T) {
	t.Run("empty set collapses to placeholder", func(t *testing.T) {
		set := RoleSet{}
		assert.Equal(t, "【铁三角信息未填写】。", set.Summary())
	})

	t.Run("partial set fills pending slots", func(t *testing.T) {
		set, _ := ExtractRoles("项目经理：张三（IT系统事业部）")
		got := set.Summary()
		assert.Contains(t, got, "项目经理是张三(IT系统事业部)")
		assert.Contains(t, got, "销售经理是【待定】(【待定】)")
		assert.True(t, len(got) > 0 && got[len(got)-3:] == "。")
	})

	t.Run("full set", func(t *testing.T) {
		set, _ := ExtractRoles(sampleTriangle)
		assert.Equal(t,
			"项目经理是张三(IT系统事业部)，销售经理是李四(政企客户部)，方案经理是王五(云网事业部)，交付经理是赵六(智呼事业部)。",
			set.Summary())
	})
}

func TestProjectManagerDepartment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single occurrence", sampleTriangle, "IT系统事业部"},
		{"last occurrence wins", "项目经理：张三（IT系统事业部）\n项目经理：李四（云网事业部）", "云网事业部"},
		{"no project-manager label", "销售经理：李四（政企客户部）", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectManagerDepartment(tt.input))
		})
	}
}

func TestSalesDepartment(t *testing.T) {
	t.Run("strict shape matches", func(t *testing.T) {
		input := "销售经理：\n李四(政企客户部)"
		assert.Equal(t, "政企客户部", SalesDepartment(input))
	})

	t.Run("full-width parens rejected", func(t *testing.T) {
		assert.Equal(t, "", SalesDepartment("销售经理：\n李四（政企客户部）"))
	})

	t.Run("same-line form rejected", func(t *testing.T) {
		assert.Equal(t, "", SalesDepartment("销售经理：李四(政企客户部)"))
	})
}
