// internal/minutes/recipients_test.go
package minutes

import (
	"testing"

	"minutes-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func testDirectory() models.ContactDirectory {
	return models.ContactDirectory{
		"IT系统事业部": {
			Leader:  models.Contact{Name: "陈总", Email: "chen@example.com"},
			Manager: models.Contact{Name: "刘经理", Email: "liu@example.com"},
		},
		"云网事业部": {
			Leader:  models.Contact{Name: "黄总", Email: "huang@example.com"},
			Manager: models.Contact{Name: "周经理", Email: "zhou@example.com"},
		},
		"政企客户部": {
			Leader:  models.Contact{Name: "吴总", Email: "wu@example.com"},
			Manager: models.Contact{Name: "郑经理", Email: ""},
		},
	}
}

func TestAutoDetectDepartments(t *testing.T) {
	t.Run("sales department first then table order", func(t *testing.T) {
		tjs := "销售经理：\n李四(政企客户部)"
		got := AutoDetectDepartments(tjs, sampleRows(), testDirectory())
		assert.Equal(t, []string{"政企客户部", "IT系统事业部", "云网事业部"}, got)
	})

	t.Run("sales department outside directory is skipped", func(t *testing.T) {
		tjs := "销售经理：\n李四(外部代理处)"
		got := AutoDetectDepartments(tjs, sampleRows(), testDirectory())
		assert.Equal(t, []string{"IT系统事业部", "云网事业部"}, got)
	})

	t.Run("duplicate departments collapse", func(t *testing.T) {
		rows := append(sampleRows(), models.DeliveryRow{Department: "IT系统事业部"})
		got := AutoDetectDepartments("", rows, testDirectory())
		assert.Equal(t, []string{"IT系统事业部", "云网事业部"}, got)
	})

	t.Run("nothing detected", func(t *testing.T) {
		assert.Empty(t, AutoDetectDepartments("", nil, testDirectory()))
	})
}

func TestResolveRecipients(t *testing.T) {
	t.Run("leaders then managers", func(t *testing.T) {
		got := ResolveRecipients([]string{"IT系统事业部", "云网事业部"}, testDirectory())
		assert.Equal(t,
			"陈总 <chen@example.com>； 黄总 <huang@example.com>；\n刘经理 <liu@example.com>； 周经理 <zhou@example.com>",
			got)
	})

	t.Run("missing email skipped", func(t *testing.T) {
		got := ResolveRecipients([]string{"政企客户部"}, testDirectory())
		assert.Equal(t, "吴总 <wu@example.com>", got)
	})

	t.Run("unknown department contributes nothing", func(t *testing.T) {
		assert.Empty(t, ResolveRecipients([]string{"外部代理处"}, testDirectory()))
	})

	t.Run("email deduplicated across sections", func(t *testing.T) {
		dir := models.ContactDirectory{
			"甲部门": {
				Leader:  models.Contact{Name: "同一人", Email: "both@example.com"},
				Manager: models.Contact{Name: "同一人", Email: "both@example.com"},
			},
		}
		got := ResolveRecipients([]string{"甲部门"}, dir)
		assert.Equal(t, "同一人 <both@example.com>", got)
	})
}
