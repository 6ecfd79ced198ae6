// internal/minutes/sync.go
package minutes

import (
	"sort"

	"minutes-service/internal/models"
)

// mirrors pairs the fields whose values are shared between the bidding and
// handoff views (and, for the margin and cooperation fields, the opportunity
// view). Every edge is listed in both directions.
var mirrors = map[string]string{
	models.FieldSJGrossMargin: models.FieldTBGrossMargin,
	models.FieldTBGrossMargin: models.FieldSJGrossMargin,

	models.FieldSJCooperationAssessment: models.FieldTBCooperationAssessment,
	models.FieldTBCooperationAssessment: models.FieldSJCooperationAssessment,

	models.FieldSJCooperationNeeded: models.FieldTBCooperationNeeded,
	models.FieldTBCooperationNeeded: models.FieldSJCooperationNeeded,

	models.FieldTBBusinessType: models.FieldJDBusinessType,
	models.FieldJDBusinessType: models.FieldTBBusinessType,

	models.FieldTBBiddingMethod: models.FieldJDBiddingMethod,
	models.FieldJDBiddingMethod: models.FieldTBBiddingMethod,

	models.FieldJDDeliveryPeriod: models.FieldTBDeliveryPeriod,
	models.FieldTBDeliveryPeriod: models.FieldJDDeliveryPeriod,

	models.FieldJDDeliveryRisk: models.FieldTBDeliveryRisk,
	models.FieldTBDeliveryRisk: models.FieldJDDeliveryRisk,

	models.FieldJDMaintenanceReqs: models.FieldTBMaintenanceReqs,
	models.FieldTBMaintenanceReqs: models.FieldJDMaintenanceReqs,

	models.FieldJDTrialRun: models.FieldTBTrialRun,
	models.FieldTBTrialRun: models.FieldJDTrialRun,

	models.FieldJDMaintenanceAssessment: models.FieldTBMaintenanceAssessment,
	models.FieldTBMaintenanceAssessment: models.FieldJDMaintenanceAssessment,

	models.FieldJDTestingReqs: models.FieldTBTestingReqs,
	models.FieldTBTestingReqs: models.FieldJDTestingReqs,
}

// MirrorField returns the mirror of a field id, or "" when the field has no
// mirror.
func MirrorField(id string) string {
	return mirrors[id]
}

// SyncField propagates an edit of one field into its mirror, in place, and
// returns the ids actually written (the edited field plus its mirror, when
// one exists). A visited set bounds the walk, so a cyclic mirror table cannot
// loop.
func SyncField(form models.FormSnapshot, id, value string) []string {
	applied := []string{id}
	form[id] = value

	visited := map[string]bool{id: true}
	for next := mirrors[id]; next != "" && !visited[next]; next = mirrors[next] {
		visited[next] = true
		form[next] = value
		applied = append(applied, next)
	}
	return applied
}

// SyncAll reconciles a whole snapshot: for every mirrored pair where exactly
// one side holds a value, the value is copied to the empty side. Pairs where
// both sides hold (possibly different) values are left alone. Returns the
// field ids written, sorted.
func SyncAll(form models.FormSnapshot) []string {
	var applied []string
	for src, dst := range mirrors {
		if form.GetTrimmed(src) != "" && form.GetTrimmed(dst) == "" {
			form[dst] = form[src]
			applied = append(applied, dst)
		}
	}
	sort.Strings(applied)
	return applied
}
