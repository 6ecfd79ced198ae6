// internal/minutes/recipients.go
package minutes

import (
	"fmt"
	"strings"

	"minutes-service/internal/models"
)

// AutoDetectDepartments proposes the notification departments for a form: the
// sales manager's department (only when the contact directory knows it) plus
// every department of the delivery table, deduplicated in that order.
func AutoDetectDepartments(ironTriangle string, rows []models.DeliveryRow, dir models.ContactDirectory) []string {
	var depts []string
	if sales := SalesDepartment(ironTriangle); sales != "" {
		if _, ok := dir[sales]; ok {
			depts = append(depts, sales)
		}
	}
	for _, r := range rows {
		if d := strings.TrimSpace(r.Department); d != "" {
			depts = append(depts, d)
		}
	}
	return dedupStrings(depts)
}

// ResolveRecipients renders the notification list for the chosen departments:
// a leaders section followed by a managers section, each `name <email>`
// joined by `； `. Contacts without an email are skipped, and an email
// already emitted as a leader is not repeated as a manager. Departments the
// directory does not know contribute nothing.
func ResolveRecipients(departments []string, dir models.ContactDirectory) string {
	var leaders, managers []string
	seen := make(map[string]bool)

	appendContact := func(list *[]string, c models.Contact) {
		if c.Email == "" || seen[c.Email] {
			return
		}
		seen[c.Email] = true
		*list = append(*list, fmt.Sprintf("%s <%s>", c.Name, c.Email))
	}

	for _, dept := range departments {
		if contacts, ok := dir[dept]; ok {
			appendContact(&leaders, contacts.Leader)
		}
	}
	for _, dept := range departments {
		if contacts, ok := dir[dept]; ok {
			appendContact(&managers, contacts.Manager)
		}
	}

	out := strings.Join(leaders, "； ")
	if len(leaders) > 0 && len(managers) > 0 {
		out += "；\n"
	}
	return out + strings.Join(managers, "； ")
}
