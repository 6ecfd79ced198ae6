// internal/models/directory.go
package models

// ProjectManager is one row of the project-manager directory (data.json
// pm_data). JSON keys match the source file.
type ProjectManager struct {
	Name       string `json:"项目经理"`
	Level      string `json:"级别"`
	Department string `json:"在职部门"`
}

// Contact is a name/email pair from the organizational contact directory.
type Contact struct {
	Name  string
	Email string
}

// DeptContacts holds the leader and manager contacts of one department.
type DeptContacts struct {
	Leader  Contact
	Manager Contact
}

// ContactDirectory maps department name to its contact pair (data.json
// email_data). Treated as a read-only lookup table.
type ContactDirectory map[string]DeptContacts
