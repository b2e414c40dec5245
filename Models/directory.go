package Models

// StaffCadre is a staff member's professional role classification.
type StaffCadre string

const (
	CadreDoctor        StaffCadre = "Doctor"
	CadreNurse         StaffCadre = "Nurse"
	CadreCarer         StaffCadre = "Carer"
	CadreCareAssistant StaffCadre = "Care Assistant"
	CadreCook          StaffCadre = "Cook"
)

// Staff is read-only to the workflow; it is only looked up by id.
type Staff struct {
	ID     string     `json:"id" gorm:"primaryKey"`
	Name   string     `json:"name" gorm:"not null"`
	Cadre  StaffCadre `json:"cadre"`
	Status string     `json:"status"`
	Email  string     `json:"email"`
	State  string     `json:"state"`
}

// Client is read-only to the workflow; it is only looked up by id.
type Client struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Email       string `json:"email"`
	ServiceType string `json:"service_type"`
	Status      string `json:"status"`
	State       string `json:"state"`
}

// Placeholders shown when a referenced id does not resolve.
const (
	UnknownStaffName  = "Unknown Staff"
	UnknownClientName = "Unknown Client"
)
