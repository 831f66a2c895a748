package models

// Case priorities as the backend stores them.
const (
	PriorityCritical = "Critical"
	PriorityMedium   = "Medium"
	PrioritySafe     = "Safe"
)

// Case is a scheduled radiology encounter. The client never persists it;
// every render fetches a fresh copy and discards it afterwards.
type Case struct {
	ID               string   `json:"_id"`
	Patient          *UserRef `json:"patient"`
	Doctor           *UserRef `json:"doctor"`
	Date             string   `json:"date"`
	TimeSlot         string   `json:"timeSlot"`
	ScanType         string   `json:"scanType"`
	Priority         string   `json:"priority"`
	RefDoctor        string   `json:"refDoctor,omitempty"`
	Symptoms         string   `json:"symptoms,omitempty"`
	Status           string   `json:"status,omitempty"`
	Images           []string `json:"images,omitempty"`
	Diagnosis        string   `json:"diagnosis,omitempty"`
	DoctorNotes      string   `json:"doctorNotes,omitempty"`
	Prescription     string   `json:"prescription,omitempty"`
	RadiologistNotes string   `json:"radiologistNotes,omitempty"`
	AIReport         string   `json:"aiReport,omitempty"`
}

// ShortID is the display form used on case cards.
func (c Case) ShortID() string {
	if len(c.ID) <= 8 {
		return c.ID
	}
	return c.ID[:8] + "..."
}

func (c Case) PatientName() string {
	if c.Patient == nil || c.Patient.Name == "" {
		return "-"
	}
	return c.Patient.Name
}

func (c Case) DoctorName() string {
	if c.Doctor == nil || c.Doctor.Name == "" {
		return "-"
	}
	return c.Doctor.Name
}
