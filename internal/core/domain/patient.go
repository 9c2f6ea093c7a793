package domain

// Patient is the profile record linked to a patient account. Only the
// back-reference to the owning user matters to this subsystem; clinical
// fields belong to the patient-record collaborator.
type Patient struct {
	ID        int64  `json:"id"`
	PatientNo string `json:"patient_no"`
	Name      string `json:"name"`
	Gender    int    `json:"gender"`
	Age       int    `json:"age"`
	Phone     string `json:"phone,omitempty"`
	UserID    int64  `json:"user_id"`
}
