package models

// Default status stamped on every new registration.
const StatusActive = "ACTIVE"

// DoctorRecord is the wire shape expected by the upstream doctors API.
type DoctorRecord struct {
	DoctorID            string `json:"doctor_id"`
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	DateOfBirth         string `json:"date_of_birth"` // YYYY-MM-DD
	Gender              string `json:"gender"`        // "M", "F", "O"
	Email               string `json:"email"`
	PhoneNumber         string `json:"phone_number"`
	LicenseNumber       string `json:"license_number"`
	MedicalSchool       string `json:"medical_school"`
	GraduationYear      int    `json:"graduation_year"`
	BoardCertifications string `json:"board_certifications,omitempty"`
	YearsOfExperience   int    `json:"years_of_experience"`
	Department          string `json:"department"`
	OfficeAddress       string `json:"office_address"`
	IsAvailable         bool   `json:"is_available"`
	Status              string `json:"status"`
}
