// Package registration holds the doctor registration wizard: field
// definitions, per-field rules, step navigation and the transform into
// the upstream wire shape. It has no HTTP or framework dependencies.
package registration

// Step is a zero-based wizard step index.
type Step int

const (
	StepIdentity Step = iota
	StepCredentials
	StepProfessional
	StepContact
)

// Field names match the upstream JSON keys.
const (
	FieldDoctorID            = "doctor_id"
	FieldFirstName           = "first_name"
	FieldLastName            = "last_name"
	FieldDateOfBirth         = "date_of_birth"
	FieldGender              = "gender"
	FieldLicenseNumber       = "license_number"
	FieldMedicalSchool       = "medical_school"
	FieldGraduationYear      = "graduation_year"
	FieldBoardCertifications = "board_certifications"
	FieldYearsOfExperience   = "years_of_experience"
	FieldDepartment          = "department"
	FieldEmail               = "email"
	FieldPhoneNumber         = "phone_number"
	FieldOfficeAddress       = "office_address"
	FieldIsAvailable         = "is_available"
)

// StepInfo describes one wizard step and the fields it owns.
type StepInfo struct {
	Step        Step     `json:"index"`
	Key         string   `json:"key"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Fields      []string `json:"fields"`
}

var steps = []StepInfo{
	{
		Step:        StepIdentity,
		Key:         "identity",
		Title:       "Personal Information",
		Description: "Basic personal details",
		Fields:      []string{FieldDoctorID, FieldFirstName, FieldLastName, FieldDateOfBirth, FieldGender},
	},
	{
		Step:        StepCredentials,
		Key:         "credentials",
		Title:       "Education and Credentials",
		Description: "Medical education and certifications",
		Fields:      []string{FieldLicenseNumber, FieldMedicalSchool, FieldGraduationYear, FieldBoardCertifications},
	},
	{
		Step:        StepProfessional,
		Key:         "professional",
		Title:       "Professional Details",
		Description: "Experience and specialization",
		Fields:      []string{FieldYearsOfExperience, FieldDepartment},
	},
	{
		Step:        StepContact,
		Key:         "contact",
		Title:       "Contact and Availability",
		Description: "Contact information and availability",
		Fields:      []string{FieldEmail, FieldPhoneNumber, FieldOfficeAddress, FieldIsAvailable},
	},
}

// Genders accepted for gender.
var Genders = []string{"M", "F", "O"}

// Departments offered by the registration form.
var Departments = []string{
	"Cardiology",
	"Dermatology",
	"Emergency Medicine",
	"Family Medicine",
	"Internal Medicine",
	"Neurology",
	"Oncology",
	"Orthopedics",
	"Pediatrics",
	"Psychiatry",
	"Radiology",
	"Surgery",
	"Other",
}

var (
	fieldStep  = map[string]Step{}
	fieldOrder []string
)

func init() {
	for _, s := range steps {
		for _, f := range s.Fields {
			fieldStep[f] = s.Step
			fieldOrder = append(fieldOrder, f)
		}
	}
}

// Steps returns a copy of the wizard step definitions in order.
func Steps() []StepInfo {
	out := make([]StepInfo, len(steps))
	for i, s := range steps {
		s.Fields = append([]string(nil), s.Fields...)
		out[i] = s
	}
	return out
}

// StepCount is the number of wizard steps.
func StepCount() int { return len(steps) }

// Valid reports whether s is a known step index.
func (s Step) Valid() bool { return s >= 0 && int(s) < len(steps) }

// Fields returns the field names owned by s, or nil for an unknown step.
func (s Step) Fields() []string {
	if !s.Valid() {
		return nil
	}
	return steps[s].Fields
}

// Key returns the stable name of s, such as "identity".
func (s Step) Key() string {
	if !s.Valid() {
		return ""
	}
	return steps[s].Key
}

// StepOf returns the step owning field name.
func StepOf(name string) (Step, bool) {
	s, ok := fieldStep[name]
	return s, ok
}

// FieldNames returns every field name in wizard order.
func FieldNames() []string {
	return append([]string(nil), fieldOrder...)
}

func isKnownField(name string) bool {
	_, ok := fieldStep[name]
	return ok
}
