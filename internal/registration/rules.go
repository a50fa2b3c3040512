package registration

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

const (
	MinAge            = 18
	MaxAge            = 100
	MinGraduationYear = 1950
	MaxExperience     = 50
	MinPhoneDigits    = 10
)

// Rule is one predicate over a trimmed field value and the message shown
// when it fails. now is the evaluation instant for date-relative rules.
type Rule struct {
	Message string
	Valid   func(value string, now time.Time) bool

	required bool
}

// Schema maps a field name to its ordered rules. A field without a
// required rule is optional: a blank value skips its rules.
type Schema map[string][]Rule

var (
	doctorIDPattern = regexp.MustCompile(`^[A-Z0-9]+$`)
	namePattern     = regexp.MustCompile(`^[\p{L} ]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[\d\s().-]+$`)

	validate = validator.New()
)

// DefaultSchema returns the rules of the doctor registration form.
func DefaultSchema() Schema {
	return Schema{
		FieldDoctorID: {
			required("Doctor ID is required"),
			lengthBetween(3, 20, "Doctor ID must be between 3 and 20 characters"),
			matches(doctorIDPattern, "Doctor ID may only contain uppercase letters and numbers"),
		},
		FieldFirstName: {
			required("First name is required"),
			lengthBetween(2, 50, "First name must be between 2 and 50 characters"),
			matches(namePattern, "First name may only contain letters"),
		},
		FieldLastName: {
			required("Last name is required"),
			lengthBetween(2, 50, "Last name must be between 2 and 50 characters"),
			matches(namePattern, "Last name may only contain letters"),
		},
		FieldDateOfBirth: {
			required("Date of birth is required"),
			{Message: "Date of birth must be a valid date (YYYY-MM-DD)", Valid: func(v string, _ time.Time) bool {
				_, err := time.Parse(dateLayout, v)
				return err == nil
			}},
			{Message: fmt.Sprintf("Age must be between %d and %d years", MinAge, MaxAge), Valid: func(v string, now time.Time) bool {
				dob, err := time.Parse(dateLayout, v)
				if err != nil {
					return false
				}
				age := AgeAt(dob, now)
				return age >= MinAge && age <= MaxAge
			}},
		},
		FieldGender: {
			required("Gender is required"),
			oneOf(Genders, "Gender must be one of M, F or O"),
		},
		FieldLicenseNumber: {
			required("License number is required"),
			lengthBetween(5, 50, "License number must be between 5 and 50 characters"),
		},
		FieldMedicalSchool: {
			required("Medical school is required"),
			lengthBetween(5, 100, "Medical school must be between 5 and 100 characters"),
		},
		FieldGraduationYear: {
			required("Graduation year is required"),
			integer("Graduation year must be a number"),
			{Message: fmt.Sprintf("Graduation year must be between %d and the current year", MinGraduationYear), Valid: func(v string, now time.Time) bool {
				n, err := strconv.Atoi(v)
				return err == nil && n >= MinGraduationYear && n <= now.Year()
			}},
		},
		FieldBoardCertifications: {},
		FieldYearsOfExperience: {
			required("Years of experience is required"),
			integer("Years of experience must be a number"),
			intBetween(0, MaxExperience, fmt.Sprintf("Years of experience must be between 0 and %d", MaxExperience)),
		},
		FieldDepartment: {
			required("Department is required"),
			oneOf(Departments, "Select a department from the list"),
		},
		FieldEmail: {
			required("Email is required"),
			{Message: "Email must be a valid email address", Valid: func(v string, _ time.Time) bool {
				return validate.Var(v, "email") == nil
			}},
			lengthBetween(0, 100, "Email must be at most 100 characters"),
		},
		FieldPhoneNumber: {
			required("Phone number is required"),
			matches(phonePattern, "Phone number may only contain digits, spaces, parentheses, dots, dashes and a leading +"),
			{Message: fmt.Sprintf("Phone number must contain at least %d digits", MinPhoneDigits), Valid: func(v string, _ time.Time) bool {
				return countDigits(v) >= MinPhoneDigits
			}},
		},
		FieldOfficeAddress: {
			required("Office address is required"),
			lengthBetween(10, 200, "Office address must be between 10 and 200 characters"),
		},
		FieldIsAvailable: {
			required("Availability is required"),
			oneOf([]string{"true", "false"}, "Availability must be true or false"),
		},
	}
}

// Check returns the first failing rule's message for value, or "".
func (s Schema) Check(name, value string, now time.Time) string {
	rules := s[name]
	value = strings.TrimSpace(value)
	if value == "" && !isRequired(rules) {
		return ""
	}
	for _, r := range rules {
		if !r.Valid(value, now) {
			return r.Message
		}
	}
	return ""
}

// Optional reports whether name may be left blank.
func (s Schema) Optional(name string) bool {
	return !isRequired(s[name])
}

// AgeAt returns the completed years between dob and now.
func AgeAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

func isRequired(rules []Rule) bool {
	for _, r := range rules {
		if r.required {
			return true
		}
	}
	return false
}

func required(msg string) Rule {
	return Rule{Message: msg, required: true, Valid: func(v string, _ time.Time) bool {
		return v != ""
	}}
}

func lengthBetween(min, max int, msg string) Rule {
	return Rule{Message: msg, Valid: func(v string, _ time.Time) bool {
		n := utf8.RuneCountInString(v)
		return n >= min && n <= max
	}}
}

func matches(re *regexp.Regexp, msg string) Rule {
	return Rule{Message: msg, Valid: func(v string, _ time.Time) bool {
		return re.MatchString(v)
	}}
}

func oneOf(options []string, msg string) Rule {
	return Rule{Message: msg, Valid: func(v string, _ time.Time) bool {
		return slices.Contains(options, v)
	}}
}

func integer(msg string) Rule {
	return Rule{Message: msg, Valid: func(v string, _ time.Time) bool {
		_, err := strconv.Atoi(v)
		return err == nil
	}}
}

func intBetween(min, max int, msg string) Rule {
	return Rule{Message: msg, Valid: func(v string, _ time.Time) bool {
		n, err := strconv.Atoi(v)
		return err == nil && n >= min && n <= max
	}}
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
