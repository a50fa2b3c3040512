package registration

import (
	"strconv"
	"strings"

	"github.com/harentsoaR/doctor-registration/internal/models"
)

// Transform maps form values to the upstream wire shape. Text is trimmed,
// numbers fall back to 0 when they do not parse, blank certifications are
// omitted and the default status is stamped.
func Transform(values map[string]string) models.DoctorRecord {
	text := func(name string) string {
		return strings.TrimSpace(values[name])
	}

	return models.DoctorRecord{
		DoctorID:            text(FieldDoctorID),
		FirstName:           text(FieldFirstName),
		LastName:            text(FieldLastName),
		DateOfBirth:         text(FieldDateOfBirth),
		Gender:              text(FieldGender),
		Email:               text(FieldEmail),
		PhoneNumber:         text(FieldPhoneNumber),
		LicenseNumber:       text(FieldLicenseNumber),
		MedicalSchool:       text(FieldMedicalSchool),
		GraduationYear:      toInt(values[FieldGraduationYear]),
		BoardCertifications: text(FieldBoardCertifications),
		YearsOfExperience:   toInt(values[FieldYearsOfExperience]),
		Department:          text(FieldDepartment),
		OfficeAddress:       text(FieldOfficeAddress),
		IsAvailable:         text(FieldIsAvailable) == "true",
		Status:              models.StatusActive,
	}
}

// Revert maps a wire record back to raw form values.
func Revert(rec models.DoctorRecord) map[string]string {
	return map[string]string{
		FieldDoctorID:            rec.DoctorID,
		FieldFirstName:           rec.FirstName,
		FieldLastName:            rec.LastName,
		FieldDateOfBirth:         rec.DateOfBirth,
		FieldGender:              rec.Gender,
		FieldEmail:               rec.Email,
		FieldPhoneNumber:         rec.PhoneNumber,
		FieldLicenseNumber:       rec.LicenseNumber,
		FieldMedicalSchool:       rec.MedicalSchool,
		FieldGraduationYear:      strconv.Itoa(rec.GraduationYear),
		FieldBoardCertifications: rec.BoardCertifications,
		FieldYearsOfExperience:   strconv.Itoa(rec.YearsOfExperience),
		FieldDepartment:          rec.Department,
		FieldOfficeAddress:       rec.OfficeAddress,
		FieldIsAvailable:         strconv.FormatBool(rec.IsAvailable),
	}
}

func toInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
