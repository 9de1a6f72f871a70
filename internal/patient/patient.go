package patient

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Skufu/medbot/internal/prescribe"
)

const (
	MinAge        = 0
	MaxAge        = 100
	MinNameLength = 2
)

var ErrPrescriptionSet = errors.New("prescription already set")

// ValidationError describes a rejected field value. The message is shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

var genders = map[string]string{
	"male":   "Male",
	"female": "Female",
	"other":  "Other",
}

// Patient holds one consultation. Setters store a value only after it validates.
type Patient struct {
	id             string
	name           string
	age            int
	gender         string
	medicalHistory string
	symptomCode    string
	prescription   string
}

func New() *Patient {
	return &Patient{id: uuid.NewString()}
}

func (p *Patient) ID() string {
	return p.id
}

func (p *Patient) Name() string {
	return p.name
}

func (p *Patient) SetName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if len([]rune(name)) < MinNameLength {
		return "", invalid("name", "Name must contain at least two characters and not be empty.")
	}
	p.name = name
	return name, nil
}

func (p *Patient) Age() int {
	return p.age
}

func (p *Patient) SetAge(age int) (int, error) {
	if age < MinAge {
		return 0, invalid("age", "Age cannot be negative.")
	}
	if age > MaxAge {
		return 0, invalid("age", "Age cannot be greater than 100.")
	}
	p.age = age
	return age, nil
}

// SetAgeText parses raw console input before applying SetAge.
func (p *Patient) SetAgeText(raw string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalid("age", "Invalid age. Please enter a valid integer.")
	}
	return p.SetAge(age)
}

func (p *Patient) Gender() string {
	return p.gender
}

// SetGender ignores case and surrounding whitespace.
func (p *Patient) SetGender(raw string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", invalid("gender", "Gender cannot be empty.")
	}
	gender, ok := genders[key]
	if !ok {
		return "", invalid("gender", "Gender should be either Male, Female, or Other.")
	}
	p.gender = gender
	return gender, nil
}

func (p *Patient) MedicalHistory() string {
	return p.medicalHistory
}

// SetMedicalHistory always succeeds; blank input clears the history.
func (p *Patient) SetMedicalHistory(raw string) string {
	if strings.TrimSpace(raw) == "" {
		raw = ""
	}
	p.medicalHistory = raw
	return raw
}

func (p *Patient) SymptomCode() string {
	return p.symptomCode
}

// SetSymptomCode ignores case and surrounding whitespace and stores the code uppercase.
func (p *Patient) SetSymptomCode(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", invalid("symptomCode", "Symptom code cannot be empty.")
	}
	symptom, ok := prescribe.ParseCode(raw)
	if !ok {
		return "", invalid("symptomCode", "Symptom code must be either S1, S2, or S3.")
	}
	p.symptomCode = symptom.Code()
	return p.symptomCode, nil
}

// Symptoms returns the label for the stored symptom code, or "Unknown".
func (p *Patient) Symptoms() string {
	symptom, ok := prescribe.ParseCode(p.symptomCode)
	if !ok {
		return "Unknown"
	}
	return symptom.Label()
}

func (p *Patient) Prescription() string {
	return p.prescription
}

// SetPrescription attaches the prescription once; later calls return ErrPrescriptionSet and keep
// the first value.
func (p *Patient) SetPrescription(prescription string) error {
	if p.prescription != "" {
		return ErrPrescriptionSet
	}
	p.prescription = prescription
	return nil
}
