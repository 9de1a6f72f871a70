package prescribe

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnrecognizedSymptom = errors.New("symptom not recognized")

type Symptom int

const (
	Headache Symptom = iota + 1
	SkinRashes
	Dizziness
)

// Symptoms lists every symptom in menu order.
var Symptoms = []Symptom{Headache, SkinRashes, Dizziness}

var symptomCodes = map[Symptom]string{
	Headache:   "S1",
	SkinRashes: "S2",
	Dizziness:  "S3",
}

var symptomLabels = map[Symptom]string{
	Headache:   "Headache",
	SkinRashes: "Skin rashes",
	Dizziness:  "Dizziness",
}

func (s Symptom) Code() string {
	return symptomCodes[s]
}

func (s Symptom) Label() string {
	if label, ok := symptomLabels[s]; ok {
		return label
	}
	return "Unknown"
}

func (s Symptom) String() string {
	return s.Label()
}

// ParseCode matches S1, S2 or S3 case-insensitively.
func ParseCode(code string) (Symptom, bool) {
	code = strings.TrimSpace(code)
	for _, s := range Symptoms {
		if strings.EqualFold(code, s.Code()) {
			return s, true
		}
	}
	return 0, false
}

// ParseLabel matches a human-readable symptom label case-insensitively.
func ParseLabel(label string) (Symptom, bool) {
	label = strings.TrimSpace(label)
	for _, s := range Symptoms {
		if strings.EqualFold(label, s.Label()) {
			return s, true
		}
	}
	return 0, false
}

type Medicine int

const (
	Ibuprofen Medicine = iota + 1
	Diphenhydramine
	Dimenhydrinate
	Metformin
)

var Medicines = []Medicine{Ibuprofen, Diphenhydramine, Dimenhydrinate, Metformin}

var medicineNames = map[Medicine]string{
	Ibuprofen:       "ibuprofen",
	Diphenhydramine: "diphenhydramine",
	Dimenhydrinate:  "dimenhydrinate",
	Metformin:       "metformin",
}

func (m Medicine) String() string {
	return medicineNames[m]
}

type MedicineRule struct {
	HistoryContains string // lowercase substring of the medical history; empty matches anything
	Medicine        Medicine
}

// medicineRules is evaluated top to bottom per symptom; the first matching rule wins.
var medicineRules = map[Symptom][]MedicineRule{
	Headache:   {{Medicine: Ibuprofen}},
	SkinRashes: {{Medicine: Diphenhydramine}},
	Dizziness: {
		{HistoryContains: "diabetes", Medicine: Metformin},
		{Medicine: Dimenhydrinate},
	},
}

// AdultAge is the first age that receives the adult strength.
const AdultAge = 18

type Dosage struct {
	Minor string
	Adult string
}

var dosageTable = map[Medicine]Dosage{
	Ibuprofen:       {Minor: "400 mg", Adult: "800 mg"},
	Diphenhydramine: {Minor: "50 mg", Adult: "300 mg"},
	Dimenhydrinate:  {Minor: "50 mg", Adult: "400 mg"},
	Metformin:       {Minor: "500 mg", Adult: "500 mg"},
}

type Prescription struct {
	Symptom  Symptom
	Medicine Medicine
	Dosage   string
}

func (p Prescription) String() string {
	return fmt.Sprintf("%s %s", p.Medicine, p.Dosage)
}

// SelectMedicine picks the medicine for a symptom given the free-text medical history.
func SelectMedicine(symptom Symptom, history string) (Medicine, bool) {
	history = strings.ToLower(history)
	for _, rule := range medicineRules[symptom] {
		if rule.HistoryContains == "" || strings.Contains(history, rule.HistoryContains) {
			return rule.Medicine, true
		}
	}
	return 0, false
}

// DosageFor returns the age-bracketed strength of a medicine.
func DosageFor(medicine Medicine, age int) (string, bool) {
	d, ok := dosageTable[medicine]
	if !ok {
		return "", false
	}
	if age < AdultAge {
		return d.Minor, true
	}
	return d.Adult, true
}

// Prescribe maps a symptom label, medical history and age to a prescription.
func Prescribe(label, history string, age int) (Prescription, error) {
	symptom, ok := ParseLabel(label)
	if !ok {
		return Prescription{}, fmt.Errorf("%w: %q", ErrUnrecognizedSymptom, label)
	}

	medicine, ok := SelectMedicine(symptom, history)
	if !ok {
		return Prescription{}, fmt.Errorf("%w: no medicine rule for %q", ErrUnrecognizedSymptom, label)
	}

	dosage, ok := DosageFor(medicine, age)
	if !ok {
		return Prescription{}, fmt.Errorf("no dosage for %s", medicine)
	}

	return Prescription{Symptom: symptom, Medicine: medicine, Dosage: dosage}, nil
}
