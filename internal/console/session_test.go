package console

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/rs/zerolog"

	"github.com/Skufu/medbot/internal/patient"
)

func runSession(t *testing.T, input string) (string, string, error) {
	t.Helper()
	var out bytes.Buffer
	s := NewSession(strings.NewReader(input), &out, zerolog.Nop())
	p, err := s.Run()
	return out.String(), p.Prescription(), err
}

func TestRun_FullTranscript(t *testing.T) {
	out, prescription, err := runSession(t, "Jane\n30\nfemale\n\ns1\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prescription != "ibuprofen 800 mg" {
		t.Fatalf("expected ibuprofen 800 mg, got %q", prescription)
	}

	want := "Hi, I'm Bob. I'm here to help you in your medication.\n" +
		"Enter your (patient) details:\n" +
		promptName + promptAge + promptGender + promptHistory +
		"\nWelcome, Jane, 30.\n" +
		"Which of the following symptoms do you have:\n" +
		"S1. Headache\n" +
		"S2. Skin rashes\n" +
		"S3. Dizziness\n" +
		promptSymptom +
		"\nYour prescription based on your age, symptoms and medical history:\n" +
		"ibuprofen 800 mg\n" +
		"\nThank you for coming.\n"
	if out != want {
		t.Fatalf("unexpected transcript:\n%s\nwant:\n%s", out, want)
	}
}

func TestRun_RetriesInvalidInput(t *testing.T) {
	input := strings.Join([]string{
		"",      // blank name
		"J",     // too short
		"John",  // ok
		"abc",   // not an integer
		"-4",    // negative
		"120",   // too old
		"40",    // ok
		"robot", // invalid gender
		"MALE",  // ok
		"Type 2 Diabetes",
		"S7", // invalid code
		"s3", // ok
	}, "\n") + "\n"

	out, prescription, err := runSession(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prescription != "metformin 500 mg" {
		t.Fatalf("expected metformin 500 mg, got %q", prescription)
	}

	for _, msg := range []string{
		"Name must contain at least two characters and not be empty.",
		"Invalid age. Please enter a valid integer.",
		"Age cannot be negative.",
		"Age cannot be greater than 100.",
		"Gender should be either Male, Female, or Other.",
		"Symptom code must be either S1, S2, or S3.",
	} {
		if !strings.Contains(out, msg) {
			t.Fatalf("expected %q in transcript:\n%s", msg, out)
		}
	}
	if n := strings.Count(out, promptName); n != 3 {
		t.Fatalf("expected 3 name prompts, got %d", n)
	}
	if n := strings.Count(out, promptAge); n != 4 {
		t.Fatalf("expected 4 age prompts, got %d", n)
	}
}

func TestRun_MinorDizzinessWithoutDiabetes(t *testing.T) {
	_, prescription, err := runSession(t, "Tim\n12\nOther\nasthma\nS3\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prescription != "dimenhydrinate 50 mg" {
		t.Fatalf("expected dimenhydrinate 50 mg, got %q", prescription)
	}
}

func TestRun_WindowsLineEndings(t *testing.T) {
	_, prescription, err := runSession(t, "Ana\r\n10\r\nfemale\r\n\r\nS2\r\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prescription != "diphenhydramine 50 mg" {
		t.Fatalf("expected diphenhydramine 50 mg, got %q", prescription)
	}
}

func TestRun_EndOfInput(t *testing.T) {
	out, prescription, err := runSession(t, "Jane\n30\n")
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
	if prescription != "" {
		t.Fatalf("expected no prescription, got %q", prescription)
	}
	if strings.Contains(out, "Thank you for coming.") {
		t.Fatalf("session should stop early, got:\n%s", out)
	}
}

func TestRun_LongMedicalHistory(t *testing.T) {
	history := "diabetes " + strings.Repeat("x", 70<<10)
	out, prescription, err := runSession(t, "Jane\n30\nfemale\n"+history+"\nS3\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prescription != "metformin 500 mg" {
		t.Fatalf("expected metformin 500 mg, got %q", prescription)
	}
	if !strings.HasSuffix(out, "Thank you for coming.\n") {
		t.Fatal("expected a completed transcript")
	}
}

func TestRun_LastLineWithoutNewline(t *testing.T) {
	_, prescription, err := runSession(t, "Jane\n30\nfemale\n\nS1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prescription != "ibuprofen 800 mg" {
		t.Fatalf("expected ibuprofen 800 mg, got %q", prescription)
	}
}

func TestRun_ReadErrorIsReturned(t *testing.T) {
	errDisk := errors.New("disk unplugged")
	var out bytes.Buffer
	in := io.MultiReader(strings.NewReader("Jane\n"), iotest.ErrReader(errDisk))
	_, err := NewSession(in, &out, zerolog.Nop()).Run()
	if !errors.Is(err, errDisk) {
		t.Fatalf("expected the read error, got %v", err)
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatal("read error must not be reported as end of input")
	}
}

func TestIssuePrescription_LogsUnexpectedErrors(t *testing.T) {
	var out, logs bytes.Buffer
	s := NewSession(strings.NewReader(""), &out, zerolog.New(&logs))

	p := patient.New()
	if _, err := p.SetSymptomCode("S1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.SetPrescription("aspirin 100 mg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.issuePrescription(p, zerolog.New(&logs))

	if !strings.Contains(logs.String(), "prescription failed") {
		t.Fatalf("expected an error log line, got %q", logs.String())
	}
	if p.Prescription() != "aspirin 100 mg" {
		t.Fatalf("existing prescription overwritten: %q", p.Prescription())
	}
	if out.Len() != 0 {
		t.Fatalf("expected no user output, got %q", out.String())
	}
}
