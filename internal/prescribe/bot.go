package prescribe

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

const BotName = "Bob"

const UnrecognizedMessage = "Symptom not recognized. Unable to prescribe medication."

// Subject is the patient-side view the bot needs.
type Subject interface {
	ID() string
	Age() int
	MedicalHistory() string
	Symptoms() string
	SetPrescription(prescription string) error
}

type Bot struct {
	out io.Writer
	log zerolog.Logger
}

// NewBot writes user-facing diagnostics to out.
func NewBot(out io.Writer, log zerolog.Logger) *Bot {
	return &Bot{out: out, log: log.With().Str("component", "bot").Logger()}
}

// Prescribe attaches a prescription to the subject. An unrecognized symptom is reported on the
// bot's output and leaves the prescription untouched.
func (b *Bot) Prescribe(subject Subject) (Prescription, error) {
	p, err := Prescribe(subject.Symptoms(), subject.MedicalHistory(), subject.Age())
	if err != nil {
		if errors.Is(err, ErrUnrecognizedSymptom) {
			fmt.Fprintln(b.out, UnrecognizedMessage)
			b.log.Warn().Str("consultation_id", subject.ID()).Str("symptom", subject.Symptoms()).Msg("symptom not recognized")
		}
		return Prescription{}, err
	}

	if err := subject.SetPrescription(p.String()); err != nil {
		return Prescription{}, fmt.Errorf("attach prescription: %w", err)
	}
	b.log.Info().
		Str("consultation_id", subject.ID()).
		Str("symptom", p.Symptom.Label()).
		Str("medicine", p.Medicine.String()).
		Str("dosage", p.Dosage).
		Msg("prescription issued")
	return p, nil
}
