package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Skufu/medbot/internal/patient"
	"github.com/Skufu/medbot/internal/prescribe"
)

const (
	promptName    = "Enter Patient Name: "
	promptAge     = "Enter Patient Age: "
	promptGender  = "Enter Patient Gender: "
	promptHistory = "Enter Medical History. Eg: Diabetes. Press Enter for None: "
	promptSymptom = "Enter the symptom code from above list (S1, S2 or S3): "
)

// Session walks one patient through the prompts and prints the resulting prescription.
type Session struct {
	in  *bufio.Reader
	out io.Writer
	bot *prescribe.Bot
	log zerolog.Logger
}

func NewSession(in io.Reader, out io.Writer, log zerolog.Logger) *Session {
	return &Session{
		in:  bufio.NewReader(in),
		out: out,
		bot: prescribe.NewBot(out, log),
		log: log.With().Str("component", "console").Logger(),
	}
}

// Run returns io.ErrUnexpectedEOF when input ends before the consultation completes, or the
// underlying read error.
func (s *Session) Run() (*patient.Patient, error) {
	p := patient.New()
	log := s.log.With().Str("consultation_id", p.ID()).Logger()
	log.Debug().Msg("consultation started")

	s.println(fmt.Sprintf("Hi, I'm %s. I'm here to help you in your medication.", prescribe.BotName))
	s.println("Enter your (patient) details:")

	if err := s.retry(promptName, func(raw string) error {
		_, err := p.SetName(raw)
		return err
	}); err != nil {
		return p, err
	}

	if err := s.retry(promptAge, func(raw string) error {
		_, err := p.SetAgeText(raw)
		return err
	}); err != nil {
		return p, err
	}

	if err := s.retry(promptGender, func(raw string) error {
		_, err := p.SetGender(raw)
		return err
	}); err != nil {
		return p, err
	}

	history, err := s.readLine(promptHistory)
	if err != nil {
		return p, err
	}
	p.SetMedicalHistory(history)

	s.println(fmt.Sprintf("\nWelcome, %s, %d.", p.Name(), p.Age()))
	s.println("Which of the following symptoms do you have:")
	for _, symptom := range prescribe.Symptoms {
		s.println(fmt.Sprintf("%s. %s", symptom.Code(), symptom.Label()))
	}

	if err := s.retry(promptSymptom, func(raw string) error {
		_, err := p.SetSymptomCode(raw)
		return err
	}); err != nil {
		return p, err
	}

	s.issuePrescription(p, log)

	s.println("\nYour prescription based on your age, symptoms and medical history:")
	s.println(p.Prescription())
	s.println("\nThank you for coming.")

	log.Debug().Str("prescription", p.Prescription()).Msg("consultation finished")
	return p, nil
}

// issuePrescription runs the bot. An unrecognized symptom is already reported to the user;
// anything else is logged and the run still completes without a prescription.
func (s *Session) issuePrescription(p *patient.Patient, log zerolog.Logger) {
	if _, err := s.bot.Prescribe(p); err != nil && !errors.Is(err, prescribe.ErrUnrecognizedSymptom) {
		log.Error().Err(err).Msg("prescription failed")
	}
}

// retry prompts until apply accepts the input, printing each rejection.
func (s *Session) retry(prompt string, apply func(raw string) error) error {
	for {
		raw, err := s.readLine(prompt)
		if err != nil {
			return err
		}
		err = apply(raw)
		if err == nil {
			return nil
		}
		s.log.Debug().Str("prompt", strings.TrimSpace(prompt)).Err(err).Msg("input rejected")
		s.println(err.Error())
	}
}

// readLine accepts lines of any length. A final line without a newline still counts.
func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", io.ErrUnexpectedEOF
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line)
}
