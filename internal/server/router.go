package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Skufu/medbot/internal/patient"
	"github.com/Skufu/medbot/internal/prescribe"
)

type PrescriptionRequest struct {
	Name           string `json:"name" binding:"required"`
	Age            *int   `json:"age" binding:"required"`
	Gender         string `json:"gender" binding:"required"`
	MedicalHistory string `json:"medicalHistory"`
	SymptomCode    string `json:"symptomCode" binding:"required"`
}

type PrescriptionResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	MedicalHistory string `json:"medicalHistory"`
	SymptomCode    string `json:"symptomCode"`
	Symptom        string `json:"symptom"`
	Medicine       string `json:"medicine"`
	Dosage         string `json:"dosage"`
	Prescription   string `json:"prescription"`
}

type SymptomEntry struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

func NewRouter(log zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		requestLogger(log),
		gin.Recovery(),
		limitBodySize(1<<20), // 1MB max body
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/api/symptoms", func(c *gin.Context) {
		entries := make([]SymptomEntry, 0, len(prescribe.Symptoms))
		for _, s := range prescribe.Symptoms {
			entries = append(entries, SymptomEntry{Code: s.Code(), Label: s.Label()})
		}
		c.JSON(http.StatusOK, gin.H{"botName": prescribe.BotName, "symptoms": entries})
	})

	// Diagnostics go to the request log; the JSON body carries the outcome.
	bot := prescribe.NewBot(io.Discard, log)
	router.POST("/api/prescriptions", func(c *gin.Context) {
		var payload PrescriptionRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload too large"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		p, err := buildPatient(payload)
		if err != nil {
			var verr *patient.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":   "validation_failed",
					"field":   verr.Field,
					"message": verr.Message,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		rx, err := bot.Prescribe(p)
		if err != nil {
			if !errors.Is(err, prescribe.ErrUnrecognizedSymptom) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "unrecognized_symptom",
				"message": prescribe.UnrecognizedMessage,
			})
			return
		}

		c.JSON(http.StatusOK, PrescriptionResponse{
			ID:             p.ID(),
			Name:           p.Name(),
			Age:            p.Age(),
			Gender:         p.Gender(),
			MedicalHistory: p.MedicalHistory(),
			SymptomCode:    p.SymptomCode(),
			Symptom:        p.Symptoms(),
			Medicine:       rx.Medicine.String(),
			Dosage:         rx.Dosage,
			Prescription:   p.Prescription(),
		})
	})

	return router
}

// buildPatient populates a record in the same order as the console prompts.
func buildPatient(req PrescriptionRequest) (*patient.Patient, error) {
	p := patient.New()
	if _, err := p.SetName(req.Name); err != nil {
		return nil, err
	}
	if _, err := p.SetAge(*req.Age); err != nil {
		return nil, err
	}
	if _, err := p.SetGender(req.Gender); err != nil {
		return nil, err
	}
	p.SetMedicalHistory(req.MedicalHistory)
	if _, err := p.SetSymptomCode(req.SymptomCode); err != nil {
		return nil, err
	}
	return p, nil
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		if id, err := uuid.Parse(c.GetHeader("X-Request-ID")); err == nil {
			requestID = id.String()
		}
		c.Header("X-Request-ID", requestID)

		c.Next()

		log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
