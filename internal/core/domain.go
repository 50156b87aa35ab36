package core

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// StatusActive is the only project status currently in use.
const StatusActive = "active"

type (
	// WorkEntry is one recorded work session. Hours is derived from
	// StartTime/EndTime unless an explicit value was imported.
	WorkEntry struct {
		ID        string  `json:"id"`
		Date      string  `json:"date"`
		StartTime string  `json:"startTime"`
		EndTime   string  `json:"endTime"`
		Hours     float64 `json:"hours"`
		Notes     string  `json:"notes"`
	}

	// MaterialEntry is one purchased-material line item. Quantity is
	// free text and may embed units ("10 m²").
	MaterialEntry struct {
		ID       string  `json:"id"`
		Date     string  `json:"date"`
		Name     string  `json:"name"`
		Quantity string  `json:"quantity"`
		Amount   float64 `json:"amount"`
	}

	// Project owns its entries exclusively; entries have no existence
	// outside a project.
	Project struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Client      string          `json:"client"`
		Address     string          `json:"address"`
		HourlyRate  float64         `json:"hourlyRate"`
		Status      string          `json:"status"`
		CreatedAt   string          `json:"createdAt"`
		WorkEntries []WorkEntry     `json:"workEntries"`
		Materials   []MaterialEntry `json:"materials"`
	}
)

var (
	ErrEmptyDraft     = errors.New("project needs a name or a client")
	ErrNegativeRate   = errors.New("hourly rate cannot be negative")
	ErrNegativeAmount = errors.New("amount cannot be negative")
)

// ValidateDraft checks the fields a new project is created from.
func ValidateDraft(name, client string, hourlyRate float64) error {
	if strings.TrimSpace(name) == "" && strings.TrimSpace(client) == "" {
		return ErrEmptyDraft
	}
	if hourlyRate < 0 {
		return ErrNegativeRate
	}
	return nil
}

// DisplayName returns the project name, falling back to the client name.
func (p Project) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Client
}

const idChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID creates an opaque entity identifier: creation timestamp plus a
// random base36 suffix so ids stay unique within a burst of inserts.
func GenerateID() string {
	suffix := make([]byte, 6)
	for i := range suffix {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(idChars))))
		suffix[i] = idChars[n.Int64()]
	}
	return fmt.Sprintf("%s-%s", time.Now().UTC().Format("20060102150405"), string(suffix))
}

// TodayDate returns the current calendar date as an ISO date string (UTC).
func TodayDate() string {
	return time.Now().UTC().Format("2006-01-02")
}

// NowISO returns the current instant as an ISO-8601 timestamp, used for
// project creation times.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
