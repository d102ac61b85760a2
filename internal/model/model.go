package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// NotAValue is the placeholder the source API sends for fields it never recorded.
const NotAValue = "NaN"

// UnknownLabel is the display fallback for missing or NotAValue fields.
const UnknownLabel = "Unknown"

// Field is an optional free-text attribute received from the source API.
//
// Absent, empty and NotAValue are all treated as "unknown".
type Field string

func (f Field) Known() bool {
	s := strings.TrimSpace(string(f))
	return s != "" && s != NotAValue
}

// Or returns the field value, or fallback when the field is unknown.
func (f Field) Or(fallback string) string {
	if !f.Known() {
		return fallback
	}
	return string(f)
}

// UnmarshalJSON accepts strings, numbers and null. The source is loosely typed.
func (f *Field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = Field(n.String())
	return nil
}

type Quote struct {
	Dialog string `json:"dialog"`
	Movie  string `json:"movie"`
}

type Character struct {
	ID   string `json:"_id"`
	Name string `json:"name"`

	Race    Field `json:"race,omitempty"`
	Gender  Field `json:"gender,omitempty"`
	Realm   Field `json:"realm,omitempty"`
	Birth   Field `json:"birth,omitempty"`
	Death   Field `json:"death,omitempty"`
	Spouse  Field `json:"spouse,omitempty"`
	Height  Field `json:"height,omitempty"`
	Hair    Field `json:"hair,omitempty"`
	WikiURL Field `json:"wikiUrl,omitempty"`

	QuoteCount   int     `json:"quoteCount"`
	SampleQuotes []Quote `json:"sampleQuotes"`
}

// DisplayName returns the name, or UnknownLabel when the source sent none.
func (c Character) DisplayName() string {
	return Field(c.Name).Or(UnknownLabel)
}

type Movie struct {
	ID               string   `json:"_id"`
	Name             string   `json:"name"`
	RuntimeInMinutes *float64 `json:"runtimeInMinutes,omitempty"`
	BudgetInMillions *float64 `json:"budgetInMillions,omitempty"`
	AcademyAwardWins *int     `json:"academyAwardWins,omitempty"`
}

type Stats struct {
	CharacterCount       int `json:"characterCount"`
	QuoteCount           int `json:"quoteCount"`
	MovieCount           int `json:"movieCount"`
	CharactersWithQuotes int `json:"charactersWithQuotes"`
}

// Dataset is the snapshot held between fetch and commit/cancel.
type Dataset struct {
	Stats      Stats       `json:"stats"`
	Characters []Character `json:"characters"`
	Movies     []Movie     `json:"movies"`
	Logs       []string    `json:"logs,omitempty"`
}

// SampledQuoteCount sums the sampled quotes carried by every character.
func (d *Dataset) SampledQuoteCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, c := range d.Characters {
		n += len(c.SampleQuotes)
	}
	return n
}

// FindCharacter looks a character up by identity.
func (d *Dataset) FindCharacter(id string) (Character, bool) {
	if d == nil || strings.TrimSpace(id) == "" {
		return Character{}, false
	}
	for _, c := range d.Characters {
		if c.ID == id {
			return c, true
		}
	}
	return Character{}, false
}

type ReportStatus string

const (
	StatusSuccess ReportStatus = "success"
	StatusError   ReportStatus = "error"
	// StatusPartial and StatusWarning are sent by the store when some batches failed
	// or there was nothing to send. Both count as "not success".
	StatusPartial ReportStatus = "partial"
	StatusWarning ReportStatus = "warning"
)

// ParseReportStatus maps a wire status onto a ReportStatus. Empty or unrecognised
// values become StatusError so a report never claims success by accident.
func ParseReportStatus(s string) ReportStatus {
	switch ReportStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusSuccess:
		return StatusSuccess
	case StatusPartial:
		return StatusPartial
	case StatusWarning:
		return StatusWarning
	default:
		return StatusError
	}
}

type ReportKind string

const (
	ReportCharacterIngest ReportKind = "Character Ingestion"
	ReportQuoteIngest     ReportKind = "Quote Ingestion"
	ReportWipe            ReportKind = "Wipe"
)

// SummaryReport is the outcome of the most recent commit or wipe.
type SummaryReport struct {
	Status            ReportStatus `json:"status"`
	Kind              ReportKind   `json:"type"`
	IngestedCount     *int         `json:"ingestedCount,omitempty"`
	TotalRecords      *int         `json:"totalRecords,omitempty"`
	TotalQuotes       *int         `json:"totalQuotes,omitempty"`
	DeletedCount      *int         `json:"deletedCount,omitempty"`
	SuccessfulBatches *int         `json:"successfulBatches,omitempty"`
	FailedBatches     *int         `json:"failedBatches,omitempty"`
	TotalBatches      *int         `json:"totalBatches,omitempty"`
	Error             string       `json:"error,omitempty"`
	Timestamp         string       `json:"timestamp"`
}

func (r SummaryReport) OK() bool { return r.Status == StatusSuccess }

// IntPtr is a small helper for report counters.
func IntPtr(n int) *int { return &n }

// Deref returns *p or 0.
func Deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

type LogEntry struct {
	Message string    `json:"message"`
	IsError bool      `json:"isError"`
	At      time.Time `json:"at"`
}

// FormatNumber renders a float without trailing zeros ("93", "281.5").
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
