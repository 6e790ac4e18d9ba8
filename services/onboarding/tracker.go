package onboarding

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"lexmarket/models"
)

// minutesPerStep is the completion estimate for one unresolved step.
const minutesPerStep = 5

// StepStatus is the per-step entry of a status snapshot.
type StepStatus struct {
	Name                 string     `json:"name"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Order                int        `json:"order"`
	Icon                 string     `json:"icon,omitempty"`
	Required             bool       `json:"required"`
	Skippable            bool       `json:"skippable"`
	IsCompleted          bool       `json:"is_completed"`
	IsSkipped            bool       `json:"is_skipped"`
	CompletedAt          *time.Time `json:"completed_at"`
	CompletionPercentage int        `json:"completion_percentage"`
}

// Progress aggregates step records against the registry.
type Progress struct {
	Completed  int `json:"completed_steps"`
	Skipped    int `json:"skipped_steps"`
	Total      int `json:"total_steps"`
	Percentage int `json:"overall_progress"`
}

// Remaining is the number of steps neither completed nor skipped.
func (p Progress) Remaining() int { return p.Total - p.Completed - p.Skipped }

// Tracker derives progress from step records. It never writes.
type Tracker struct {
	registry *Registry
}

func NewTracker(registry *Registry) *Tracker {
	return &Tracker{registry: registry}
}

func indexRecords(records []models.StepRecord) map[string]*models.StepRecord {
	byName := make(map[string]*models.StepRecord, len(records))
	for i := range records {
		byName[records[i].StepName] = &records[i]
	}
	return byName
}

// StatusFor returns one entry per registered step, in registry order.
func (t *Tracker) StatusFor(records []models.StepRecord, profile *models.Profile, account *models.Account) []StepStatus {
	byName := indexRecords(records)
	out := make([]StepStatus, 0, t.registry.Len())
	for _, def := range t.registry.Steps() {
		st := StepStatus{
			Name:        def.Name,
			Title:       def.Title,
			Description: def.Description,
			Order:       def.Order,
			Icon:        def.Icon,
			Required:    def.Required,
			Skippable:   def.Skippable,
		}
		if rec := byName[def.Name]; rec != nil {
			st.IsCompleted = rec.IsCompleted
			st.IsSkipped = rec.IsSkipped
			st.CompletedAt = rec.CompletedAt
		}
		if profile != nil && account != nil {
			st.CompletionPercentage = def.Handler.CompletionPercentage(profile, account)
		}
		out = append(out, st)
	}
	return out
}

// Progress counts resolved registry steps. Records for unregistered steps are ignored.
func (t *Tracker) Progress(records []models.StepRecord) Progress {
	byName := indexRecords(records)
	p := Progress{Total: t.registry.Len()}
	for _, def := range t.registry.Steps() {
		rec := byName[def.Name]
		switch {
		case rec == nil:
		case rec.IsCompleted:
			p.Completed++
		case rec.IsSkipped:
			p.Skipped++
		}
	}
	p.Percentage = roundPercent(p.Completed+p.Skipped, p.Total)
	return p
}

func (t *Tracker) OverallProgress(records []models.StepRecord) int {
	return t.Progress(records).Percentage
}

// CurrentStep is the first step in order that is neither completed nor skipped,
// or "" once all are resolved.
func (t *Tracker) CurrentStep(records []models.StepRecord) string {
	byName := indexRecords(records)
	for _, def := range t.registry.Steps() {
		if !byName[def.Name].Resolved() {
			return def.Name
		}
	}
	return ""
}

// CanSubmit reports whether every required step is completed. Skipping never
// satisfies a required step.
func (t *Tracker) CanSubmit(records []models.StepRecord) bool {
	return len(t.MissingRequiredSteps(records)) == 0
}

// MissingRequiredSteps returns the titles of required steps not yet completed.
func (t *Tracker) MissingRequiredSteps(records []models.StepRecord) []string {
	byName := indexRecords(records)
	missing := []string{}
	for _, def := range t.registry.Steps() {
		if !def.Required {
			continue
		}
		if rec := byName[def.Name]; rec == nil || !rec.IsCompleted {
			missing = append(missing, def.Title)
		}
	}
	return missing
}

// EstimateCompletionTime renders the remaining effort for the status snapshot.
func EstimateCompletionTime(p Progress) string {
	remaining := p.Remaining()
	if remaining <= 0 {
		return "Ready for submission"
	}
	minutes := remaining * minutesPerStep
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	hours := math.Round(float64(minutes)/60*10) / 10
	unit := "hour"
	if hours > 1 {
		unit = "hours"
	}
	return strconv.FormatFloat(hours, 'f', -1, 64) + " " + unit
}

// roundPercent is round(100*part/total) with halves rounded up.
func roundPercent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}
