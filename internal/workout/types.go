// Package workout defines the player profile accepted by the API and the
// plan shape the model is asked to produce.
package workout

import (
	"encoding/json"
	"errors"
)

// ErrMissingFields indicates the profile is missing one or more required fields.
var ErrMissingFields = errors.New("missing required fields")

// TrainingProfile describes a player and their weekly availability.
type TrainingProfile struct {
	Name          string    `json:"name"`
	Age           Age       `json:"age"`
	Position      string    `json:"position"`
	Level         string    `json:"level"`
	Improvement   string    `json:"improvement"`
	AvailableDays []DaySlot `json:"availableDays"`
}

// Age accepts either a JSON string or a JSON number, since clients send both.
type Age string

func (a *Age) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Age(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Age(n.String())
	return nil
}

func (a Age) String() string { return string(a) }

// DaySlot is one day the player can train.
type DaySlot struct {
	Day       string   `json:"day"`
	Hours     float64  `json:"hours"`
	TimeOfDay []string `json:"timeOfDay"`
}

// WorkoutPlan is the shape the model is instructed to reply with. The handler
// returns the model's JSON as-is without enforcing this shape field by field,
// so consumers must tolerate missing or extra fields.
type WorkoutPlan struct {
	Name            string         `json:"name"`
	Age             Age            `json:"age"`
	Position        string         `json:"position"`
	Level           string         `json:"level"`
	FocusAreas      string         `json:"focusAreas"`
	WorkoutSchedule []ScheduledDay `json:"workoutSchedule"`
}

// ScheduledDay is one day of the generated schedule.
type ScheduledDay struct {
	Day       string     `json:"day"`
	Hours     float64    `json:"hours"`
	TimeOfDay []string   `json:"timeOfDay"`
	Exercises []Exercise `json:"exercises"`
}

// Exercise is a single drill or workout item.
type Exercise struct {
	Name        string `json:"name"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Validate checks that every required field is present. Presence only, no
// type coercion. Runs before any external call is made.
func (p *TrainingProfile) Validate() error {
	if p.Name == "" ||
		p.Age == "" ||
		p.Position == "" ||
		p.Level == "" ||
		p.Improvement == "" ||
		len(p.AvailableDays) == 0 {
		return ErrMissingFields
	}
	return nil
}
