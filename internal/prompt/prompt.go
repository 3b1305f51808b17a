// Package prompt renders a training profile into the instruction string sent
// to the model. The template is the contract for the model's output shape:
// changes here must be mirrored in the parser's expectations.
package prompt

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"hoopcoach/internal/workout"
)

const template = `You are a professional basketball trainer. Create a personalized weekly workout plan for the following player:

Name: %s
Age: %s
Position: %s
Skill level: %s
Improvement focus: %s

Available training days:
%s

For every scheduled day, list concrete exercises. Each exercise must name any equipment needed, describe the movements involved and the muscles they target, and give exact sets and reps.

Reply with a JSON object of exactly this shape:
{
  "name": "player name",
  "age": "player age",
  "position": "player position",
  "level": "player skill level",
  "focusAreas": "one-line summary of what the plan emphasizes",
  "workoutSchedule": [
    {
      "day": "Monday",
      "hours": 1,
      "timeOfDay": ["Evening"],
      "exercises": [
        { "name": "exercise name", "duration": "human-readable duration", "description": "what to do and why" }
      ]
    }
  ]
}

Return raw JSON only, with no markdown fencing and no commentary.`

// Build is deterministic: the same profile always yields the same string.
func Build(p workout.TrainingProfile) string {
	days := make([]string, 0, len(p.AvailableDays))
	for _, d := range p.AvailableDays {
		days = append(days, renderDay(d))
	}

	return fmt.Sprintf(template,
		p.Name,
		p.Age,
		p.Position,
		p.Level,
		p.Improvement,
		strings.Join(days, "\n"),
	)
}

func renderDay(d workout.DaySlot) string {
	return fmt.Sprintf("- %s: %g hours, preferred time: %s",
		capitalize(d.Day), d.Hours, strings.Join(d.TimeOfDay, ", "))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
