package generator

import (
	"alcyxob/physio-app/internal/domain"
	"strings"
	"text/template"
)

var promptTemplate = template.Must(template.New("plan").Parse(`You are an experienced physiotherapist. Create a personalized home training plan for a patient with {{.BodyPartName}} complaints.

Muscle test results:
{{range .Tests}}- {{.Name}}: Pain Intensity {{.PainIntensity}}/10 - {{.Description}}
{{end}}
Available exercises:
{{range .Sections}}
Exercises for {{.TestName}}:
{{range .Exercises}}- ID {{.ID}}: {{.DisplayName}} - {{.Description}}
{{end}}{{end}}
Guidelines:
- Prioritize exercises for the tests with the highest pain intensity.
- Pain 7-10: use fewer sets and repetitions (for example 2 sets of 8) and add a caution note.
- Pain 4-6: use a moderate volume (for example 3 sets of 10).
- Pain 1-3: use a standard volume (for example 3 sets of 12).
- Select at most {{.MaxExercises}} exercises and only use exercises from the list above, referenced by their ID.
- Include safety warnings relevant to the patient's pain levels.

Respond with ONLY a JSON object in exactly this format, with no text before or after it:
{
  "title": "string",
  "description": "string",
  "warnings": ["string"],
  "exercises": [
    {
      "id": 0,
      "name": "string",
      "description": "string",
      "sets": 0,
      "reps": 0,
      "rest_time_seconds": 0,
      "notes": "string (optional)"
    }
  ]
}
`))

type promptSection struct {
	TestName  string
	Exercises []domain.Exercise
}

type promptData struct {
	BodyPartName string
	Tests        []domain.MuscleTestWithPain
	Sections     []promptSection
	MaxExercises int
}

// BuildPrompt renders the user prompt for the AI generator. Tests without candidate
// exercises are listed with their rating but get no exercise section.
func BuildPrompt(in Input) (string, error) {
	byTest := make(map[int64][]domain.Exercise)
	for _, ex := range in.Exercises {
		byTest[ex.MuscleTestID] = append(byTest[ex.MuscleTestID], ex)
	}

	data := promptData{
		BodyPartName: in.BodyPartName,
		Tests:        in.Tests,
		MaxExercises: MaxPlanExercises,
	}
	for _, t := range in.Tests {
		if exercises := byTest[t.ID]; len(exercises) > 0 {
			data.Sections = append(data.Sections, promptSection{TestName: t.Name, Exercises: exercises})
		}
	}

	var sb strings.Builder
	if err := promptTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
