package generator

import (
	"alcyxob/physio-app/internal/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	in := Input{
		BodyPartName: "Shoulder",
		Tests: []domain.MuscleTestWithPain{
			testWithPain(10, "Empty can", 8),
			testWithPain(11, "Lift-off", 3),
		},
		Exercises: []domain.Exercise{
			exercise(100, 10, "Wall slide"),
			{ID: 101, MuscleTestID: 10, Description: "Pendulum swings"},
		},
	}

	prompt, err := BuildPrompt(in)
	require.NoError(t, err)

	assert.Contains(t, prompt, "patient with Shoulder complaints")
	assert.Contains(t, prompt, "- Empty can: Pain Intensity 8/10 - Empty can description")
	assert.Contains(t, prompt, "- Lift-off: Pain Intensity 3/10 - Lift-off description")
	assert.Contains(t, prompt, "Exercises for Empty can:")
	assert.Contains(t, prompt, "- ID 100: Wall slide - Wall slide how-to")
	assert.Contains(t, prompt, "- ID 101: Pendulum swings - Pendulum swings")
	assert.NotContains(t, prompt, "Exercises for Lift-off:")

	assert.Contains(t, prompt, "Pain 7-10")
	assert.Contains(t, prompt, "Pain 4-6")
	assert.Contains(t, prompt, "Pain 1-3")
	assert.Contains(t, prompt, "Respond with ONLY a JSON object")
	assert.Contains(t, prompt, `"rest_time_seconds": 0`)
}

func TestBuildPrompt_TestOrderIsSubmissionOrder(t *testing.T) {
	in := Input{
		BodyPartName: "Knee",
		Tests: []domain.MuscleTestWithPain{
			testWithPain(1, "Lachman", 2),
			testWithPain(2, "McMurray", 9),
		},
		Exercises: []domain.Exercise{exercise(10, 1, "Quad set"), exercise(20, 2, "Heel slide")},
	}

	prompt, err := BuildPrompt(in)
	require.NoError(t, err)
	assert.Less(t, strings.Index(prompt, "Exercises for Lachman:"), strings.Index(prompt, "Exercises for McMurray:"))
}
