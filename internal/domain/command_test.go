package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSessionCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     CreateSessionCommand
		message string
	}{
		{name: "valid", cmd: CreateSessionCommand{BodyPartID: 1, Tests: []TestRating{{MuscleTestID: 10, PainIntensity: 4}}}},
		{name: "no body part", cmd: CreateSessionCommand{Tests: []TestRating{{MuscleTestID: 10}}}, message: "body_part_id"},
		{name: "no tests", cmd: CreateSessionCommand{BodyPartID: 1}, message: "at least one muscle test"},
		{name: "zero test id", cmd: CreateSessionCommand{BodyPartID: 1, Tests: []TestRating{{MuscleTestID: 0}}}, message: "muscle_test_id"},
		{
			name:    "duplicates",
			cmd:     CreateSessionCommand{BodyPartID: 1, Tests: []TestRating{{MuscleTestID: 12}, {MuscleTestID: 10}, {MuscleTestID: 12}, {MuscleTestID: 10}}},
			message: "duplicate muscle tests: 10, 12",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, KindInvalidInput, KindOf(err))
			assert.Contains(t, MessageOf(err), tt.message)
		})
	}
}

func TestCreateSessionCommand_Normalize(t *testing.T) {
	cmd := CreateSessionCommand{BodyPartID: 1, Tests: []TestRating{
		{MuscleTestID: 1, PainIntensity: -2},
		{MuscleTestID: 2, PainIntensity: 5},
		{MuscleTestID: 3, PainIntensity: 14},
	}}

	cmd.Normalize()

	assert.Equal(t, 0, cmd.Tests[0].PainIntensity)
	assert.Equal(t, 5, cmd.Tests[1].PainIntensity)
	assert.Equal(t, 10, cmd.Tests[2].PainIntensity)
	assert.Equal(t, []int64{1, 2, 3}, cmd.TestIDs())
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, KindPersistence, KindOf(assert.AnError))
	assert.Equal(t, assert.AnError.Error(), MessageOf(assert.AnError))

	wrapped := NewError(KindNotFound, assert.AnError, "body part %d not found", 3)
	assert.ErrorIs(t, wrapped, assert.AnError)
	assert.Equal(t, "body part 3 not found", MessageOf(wrapped))
}
