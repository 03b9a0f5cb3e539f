package domain

import (
	"fmt"
	"sort"
	"strings"
)

const (
	MinPainIntensity = 0
	MaxPainIntensity = 10
)

// TestRating is one submitted muscle test with its pain rating.
type TestRating struct {
	MuscleTestID  int64 `json:"muscle_test_id"`
	PainIntensity int   `json:"pain_intensity"`
}

// CreateSessionCommand is the patient's submission for a new session.
type CreateSessionCommand struct {
	UserID             string
	BodyPartID         int64
	Tests              []TestRating
	DisclaimerAccepted bool
}

// ClampPain forces a rating into [0,10].
func ClampPain(p int) int {
	if p < MinPainIntensity {
		return MinPainIntensity
	}
	if p > MaxPainIntensity {
		return MaxPainIntensity
	}
	return p
}

// Normalize clamps every pain rating in place.
func (c *CreateSessionCommand) Normalize() {
	for i := range c.Tests {
		c.Tests[i].PainIntensity = ClampPain(c.Tests[i].PainIntensity)
	}
}

// Validate checks the shape of the command before anything is read or written.
func (c *CreateSessionCommand) Validate() error {
	if c.BodyPartID <= 0 {
		return NewError(KindInvalidInput, nil, "body_part_id must be a positive integer")
	}
	if len(c.Tests) == 0 {
		return NewError(KindInvalidInput, nil, "at least one muscle test is required")
	}

	seen := make(map[int64]bool, len(c.Tests))
	var dup []int64
	for _, t := range c.Tests {
		if t.MuscleTestID <= 0 {
			return NewError(KindInvalidInput, nil, "muscle_test_id must be a positive integer, got %d", t.MuscleTestID)
		}
		if seen[t.MuscleTestID] {
			dup = append(dup, t.MuscleTestID)
			continue
		}
		seen[t.MuscleTestID] = true
	}
	if len(dup) > 0 {
		return NewError(KindInvalidInput, nil, "duplicate muscle tests: %s", JoinIDs(dup))
	}
	return nil
}

// TestIDs returns the submitted muscle test ids in submission order.
func (c *CreateSessionCommand) TestIDs() []int64 {
	ids := make([]int64, 0, len(c.Tests))
	for _, t := range c.Tests {
		ids = append(ids, t.MuscleTestID)
	}
	return ids
}

// JoinIDs formats ids as a sorted comma separated list.
func JoinIDs(ids []int64) string {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}
