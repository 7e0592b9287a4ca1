package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/bce/pkg/classify"
	"github.com/kittclouds/bce/pkg/hooks"
	"github.com/kittclouds/bce/pkg/model"
)

func claim(subject model.EntityId, predicate string, source model.SourceId, value string) model.Claim {
	return model.Claim{
		SubjectId:   subject,
		SubjectKind: model.SubjectCharacter,
		Predicate:   predicate,
		Object:      model.Scalar(value),
		SourceId:    source,
	}
}

// TestTwoSourceTheologyConflictTieBreak covers the two-source theology
// disagreement scenario: both sides have a single supporting source, so
// the tie is broken by lexicographic order on source_id, and "john" <
// "mark" means john's value wins.
func TestTwoSourceTheologyConflictTieBreak(t *testing.T) {
	claims := []model.Claim{
		claim("jesus", "divine_nature_claim", "john", "Explicitly claims divinity"),
		claim("jesus", "divine_nature_claim", "mark", "Avoids messianic titles publicly"),
	}
	runtime := hooks.New(nil)
	summaries := Detect(claims, runtime)
	require.Len(t, summaries, 1)
	s := summaries[0]
	assert.Equal(t, "Explicitly claims divinity", s.DominantValue, "dominant_value must follow the john<mark tie-break")
	assert.Equal(t, classify.Theology, s.ClaimType)
}

// TestCriticalResurrectionConflict covers the spec's critical-severity
// scenario: any disagreement on resurrection details is critical
// regardless of source count.
func TestCriticalResurrectionConflict(t *testing.T) {
	claims := []model.Claim{
		claim("jesus", "resurrection_details", "matthew", "Empty tomb, angel announcement"),
		claim("jesus", "resurrection_details", "john", "Mary Magdalene encounters Jesus personally"),
	}
	runtime := hooks.New(nil)
	summaries := Detect(claims, runtime)
	require.Len(t, summaries, 1)
	assert.EqualValues(t, "critical", summaries[0].Severity)
}

// TestAgreementSuppressesConflict ensures claims that normalize to the
// same value (case/whitespace-insensitive) never produce a summary.
func TestAgreementSuppressesConflict(t *testing.T) {
	claims := []model.Claim{
		claim("jesus", "birthplace", "matthew", "  Bethlehem "),
		claim("jesus", "birthplace", "luke", "bethlehem"),
	}
	runtime := hooks.New(nil)
	summaries := Detect(claims, runtime)
	assert.Empty(t, summaries)
}

// TestAbsentValueHandling ensures an absent value from one source does
// not, by itself, count as a competing distinct claim for severity
// purposes, but a third disagreeing source still produces a conflict.
func TestAbsentValueHandling(t *testing.T) {
	claims := []model.Claim{
		claim("jesus", "birth_narrative", "mark", "none"),
		claim("jesus", "birth_narrative", "matthew", "Angelic annunciation to Joseph"),
		claim("jesus", "birth_narrative", "luke", "Angelic annunciation to Mary"),
	}
	runtime := hooks.New(nil)
	summaries := Detect(claims, runtime)
	require.Len(t, summaries, 1)
	assert.Len(t, summaries[0].DistinctValues, 3, "the absent value counts as its own distinct entry")
	assert.Equal(t, classify.Medium, summaries[0].Severity, "two non-absent values across three sources is medium, not high")
}

// TestDominantValueNeverPicksAbsentOverReal ensures an absent value never
// wins dominant_value merely because its source_id sorts first among a
// count tie: "andrew"="none" must lose to a real, non-absent value even
// though "andrew" < "mark" and "andrew" < "matthew".
func TestDominantValueNeverPicksAbsentOverReal(t *testing.T) {
	claims := []model.Claim{
		claim("jesus", "birth_narrative", "andrew", "none"),
		claim("jesus", "birth_narrative", "mark", "Angelic annunciation to Joseph"),
		claim("jesus", "birth_narrative", "matthew", "Angelic annunciation to Mary"),
	}
	runtime := hooks.New(nil)
	summaries := Detect(claims, runtime)
	require.Len(t, summaries, 1)
	assert.NotEqual(t, "none", summaries[0].DominantValue, "an absent value must never be published as dominant_value")
	assert.Equal(t, "Angelic annunciation to Joseph", summaries[0].DominantValue, "mark < matthew among the non-absent tie")
}

func TestBeforeConflictDetectionAbortYieldsNoSummaries(t *testing.T) {
	runtime := hooks.New(nil)
	runtime.Register(hooks.BeforeConflictDetection, 0, "abort", func(ctx *hooks.Context) *hooks.Context {
		ctx.Abort = true
		return ctx
	})
	claims := []model.Claim{
		claim("jesus", "birthplace", "matthew", "Bethlehem"),
		claim("jesus", "birthplace", "luke", "Nazareth"),
	}
	assert.Nil(t, Detect(claims, runtime))
}
