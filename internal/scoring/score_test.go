package scoring

import (
	"encoding/json"
	"testing"

	"github.com/mattergrade/mattergrade-core/internal/spec"
)

func TestScoreDeviceType_MandatoryOnlyFullMarks(t *testing.T) {
	registry := testRegistry()
	sets := serverSets(3, 4, 6, 98)

	score := ScoreDeviceType(registry, AnalyzeGap(registry, typeBasicLight, sets), sets)

	if score.Breakdown.MandatoryServer != 100 {
		t.Errorf("MandatoryServer = %v, want 100", score.Breakdown.MandatoryServer)
	}
	if score.Breakdown.MandatoryClient != 100 {
		t.Errorf("MandatoryClient = %v, want 100 (vacuous)", score.Breakdown.MandatoryClient)
	}
	if score.Breakdown.OptionalServer != 0 {
		t.Errorf("OptionalServer = %v, want 0 (nothing defined, nothing earned)", score.Breakdown.OptionalServer)
	}
	// The vacuous axes carry no defined clusters, so the composite is
	// the mandatory-server axis alone.
	if score.Score != 100 {
		t.Errorf("Score = %v, want 100", score.Score)
	}
	if score.Stars != 5 {
		t.Errorf("Stars = %d, want 5", score.Stars)
	}
	if !score.Compliant {
		t.Error("Compliant = false, want true")
	}
}

func TestScoreDeviceType_MissingMandatoryCapsStars(t *testing.T) {
	registry := testRegistry()
	sets := serverSets(3, 4, 98) // cluster 6 missing

	score := ScoreDeviceType(registry, AnalyzeGap(registry, typeBasicLight, sets), sets)

	if score.Breakdown.MandatoryServer != 75 {
		t.Errorf("MandatoryServer = %v, want 75", score.Breakdown.MandatoryServer)
	}
	if score.Compliant {
		t.Error("Compliant = true with a missing mandatory cluster")
	}
	if score.Score != 75 {
		t.Errorf("Score = %v, want 75", score.Score)
	}
	// 75 points would normally be four stars; non-compliance caps it.
	if score.Stars != 2 {
		t.Errorf("Stars = %d, want 2", score.Stars)
	}
}

func TestScoreDeviceType_KeyClientBonus(t *testing.T) {
	registry := testRegistry()
	sets := serverSets(3, 513)
	sets.Client[1026] = true // one of the two key clusters

	score := ScoreDeviceType(registry, AnalyzeGap(registry, typeThermo, sets), sets)

	if score.Breakdown.KeyClientBonus != 5 {
		t.Errorf("KeyClientBonus = %v, want 5 (half the key clusters at bonus 0.1)", score.Breakdown.KeyClientBonus)
	}
	// Axes in play: mandatory server 100 at 0.40, optional client
	// 33.3 at 0.15, normalised by 0.55, plus the bonus.
	if score.Score != 86.8 {
		t.Errorf("Score = %v, want 86.8", score.Score)
	}
	if score.Stars != 4 {
		t.Errorf("Stars = %d, want 4", score.Stars)
	}
}

func TestScoreDeviceType_BonusCappedAt100(t *testing.T) {
	registry := testRegistry()
	sets := serverSets(3, 513)
	for _, id := range []spec.ClusterID{514, 1026, 1029} {
		sets.Client[id] = true
	}

	score := ScoreDeviceType(registry, AnalyzeGap(registry, typeThermo, sets), sets)

	if score.Score != 100 {
		t.Errorf("Score = %v, want 100 (bonus must not push past the cap)", score.Score)
	}
	if score.Stars != 5 {
		t.Errorf("Stars = %d, want 5", score.Stars)
	}
}

func TestScoreDeviceType_UnknownType(t *testing.T) {
	registry := testRegistry()
	sets := serverSets(3, 4, 6)

	score := ScoreDeviceType(registry, AnalyzeGap(registry, typeUnknown, sets), sets)

	if !score.Compliant {
		t.Error("unknown type should score as compliant")
	}
	if score.Score != 0 {
		t.Errorf("Score = %v, want 0 (no axes apply)", score.Score)
	}
}

func TestScoreToStars(t *testing.T) {
	tests := []struct {
		score     float64
		compliant bool
		want      int
	}{
		{100, true, 5},
		{90, true, 5},
		{89.99, true, 4},
		{75, true, 4},
		{74.9, true, 3},
		{60, true, 3},
		{40, true, 2},
		{39.9, true, 1},
		{0, true, 1},
		{100, false, 2},
		{62, false, 2},
		{45, false, 2},
		{10, false, 1},
	}
	for _, tt := range tests {
		if got := ScoreToStars(tt.score, tt.compliant); got != tt.want {
			t.Errorf("ScoreToStars(%v, %v) = %d, want %d", tt.score, tt.compliant, got, tt.want)
		}
	}
}

func TestScoreToStars_Monotonic(t *testing.T) {
	prev := 0
	for s := 0.0; s <= 100; s += 0.5 {
		stars := ScoreToStars(s, true)
		if stars < prev {
			t.Fatalf("ScoreToStars(%v) = %d, below previous %d", s, stars, prev)
		}
		prev = stars
	}
}

func TestDeviceTypeScore_JSONRoundTrip(t *testing.T) {
	registry := testRegistry()
	sets := serverSets(3, 513)
	sets.Client[1026] = true

	original := ScoreDeviceType(registry, AnalyzeGap(registry, typeThermo, sets), sets)

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded DeviceTypeScore
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded.DeviceType != original.DeviceType || decoded.Name != original.Name {
		t.Error("identity fields did not survive the round trip")
	}
	if decoded.Score != original.Score || decoded.Stars != original.Stars || decoded.Compliant != original.Compliant {
		t.Errorf("headline fields changed: got %+v, want %+v", decoded, original)
	}
	if decoded.Breakdown != original.Breakdown {
		t.Errorf("Breakdown = %+v, want %+v", decoded.Breakdown, original.Breakdown)
	}
}
