package sequencer

import "testing"

func intPtr(v int) *int { return &v }

func TestDecide_TransitionTable(t *testing.T) {
	tests := []struct {
		name            string
		correct         bool
		confidence      *int
		wantStage       Stage
		wantRemediation Remediation
	}{
		{"correct no confidence", true, nil, StagePractice, RemediationNone},
		{"incorrect no confidence", false, nil, StageRemediate, RemediationSupportive},
		{"correct high confidence", true, intPtr(4), StagePractice, RemediationNone},
		{"correct at high boundary", true, intPtr(3), StagePractice, RemediationNone},
		{"correct low confidence", true, intPtr(2), StageReinforce, RemediationBrief},
		{"correct lowest confidence", true, intPtr(1), StageReinforce, RemediationBrief},
		{"incorrect high confidence", false, intPtr(4), StageRemediate, RemediationFullCalibration},
		{"incorrect at high boundary", false, intPtr(3), StageRemediate, RemediationFullCalibration},
		{"incorrect low confidence", false, intPtr(2), StageRemediate, RemediationSupportive},
		{"incorrect lowest confidence", false, intPtr(1), StageRemediate, RemediationSupportive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, remediation := Decide(tt.correct, tt.confidence)
			if stage != tt.wantStage {
				t.Errorf("stage = %q, want %q", stage, tt.wantStage)
			}
			if remediation != tt.wantRemediation {
				t.Errorf("remediation = %q, want %q", remediation, tt.wantRemediation)
			}
		})
	}
}
