// Package sequencer is the orchestrator: it takes an answer event,
// decides the next pedagogical stage, runs the calibration, mastery,
// and scheduling updates, and delegates content generation.
package sequencer

// Stage is a pedagogical state in the per-concept loop.
type Stage string

const (
	StageStart     Stage = "start"
	StagePractice  Stage = "practice"
	StageReinforce Stage = "reinforce"
	StageRemediate Stage = "remediate"
	StageCompleted Stage = "completed"
)

// Remediation selects the remediation strategy for a remediate or
// reinforce stage.
type Remediation string

const (
	RemediationNone            Remediation = ""
	RemediationBrief           Remediation = "brief"
	RemediationSupportive      Remediation = "supportive"
	RemediationFullCalibration Remediation = "full_calibration"
)

// HighConfidence is the low end of the "high" band on the 1-4
// submission scale.
const HighConfidence = 3

// Decide maps an answer outcome to the next stage and remediation
// strategy. Confidence is the learner's 1-4 self-rating, nil when the
// question did not ask for one.
//
//	correct, no confidence          -> practice
//	incorrect, no confidence        -> remediate (supportive)
//	correct + high confidence       -> practice
//	correct + low confidence        -> reinforce (brief)
//	incorrect + high confidence     -> remediate (full_calibration)
//	incorrect + low confidence      -> remediate (supportive)
func Decide(correct bool, confidence *int) (Stage, Remediation) {
	if confidence == nil {
		if correct {
			return StagePractice, RemediationNone
		}
		return StageRemediate, RemediationSupportive
	}

	high := *confidence >= HighConfidence
	switch {
	case correct && high:
		return StagePractice, RemediationNone
	case correct && !high:
		return StageReinforce, RemediationBrief
	case !correct && high:
		return StageRemediate, RemediationFullCalibration
	default:
		return StageRemediate, RemediationSupportive
	}
}
