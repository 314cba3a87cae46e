package content

import (
	"fmt"
	"strconv"
	"strings"
)

const systemPrompt = `You are an expert language tutor generating the next piece of course content for an adaptive learning system. Produce content matched to the requested pedagogical stage. Keep explanations concrete and brief, and always include one new question for the learner to answer.`

// buildUserMessage renders the generation prompt from the engine's
// hand-off.
func buildUserMessage(input GenerationInput) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Course: %s\n", input.Course))
	b.WriteString(fmt.Sprintf("Concept: %s\n", input.Concept))
	b.WriteString(fmt.Sprintf("Stage: %s\n", input.Stage))
	if input.RemediationType != "" {
		b.WriteString(fmt.Sprintf("Remediation type: %s\n", input.RemediationType))
	}

	b.WriteString(fmt.Sprintf("Last answer correct: %t\n", input.Correct))
	if input.Confidence != nil {
		b.WriteString(fmt.Sprintf("Learner's self-reported confidence: %d/4\n", *input.Confidence))
	}

	if input.LearningStyle != "" {
		b.WriteString(fmt.Sprintf("Learning style: %s\n", input.LearningStyle))
	}
	if len(input.Interests) > 0 {
		b.WriteString(fmt.Sprintf("Interests: %s\n", strings.Join(input.Interests, ", ")))
	}

	if qc := input.QuestionContext; qc != nil {
		b.WriteString("\nPrevious question:\n")
		if qc.Scenario != "" {
			b.WriteString(fmt.Sprintf("Scenario: %s\n", qc.Scenario))
		}
		b.WriteString(fmt.Sprintf("Question: %s\n", qc.Question))
		if qc.ChosenAnswer != "" {
			b.WriteString(fmt.Sprintf("Learner chose: %s\n", resolveAnswer(qc.ChosenAnswer, qc.Options)))
		}
		if qc.CorrectAnswer != "" {
			b.WriteString(fmt.Sprintf("Correct answer: %s\n", resolveAnswer(qc.CorrectAnswer, qc.Options)))
		}
	}

	if len(input.RecentQuestions) > 0 {
		b.WriteString("\nRecently asked (do not repeat):\n")
		for _, q := range input.RecentQuestions {
			b.WriteString(fmt.Sprintf("- %s\n", q))
		}
	}

	b.WriteString("\n")
	b.WriteString(stageInstructions(input.Stage, input.RemediationType))

	return b.String()
}

// resolveAnswer maps an option index to its text. Out-of-range or
// non-numeric values are echoed as-is rather than rejected.
func resolveAnswer(answer string, options []string) string {
	idx, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return answer
	}
	if idx < 0 || idx >= len(options) {
		return answer
	}
	return options[idx]
}

func stageInstructions(stage, remediationType string) string {
	switch stage {
	case "reinforce":
		return `Instructions:
The learner answered correctly but lacked confidence. Give a brief affirmation of why their answer was right (2-3 sentences), then pose one question of the same difficulty to cement the pattern.`
	case "remediate":
		switch remediationType {
		case "full_calibration":
			return `Instructions:
The learner answered incorrectly while confident they were right. Walk through the previous question step by step: show why the chosen answer fails and why the correct one works. Then pose one slightly easier question on the same concept.`
		case "supportive":
			return `Instructions:
The learner answered incorrectly and knew they were unsure. Be encouraging. Re-explain the underlying rule with one fresh example, then pose one easier question on the same concept.`
		default:
			return `Instructions:
The learner answered incorrectly. Re-explain the rule briefly and pose one easier question on the same concept.`
		}
	default:
		return `Instructions:
The learner is progressing well. Pose one new question on the concept, of equal or slightly higher difficulty than the previous one. Keep any framing to a sentence or two.`
	}
}
