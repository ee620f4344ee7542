package stats

import (
	"math"
	"slices"

	"github.com/fuikk/fuikk/schema"
)

// Generator computes CourseSemesterStats from raw answers.
type Generator struct {
	detector LanguageDetector
}

// NewGenerator creates a Generator. A nil detector falls back to HeuristicDetector.
func NewGenerator(detector LanguageDetector) *Generator {
	if detector == nil {
		detector = HeuristicDetector{}
	}
	return &Generator{detector: detector}
}

// Generate builds the stats record for one course in one semester.
// It returns nil when nobody answered the survey.
func (g *Generator) Generate(course schema.Course, raw *schema.RawAnswerSet, participation schema.Participation, scales schema.Scales) *schema.CourseSemesterStats {
	if participation.Answered == 0 {
		return nil
	}

	percentage := 100.0
	if participation.Invited > 0 {
		percentage = 100 * float64(participation.Answered) / float64(participation.Invited)
	}

	questions := schema.NewQuestionSet()
	var language *schema.Language
	detected := false

	if raw != nil {
		for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
			if !detected {
				lang := g.detector.Detect(pair.Key)
				if lang != schema.UnknownLanguage {
					language = &lang
				}
				detected = true
			}

			scale, ok := scales[pair.Key]
			if !ok {
				continue
			}
			questions.Set(pair.Key, QuestionStatsFor(pair.Value, scale))
		}
	}

	return &schema.CourseSemesterStats{
		Course:           course,
		Respondents:      participation,
		AnswerPercentage: percentage,
		Language:         language,
		Questions:        questions,
	}
}

// QuestionStatsFor computes counts and the average for one question's answers.
func QuestionStatsFor(answers []string, scale schema.AnswerScale) schema.QuestionStats {
	order := normalizeAll(scale.Order)
	slices.Reverse(order)

	ignore := make(map[string]struct{}, len(scale.Ignore))
	for _, l := range normalizeAll(scale.Ignore) {
		ignore[l] = struct{}{}
	}

	counts := make(map[string]int)
	total, matched := 0, 0
	allIgnored := true

	for _, answer := range answers {
		normalized := Normalize(answer)
		if _, skip := ignore[normalized]; skip {
			continue
		}
		allIgnored = false
		index := slices.Index(order, normalized)
		if index < 0 {
			continue
		}
		matched++
		total += index
		counts[normalized]++
	}

	if allIgnored {
		return schema.QuestionStats{
			Counts:      counts,
			Average:     schema.NoAverage,
			AverageText: schema.AllIgnoredText,
		}
	}
	if matched == 0 {
		return schema.QuestionStats{Counts: counts, Average: schema.NoAverage}
	}

	average := float64(total) / float64(matched)
	return schema.QuestionStats{
		Counts:      counts,
		Average:     schema.NumericAverage(average),
		AverageText: order[RoundIndex(average)],
	}
}

// RoundIndex rounds an average to the nearest scale index, ties to even.
func RoundIndex(average float64) int {
	return int(math.RoundToEven(average))
}
