package score

// Report agrega tudo que a página de resultados exibe para um resultado bruto.
type Report struct {
	IQ                   int                `json:"iq"`
	Score                int                `json:"score"`
	TotalQuestions       int                `json:"total_questions"`
	Percentage           int                `json:"percentage"`
	Performance          PerformanceLevel   `json:"performance"`
	Interpretation       Interpretation     `json:"interpretation"`
	Profile              CognitiveProfile   `json:"cognitive_profile"`
	Strengths            []string           `json:"strengths"`
	ImprovementAreas     []ImprovementArea  `json:"improvement_areas"`
	PopulationComparison string             `json:"population_comparison"`
	Distribution         []DistributionBand `json:"distribution"`
}

func BuildReport(correct, total int) Report {
	iq := IQ(correct, total)
	pct := Percentage(correct, total)

	return Report{
		IQ:                   iq,
		Score:                correct,
		TotalQuestions:       total,
		Percentage:           pct,
		Performance:          Performance(iq),
		Interpretation:       Interpret(iq),
		Profile:              Profile(pct),
		Strengths:            Strengths(pct),
		ImprovementAreas:     ImprovementAreas(pct),
		PopulationComparison: PopulationComparison(iq),
		Distribution:         Distribution(),
	}
}
