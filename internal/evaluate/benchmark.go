package evaluate

// DefaultBenchmark is the built-in labeled query set, matched against the
// built-in catalog by assessment name.
func DefaultBenchmark() []BenchmarkQuery {
	return []BenchmarkQuery{
		{
			Query: "I am hiring for Java developers who can also collaborate effectively with my business teams. Looking for an assessment(s) that can be completed in 40 minutes.",
			Relevant: []string{
				"Verify for Programmers",
				"Verify - Verbal Reasoning",
				"Situational Judgement Test",
			},
		},
		{
			Query: "Looking to hire mid-level professionals who are proficient in Python, SQL and Java Script. Need an assessment package that can test all skills with max duration of 60 minutes.",
			Relevant: []string{
				"Verify for Programmers",
				"SQL Assessment",
				"Verify - Inductive Reasoning",
			},
		},
		{
			Query: "Here is a JD text, can you recommend some assessment that can help me screen applications. Time limit is less than 30 minutes.",
			Relevant: []string{
				"Verify - Numerical Reasoning",
				"Verify - Verbal Reasoning",
				"ADEPT-15 Personality Assessment",
			},
		},
		{
			Query: "I am hiring for an analyst and wants applications to screen using Cognitive and personality tests, what options are available within 45 mins.",
			Relevant: []string{
				"Verify - Numerical Reasoning",
				"OPQ - Occupational Personality Questionnaire",
				"ADEPT-15 Personality Assessment",
				"Verify Interactive - Cognitive Ability",
			},
		},
	}
}
