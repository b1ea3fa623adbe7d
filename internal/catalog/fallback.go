package catalog

// FallbackAssessments returns a built-in catalog compiled from publicly
// available SHL product information, used when scraping yields nothing.
func FallbackAssessments() *Assessments {
	return &Assessments{Items: []*Assessment{
		{
			Name:            "Verify Interactive - Cognitive Ability",
			URL:             "https://www.shl.com/solutions/products/verify-interactive/",
			Description:     "Assess critical reasoning through engaging, interactive tasks. Measures verbal, numerical, and inductive reasoning with gamified elements.",
			RemoteTesting:   SupportYes,
			AdaptiveSupport: SupportYes,
			Duration:        "30 minutes",
			TestType:        TestTypeCognitive,
		},
		{
			Name:            "Verify - Numerical Reasoning",
			URL:             "https://www.shl.com/solutions/products/verify/numerical-reasoning/",
			Description:     "Measures the ability to make correct decisions or inferences from numerical data. Helps predict performance in roles requiring analysis and interpretation of numerical information.",
			RemoteTesting:   SupportYes,
			AdaptiveSupport: SupportYes,
			Duration:        "18 minutes",
			TestType:        TestTypeCognitive,
		},
		{
			Name:            "Verify - Verbal Reasoning",
			URL:             "https://www.shl.com/solutions/products/verify/verbal-reasoning/",
			Description:     "Measures the ability to evaluate the logic of various statements based on passage information. Essential for roles requiring complex verbal information processing.",
			RemoteTesting:   SupportYes,
			AdaptiveSupport: SupportYes,
			Duration:        "17 minutes",
			TestType:        TestTypeCognitive,
		},
		{
			Name:            "Verify - Inductive Reasoning",
			URL:             "https://www.shl.com/solutions/products/verify/inductive-reasoning/",
			Description:     "Measures the ability to identify logical patterns and relationships. Useful for roles requiring problem-solving, innovation, and working with complex information.",
			RemoteTesting:   SupportYes,
			AdaptiveSupport: SupportYes,
			Duration:        "18 minutes",
			TestType:        TestTypeCognitive,
		},
		{
			Name:            "OPQ - Occupational Personality Questionnaire",
			URL:             "https://www.shl.com/solutions/products/opq/",
			Description:     "Provides an accurate, detailed view of personality to help predict workplace performance and cultural fit. Measures 32 personality characteristics.",
			RemoteTesting:   SupportYes,
			AdaptiveSupport: SupportNo,
			Duration:        "25 minutes",
			TestType:        TestTypePersonality,
		},
		{
			Name:            "Verify for Programmers",
			URL:             "https://www.shl.com/solutions/products/coding-tests/",
			Description:     "Measures programming skills through real-world coding challenges. Available for Java, Python, JavaScript, C#, and more.",
			RemoteTesting:   SupportYes,
			AdaptiveSupport: SupportNo,
			Duration:        "60 minutes",
			TestType:        TestTypeSkill,
		},
		{
			Name:            "Situational Judgement Test",
			URL:             "https://www.shl.com/solutions/products/situational-judgement/",
			Description:     "Presents realistic workplace scenarios to measure judgment and decision-making ability. Highly customizable to specific roles.",
			RemoteTesting:   SupportYes,
			AdaptiveSupport: SupportNo,
			Duration:        "30 minutes",
			TestType:        TestTypeSituational,
		},
		{
			Name:            "MQ - Motivation Questionnaire",
			URL:             "https://www.shl.com/solutions/products/motivation-questionnaire/",
			Description:     "Measures 18 key dimensions of motivation to help understand what drives an individual in the workplace. Predicts job satisfaction and engagement.",
			RemoteTesting:   SupportYes,
			AdaptiveSupport: SupportNo,
			Duration:        "25 minutes",
			TestType:        TestTypePersonality,
		},
		{
			Name:            "Verify for Microsoft Excel",
			URL:             "https://www.shl.com/solutions/products/ms-office-tests/",
			Description:     "Assesses proficiency in Microsoft Excel through practical tasks. Covers formulas, functions, data manipulation, and analysis.",
			RemoteTesting:   SupportYes,
			AdaptiveSupport: SupportNo,
			Duration:        "40 minutes",
			TestType:        TestTypeSkill,
		},
		{
			Name:            "ADEPT-15 Personality Assessment",
			URL:             "https://www.shl.com/solutions/products/adept-15/",
			Description:     "Measures 15 aspects of personality that impact critical work outcomes. Offers a deep, contextual understanding of workplace behaviors.",
			RemoteTesting:   SupportYes,
			AdaptiveSupport: SupportYes,
			Duration:        "25 minutes",
			TestType:        TestTypePersonality,
		},
		{
			Name:            "Executive Assessment",
			URL:             "https://www.shl.com/solutions/products/executive-assessment/",
			Description:     "Tailored for leadership roles, measures strategic thinking, leading change, and executive presence. Combines cognitive and behavioral measures.",
			RemoteTesting:   SupportYes,
			AdaptiveSupport: SupportYes,
			Duration:        "90 minutes",
			TestType:        TestTypeCognitive,
		},
		{
			Name:            "SQL Assessment",
			URL:             "https://www.shl.com/solutions/products/technical-assessments/",
			Description:     "Evaluates SQL proficiency through practical database queries and data manipulation tasks. Tests understanding of SQL syntax, joins, aggregation, and optimization.",
			RemoteTesting:   SupportYes,
			AdaptiveSupport: SupportNo,
			Duration:        "45 minutes",
			TestType:        TestTypeSkill,
		},
	}}
}
