package analysis

// SuggestedPrompt is a ready-made follow-up question.
type SuggestedPrompt struct {
	Title       string `json:"title"`
	Text        string `json:"text"`
	Description string `json:"description"`
}

// PromptCategory groups suggested prompts under a heading.
type PromptCategory struct {
	Category string            `json:"category"`
	Prompts  []SuggestedPrompt `json:"prompts"`
}

var suggestedPrompts = []PromptCategory{
	{
		Category: "🔍 Insight & Summary",
		Prompts: []SuggestedPrompt{
			{
				Title:       "Summarize Student Understanding",
				Text:        "Summarize the overall understanding students demonstrated in their responses. Highlight common correct ideas and misconceptions.",
				Description: "Quickly gauge class-wide comprehension",
			},
			{
				Title:       "Identify Misconceptions",
				Text:        "What are the most common misconceptions or errors found in the student responses?",
				Description: "Prioritize reteaching or targeted intervention",
			},
			{
				Title:       "Group by Understanding Level",
				Text:        "Cluster student responses into groups: correct understanding, partial understanding, and incorrect or confused responses.",
				Description: "Tailor feedback and group instruction",
			},
		},
	},
	{
		Category: "🎯 Feedback & Grading",
		Prompts: []SuggestedPrompt{
			{
				Title:       "Suggest Rubric Scores",
				Text:        "Assign a rubric score (0–3) to each student response and explain the reasoning.",
				Description: "Speed up grading or double-check manual scores",
			},
			{
				Title:       "Generate Individual Feedback",
				Text:        "Generate brief, personalized feedback for each student based on their response.",
				Description: "Automate quality formative feedback",
			},
			{
				Title:       "Highlight Exemplars",
				Text:        "Which student responses best exemplify a strong answer? What makes them strong?",
				Description: "Share exemplar work with the class",
			},
		},
	},
	{
		Category: "🚀 Extension & Strategy",
		Prompts: []SuggestedPrompt{
			{
				Title:       "Suggest Follow-Up Questions",
				Text:        "Based on the student responses, what are good follow-up questions or extension tasks to deepen their thinking?",
				Description: "Extend learning with minimal prep",
			},
			{
				Title:       "Surface Meta-Cognitive Patterns",
				Text:        "What do student responses suggest about how they are thinking about the problem (e.g., strategies, confidence, confusion points)?",
				Description: "Understand student problem-solving approaches",
			},
		},
	},
	{
		Category: "🧰 Technical Analysis",
		Prompts: []SuggestedPrompt{
			{
				Title:       "Analyze Word Usage",
				Text:        "What are the most frequently used words or phrases across all student answers? What do these suggest about their understanding?",
				Description: "Spot patterns in language tied to concepts",
			},
			{
				Title:       "Compare to Model Answer",
				Text:        "Compare each student response to the model answer. Identify which key components are missing or misapplied.",
				Description: "Target gaps explicitly",
			},
		},
	},
}

// SuggestedPrompts returns a copy of the built-in prompt catalog.
func SuggestedPrompts() []PromptCategory {
	out := make([]PromptCategory, len(suggestedPrompts))
	for i, c := range suggestedPrompts {
		out[i] = PromptCategory{
			Category: c.Category,
			Prompts:  append([]SuggestedPrompt(nil), c.Prompts...),
		}
	}
	return out
}
