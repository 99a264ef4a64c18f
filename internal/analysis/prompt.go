// Package analysis answers a teacher's follow-up question about a batch of
// student responses, either through an LLM or with canned mock answers.
package analysis

import (
	"fmt"
	"strings"

	"github.com/abhisek/studentsim/internal/llm"
	"github.com/abhisek/studentsim/internal/response"
)

// Request settings for an analysis call.
const (
	MaxTokens   = 1200
	Temperature = 0.7
)

const systemPrompt = `You are an educational expert who provides clear, well-structured analysis. Always format your responses for maximum readability using markdown-style formatting. When giving individual student feedback, use "**Student X**:" format. Use numbered lists (1., 2., 3.) for sequential points and bullet points (-) for lists. Use **bold** for key terms and *italics* for emphasis. Separate sections with blank lines and use clear section headers when appropriate.`

const shapeInstructions = `RESPONSE SHAPES:
Choose the one shape that best fits the follow-up question.
- Narrative: plain paragraphs, lists and section headers.
- Per-student feedback: one "**Student X**:" line per student, in order.
- Chart: when a visual breakdown helps, include one fenced json block:
` + "```json" + `
{"type": "CHART_DATA", "chartType": "bar" | "pie" | "line", "title": "...", "data": [{"label": "...", "value": 3, "description": "..."}], "insights": "..."}
` + "```" + `
- Dashboard: for a comprehensive overview, include one fenced json block:
` + "```json" + `
{"type": "DASHBOARD", "title": "...", "components": [
  {"type": "summary", "title": "...", "content": "..."},
  {"type": "chart", "chartType": "bar", "title": "...", "data": [{"label": "...", "value": 2}]},
  {"type": "insights", "title": "...", "items": ["..."]},
  {"type": "recommendations", "title": "...", "items": ["..."]}
]}
` + "```"

const formattingInstructions = `FORMATTING INSTRUCTIONS:
- Use clear, structured formatting to make your response easy to read
- For individual student feedback, use exactly this format: "**Student X**:" followed by the feedback
- For numbered points, use "1." "2." etc. at the start of lines
- For bullet points, use "-" at the start of lines
- Use **bold text** for emphasis on key terms or concepts
- Use *italic text* for secondary emphasis
- Separate different sections with blank lines
- If providing an overall analysis, you may start with "Analysis:" as a section header
- Keep paragraphs focused and well-spaced for readability

Structure your response logically and use the formatting above to enhance clarity.`

// BuildRequest assembles the generation request for a follow-up question.
// The response is not checked for compliance with the requested shapes.
func BuildRequest(originalQuestion string, responses []response.StudentResponse, followUp string) llm.Request {
	return llm.Prompt(systemPrompt, buildUserMessage(originalQuestion, responses, followUp), MaxTokens, Temperature)
}

func buildUserMessage(originalQuestion string, responses []response.StudentResponse, followUp string) string {
	var b strings.Builder

	b.WriteString("You are an education expert. A teacher asked students the following question:\n\n")
	fmt.Fprintf(&b, "%q\n\n", originalQuestion)

	b.WriteString("The students responded with:\n\n")
	blocks := make([]string, 0, len(responses))
	for _, r := range responses {
		blocks = append(blocks, fmt.Sprintf("Student %d: %s", r.ID, r.Content))
	}
	b.WriteString(strings.Join(blocks, "\n\n"))
	b.WriteString("\n\n")

	b.WriteString("Now answer this follow-up question:\n")
	fmt.Fprintf(&b, "%q\n\n", followUp)

	n := len(responses)
	fmt.Fprintf(&b, "IMPORTANT: If your analysis involves individual student feedback, you MUST provide feedback for ALL %d students (Student 1 through Student %d). Do not skip any students.\n\n", n, n)

	b.WriteString(shapeInstructions)
	b.WriteString("\n\n")
	b.WriteString(formattingInstructions)

	return b.String()
}
