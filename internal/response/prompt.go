package response

import (
	"fmt"
	"strings"
)

const generationSystemPrompt = `You are an educational expert who specializes in simulating realistic student responses. Generate varied answers that reflect the natural diversity found in real classrooms, including different levels of understanding, writing abilities, and engagement with the material.`

// buildGenerationMessage asks for count numbered answers to question.
func buildGenerationMessage(question string, count int) string {
	var b strings.Builder

	b.WriteString("You are simulating students answering the following question:\n\n")
	fmt.Fprintf(&b, "%q\n\n", question)
	fmt.Fprintf(&b, "Generate %d diverse and realistic student answers. ", count)
	b.WriteString("Include strong, average, and weak answers. ")
	b.WriteString("Vary tone, language, and correctness slightly to simulate real student variety.\n\n")

	b.WriteString("Format your response as a numbered list where each answer is on its own line, like:\n")
	b.WriteString("1. [First student answer]\n")
	b.WriteString("2. [Second student answer]\n")
	b.WriteString("3. [Third student answer]\n")
	b.WriteString("...\n\n")

	b.WriteString("Make sure each answer feels authentic to how real students would respond, ")
	b.WriteString("with natural variation in writing style, depth of understanding, and accuracy.")

	return b.String()
}

// generationTokenBudget scales the token budget with the batch size.
func generationTokenBudget(count int, cfg Config) int {
	return min(count*cfg.TokensPerResponse, cfg.MaxTokens)
}
