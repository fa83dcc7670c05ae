package genai

import "strings"

// instructionTemplate is the fixed system instruction sent with every
// screenshot. User free text, when present, is appended under "Additional
// instructions".
const instructionTemplate = `You are an expert frontend engineer. Analyze the attached UI design screenshot and generate a single React component that reproduces it as faithfully as possible.

Requirements:
- Use TypeScript and functional components.
- Use Tailwind CSS utility classes for all styling. Do not write custom CSS.
- Match the layout, spacing, colors and typography of the screenshot.
- Use semantic HTML elements where appropriate.
- The component must be self-contained in one file and export default.
- Respond with the source code only, no explanations.`

func buildPrompt(userPrompt string) string {
	if strings.TrimSpace(userPrompt) == "" {
		return instructionTemplate
	}
	return instructionTemplate + "\n\nAdditional instructions:\n" + strings.TrimSpace(userPrompt)
}

// stripCodeFence removes a surrounding markdown code fence that the model
// tends to add despite the instruction not to.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
