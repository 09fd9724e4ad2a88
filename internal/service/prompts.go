package service

import "fmt"

// Prompt assembly for the generation client. The assessment prompt
// embeds the content-analysis summary and pushes hard on diversity so
// the model does not collapse into one question template.

const promptSourceLimit = 6000

func assessmentSystemPrompt(numQuestions int, contentAnalysis string) string {
	return fmt.Sprintf(
		"You are an expert assessment designer creating HIGHLY DIVERSE, content-specific multiple-choice questions.\n"+
			"OUTPUT STRICT JSON ONLY: {\"items\":[{\"id\":\"uuid\",\"question\":\"...\",\"options\":[\"...\",\"...\",\"...\",\"...\"],\"correctAnswer\":0}]}\n"+
			"\n"+
			"MAXIMUM DIVERSITY REQUIREMENTS:\n"+
			"- Create EXTREMELY DIVERSE questions that test different cognitive levels\n"+
			"- Each question must be COMPLETELY UNIQUE in structure, approach, and content focus\n"+
			"- Vary question complexity: basic recall, comprehension, application, analysis, synthesis, evaluation\n"+
			"- Use CREATIVE question formats and phrasings\n"+
			"- Test different aspects: facts, concepts, processes, relationships, implications\n"+
			"\n"+
			"QUESTION TYPE VARIETY (use different types for each question):\n"+
			"1. DEFINITION: 'What is the precise definition of [specific term] according to the text?'\n"+
			"2. APPLICATION: 'In which scenario would [specific concept] be most effective?'\n"+
			"3. CAUSE-EFFECT: 'What is the primary cause of [specific phenomenon] mentioned?'\n"+
			"4. COMPARISON: 'How does [concept A] differ fundamentally from [concept B]?'\n"+
			"5. ANALYSIS: 'What does the author suggest about [specific topic]?'\n"+
			"6. SYNTHESIS: 'Based on the evidence presented, what conclusion can be drawn?'\n"+
			"7. EVALUATION: 'Which statement best evaluates the effectiveness of [specific method]?'\n"+
			"8. SCENARIO: 'If [specific situation] occurred, what would be the expected outcome?'\n"+
			"9. SEQUENCE: 'What is the correct order of [specific process] steps?'\n"+
			"10. IMPLICATION: 'What would happen if [specific condition] were changed?'\n"+
			"\n"+
			"CONTENT-SPECIFIC REQUIREMENTS:\n"+
			"- Reference SPECIFIC names, dates, numbers, percentages, or unique details\n"+
			"- Use EXACT terminology and phrases from the source material\n"+
			"- Create SMART distractors that are contextually plausible but factually incorrect\n"+
			"- Ensure correct answers are DIRECTLY supported by the provided text\n"+
			"- Test comprehension of DIFFERENT sections, concepts, and details\n"+
			"\n"+
			"TECHNICAL REQUIREMENTS:\n"+
			"- Exactly 4 options, 1 correct answer\n"+
			"- Options under 100 characters each for clarity\n"+
			"- Questions 12-35 words long\n"+
			"- NO repetitive question patterns or similar structures\n"+
			"- Each question must test a DIFFERENT aspect of the content\n"+
			"- Generate exactly %d HIGHLY DIVERSE items\n"+
			"\n"+
			"CONTENT ANALYSIS SUMMARY:\n%s\n"+
			"\n"+
			"Create questions that test comprehensive mastery through varied cognitive approaches and content focus.",
		numQuestions, contentAnalysis)
}

const assessmentRepairPrompt = "CRITICAL: Return ONLY valid JSON in this exact format: " +
	"{\"items\":[{\"id\":\"uuid\",\"question\":\"specific content question\",\"options\":[\"option1\",\"option2\",\"option3\",\"option4\"],\"correctAnswer\":0}]}\n" +
	"Each question must be UNIQUE and test different aspects of the content. " +
	"Use specific details, names, numbers, or concepts from the text. " +
	"No explanations, no extra text, just the JSON."

const chunkSummaryPrompt = "Summarize the following transcript segment for a student audience. " +
	"Return ONLY well-formed paragraphs (no bullet points, no lists)."

func metaSummaryPrompt(maxWords int) string {
	return fmt.Sprintf(
		"You are an academic summarizer. Create a final summary under %d words. "+
			"Return ONLY paragraphs without bullets or numbered lists.", maxWords)
}

// truncateForPrompt bounds the user payload sent upstream.
func truncateForPrompt(text string, limit int) string {
	if len(text) > limit {
		return text[:limit]
	}
	return text
}
