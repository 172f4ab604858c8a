package services

import "fmt"

const resumeReviewerInstruction = "You are an expert resume reviewer. Provide specific, actionable suggestions to improve resumes for specific job descriptions."

type PromptBuilder struct {
	maxTokens   int
	temperature float32
}

func NewPromptBuilder(maxTokens int, temperature float32) *PromptBuilder {
	return &PromptBuilder{
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// BuildCritiquePrompt embeds the full resume text and job description into a
// single completion request.
func (pb *PromptBuilder) BuildCritiquePrompt(resumeText, jobDescription string) CompletionRequest {
	return CompletionRequest{
		System: resumeReviewerInstruction,
		User: fmt.Sprintf("Resume:\n%s\n\nJob Description:\n%s\n\nPlease provide specific suggestions to improve this resume for this job.",
			resumeText, jobDescription),
		MaxTokens:   pb.maxTokens,
		Temperature: pb.temperature,
	}
}
