package entity

// LLMGenerateRequest is a single call to the text-generation capability.
type LLMGenerateRequest struct {
	Prompt            string
	SystemInstruction string
}
