package ai

// Prompts avoid curly braces: eino templates are rendered with FString.
const (
	replySystemPrompt = "You are a supportive and empathetic mental health chatbot. Your responses should be helpful, understanding, and focused on providing emotional support. Keep responses concise and natural."

	moodSystemPrompt = "Analyze the emotional tone of the following message and respond with a JSON object containing 'mood' (one of: positive, negative, neutral, anxious, depressed, angry), 'intensity' (1-10), and 'explanation'."

	crisisSystemPrompt = "You are a mental health assistant. If the following message indicates a crisis or risk of self-harm or suicide, respond with 'true'. Otherwise, respond with 'false'."
)

// Per-call generation limits.
const (
	replyMaxTokens  = 150
	moodMaxTokens   = 100
	crisisMaxTokens = 5

	replyTemperature  = 0.7
	moodTemperature   = 0.3
	crisisTemperature = 0
)
