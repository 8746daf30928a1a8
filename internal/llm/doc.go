// Package llm defines the model gateway used to translate mod files and
// provides adapters for the OpenAI chat completions API and the Gemini API,
// plus a circuit breaker that can sit in front of either.
package llm
