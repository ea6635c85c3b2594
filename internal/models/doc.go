// Package models lists the text and image models available to the
// configured OpenAI and Gemini API keys, so users can pick values for
// --text-model and --image-model.
package models
