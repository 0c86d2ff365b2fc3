// Package googleai provides an ai.AIProvider implementation backed by Google
// Gemini models, for deployments that extract and answer through the Gemini
// API instead of an OpenAI-compatible endpoint.
package googleai
