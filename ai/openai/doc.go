// Package openai implements ai.Embedder against OpenAI-compatible APIs.
//
// Any service exposing the OpenAI embeddings endpoint works: Ollama, LocalAI,
// vLLM, or OpenAI itself. Local services that skip authentication are handled
// by sending a placeholder token.
package openai
