// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai abstracts the embedding model used by solvent.
//
// The matching engine treats embedding as an opaque function from text to a
// fixed-length vector. This package defines that contract (Embedder) and the
// endpoint configuration for reaching an embedding service, keeping the core
// scoring logic independent of any concrete model or provider.
//
// # Implementation Packages
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//     (Ollama, LocalAI, vLLM, OpenAI itself)
//   - ai/breaker: circuit-breaker decorator for any Embedder, shielding the
//     query path from a flapping embedding service
//   - ai/mock: deterministic test doubles with injectable behavior
//
// # Constructor Return Type Pattern
//
// Production constructors (openai.NewEmbedder, breaker.New) return the
// ai.Embedder interface to enforce abstraction and prevent coupling to a
// concrete implementation. Test constructors (mock.NewMockEmbedder) return
// concrete types so tests can inject behavior and assert call counts.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	embedder, err := openai.NewEmbedder(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	vector, err := embedder.EmbedText(ctx, "collecting customer feedback")
package ai
