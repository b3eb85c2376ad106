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

package match

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// weightEpsilon tolerates floating-point drift when checking the weight sum.
const weightEpsilon = 1e-6

// Weights are the per-layer multipliers combined into one confidence score.
// All five must be positive and sum to 1.0.
type Weights struct {
	Exact    float64 `yaml:"exact"`
	Fuzzy    float64 `yaml:"fuzzy"`
	Semantic float64 `yaml:"semantic"`
	Domain   float64 `yaml:"domain"`
	Intent   float64 `yaml:"intent"`
}

// For returns the weight of the given layer.
func (w Weights) For(layer Layer) float64 {
	switch layer {
	case LayerExact:
		return w.Exact
	case LayerFuzzy:
		return w.Fuzzy
	case LayerSemantic:
		return w.Semantic
	case LayerDomain:
		return w.Domain
	case LayerIntent:
		return w.Intent
	}
	return 0
}

func (w Weights) validate() error {
	for _, layer := range layerOrder {
		if w.For(layer) <= 0 {
			return fmt.Errorf("%w: %s weight %.4f is not positive", ErrInvalidWeights, layer, w.For(layer))
		}
	}
	sum := w.Exact + w.Fuzzy + w.Semantic + w.Domain + w.Intent
	if math.Abs(sum-1.0) > weightEpsilon {
		return fmt.Errorf("%w: weights sum to %.6f, want 1.0", ErrInvalidWeights, sum)
	}
	return nil
}

// Thresholds discretize a confidence score into levels. Low is a hard floor:
// below it a result is noise, not signal, and is dropped entirely.
type Thresholds struct {
	High   float64 `yaml:"high"`
	Medium float64 `yaml:"medium"`
	Low    float64 `yaml:"low"`
}

// Level returns the confidence level for a score that passed the floor.
func (t Thresholds) Level(confidence float64) Level {
	switch {
	case confidence >= t.High:
		return LevelHigh
	case confidence >= t.Medium:
		return LevelMedium
	default:
		return LevelLow
	}
}

func (t Thresholds) validate() error {
	if t.High > 1 {
		return fmt.Errorf("%w: high=%.2f exceeds 1.0", ErrInvalidThresholds, t.High)
	}
	if t.High <= t.Medium || t.Medium <= t.Low || t.Low <= 0 {
		return fmt.Errorf("%w: high=%.2f medium=%.2f low=%.2f, want high > medium > low > 0",
			ErrInvalidThresholds, t.High, t.Medium, t.Low)
	}
	return nil
}

// Config is the complete matching configuration: layer weights, confidence
// thresholds, the fuzzy floor, the default result count, and the injectable
// vocabulary tables. Engines validate it at construction and treat it as
// immutable afterwards.
type Config struct {
	Weights    Weights    `yaml:"weights"`
	Thresholds Thresholds `yaml:"thresholds"`

	// FuzzyFloor is the minimum per-token similarity that may contribute to
	// the fuzzy layer average.
	FuzzyFloor float64 `yaml:"fuzzy_floor"`

	// MaxResults is the result count used when a caller does not supply one.
	MaxResults int `yaml:"max_results"`

	// Synonyms is the business vocabulary table used for token expansion.
	Synonyms SynonymTable `yaml:"synonyms"`

	// Intents is the ordered intent taxonomy; declaration order is the
	// classification tie-break.
	Intents []IntentCategory `yaml:"intents"`
}

// DefaultConfig returns the documented production configuration.
func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{
			Exact:    0.20,
			Fuzzy:    0.25,
			Semantic: 0.35,
			Domain:   0.15,
			Intent:   0.05,
		},
		Thresholds: Thresholds{
			High:   0.65,
			Medium: 0.40,
			Low:    0.20,
		},
		FuzzyFloor: 0.60,
		MaxResults: 3,
		Synonyms:   DefaultSynonyms(),
		Intents:    DefaultIntents(),
	}
}

// LoadConfig reads a YAML file over the defaults: absent keys keep their
// default values, present keys replace them. The merged configuration is
// validated before it is returned.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading match config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing match config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks weights, thresholds, floor and result count. Configuration
// errors are fatal: engines must never serve requests over an invalid Config.
func (c *Config) Validate() error {
	if err := c.Weights.validate(); err != nil {
		return err
	}
	if err := c.Thresholds.validate(); err != nil {
		return err
	}
	if c.FuzzyFloor < 0 || c.FuzzyFloor > 1 {
		return fmt.Errorf("%w: %.2f outside [0, 1]", ErrInvalidFloor, c.FuzzyFloor)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxResults, c.MaxResults)
	}
	return nil
}
