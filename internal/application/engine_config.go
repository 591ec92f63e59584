package application

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/fairlens/fairlens/infrastructure/evaluators"
	"github.com/fairlens/fairlens/internal/domain"
	"github.com/fairlens/fairlens/internal/ports"
)

// EngineConfig tunes the decision engine: the weight each trust factor
// carries in the overall score and the per-framework trust thresholds.
// The zero value is not usable; start from DefaultEngineConfig and
// override selectively.
type EngineConfig struct {
	// Factors sets the weight of each built-in trust factor in the
	// overall trust score.
	Factors FactorWeights `yaml:"factors" validate:"required"`

	// TrustThresholds overrides the minimum overall trust score per
	// framework. Frameworks absent from the map keep the built-in
	// defaults.
	TrustThresholds map[string]float64 `yaml:"trust_thresholds" validate:"omitempty,dive,gt=0,lte=100"`

	// DefaultFramework is the framework applied when a processing
	// request names none.
	DefaultFramework string `yaml:"default_framework" validate:"required,min=1"`
}

// FactorWeights holds the per-factor weights for the overall trust
// score. All weights must be positive; relative magnitude is what
// matters since the overall score is a weighted mean.
type FactorWeights struct {
	// DataQuality weights the completeness, consistency, and accuracy
	// factor.
	DataQuality float64 `yaml:"data_quality" validate:"gt=0,lte=10"`

	// ModelConfidence weights the prediction certainty and robustness
	// factor.
	ModelConfidence float64 `yaml:"model_confidence" validate:"gt=0,lte=10"`

	// RegulatoryAlignment weights the framework fit and documentation
	// factor.
	RegulatoryAlignment float64 `yaml:"regulatory_alignment" validate:"gt=0,lte=10"`

	// Ethics weights the fairness and bias detection factor.
	Ethics float64 `yaml:"ethical_considerations" validate:"gt=0,lte=10"`
}

// DefaultEngineConfig returns the engine configuration used when no
// config file is provided.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Factors: FactorWeights{
			DataQuality:         evaluators.DefaultDataQualityWeight,
			ModelConfidence:     evaluators.DefaultModelConfidenceWeight,
			RegulatoryAlignment: evaluators.DefaultRegulatoryAlignmentWeight,
			Ethics:              evaluators.DefaultEthicsWeight,
		},
		DefaultFramework: evaluators.DefaultFramework,
	}
}

// ParseEngineConfig parses and validates a YAML engine configuration.
// Fields absent from the document keep their defaults.
func ParseEngineConfig(data []byte) (EngineConfig, error) {
	config := DefaultEngineConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return EngineConfig{}, fmt.Errorf("%w: parsing engine config: %v", domain.ErrInvalidConfiguration, err)
	}
	if err := config.Validate(); err != nil {
		return EngineConfig{}, err
	}
	return config, nil
}

// LoadEngineConfig reads, parses, and validates an engine configuration
// file.
func LoadEngineConfig(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("reading engine config %s: %w", path, err)
	}
	return ParseEngineConfig(data)
}

// Validate checks the configuration against its struct constraints.
func (c EngineConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}
	return nil
}

// FactorConfigs materializes the configured weights into the factor
// configurations a TrustEvaluator consumes.
func (c EngineConfig) FactorConfigs() []FactorConfig {
	return []FactorConfig{
		{Factory: func(w float64) ports.Factor { return evaluators.NewDataQualityFactor(w) }, Weight: c.Factors.DataQuality},
		{Factory: func(w float64) ports.Factor { return evaluators.NewModelConfidenceFactor(w) }, Weight: c.Factors.ModelConfidence},
		{Factory: func(w float64) ports.Factor { return evaluators.NewRegulatoryAlignmentFactor(w) }, Weight: c.Factors.RegulatoryAlignment},
		{Factory: func(w float64) ports.Factor { return evaluators.NewEthicsFactor(w) }, Weight: c.Factors.Ethics},
	}
}
