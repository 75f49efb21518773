// Copyright 2026 gamerec Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// Config is the configuration for the recommendation engine.
type Config struct {
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	HTTP      HTTPConfig      `mapstructure:"http"`
}

type ArtifactsConfig struct {
	// Path is the JSON document of named artifacts.
	Path string `mapstructure:"path"`
	// ItemCatalogPath optionally overrides the item index with a CSV catalog.
	ItemCatalogPath   string `mapstructure:"item_catalog_path"`
	ItemCatalogColumn string `mapstructure:"item_catalog_column"`
}

type RecommendConfig struct {
	// SimilarityMatrix selects the matrix used by the next-item
	// recommender; empty picks the first loaded matrix.
	SimilarityMatrix string  `mapstructure:"similarity_matrix"`
	Alpha            float32 `mapstructure:"alpha" validate:"gte=0,lte=1"`
	DefaultN         int     `mapstructure:"default_n" validate:"gt=0"`
	MinOwnership     float32 `mapstructure:"min_ownership" validate:"gte=0,lte=1"`
	MinSimilarity    float32 `mapstructure:"min_similarity" validate:"gte=0"`
}

type HTTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"gte=0,lte=65535"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Artifacts: ArtifactsConfig{
			ItemCatalogColumn: "item_id",
		},
		Recommend: RecommendConfig{
			Alpha:         0.7,
			DefaultN:      10,
			MinOwnership:  0.3,
			MinSimilarity: 0.1,
		},
		HTTP: HTTPConfig{
			Host: "127.0.0.1",
			Port: 8087,
		},
	}
}

func setDefault() {
	defaultConfig := GetDefaultConfig()
	viper.SetDefault("artifacts.item_catalog_column", defaultConfig.Artifacts.ItemCatalogColumn)
	viper.SetDefault("recommend.alpha", defaultConfig.Recommend.Alpha)
	viper.SetDefault("recommend.default_n", defaultConfig.Recommend.DefaultN)
	viper.SetDefault("recommend.min_ownership", defaultConfig.Recommend.MinOwnership)
	viper.SetDefault("recommend.min_similarity", defaultConfig.Recommend.MinSimilarity)
	viper.SetDefault("http.host", defaultConfig.HTTP.Host)
	viper.SetDefault("http.port", defaultConfig.HTTP.Port)
}

// LoadConfig loads the configuration from a TOML file. Environment
// variables prefixed with GAMEREC_ override file values.
func LoadConfig(path string) (*Config, error) {
	setDefault()
	viper.SetConfigFile(path)
	viper.SetEnvPrefix("gamerec")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.Trace(err)
	}
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, errors.Trace(err)
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &config, nil
}

func (config *Config) Validate() error {
	return validator.New().Struct(config)
}
