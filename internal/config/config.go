package config

import "time"

type Config struct {
	Log      LogConfig      `yaml:"log"`
	Items    ItemsConfig    `yaml:"items"`
	Output   OutputConfig   `yaml:"output"`
	Parallel bool           `yaml:"parallel" env:"BENCH_PARALLEL" env-default:"false"`
	Engines  []EngineConfig `yaml:"engines"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

type ItemsConfig struct {
	OCRList string `yaml:"ocr_list" env:"BENCH_OCR_LIST" env-default:"data/ocr_list.txt"`
	LLMList string `yaml:"llm_list" env:"BENCH_LLM_LIST" env-default:"data/llm_list.txt"`
}

type OutputConfig struct {
	Results string `yaml:"results" env:"BENCH_RESULTS_PATH" env-default:"benchmark_results.json"`
	Texts   string `yaml:"texts"   env:"BENCH_TEXTS_PATH"   env-default:"ocr_texts.json"`
	Summary string `yaml:"summary" env:"BENCH_SUMMARY_PATH"`
}

// EngineConfig carries the constructor parameters of one engine. Only the
// fields relevant to Type are read.
type EngineConfig struct {
	Name    string        `yaml:"name"`
	Type    string        `yaml:"type"`
	Kind    string        `yaml:"kind"`
	Timeout time.Duration `yaml:"timeout"`

	// HTTP services
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`

	// AWS
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`

	// ABBYY
	ApplicationID string `yaml:"application_id"`
	Password      string `yaml:"password"`
	Profile       string `yaml:"profile"`

	// Tesseract
	Languages string `yaml:"languages"`
	PSM       string `yaml:"psm"`
	DPI       int    `yaml:"dpi"`

	// LLM generation
	System      string  `yaml:"system"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`

	// Subprocess engines
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}
