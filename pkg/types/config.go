package types

// ConversionBackend identifies the tool that turns a source document into
// normalized text.
type ConversionBackend string

const (
	BackendDocx   ConversionBackend = "docx"
	BackendHTML   ConversionBackend = "html"
	BackendPandoc ConversionBackend = "pandoc"
)

// ConversionConfig holds settings for the conversion stage.
type ConversionConfig struct {
	// Backend selects the converter: docx, html, or pandoc (default docx).
	Backend ConversionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// StatutesDir is the base directory for statutes (contains raw/, text/).
	StatutesDir string `json:"statutes_dir" yaml:"statutes_dir" mapstructure:"statutes_dir"`

	// Workers bounds how many documents are converted at once (default 4).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// Runtime picks the container engine for the pandoc backend: docker,
	// podman, or empty to use whichever is available.
	Runtime string `json:"runtime" yaml:"runtime" mapstructure:"runtime"`
}

// ParseConfig holds settings for the parse stage.
type ParseConfig struct {
	// StatutesDir is the base directory for statutes (contains text/, records/).
	StatutesDir string `json:"statutes_dir" yaml:"statutes_dir" mapstructure:"statutes_dir"`

	// Workers bounds how many texts are parsed at once (default 4).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// AllowEmpty writes an empty record file instead of failing when a
	// text contains no section header.
	AllowEmpty bool `json:"allow_empty" yaml:"allow_empty" mapstructure:"allow_empty"`
}

// RecordStoreConfig holds settings for the record store.
type RecordStoreConfig struct {
	// StatutesDir is the base directory for statutes (contains records/, index/).
	StatutesDir string `json:"statutes_dir" yaml:"statutes_dir" mapstructure:"statutes_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Conversion ConversionConfig  `json:"convert" yaml:"convert" mapstructure:"convert"`
	Parse      ParseConfig       `json:"parse" yaml:"parse" mapstructure:"parse"`
	Records    RecordStoreConfig `json:"records" yaml:"records" mapstructure:"records"`
}
