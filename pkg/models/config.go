package models

// UserConfig represents the user configuration section.
type UserConfig struct {
	Name string `yaml:"name"`
}

// OutputConfig represents the output configuration section: where bundles
// are written and for which assistant.
type OutputConfig struct {
	Target       string `yaml:"target"`        // "claude", "cursor", "copilot"
	BundleDir    string `yaml:"bundle_dir"`    // supporting-file directory for the claude target
	EntryFile    string `yaml:"entry_file"`    // override for the entry file name
	IncludeTOC   bool   `yaml:"include_toc"`   // emit a table of contents in the entry file
	SectionRule  string `yaml:"section_rule"`  // "category" or "flat"
	HeaderNotice bool   `yaml:"header_notice"` // emit the generated-file notice
}

// FilterConfig represents the default selection filters applied when the
// build command is invoked without explicit flags.
type FilterConfig struct {
	Language      string   `yaml:"language"`
	Level         string   `yaml:"level"`
	Architectures []string `yaml:"architectures"`
	Tags          []string `yaml:"tags"`
}

// SystemConfig represents the system configuration section.
type SystemConfig struct {
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
	NoColor        bool   `yaml:"no_color"`
	NonInteractive bool   `yaml:"non_interactive"`
}
