// Package config defines the configuration types for cfreplace.
// These types are pure data structures; loading, merging, and validation
// live in internal/configloader.
package config

// DefaultResponseSuffix is appended to a source path to locate its saved
// formatter response in batch mode.
const DefaultResponseSuffix = ".replacements.xml"

// DefaultMaxResponseSize bounds how many bytes of formatter output are read.
const DefaultMaxResponseSize int64 = 64 << 20

// DefaultExtensions lists the source extensions batch discovery considers.
// They are the C family extensions clang-format is most often run on.
func DefaultExtensions() []string {
	return []string{
		"c", "cp", "cpp", "cppm", "c++", "cxx", "cc", "cu", "ino", "ixx",
		"h", "hh", "hpp", "hxx", "inc", "inl", "ipp", "mpp", "pch", "tch", "tpp", "cuh",
	}
}

// BackupsConfig controls backup behavior when rewriting files.
type BackupsConfig struct {
	Enabled *bool  `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Mode    string `mapstructure:"mode" yaml:"mode,omitempty"` // "sidecar" or "none"
}

// Config is the root configuration structure.
//
// Boolean settings are pointers so that a later source can switch off
// something an earlier one switched on; nil means "not set here".
type Config struct {
	// Strategy selects how edits are applied: "descending" or "delta".
	Strategy string `mapstructure:"strategy" yaml:"strategy,omitempty"`

	// OffsetEncoding is the unit used for offsets in reports:
	// "utf8", "utf16", or "runes".
	OffsetEncoding string `mapstructure:"offset_encoding" yaml:"offset_encoding,omitempty"`

	// FailOnIncomplete refuses to write when the formatter reports an
	// incomplete format.
	FailOnIncomplete *bool `mapstructure:"fail_on_incomplete" yaml:"fail_on_incomplete,omitempty"`

	// CheckLanguage refuses to edit files that are not a clang-format language.
	CheckLanguage *bool `mapstructure:"check_language" yaml:"check_language,omitempty"`

	// SkipGenerated leaves machine-generated files alone in batch mode.
	SkipGenerated *bool `mapstructure:"skip_generated" yaml:"skip_generated,omitempty"`

	// Extensions lists source extensions (without dot) for batch discovery.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// ResponseSuffix locates the response saved next to each source file.
	ResponseSuffix string `mapstructure:"response_suffix" yaml:"response_suffix,omitempty"`

	// MaxResponseSize limits how much formatter output is read, in bytes.
	MaxResponseSize int64 `mapstructure:"max_response_size" yaml:"max_response_size,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups,omitempty"`

	// CLI-level options (not persisted to config files).

	// DryRun shows what would change without writing.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation.
	NoBackups bool `mapstructure:"-" yaml:"-"`

	// Force writes even if the file changed since it was read.
	Force bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Strategy:         "descending",
		OffsetEncoding:   "utf8",
		FailOnIncomplete: Bool(false),
		CheckLanguage:    Bool(true),
		SkipGenerated:    Bool(true),
		Extensions:       DefaultExtensions(),
		ResponseSuffix:   DefaultResponseSuffix,
		MaxResponseSize:  DefaultMaxResponseSize,
		Backups: BackupsConfig{
			Enabled: Bool(false),
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

func boolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// ShouldFailOnIncomplete reports whether an incomplete format blocks writing.
func (c *Config) ShouldFailOnIncomplete() bool {
	return boolValue(c.FailOnIncomplete, false)
}

// ShouldCheckLanguage reports whether the language guard is on.
func (c *Config) ShouldCheckLanguage() bool {
	return boolValue(c.CheckLanguage, true)
}

// ShouldSkipGenerated reports whether generated files are skipped.
func (c *Config) ShouldSkipGenerated() bool {
	return boolValue(c.SkipGenerated, true)
}

// BackupsEnabled reports whether backups are written, taking --no-backups
// into account.
func (c *Config) BackupsEnabled() bool {
	return !c.NoBackups && boolValue(c.Backups.Enabled, false)
}
