package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/cfreplace/pkg/config"
)

// envVarPrefix is the prefix for all cfreplace environment variables.
const envVarPrefix = "CFREPLACE_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping binds an environment variable to a config field.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"STRATEGY":           {"strategy", envTypeString, "Edit application strategy: descending or delta"},
	"OFFSET_ENCODING":    {"offset_encoding", envTypeString, "Offset unit in reports: utf8, utf16, or runes"},
	"FAIL_ON_INCOMPLETE": {"fail_on_incomplete", envTypeBool, "Refuse to write incomplete formats: true or false"},
	"CHECK_LANGUAGE":     {"check_language", envTypeBool, "Only edit clang-format languages: true or false"},
	"SKIP_GENERATED":     {"skip_generated", envTypeBool, "Skip generated files in batch mode: true or false"},
	"RESPONSE_SUFFIX":    {"response_suffix", envTypeString, "Suffix locating saved responses next to sources"},
	"MAX_RESPONSE_SIZE":  {"max_response_size", envTypeInt, "Maximum response size in bytes"},
	"EXTENSIONS":         {"extensions", envTypeSlice, "Comma-separated list of source extensions"},
	"IGNORE":             {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
	"BACKUPS_ENABLED":    {"backups.enabled", envTypeBool, "Enable backups when writing: true or false"},
	"BACKUPS_MODE":       {"backups.mode", envTypeString, "Backup mode: sidecar or none"},
	"DRY_RUN":            {"dry_run", envTypeBool, "Dry-run mode: true or false"},
	"JOBS":               {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"FORMAT":             {"format", envTypeString, "Output format: text, json, diff, or lsp"},
	"NO_BACKUPS":         {"no_backups", envTypeBool, "Disable backups: true or false"},
	"FORCE":              {"force", envTypeBool, "Write even if the file changed since it was read"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with CFREPLACE_ (e.g., CFREPLACE_STRATEGY).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue splits a comma-separated string, trimming each element
// and dropping empty ones.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "strategy":
		cfg.Strategy = value
	case "offset_encoding":
		cfg.OffsetEncoding = value
	case "response_suffix":
		cfg.ResponseSuffix = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "fail_on_incomplete":
		cfg.FailOnIncomplete = config.Bool(value)
	case "check_language":
		cfg.CheckLanguage = config.Bool(value)
	case "skip_generated":
		cfg.SkipGenerated = config.Bool(value)
	case "backups.enabled":
		cfg.Backups.Enabled = config.Bool(value)
	case "dry_run":
		cfg.DryRun = value
	case "no_backups":
		cfg.NoBackups = value
	case "force":
		cfg.Force = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int64) error {
	switch field {
	case "max_response_size":
		cfg.MaxResponseSize = value
	case "jobs":
		cfg.Jobs = int(value)
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "extensions":
		cfg.Extensions = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their
// descriptions, sorted by name.
func ListEnvVars() [][2]string {
	names := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		names = append(names, suffix)
	}
	slices.Sort(names)

	vars := make([][2]string, 0, len(names))
	for _, suffix := range names {
		vars = append(vars, [2]string{envVarPrefix + suffix, envMappings[suffix].description})
	}
	return vars
}
