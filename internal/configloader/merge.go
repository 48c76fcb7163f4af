package configloader

import (
	"slices"

	"github.com/yaklabco/cfreplace/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Strings and numbers: override wins if non-zero
//   - Pointer booleans: override wins if non-nil, so false can unset true
//   - Slices: override replaces base entirely if non-nil
//   - CLI-only booleans: override wins only when true
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.Strategy != "" {
		result.Strategy = override.Strategy
	}
	if override.OffsetEncoding != "" {
		result.OffsetEncoding = override.OffsetEncoding
	}
	if override.ResponseSuffix != "" {
		result.ResponseSuffix = override.ResponseSuffix
	}
	if override.MaxResponseSize != 0 {
		result.MaxResponseSize = override.MaxResponseSize
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	result.FailOnIncomplete = mergeBool(result.FailOnIncomplete, override.FailOnIncomplete)
	result.CheckLanguage = mergeBool(result.CheckLanguage, override.CheckLanguage)
	result.SkipGenerated = mergeBool(result.SkipGenerated, override.SkipGenerated)

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	result.Backups.Enabled = mergeBool(result.Backups.Enabled, override.Backups.Enabled)

	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.Force {
		result.Force = true
	}

	return result
}

func mergeBool(base, override *bool) *bool {
	if override == nil {
		return base
	}
	return config.Bool(*override)
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, next := range configs[1:] {
		result = merge(result, next)
	}
	return result
}
