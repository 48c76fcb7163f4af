// Package langdetect identifies the language of a source file so that
// replacements are only applied to files clang-format can actually format.
package langdetect

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// clangFormatLanguages maps enry language names to the value clang-format
// uses for the Language key of a style.
//
//nolint:gochecknoglobals // Read-only lookup table.
var clangFormatLanguages = map[string]string{
	"C":                           "Cpp",
	"C++":                         "Cpp",
	"Cuda":                        "Cpp",
	"Objective-C":                 "ObjC",
	"Objective-C++":               "ObjC",
	"Java":                        "Java",
	"JavaScript":                  "JavaScript",
	"TypeScript":                  "JavaScript",
	"TSX":                         "JavaScript",
	"C#":                          "CSharp",
	"Protocol Buffer":             "Proto",
	"Protocol Buffer Text Format": "TextProto",
	"TableGen":                    "TableGen",
	"Verilog":                     "Verilog",
	"SystemVerilog":               "Verilog",
	"JSON":                        "Json",
}

// Detect returns the enry language name for a file, or "" if it cannot be
// determined. Style files (.clang-format) are never reported as a language.
func Detect(path string, content []byte) string {
	if IsClangFormatFile(path) || enry.IsBinary(content) {
		return ""
	}

	if lang, safe := enry.GetLanguageByFilename(path); safe {
		return lang
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}
	if lang, safe := enry.GetLanguageByModeline(content); safe {
		return lang
	}

	// Headers such as .h are shared by C, C++ and Objective-C.
	candidates := enry.GetLanguagesByExtension(path, content, nil)
	switch len(candidates) {
	case 0:
	case 1:
		return candidates[0]
	default:
		if lang, _ := enry.GetLanguageByClassifier(content, candidates); lang != "" {
			return lang
		}
		return candidates[0]
	}

	return enry.GetLanguage(filepath.Base(path), content)
}

// Supported reports whether clang-format can format lang.
func Supported(lang string) bool {
	_, ok := clangFormatLanguages[lang]
	return ok
}

// ClangFormatLanguage returns the clang-format style language for lang,
// or "" if unsupported.
func ClangFormatLanguage(lang string) string {
	return clangFormatLanguages[lang]
}

// SupportedLanguages returns the enry names of all supported languages, sorted.
func SupportedLanguages() []string {
	langs := make([]string, 0, len(clangFormatLanguages))
	for lang := range clangFormatLanguages {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// IsClangFormatFile reports whether path names a clang-format style file.
func IsClangFormatFile(path string) bool {
	switch strings.ToLower(filepath.Base(path)) {
	case ".clang-format", "_clang-format":
		return true
	default:
		return false
	}
}

// IsVendored reports whether path lies in a vendored or third-party tree.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

// IsGenerated reports whether the file looks machine-generated.
func IsGenerated(path string, content []byte) bool {
	return enry.IsGenerated(filepath.ToSlash(path), content)
}
