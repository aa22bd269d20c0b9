// Package hints turns caller-supplied hint strings into the closed enum values
// the detection engine expects.
package hints

import (
	"strings"

	"langid/packages/domain"
	"langid/packages/registry"
)

// Resolve validates raw against the registry. Absent fields resolve to the
// registry sentinels; present but unrecognized values fail with a
// *domain.HintError naming the field. TLD and Content-Language hints are
// passed through uninterpreted.
func Resolve(raw domain.RawHints) (domain.Hints, error) {
	var h domain.Hints

	lang, err := Language(raw.Language)
	if err != nil {
		return domain.Hints{}, err
	}
	h.Language = lang

	enc, err := Encoding(raw.Encoding)
	if err != nil {
		return domain.Hints{}, err
	}
	h.Encoding = enc

	h.TopLevelDomain = strings.TrimSpace(raw.TopLevelDomain)
	h.ContentLanguage = strings.TrimSpace(raw.ContentLanguage)
	return h, nil
}

// Language resolves a language hint given by code or by name. Extended-only
// languages cannot be hinted. The Unknown entry ("un", "Unknown") is a valid
// lookup and resolves to no hint rather than an error.
func Language(raw string) (registry.Language, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return registry.Unknown, nil
	}
	lang, ok := registry.LanguageFromCode(s)
	if !ok {
		lang, ok = registry.LanguageFromName(s)
	}
	if !ok {
		return registry.Unknown, &domain.HintError{
			Kind:   domain.UnknownLanguage,
			Field:  "language",
			Value:  raw,
			Detail: "see registry.CoreLanguages for recognized names and codes",
		}
	}
	if lang.IsExtended() {
		return registry.Unknown, &domain.HintError{
			Kind:   domain.UnknownLanguage,
			Field:  "language",
			Value:  raw,
			Detail: "extended languages cannot be hinted",
		}
	}
	return lang, nil
}

// Encoding resolves an encoding hint by table name, falling back to charset
// labels such as "shift_jis".
func Encoding(raw string) (registry.Encoding, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return registry.UnknownEncoding, nil
	}
	if enc, ok := registry.EncodingFromName(s); ok {
		return enc, nil
	}
	if enc, ok := registry.EncodingFromLabel(s); ok {
		return enc, nil
	}
	return registry.UnknownEncoding, &domain.HintError{
		Kind:   domain.UnknownEncoding,
		Field:  "encoding",
		Value:  raw,
		Detail: "see registry.Encodings for recognized encodings",
	}
}
