// Package registry holds the immutable language and encoding tables shared by
// every detection request. The tables are built once at package init and are
// safe for concurrent reads without synchronization.
package registry

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Language identifies a natural language. Values are densely packed: core
// languages occupy [0, NumCoreLanguages) and extended-only languages occupy
// [NumCoreLanguages, NumLanguages). Values are never renumbered within a
// release of this table.
type Language int

const (
	Unknown Language = iota // zero value, no language
	English
	Danish
	Dutch
	Finnish
	French
	German
	Hebrew
	Italian
	Japanese
	Korean
	Norwegian
	Polish
	Portuguese
	Russian
	Spanish
	Swedish
	Chinese
	Czech
	Greek
	Icelandic
	Latvian
	Lithuanian
	Romanian
	Hungarian
	Estonian
	Bulgarian
	Croatian
	Serbian
	Irish
	Galician
	Tagalog
	Turkish
	Ukrainian
	Hindi
	Macedonian
	Bengali
	Indonesian
	Latin
	Malay
	Malayalam
	Welsh
	Nepali
	Telugu
	Albanian
	Tamil
	Belarusian
	Javanese
	Catalan
	Afrikaans
	Basque
	Gujarati
	Marathi
	Esperanto
	Slovak
	Slovenian
	Swahili
	Thai
	Persian
	Kannada
	Arabic
	Armenian
	Georgian
	Azerbaijani
	Burmese
	Amharic
	Khmer
	Lao
	Sinhalese
	Oriya
	Punjabi
	Urdu
	Vietnamese
	Yiddish
	Maltese
	HaitianCreole
	ChineseTraditional
	Bosnian
	Kazakh
	Mongolian
	Maori
	NorwegianNynorsk
	Shona
	Somali
	Turkmen
	Uzbek
	Xhosa
	Yoruba
	Zulu
	Akan
	Sotho
	Tsonga
	Tswana
	Ganda
	Igbo

	// Extended-only languages. Detectable, never hintable.
	Cherokee
	Dhivehi
	Syriac
	Tibetan
	Inuktitut
	Vai
	Santali
	NKo
	Faroese
	Frisian
	ScotsGaelic
	Breton
	Corsican
	Occitan
	Luxembourgish
	Kurdish
	Tatar
	Uighur
	Pashto
	Sindhi

	numLanguages
)

const (
	// NumCoreLanguages is the size of the core enumeration, Unknown included.
	NumCoreLanguages = int(Cherokee)
	// NumLanguages is the size of the extended enumeration (a superset of core).
	NumLanguages = int(numLanguages)
)

type languageInfo struct {
	name string
	code string
	// iso6393 lists the ISO 639-3 codes detectors use for the language,
	// macrolanguage and individual codes alike.
	iso6393 []string
}

var languageTable = [...]languageInfo{
	Unknown:            {"Unknown", "un", nil},
	English:            {"ENGLISH", "en", []string{"eng"}},
	Danish:             {"DANISH", "da", []string{"dan"}},
	Dutch:              {"DUTCH", "nl", []string{"nld"}},
	Finnish:            {"FINNISH", "fi", []string{"fin"}},
	French:             {"FRENCH", "fr", []string{"fra"}},
	German:             {"GERMAN", "de", []string{"deu"}},
	Hebrew:             {"HEBREW", "he", []string{"heb"}},
	Italian:            {"ITALIAN", "it", []string{"ita"}},
	Japanese:           {"Japanese", "ja", []string{"jpn"}},
	Korean:             {"Korean", "ko", []string{"kor"}},
	Norwegian:          {"NORWEGIAN", "no", []string{"nob", "nor"}},
	Polish:             {"POLISH", "pl", []string{"pol"}},
	Portuguese:         {"PORTUGUESE", "pt", []string{"por"}},
	Russian:            {"RUSSIAN", "ru", []string{"rus"}},
	Spanish:            {"SPANISH", "es", []string{"spa"}},
	Swedish:            {"SWEDISH", "sv", []string{"swe"}},
	Chinese:            {"Chinese", "zh", []string{"zho", "cmn"}},
	Czech:              {"CZECH", "cs", []string{"ces"}},
	Greek:              {"GREEK", "el", []string{"ell"}},
	Icelandic:          {"ICELANDIC", "is", []string{"isl"}},
	Latvian:            {"LATVIAN", "lv", []string{"lav", "lvs"}},
	Lithuanian:         {"LITHUANIAN", "lt", []string{"lit"}},
	Romanian:           {"ROMANIAN", "ro", []string{"ron"}},
	Hungarian:          {"HUNGARIAN", "hu", []string{"hun"}},
	Estonian:           {"ESTONIAN", "et", []string{"est", "ekk"}},
	Bulgarian:          {"BULGARIAN", "bg", []string{"bul"}},
	Croatian:           {"CROATIAN", "hr", []string{"hrv"}},
	Serbian:            {"SERBIAN", "sr", []string{"srp"}},
	Irish:              {"IRISH", "ga", []string{"gle"}},
	Galician:           {"GALICIAN", "gl", []string{"glg"}},
	Tagalog:            {"TAGALOG", "tl", []string{"tgl"}},
	Turkish:            {"TURKISH", "tr", []string{"tur"}},
	Ukrainian:          {"UKRAINIAN", "uk", []string{"ukr"}},
	Hindi:              {"HINDI", "hi", []string{"hin"}},
	Macedonian:         {"MACEDONIAN", "mk", []string{"mkd"}},
	Bengali:            {"BENGALI", "bn", []string{"ben"}},
	Indonesian:         {"INDONESIAN", "id", []string{"ind"}},
	Latin:              {"LATIN", "la", []string{"lat"}},
	Malay:              {"MALAY", "ms", []string{"msa", "zsm"}},
	Malayalam:          {"MALAYALAM", "ml", []string{"mal"}},
	Welsh:              {"WELSH", "cy", []string{"cym"}},
	Nepali:             {"NEPALI", "ne", []string{"nep", "npi"}},
	Telugu:             {"TELUGU", "te", []string{"tel"}},
	Albanian:           {"ALBANIAN", "sq", []string{"sqi", "als"}},
	Tamil:              {"TAMIL", "ta", []string{"tam"}},
	Belarusian:         {"BELARUSIAN", "be", []string{"bel"}},
	Javanese:           {"JAVANESE", "jv", []string{"jav"}},
	Catalan:            {"CATALAN", "ca", []string{"cat"}},
	Afrikaans:          {"AFRIKAANS", "af", []string{"afr"}},
	Basque:             {"BASQUE", "eu", []string{"eus"}},
	Gujarati:           {"GUJARATI", "gu", []string{"guj"}},
	Marathi:            {"MARATHI", "mr", []string{"mar"}},
	Esperanto:          {"ESPERANTO", "eo", []string{"epo"}},
	Slovak:             {"SLOVAK", "sk", []string{"slk"}},
	Slovenian:          {"SLOVENIAN", "sl", []string{"slv"}},
	Swahili:            {"SWAHILI", "sw", []string{"swa", "swh"}},
	Thai:               {"THAI", "th", []string{"tha"}},
	Persian:            {"PERSIAN", "fa", []string{"fas", "pes"}},
	Kannada:            {"KANNADA", "kn", []string{"kan"}},
	Arabic:             {"ARABIC", "ar", []string{"ara", "arb"}},
	Armenian:           {"ARMENIAN", "hy", []string{"hye"}},
	Georgian:           {"GEORGIAN", "ka", []string{"kat"}},
	Azerbaijani:        {"AZERBAIJANI", "az", []string{"aze", "azj"}},
	Burmese:            {"BURMESE", "my", []string{"mya"}},
	Amharic:            {"AMHARIC", "am", []string{"amh"}},
	Khmer:              {"KHMER", "km", []string{"khm"}},
	Lao:                {"LAOTHIAN", "lo", []string{"lao"}},
	Sinhalese:          {"SINHALESE", "si", []string{"sin"}},
	Oriya:              {"ORIYA", "or", []string{"ori", "ory"}},
	Punjabi:            {"PUNJABI", "pa", []string{"pan"}},
	Urdu:               {"URDU", "ur", []string{"urd"}},
	Vietnamese:         {"VIETNAMESE", "vi", []string{"vie"}},
	Yiddish:            {"YIDDISH", "yi", []string{"yid", "ydd"}},
	Maltese:            {"MALTESE", "mt", []string{"mlt"}},
	HaitianCreole:      {"HAITIAN_CREOLE", "ht", []string{"hat"}},
	ChineseTraditional: {"ChineseT", "zh-Hant", nil},
	Bosnian:            {"BOSNIAN", "bs", []string{"bos"}},
	Kazakh:             {"KAZAKH", "kk", []string{"kaz"}},
	Mongolian:          {"MONGOLIAN", "mn", []string{"mon", "khk"}},
	Maori:              {"MAORI", "mi", []string{"mri"}},
	NorwegianNynorsk:   {"NORWEGIAN_N", "nn", []string{"nno"}},
	Shona:              {"SHONA", "sn", []string{"sna"}},
	Somali:             {"SOMALI", "so", []string{"som"}},
	Turkmen:            {"TURKMEN", "tk", []string{"tuk"}},
	Uzbek:              {"UZBEK", "uz", []string{"uzb", "uzn"}},
	Xhosa:              {"XHOSA", "xh", []string{"xho"}},
	Yoruba:             {"YORUBA", "yo", []string{"yor"}},
	Zulu:               {"ZULU", "zu", []string{"zul"}},
	Akan:               {"AKAN", "ak", []string{"aka"}},
	Sotho:              {"SESOTHO", "st", []string{"sot"}},
	Tsonga:             {"TSONGA", "ts", []string{"tso"}},
	Tswana:             {"TSWANA", "tn", []string{"tsn"}},
	Ganda:              {"GANDA", "lg", []string{"lug"}},
	Igbo:               {"IGBO", "ig", []string{"ibo"}},

	Cherokee:      {"CHEROKEE", "chr", []string{"chr"}},
	Dhivehi:       {"DHIVEHI", "dv", []string{"div"}},
	Syriac:        {"SYRIAC", "syr", []string{"syr"}},
	Tibetan:       {"TIBETAN", "bo", []string{"bod"}},
	Inuktitut:     {"INUKTITUT", "iu", []string{"iku"}},
	Vai:           {"VAI", "vai", []string{"vai"}},
	Santali:       {"SANTALI", "sat", []string{"sat"}},
	NKo:           {"NKO", "nqo", []string{"nqo"}},
	Faroese:       {"FAROESE", "fo", []string{"fao"}},
	Frisian:       {"FRISIAN", "fy", []string{"fry"}},
	ScotsGaelic:   {"SCOTS_GAELIC", "gd", []string{"gla"}},
	Breton:        {"BRETON", "br", []string{"bre"}},
	Corsican:      {"CORSICAN", "co", []string{"cos"}},
	Occitan:       {"OCCITAN", "oc", []string{"oci"}},
	Luxembourgish: {"LUXEMBOURGISH", "lb", []string{"ltz"}},
	Kurdish:       {"KURDISH", "ku", []string{"kur"}},
	Tatar:         {"TATAR", "tt", []string{"tat"}},
	Uighur:        {"UIGHUR", "ug", []string{"uig"}},
	Pashto:        {"PASHTO", "ps", []string{"pus"}},
	Sindhi:        {"SINDHI", "sd", []string{"snd"}},
}

// Lookup indexes, keyed by lowercase strings.
var (
	languageByName    map[string]Language
	languageByCode    map[string]Language
	languageByISO6393 map[string]Language
)

func init() {
	languageByName = make(map[string]Language, NumLanguages)
	languageByCode = make(map[string]Language, NumLanguages)
	languageByISO6393 = make(map[string]Language, NumLanguages*2)
	for i := range languageTable {
		l := Language(i)
		info := languageTable[i]
		languageByName[strings.ToLower(info.name)] = l
		languageByCode[strings.ToLower(info.code)] = l
		for _, c := range info.iso6393 {
			languageByISO6393[c] = l
		}
	}
}

// Valid reports whether l is a member of the extended enumeration.
func (l Language) Valid() bool {
	return l >= 0 && int(l) < NumLanguages
}

// IsExtended reports whether l is only in the extended enumeration.
func (l Language) IsExtended() bool {
	return int(l) >= NumCoreLanguages && int(l) < NumLanguages
}

// Name returns the canonical table name (e.g. "ENGLISH", "Japanese").
func (l Language) Name() string {
	if !l.Valid() {
		return ""
	}
	return languageTable[l].name
}

// Code returns the canonical language code (e.g. "en", "zh-Hant").
func (l Language) Code() string {
	if !l.Valid() {
		return ""
	}
	return languageTable[l].code
}

// String returns the canonical name of the language.
func (l Language) String() string {
	if l.Valid() {
		return languageTable[l].name
	}
	return fmt.Sprintf("Language(%d)", int(l))
}

// MarshalJSON encodes the language as its canonical code.
func (l Language) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Code())
}

// UnmarshalJSON decodes a language code or name.
func (l *Language) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	lang, ok := LanguageFromCode(s)
	if !ok {
		lang, ok = LanguageFromName(s)
	}
	if !ok {
		return fmt.Errorf("registry: unknown language: %q", s)
	}
	*l = lang
	return nil
}

// LanguageFromName looks up a language by canonical name, ignoring case.
func LanguageFromName(name string) (Language, bool) {
	l, ok := languageByName[strings.ToLower(name)]
	return l, ok
}

// LanguageFromCode looks up a language by canonical code, ignoring case.
func LanguageFromCode(code string) (Language, bool) {
	l, ok := languageByCode[strings.ToLower(code)]
	return l, ok
}

// LanguageFromISO6393 maps an ISO 639-3 code, as reported by detection
// backends, to the table.
func LanguageFromISO6393(code string) (Language, bool) {
	l, ok := languageByISO6393[strings.ToLower(code)]
	return l, ok
}

// CoreLanguages returns the core enumeration in table order, Unknown first.
func CoreLanguages() []Language {
	out := make([]Language, NumCoreLanguages)
	for i := range out {
		out[i] = Language(i)
	}
	return out
}

// ExtendedLanguages returns the languages that exist only in the extended
// enumeration.
func ExtendedLanguages() []Language {
	out := make([]Language, 0, NumLanguages-NumCoreLanguages)
	for i := NumCoreLanguages; i < NumLanguages; i++ {
		out = append(out, Language(i))
	}
	return out
}

// AllLanguages returns the full extended enumeration.
func AllLanguages() []Language {
	out := make([]Language, NumLanguages)
	for i := range out {
		out[i] = Language(i)
	}
	return out
}
