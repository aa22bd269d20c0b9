package engine

import (
	"strings"

	"golang.org/x/text/language"

	"langid/packages/domain"
	"langid/packages/registry"
)

// Boosts multiply a candidate's segment confidence by (1 + boost).
const (
	languageHintBoost = 0.30
	headerHintBoost   = 0.15
	tldHintBoost      = 0.15
	encodingHintBoost = 0.10
)

// tldLanguages maps country-code TLDs to their dominant language.
var tldLanguages = map[string]registry.Language{
	"al": registry.Albanian, "am": registry.Armenian, "ar": registry.Spanish,
	"at": registry.German, "az": registry.Azerbaijani, "ba": registry.Bosnian,
	"bd": registry.Bengali, "be": registry.Dutch, "bg": registry.Bulgarian,
	"br": registry.Portuguese, "by": registry.Belarusian, "ch": registry.German,
	"cl": registry.Spanish, "cn": registry.Chinese, "co": registry.Spanish,
	"cz": registry.Czech, "de": registry.German, "dk": registry.Danish,
	"ee": registry.Estonian, "es": registry.Spanish, "et": registry.Amharic,
	"fi": registry.Finnish, "fr": registry.French, "ge": registry.Georgian,
	"gr": registry.Greek, "hk": registry.ChineseTraditional, "hr": registry.Croatian,
	"ht": registry.HaitianCreole, "hu": registry.Hungarian, "id": registry.Indonesian,
	"ie": registry.Irish, "il": registry.Hebrew, "in": registry.Hindi,
	"ir": registry.Persian, "is": registry.Icelandic, "it": registry.Italian,
	"jp": registry.Japanese, "ke": registry.Swahili, "kh": registry.Khmer,
	"kr": registry.Korean, "kz": registry.Kazakh, "la": registry.Lao,
	"lk": registry.Sinhalese, "lt": registry.Lithuanian, "lv": registry.Latvian,
	"mk": registry.Macedonian, "mm": registry.Burmese, "mn": registry.Mongolian,
	"mt": registry.Maltese, "mx": registry.Spanish, "my": registry.Malay,
	"nl": registry.Dutch, "no": registry.Norwegian, "np": registry.Nepali,
	"nz": registry.English, "pe": registry.Spanish, "ph": registry.Tagalog,
	"pk": registry.Urdu, "pl": registry.Polish, "pt": registry.Portuguese,
	"ro": registry.Romanian, "rs": registry.Serbian, "ru": registry.Russian,
	"se": registry.Swedish, "si": registry.Slovenian, "sk": registry.Slovak,
	"so": registry.Somali, "th": registry.Thai, "tm": registry.Turkmen,
	"tr": registry.Turkish, "tw": registry.ChineseTraditional, "tz": registry.Swahili,
	"ua": registry.Ukrainian, "uk": registry.English, "us": registry.English,
	"uz": registry.Uzbek, "ve": registry.Spanish, "vn": registry.Vietnamese,
	"za": registry.Afrikaans,
}

// encodingLanguages maps legacy encodings to the language they imply.
var encodingLanguages = map[registry.Encoding]registry.Language{
	registry.JapaneseEUCJP:     registry.Japanese,
	registry.JapaneseShiftJIS:  registry.Japanese,
	registry.JapaneseJIS:       registry.Japanese,
	registry.JapaneseCP932:     registry.Japanese,
	registry.ChineseBig5:       registry.ChineseTraditional,
	registry.ChineseBig5CP950:  registry.ChineseTraditional,
	registry.Big5HKSCS:         registry.ChineseTraditional,
	registry.ChineseGB:         registry.Chinese,
	registry.ChineseEUCCN:      registry.Chinese,
	registry.GBK:               registry.Chinese,
	registry.GB18030:           registry.Chinese,
	registry.HZGB2312:          registry.Chinese,
	registry.KoreanEUCKR:       registry.Korean,
	registry.ISO2022KR:         registry.Korean,
	registry.RussianKOI8R:      registry.Russian,
	registry.RussianCP1251:     registry.Russian,
	registry.RussianCP866:      registry.Russian,
	registry.RussianKOI8RU:     registry.Ukrainian,
	registry.MSFTCP1255:        registry.Hebrew,
	registry.ISO8859_8I:        registry.Hebrew,
	registry.HebrewVisual:      registry.Hebrew,
	registry.MSFTCP1256:        registry.Arabic,
	registry.ISO8859_6:         registry.Arabic,
	registry.MSFTCP1253:        registry.Greek,
	registry.ISO8859_7:         registry.Greek,
	registry.MSFTCP1254:        registry.Turkish,
	registry.ISO8859_9:         registry.Turkish,
	registry.MSFTCP874:         registry.Thai,
	registry.ISO8859_11:        registry.Thai,
	registry.CzechCP852:        registry.Czech,
	registry.CzechCSN369103:    registry.Czech,
	registry.TSCII:             registry.Tamil,
	registry.TamilMono:         registry.Tamil,
	registry.TamilBi:           registry.Tamil,
	registry.Jagran:            registry.Hindi,
	registry.Bhaskar:           registry.Hindi,
	registry.HTChanakya:        registry.Hindi,
	registry.KDDIShiftJIS:      registry.Japanese,
	registry.DocomoShiftJIS:    registry.Japanese,
	registry.SoftbankShiftJIS:  registry.Japanese,
	registry.KDDIISO2022JP:     registry.Japanese,
	registry.SoftbankISO2022JP: registry.Japanese,
}

// priors collects per-language boosts from every hint present.
func priors(h domain.Hints) map[registry.Language]float64 {
	p := make(map[registry.Language]float64)
	add := func(l registry.Language, boost float64) {
		if l != registry.Unknown && !l.IsExtended() {
			p[l] += boost
		}
	}

	add(h.Language, languageHintBoost)
	add(encodingLanguages[h.Encoding], encodingHintBoost)

	if tld := strings.ToLower(strings.TrimSpace(h.TopLevelDomain)); tld != "" {
		if i := strings.LastIndexByte(tld, '.'); i >= 0 {
			tld = tld[i+1:]
		}
		add(tldLanguages[tld], tldHintBoost)
	}

	for _, part := range strings.Split(h.ContentLanguage, ",") {
		if l, ok := contentLanguage(part); ok {
			add(l, headerHintBoost)
		}
	}
	return p
}

// contentLanguage parses one entry of a Content-Language header, e.g.
// "en-US" or "zh-Hant;q=0.8".
func contentLanguage(s string) (registry.Language, bool) {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return registry.Unknown, false
	}
	if l, ok := registry.LanguageFromCode(s); ok {
		return l, true
	}
	tag, err := language.Parse(s)
	if err != nil {
		return registry.Unknown, false
	}
	base, _ := tag.Base()
	if base.String() == "zh" {
		if script, _ := tag.Script(); script.String() == "Hant" {
			return registry.ChineseTraditional, true
		}
	}
	return registry.LanguageFromCode(base.String())
}
