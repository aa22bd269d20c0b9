package registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageTableIsComplete(t *testing.T) {
	require.Len(t, languageTable, NumLanguages)
	names := map[string]bool{}
	codes := map[string]bool{}
	for _, l := range AllLanguages() {
		assert.NotEmpty(t, l.Name(), "language %d has no name", int(l))
		assert.NotEmpty(t, l.Code(), "language %d has no code", int(l))
		assert.False(t, names[l.Name()], "duplicate name %s", l.Name())
		assert.False(t, codes[l.Code()], "duplicate code %s", l.Code())
		names[l.Name()] = true
		codes[l.Code()] = true
	}
}

func TestUnknownIsZeroValue(t *testing.T) {
	var l Language
	assert.Equal(t, Unknown, l)
	assert.Equal(t, "un", l.Code())

	var e Encoding
	assert.Equal(t, UnknownEncoding, e)
	assert.Equal(t, "UNKNOWN_ENCODING", e.Name())
}

func TestCoreAndExtendedViews(t *testing.T) {
	core := CoreLanguages()
	ext := ExtendedLanguages()
	assert.Len(t, core, NumCoreLanguages)
	assert.Len(t, ext, NumLanguages-NumCoreLanguages)
	assert.Len(t, AllLanguages(), len(core)+len(ext))

	for _, l := range core {
		assert.False(t, l.IsExtended(), "%s", l)
	}
	for _, l := range ext {
		assert.True(t, l.IsExtended(), "%s", l)
	}
	assert.True(t, Cherokee.IsExtended())
	assert.False(t, English.IsExtended())
	assert.False(t, Language(NumLanguages).Valid())
	assert.False(t, Language(-1).IsExtended())
}

func TestLanguageLookups(t *testing.T) {
	tests := []struct {
		name   string
		lookup func(string) (Language, bool)
		in     string
		want   Language
		wantOK bool
	}{
		{"name upper", LanguageFromName, "ENGLISH", English, true},
		{"name lower", LanguageFromName, "english", English, true},
		{"name mixed case table entry", LanguageFromName, "japanese", Japanese, true},
		{"name miss", LanguageFromName, "NOT_A_LANGUAGE", Unknown, false},
		{"code", LanguageFromCode, "mi", Maori, true},
		{"code case", LanguageFromCode, "ZH-hant", ChineseTraditional, true},
		{"code miss", LanguageFromCode, "xx", Unknown, false},
		{"iso639-3", LanguageFromISO6393, "eng", English, true},
		{"iso639-3 alias", LanguageFromISO6393, "cmn", Chinese, true},
		{"iso639-3 upper", LanguageFromISO6393, "FAS", Persian, true},
		{"iso639-3 miss", LanguageFromISO6393, "qqq", Unknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.lookup(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLanguageJSON(t *testing.T) {
	data, err := json.Marshal(Indonesian)
	require.NoError(t, err)
	assert.JSONEq(t, `"id"`, string(data))

	var l Language
	require.NoError(t, json.Unmarshal([]byte(`"GERMAN"`), &l))
	assert.Equal(t, German, l)
	require.NoError(t, json.Unmarshal([]byte(`"fr"`), &l))
	assert.Equal(t, French, l)
	assert.Error(t, json.Unmarshal([]byte(`"klingon"`), &l))
}

func TestLanguageStringOutOfRange(t *testing.T) {
	assert.Equal(t, "Language(9999)", Language(9999).String())
	assert.Empty(t, Language(9999).Name())
}

func TestEncodingTable(t *testing.T) {
	require.Len(t, encodingNames, NumEncodings)
	for _, e := range Encodings() {
		got, ok := EncodingFromName(e.Name())
		require.True(t, ok, "%s", e)
		assert.Equal(t, e, got)
	}
}

func TestEncodingFromName(t *testing.T) {
	e, ok := EncodingFromName("japanese_shift_jis")
	assert.True(t, ok)
	assert.Equal(t, JapaneseShiftJIS, e)

	e, ok = EncodingFromName("EBCDIC")
	assert.False(t, ok)
	assert.Equal(t, UnknownEncoding, e)
}

func TestEncodingFromLabel(t *testing.T) {
	tests := []struct {
		label string
		want  Encoding
		ok    bool
	}{
		{"utf-8", UTF8, true},
		{"UTF8", UTF8, true},
		{"Shift_JIS", JapaneseShiftJIS, true},
		{"koi8-r", RussianKOI8R, true},
		{"cp1251", RussianCP1251, true},
		{"latin1", MSFTCP1252, true},
		{"euc-kr", KoreanEUCKR, true},
		{"no-such-charset", UnknownEncoding, false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := EncodingFromLabel(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
