package registry

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// Encoding identifies a legacy or Unicode text encoding. UnknownEncoding is
// the zero value; the remaining values follow the CLD encoding table order.
type Encoding int

const (
	UnknownEncoding Encoding = iota
	ISO8859_1
	ISO8859_2
	ISO8859_3
	ISO8859_4
	ISO8859_5
	ISO8859_6
	ISO8859_7
	ISO8859_8
	ISO8859_9
	ISO8859_10
	JapaneseEUCJP
	JapaneseShiftJIS
	JapaneseJIS
	ChineseBig5
	ChineseGB
	ChineseEUCCN
	KoreanEUCKR
	UnicodeUnused
	ChineseEUCDEC
	ChineseCNS
	ChineseBig5CP950
	JapaneseCP932
	UTF8
	ASCII7Bit
	RussianKOI8R
	RussianCP1251
	MSFTCP1252
	RussianKOI8RU
	MSFTCP1250
	ISO8859_15
	MSFTCP1254
	MSFTCP1257
	ISO8859_11
	MSFTCP874
	MSFTCP1256
	MSFTCP1255
	ISO8859_8I
	HebrewVisual
	CzechCP852
	CzechCSN369103
	MSFTCP1253
	RussianCP866
	ISO8859_13
	ISO2022KR
	GBK
	GB18030
	Big5HKSCS
	ISO2022CN
	TSCII
	TamilMono
	TamilBi
	Jagran
	MacintoshRoman
	UTF7
	Bhaskar
	HTChanakya
	UTF16BE
	UTF16LE
	UTF32BE
	UTF32LE
	BinaryEnc
	HZGB2312
	UTF8UTF8
	TamElango
	TamLttmbarani
	TamShree
	TamTboomis
	TamTmnews
	TamWebtamil
	KDDIShiftJIS
	DocomoShiftJIS
	SoftbankShiftJIS
	KDDIISO2022JP
	SoftbankISO2022JP

	numEncodings
)

// NumEncodings is the size of the encoding table, UnknownEncoding included.
const NumEncodings = int(numEncodings)

var encodingNames = [...]string{
	UnknownEncoding:   "UNKNOWN_ENCODING",
	ISO8859_1:         "ISO_8859_1",
	ISO8859_2:         "ISO_8859_2",
	ISO8859_3:         "ISO_8859_3",
	ISO8859_4:         "ISO_8859_4",
	ISO8859_5:         "ISO_8859_5",
	ISO8859_6:         "ISO_8859_6",
	ISO8859_7:         "ISO_8859_7",
	ISO8859_8:         "ISO_8859_8",
	ISO8859_9:         "ISO_8859_9",
	ISO8859_10:        "ISO_8859_10",
	JapaneseEUCJP:     "JAPANESE_EUC_JP",
	JapaneseShiftJIS:  "JAPANESE_SHIFT_JIS",
	JapaneseJIS:       "JAPANESE_JIS",
	ChineseBig5:       "CHINESE_BIG5",
	ChineseGB:         "CHINESE_GB",
	ChineseEUCCN:      "CHINESE_EUC_CN",
	KoreanEUCKR:       "KOREAN_EUC_KR",
	UnicodeUnused:     "UNICODE_UNUSED",
	ChineseEUCDEC:     "CHINESE_EUC_DEC",
	ChineseCNS:        "CHINESE_CNS",
	ChineseBig5CP950:  "CHINESE_BIG5_CP950",
	JapaneseCP932:     "JAPANESE_CP932",
	UTF8:              "UTF8",
	ASCII7Bit:         "ASCII_7BIT",
	RussianKOI8R:      "RUSSIAN_KOI8_R",
	RussianCP1251:     "RUSSIAN_CP1251",
	MSFTCP1252:        "MSFT_CP1252",
	RussianKOI8RU:     "RUSSIAN_KOI8_RU",
	MSFTCP1250:        "MSFT_CP1250",
	ISO8859_15:        "ISO_8859_15",
	MSFTCP1254:        "MSFT_CP1254",
	MSFTCP1257:        "MSFT_CP1257",
	ISO8859_11:        "ISO_8859_11",
	MSFTCP874:         "MSFT_CP874",
	MSFTCP1256:        "MSFT_CP1256",
	MSFTCP1255:        "MSFT_CP1255",
	ISO8859_8I:        "ISO_8859_8_I",
	HebrewVisual:      "HEBREW_VISUAL",
	CzechCP852:        "CZECH_CP852",
	CzechCSN369103:    "CZECH_CSN_369103",
	MSFTCP1253:        "MSFT_CP1253",
	RussianCP866:      "RUSSIAN_CP866",
	ISO8859_13:        "ISO_8859_13",
	ISO2022KR:         "ISO_2022_KR",
	GBK:               "GBK",
	GB18030:           "GB18030",
	Big5HKSCS:         "BIG5_HKSCS",
	ISO2022CN:         "ISO_2022_CN",
	TSCII:             "TSCII",
	TamilMono:         "TAMIL_MONO",
	TamilBi:           "TAMIL_BI",
	Jagran:            "JAGRAN",
	MacintoshRoman:    "MACINTOSH_ROMAN",
	UTF7:              "UTF7",
	Bhaskar:           "BHASKAR",
	HTChanakya:        "HTCHANAKYA",
	UTF16BE:           "UTF16BE",
	UTF16LE:           "UTF16LE",
	UTF32BE:           "UTF32BE",
	UTF32LE:           "UTF32LE",
	BinaryEnc:         "BINARYENC",
	HZGB2312:          "HZ_GB_2312",
	UTF8UTF8:          "UTF8UTF8",
	TamElango:         "TAM_ELANGO",
	TamLttmbarani:     "TAM_LTTMBARANI",
	TamShree:          "TAM_SHREE",
	TamTboomis:        "TAM_TBOOMIS",
	TamTmnews:         "TAM_TMNEWS",
	TamWebtamil:       "TAM_WEBTAMIL",
	KDDIShiftJIS:      "KDDI_SHIFT_JIS",
	DocomoShiftJIS:    "DOCOMO_SHIFT_JIS",
	SoftbankShiftJIS:  "SOFTBANK_SHIFT_JIS",
	KDDIISO2022JP:     "KDDI_ISO_2022_JP",
	SoftbankISO2022JP: "SOFTBANK_ISO_2022_JP",
}

// whatwgEncodings maps canonical WHATWG encoding names, as returned by
// htmlindex.Name, onto the table. WHATWG folds several legacy labels
// (iso-8859-1, us-ascii) into windows-1252.
var whatwgEncodings = map[string]Encoding{
	"utf-8":          UTF8,
	"ibm866":         RussianCP866,
	"iso-8859-2":     ISO8859_2,
	"iso-8859-3":     ISO8859_3,
	"iso-8859-4":     ISO8859_4,
	"iso-8859-5":     ISO8859_5,
	"iso-8859-6":     ISO8859_6,
	"iso-8859-7":     ISO8859_7,
	"iso-8859-8":     ISO8859_8,
	"iso-8859-8-i":   ISO8859_8I,
	"iso-8859-10":    ISO8859_10,
	"iso-8859-13":    ISO8859_13,
	"iso-8859-15":    ISO8859_15,
	"koi8-r":         RussianKOI8R,
	"koi8-u":         RussianKOI8RU,
	"macintosh":      MacintoshRoman,
	"windows-874":    MSFTCP874,
	"windows-1250":   MSFTCP1250,
	"windows-1251":   RussianCP1251,
	"windows-1252":   MSFTCP1252,
	"windows-1253":   MSFTCP1253,
	"windows-1254":   MSFTCP1254,
	"windows-1255":   MSFTCP1255,
	"windows-1256":   MSFTCP1256,
	"windows-1257":   MSFTCP1257,
	"gbk":            GBK,
	"gb18030":        GB18030,
	"big5":           ChineseBig5,
	"euc-jp":         JapaneseEUCJP,
	"iso-2022-jp":    JapaneseJIS,
	"shift_jis":      JapaneseShiftJIS,
	"euc-kr":         KoreanEUCKR,
	"utf-16be":       UTF16BE,
	"utf-16le":       UTF16LE,
	"x-user-defined": BinaryEnc,
}

var encodingByName map[string]Encoding

func init() {
	encodingByName = make(map[string]Encoding, NumEncodings)
	for i, name := range encodingNames {
		encodingByName[strings.ToLower(name)] = Encoding(i)
	}
}

// Valid reports whether e is a member of the table.
func (e Encoding) Valid() bool {
	return e >= 0 && int(e) < NumEncodings
}

// Name returns the canonical table name (e.g. "JAPANESE_SHIFT_JIS").
func (e Encoding) Name() string {
	if !e.Valid() {
		return ""
	}
	return encodingNames[e]
}

func (e Encoding) String() string {
	if e.Valid() {
		return encodingNames[e]
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// EncodingFromName looks up an encoding by canonical table name, ignoring
// case.
func EncodingFromName(name string) (Encoding, bool) {
	e, ok := encodingByName[strings.ToLower(name)]
	return e, ok
}

// EncodingFromLabel maps a charset label as found in Content-Type headers or
// <meta charset> (e.g. "Shift_JIS", "latin1", "cp1251") onto the table.
func EncodingFromLabel(label string) (Encoding, bool) {
	enc, err := htmlindex.Get(strings.TrimSpace(label))
	if err != nil {
		return UnknownEncoding, false
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		return UnknownEncoding, false
	}
	e, ok := whatwgEncodings[canonical]
	return e, ok
}

// Encodings returns every table entry in order, UnknownEncoding first.
func Encodings() []Encoding {
	out := make([]Encoding, NumEncodings)
	for i := range out {
		out[i] = Encoding(i)
	}
	return out
}
