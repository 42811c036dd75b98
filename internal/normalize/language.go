package normalize

// languageSynonyms maps normalized language names, native spellings, and
// ISO codes to one canonical token per recognized language. Keys are
// Token(Fold(...)) output; the canonical token is the English name.
//
//nolint:gochecknoglobals // Static lookup table for language canonicalization
var languageSynonyms = map[string]string{
	"english": "english", "en": "english", "eng": "english",
	"spanish": "spanish", "espanol": "spanish", "es": "spanish", "spa": "spanish", "castellano": "spanish",
	"french": "french", "francais": "french", "fr": "french", "fra": "french",
	"german": "german", "deutsch": "german", "de": "german", "deu": "german",
	"italian": "italian", "italiano": "italian", "it": "italian", "ita": "italian",
	"portuguese": "portuguese", "portugues": "portuguese", "pt": "portuguese", "por": "portuguese",
	"mandarin": "mandarin", "chinese": "mandarin", "zh": "mandarin", "zho": "mandarin", "zhongwen": "mandarin",
	"cantonese": "cantonese", "yue": "cantonese",
	"japanese": "japanese", "nihongo": "japanese", "ja": "japanese", "jpn": "japanese",
	"korean": "korean", "hangugeo": "korean", "ko": "korean", "kor": "korean",
	"russian": "russian", "russkiy": "russian", "ru": "russian", "rus": "russian",
	"arabic": "arabic", "ar": "arabic", "ara": "arabic",
	"hebrew": "hebrew", "ivrit": "hebrew", "he": "hebrew", "heb": "hebrew",
	"hindi": "hindi", "hi": "hindi", "hin": "hindi",
	"polish": "polish", "polski": "polish", "pl": "polish", "pol": "polish",
	"czech": "czech", "cestina": "czech", "cs": "czech", "ces": "czech",
	"slovak": "slovak", "slovencina": "slovak", "sk": "slovak", "slk": "slovak",
	"hungarian": "hungarian", "magyar": "hungarian", "hu": "hungarian", "hun": "hungarian",
	"romanian": "romanian", "romana": "romanian", "ro": "romanian", "ron": "romanian",
	"dutch": "dutch", "nederlands": "dutch", "nl": "dutch", "nld": "dutch",
	"swedish": "swedish", "svenska": "swedish", "sv": "swedish", "swe": "swedish",
	"norwegian": "norwegian", "norsk": "norwegian", "no": "norwegian", "nor": "norwegian",
	"danish": "danish", "dansk": "danish", "da": "danish", "dan": "danish",
	"greek": "greek", "ellinika": "greek", "el": "greek", "ell": "greek",
	"turkish": "turkish", "turkce": "turkish", "tr": "turkish", "tur": "turkish",
	"ukrainian": "ukrainian", "ukrainska": "ukrainian", "uk": "ukrainian", "ukr": "ukrainian",
	"vietnamese": "vietnamese", "tieng viet": "vietnamese", "vi": "vietnamese", "vie": "vietnamese",
	"tagalog": "tagalog", "filipino": "tagalog", "tl": "tagalog", "fil": "tagalog",
	"swahili": "swahili", "kiswahili": "swahili", "sw": "swahili", "swa": "swahili",
	"asl": "asl", "american sign language": "asl", "sign language": "asl",
}

// LanguageToken converts a language name, native spelling, or ISO code to
// the one canonical token for that language. Returns empty string for
// unrecognized values; callers keep the phrase tokens regardless, so an
// unrecognized language is still findable by its literal spelling.
func LanguageToken(raw string) string {
	key := Token(Fold(raw))
	if key == "" {
		return ""
	}
	return languageSynonyms[key]
}
