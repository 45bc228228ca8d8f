package bip39

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/text/unicode/norm"
)

// WordListSize is the number of words in every BIP-39 word list.
const WordListSize = 2048

// Language names a BIP-39 word list.
type Language string

// Supported languages.
const (
	English            Language = "english"
	Japanese           Language = "japanese"
	Korean             Language = "korean"
	Spanish            Language = "spanish"
	ChineseSimplified  Language = "chinese_simplified"
	ChineseTraditional Language = "chinese_traditional"
	French             Language = "french"
	Italian            Language = "italian"
)

// ideographicSpace separates Japanese mnemonic words.
const ideographicSpace = "　"

// WordList is an immutable, indexed BIP-39 word list.
type WordList struct {
	lang      Language
	typ       byte
	separator string
	words     []string
	index     map[string]int
}

// Language returns the list's language.
func (wl *WordList) Language() Language { return wl.lang }

// Type returns the one-byte identifier used in serialized master seeds.
func (wl *WordList) Type() byte { return wl.typ }

// Separator returns the string placed between words of a mnemonic.
func (wl *WordList) Separator() string { return wl.separator }

// Len returns the number of words (always WordListSize).
func (wl *WordList) Len() int { return len(wl.words) }

// Word returns the word at index i. It panics if i is out of range.
func (wl *WordList) Word(i int) string { return wl.words[i] }

// Index looks up a word. Input is NFKD-normalised first, so composed and
// decomposed spellings resolve to the same entry.
func (wl *WordList) Index(word string) (int, bool) {
	i, ok := wl.index[norm.NFKD.String(word)]
	return i, ok
}

// Contains reports whether word is in the list.
func (wl *WordList) Contains(word string) bool {
	_, ok := wl.Index(word)
	return ok
}

// Words returns a copy of the list.
func (wl *WordList) Words() []string {
	out := make([]string, len(wl.words))
	copy(out, wl.words)
	return out
}

// newWordList indexes words and checks the table is usable.
func newWordList(lang Language, typ byte, separator string, words []string) (*WordList, error) {
	if len(words) != WordListSize {
		return nil, fmt.Errorf("%s word list has %d words, want %d", lang, len(words), WordListSize)
	}
	wl := &WordList{
		lang:      lang,
		typ:       typ,
		separator: separator,
		words:     make([]string, len(words)),
		index:     make(map[string]int, len(words)),
	}
	copy(wl.words, words)
	for i, w := range words {
		key := norm.NFKD.String(w)
		if _, dup := wl.index[key]; dup {
			return nil, fmt.Errorf("%s word list has duplicate word %q", lang, w)
		}
		wl.index[key] = i
	}
	return wl, nil
}

func mustWordList(lang Language, typ byte, separator string, words []string) *WordList {
	wl, err := newWordList(lang, typ, separator, words)
	if err != nil {
		panic(err)
	}
	return wl
}

// Word list type bytes. English is 0 to stay compatible with master seeds
// written by older wallets that only knew one list.
var registry = map[Language]*WordList{
	English:            mustWordList(English, 0, " ", wordlists.English),
	Japanese:           mustWordList(Japanese, 1, ideographicSpace, wordlists.Japanese),
	Korean:             mustWordList(Korean, 2, " ", wordlists.Korean),
	Spanish:            mustWordList(Spanish, 3, " ", wordlists.Spanish),
	ChineseSimplified:  mustWordList(ChineseSimplified, 4, " ", wordlists.ChineseSimplified),
	ChineseTraditional: mustWordList(ChineseTraditional, 5, " ", wordlists.ChineseTraditional),
	French:             mustWordList(French, 6, " ", wordlists.French),
	Italian:            mustWordList(Italian, 7, " ", wordlists.Italian),
}

// WordListFor returns the word list for lang. An empty language selects English.
func WordListFor(lang Language) (*WordList, error) {
	if lang == "" {
		lang = English
	}
	wl, ok := registry[Language(strings.ToLower(string(lang)))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	return wl, nil
}

// wordListByType resolves a serialized word list type byte.
func wordListByType(typ byte) (*WordList, bool) {
	for _, wl := range registry {
		if wl.typ == typ {
			return wl, true
		}
	}
	return nil, false
}

// Languages returns the supported languages in sorted order.
func Languages() []Language {
	out := make([]Language, 0, len(registry))
	for lang := range registry {
		out = append(out, lang)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DetectLanguage returns the first language (English first, then sorted
// order) whose list contains every word of mnemonic. The word count is
// checked before any lookup.
func DetectLanguage(mnemonic string) (Language, error) {
	words := splitWords(mnemonic)
	if _, err := BitsForWordCount(len(words)); err != nil {
		return "", fmt.Errorf("%w: got %d words", err, len(words))
	}
	candidates := append([]Language{English}, Languages()...)
	for _, lang := range candidates {
		wl := registry[lang]
		match := true
		for _, w := range words {
			if !wl.Contains(w) {
				match = false
				break
			}
		}
		if match {
			return lang, nil
		}
	}
	// Report against English, the list most callers expect.
	for i, w := range words {
		if !registry[English].Contains(w) {
			return "", &UnknownWordError{Word: w, Position: i}
		}
	}
	return "", ErrUnknownWord
}
