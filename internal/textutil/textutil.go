package textutil

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Portuguese stopwords used by tokenization and summarization. The list covers
// the function words that dominate pt-BR news copy; proper nouns and content
// words are never in it.
var stopwords = map[string]struct{}{}

var stopwordList = []string{
	"a", "à", "ao", "aos", "aquela", "aquelas", "aquele", "aqueles", "aquilo",
	"as", "às", "até", "com", "como", "da", "das", "de", "dela", "delas",
	"dele", "deles", "depois", "do", "dos", "e", "é", "ela", "elas", "ele",
	"eles", "em", "entre", "era", "eram", "essa", "essas", "esse", "esses",
	"esta", "está", "estamos", "estão", "estas", "este", "estes", "eu", "foi",
	"foram", "há", "isso", "isto", "já", "lhe", "lhes", "mais", "mas", "me",
	"mesmo", "meu", "minha", "muito", "na", "não", "nas", "nem", "no", "nos",
	"nós", "nossa", "nosso", "num", "numa", "o", "os", "ou", "para", "pela",
	"pelas", "pelo", "pelos", "por", "qual", "quando", "que", "quem", "são",
	"se", "seja", "sem", "ser", "seu", "seus", "só", "sobre", "sua", "suas",
	"também", "te", "tem", "têm", "ter", "teu", "tinha", "tua", "um", "uma",
	"você", "vocês",
}

func init() {
	for _, w := range stopwordList {
		stopwords[w] = struct{}{}
	}
}

var (
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern    = regexp.MustCompile(`<.*?>`)
	digitPattern      = regexp.MustCompile(`\d+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanText strips URLs, HTML tags, punctuation and digits from the text,
// collapsing runs of whitespace.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = urlPattern.ReplaceAllString(text, "")
	text = htmlTagPattern.ReplaceAllString(text, "")
	text = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			return r
		}
		return -1
	}, text)
	text = digitPattern.ReplaceAllString(text, "")
	return whitespacePattern.ReplaceAllString(strings.TrimSpace(text), " ")
}

// Tokenize splits text into lowercase word tokens.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Fields(strings.ToLower(text))
}

// RemoveStopwords filters Portuguese stopwords out of the token list.
func RemoveStopwords(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := stopwords[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// Preprocess runs the full normalization chain: clean, tokenize, drop
// stopwords.
func Preprocess(text string) []string {
	return RemoveStopwords(Tokenize(CleanText(text)))
}

// RelevanceScore scores text against a keyword list. The score is the keyword
// hit count scaled by a tenth of the token count, capped at 1, so short texts
// saturate quickly and long texts need repeated mentions.
func RelevanceScore(text string, keywords []string) float64 {
	if text == "" || len(keywords) == 0 {
		return 0
	}
	tokens := Preprocess(text)
	if len(tokens) == 0 {
		return 0
	}
	keywordSet := make(map[string]struct{})
	for _, kw := range keywords {
		for _, t := range Preprocess(kw) {
			keywordSet[t] = struct{}{}
		}
	}
	hits := 0
	for _, t := range tokens {
		if _, ok := keywordSet[t]; ok {
			hits++
		}
	}
	score := float64(hits) / (float64(len(tokens)) * 0.1)
	if score > 1 {
		return 1
	}
	return score
}

// ExtractEntities returns the capitalized tokens of the text as candidate
// named entities, deduplicated in first-seen order. Punctuation is stripped
// first so sentence-final words still match.
func ExtractEntities(text string) []string {
	if text == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var entities []string
	for _, word := range strings.Fields(CleanText(text)) {
		runes := []rune(word)
		if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		entities = append(entities, word)
	}
	return entities
}

// ExtractHashtags returns the #-prefixed tokens of the raw text without the
// prefix, deduplicated in first-seen order.
func ExtractHashtags(text string) []string {
	if text == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var tags []string
	for _, word := range strings.Fields(text) {
		if !strings.HasPrefix(word, "#") {
			continue
		}
		tag := strings.TrimFunc(strings.TrimPrefix(word, "#"), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// sentenceEnd matches a sentence terminator followed by whitespace.
var sentenceEnd = regexp.MustCompile(`([.!?]+)\s+`)

// SplitSentences splits text into sentences on ., ! and ? boundaries, keeping
// the terminator with its sentence.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	marked := sentenceEnd.ReplaceAllString(text, "$1\x00")
	parts := strings.Split(marked, "\x00")
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Summarize picks the maxSentences highest-scoring sentences of the text,
// scored by summed word frequency, and joins them in original order. Texts at
// or under the limit are returned unchanged.
func Summarize(text string, maxSentences int) string {
	if text == "" || maxSentences <= 0 {
		return ""
	}
	sentences := SplitSentences(text)
	if len(sentences) <= maxSentences {
		return text
	}

	freq := make(map[string]int)
	for _, w := range RemoveStopwords(Tokenize(text)) {
		freq[w]++
	}

	type scored struct {
		index int
		score int
	}
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		total := 0
		for _, w := range RemoveStopwords(Tokenize(s)) {
			total += freq[w]
		}
		ranked[i] = scored{index: i, score: total}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })
	top := ranked[:maxSentences]
	sort.Slice(top, func(a, b int) bool { return top[a].index < top[b].index })

	picked := make([]string, len(top))
	for i, s := range top {
		picked[i] = sentences[s.index]
	}
	return strings.Join(picked, " ")
}
