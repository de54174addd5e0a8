package pipeline

import (
	"strings"

	"pauta/internal/core"
	"pauta/internal/logger"
	"pauta/internal/textutil"
)

// minFactWords is the word count a sentence must exceed to qualify as a fact.
const minFactWords = 5

// ExtractKeyFacts collects representative sentences about a topic. Related
// items are those whose entities or hashtags contain the topic, or whose
// free text mentions it case-insensitively. Each related item's text is split
// into sentences, and sentences mentioning the topic survive. Duplicates are
// dropped keeping the first occurrence, sentences of 5 words or fewer are
// discarded, and the first maxFacts survivors are returned in source order.
func ExtractKeyFacts(items []core.Item, topic string, maxFacts int) []string {
	topicLower := strings.ToLower(topic)

	var related []core.Item
	for _, item := range items {
		if containsString(item.Entities, topic) ||
			containsString(item.Hashtags, topic) ||
			strings.Contains(strings.ToLower(item.FreeText()), topicLower) {
			related = append(related, item)
		}
	}

	seen := make(map[string]struct{})
	facts := []string{}
	for _, item := range related {
		text := item.FreeText()
		if text == "" {
			continue
		}
		for _, sentence := range textutil.SplitSentences(text) {
			if !strings.Contains(strings.ToLower(sentence), topicLower) {
				continue
			}
			if _, ok := seen[sentence]; ok {
				continue
			}
			seen[sentence] = struct{}{}
			if textutil.WordCount(sentence) <= minFactWords {
				continue
			}
			facts = append(facts, sentence)
			if len(facts) == maxFacts {
				logger.Debug("Key fact cap reached", "topic", topic, "max", maxFacts)
				return facts
			}
		}
	}
	return facts
}
