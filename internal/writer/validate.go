package writer

import (
	"fmt"
	"strings"

	"pauta/internal/core"
)

// Validation is the outcome of checking one drafted story against the
// editorial constraints.
type Validation struct {
	Valid          bool   `json:"valid"`
	Message        string `json:"message"`
	WordCount      int    `json:"word_count,omitempty"`
	ParagraphCount int    `json:"paragraph_count,omitempty"`
}

// Validator checks drafted stories against the editorial constraints:
// minimum word count, maximum paragraph count and no quotation marks.
type Validator struct {
	MinWords      int
	MaxParagraphs int
}

// NewValidator creates a validator with the given limits.
func NewValidator(minWords, maxParagraphs int) *Validator {
	return &Validator{MinWords: minWords, MaxParagraphs: maxParagraphs}
}

// Validate checks one story. The first violated constraint decides the
// message.
func (v *Validator) Validate(article core.Article) Validation {
	if article.Materia == "" {
		return Validation{Message: "Conteúdo da matéria está vazio"}
	}
	if article.Titulo == "" {
		return Validation{Message: "Matéria sem título"}
	}

	wordCount := len(strings.Fields(article.Materia))
	if wordCount < v.MinWords {
		return Validation{
			Message:   fmt.Sprintf("Matéria tem apenas %d palavras (mínimo: %d)", wordCount, v.MinWords),
			WordCount: wordCount,
		}
	}

	paragraphs := countParagraphs(article.Materia)
	if paragraphs > v.MaxParagraphs {
		return Validation{
			Message:        fmt.Sprintf("Matéria tem %d parágrafos (máximo: %d)", paragraphs, v.MaxParagraphs),
			ParagraphCount: paragraphs,
		}
	}

	if strings.ContainsAny(article.Materia, `"'`) {
		return Validation{Message: "Matéria contém aspas"}
	}

	if len(article.Keywords) == 0 {
		return Validation{Message: "Keywords ausentes"}
	}

	return Validation{
		Valid:          true,
		Message:        "Matéria válida",
		WordCount:      wordCount,
		ParagraphCount: paragraphs,
	}
}

// countParagraphs counts blank-line separated paragraphs.
func countParagraphs(text string) int {
	count := 0
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			count++
		}
	}
	return count
}
