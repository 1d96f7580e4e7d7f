package services

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
)

// AssistService produces writing suggestions from post content using word
// frequency heuristics. It has no external dependencies.
type AssistService interface {
	ExtractKeywords(text string, limit int) []string
	SuggestTitles(content string) []string
	SuggestSummaries(content string) []string
	SuggestKeywords(content string) []string
}

var (
	nonWordPattern   = regexp.MustCompile(`[^\w\s]`)
	digitsPattern    = regexp.MustCompile(`^\d+$`)
	sentencePattern  = regexp.MustCompile(`[.!?]+`)
	stopWords        = makeSet("the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by", "is", "are", "was", "were", "be", "been", "have", "has", "had", "do", "does", "did", "will", "would", "could", "should", "may", "might", "can", "this", "that", "these", "those", "i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us", "them", "my", "your", "his", "its", "our", "their")
	titleActions     = []string{"master", "improve", "understand", "optimize", "build"}
	techKeywords     = []string{"technology", "innovation", "development", "digital", "software", "web", "programming", "design"}
	businessKeywords = []string{"strategy", "management", "leadership", "growth", "productivity", "success", "business"}
	contentKeywords  = []string{"content", "writing", "communication", "storytelling", "marketing", "audience"}
)

const defaultTopic = "Technology"

type assistService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewAssistService uses rng for template choices; nil seeds from the clock.
func NewAssistService(rng *rand.Rand) AssistService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &assistService{rng: rng}
}

// ExtractKeywords returns up to limit words ordered by frequency. Ties keep
// first-seen order.
func (s *assistService) ExtractKeywords(text string, limit int) []string {
	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(text), " ")

	counts := make(map[string]int)
	var order []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 3 || stopWords[word] || digitsPattern.MatchString(word) {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if limit >= 0 && len(order) > limit {
		order = order[:limit]
	}
	return order
}

// SuggestTitles returns three template titles on the main topic.
func (s *assistService) SuggestTitles(content string) []string {
	keywords := s.ExtractKeywords(content, 5)
	topic := defaultTopic
	if len(keywords) > 0 {
		topic = keywords[0]
	}

	s.mu.Lock()
	action1 := titleActions[s.rng.Intn(len(titleActions))]
	action2 := titleActions[s.rng.Intn(len(titleActions))]
	count := s.rng.Intn(10) + 3
	s.mu.Unlock()

	return []string{
		fmt.Sprintf("How to %s %s", action1, topic),
		fmt.Sprintf("%d Ways to %s %s", count, action2, topic),
		fmt.Sprintf("The Ultimate Guide to %s", topic),
	}
}

func (s *assistService) SuggestSummaries(content string) []string {
	sentences := splitSentences(content, 20)

	if len(sentences) >= 3 {
		keywords := s.ExtractKeywords(content, 8)
		return []string{
			strings.Join(sentences[:3], ". ") + ".",
			fmt.Sprintf("This article explores %s and provides insights on %s.",
				strings.Join(window(keywords, 0, 3), ", "),
				strings.Join(window(keywords, 3, 6), ", ")),
		}
	}

	keywords := s.ExtractKeywords(content, 5)
	return []string{
		fmt.Sprintf("An exploration of %s with practical insights and recommendations.", strings.Join(window(keywords, 0, 2), " and ")),
		fmt.Sprintf("Learn about %s and their applications in modern contexts.", strings.Join(keywords, ", ")),
	}
}

// SuggestKeywords extends the extracted keywords with related topic words
// when the content touches a known topic group.
func (s *assistService) SuggestKeywords(content string) []string {
	suggested := s.ExtractKeywords(content, 12)
	lower := strings.ToLower(content)

	for _, group := range [][]string{techKeywords, businessKeywords, contentKeywords} {
		if !containsAny(lower, group) {
			continue
		}
		added := 0
		for _, k := range group {
			if added == 2 {
				break
			}
			if !contains(suggested, k) {
				suggested = append(suggested, k)
				added++
			}
		}
	}

	if len(suggested) > 10 {
		suggested = suggested[:10]
	}
	return suggested
}

func splitSentences(content string, minLen int) []string {
	var out []string
	for _, part := range sentencePattern.Split(content, -1) {
		part = strings.TrimSpace(part)
		if len(part) > minLen {
			out = append(out, part)
		}
	}
	return out
}

func window(items []string, from, to int) []string {
	if from > len(items) {
		from = len(items)
	}
	if to > len(items) {
		to = len(items)
	}
	return items[from:to]
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func contains(items []string, item string) bool {
	for _, it := range items {
		if it == item {
			return true
		}
	}
	return false
}

func makeSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
