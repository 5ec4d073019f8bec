package analyzer

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// stopWords are common function words that never indicate a topic. The set
// includes the apostrophe-stripped spellings of frequent contractions
// because tokenization collapses "don't" to "dont".
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		the be to of and a in that have i
		it for not on with he as you do at
		this but his by from they we say her she
		or an will my one all would there their
		what so up out if about who get which go
		me when make can like time no just him know
		take into your some could them see other than
		then now look only come its over think also
		back after use two how our work first well
		way even new want because any these give day
		most us is was are been has had were said
		did having may am im youre thats dont
		ive isnt arent wasnt werent wont cant couldnt`) {
		stopWords[w] = struct{}{}
	}
}

// Topic is a ranked discussion keyword.
type Topic struct {
	Word     string `json:"word" yaml:"word"`
	Mentions int    `json:"mentions" yaml:"mentions"`
}

// topicCounter counts token frequencies while remembering first-seen order
// so that equal counts rank deterministically. A plain map alone would not:
// Go map iteration order is randomized.
type topicCounter struct {
	counts map[string]int
	order  []string
}

func newTopicCounter() *topicCounter {
	return &topicCounter{counts: make(map[string]int)}
}

func (tc *topicCounter) add(word string) {
	if _, seen := tc.counts[word]; !seen {
		tc.order = append(tc.order, word)
	}
	tc.counts[word]++
}

// topN returns the n most frequent topics, ties broken by first-seen order.
func (tc *topicCounter) topN(n int) []Topic {
	topics := make([]Topic, 0, len(tc.order))
	for _, word := range tc.order {
		topics = append(topics, Topic{Word: word, Mentions: tc.counts[word]})
	}

	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Mentions > topics[j].Mentions
	})

	if n >= 0 && len(topics) > n {
		topics = topics[:n]
	}
	return topics
}

// tokenize lower-cases content, splits it on whitespace and strips every
// non-alphanumeric rune from each word, so punctuation disappears and
// contractions collapse ("Don't" -> "dont"). Tokens shorter than minLen or
// present in the stop-word set are dropped.
func tokenize(content string, minLen int) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(content)) {
		clean := stripNonAlnum(word)
		if utf8.RuneCountInString(clean) < minLen {
			continue
		}
		if _, stopped := stopWords[clean]; stopped {
			continue
		}
		tokens = append(tokens, clean)
	}
	return tokens
}

func stripNonAlnum(word string) string {
	var b strings.Builder
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
