package models

import (
	"sort"
)

const (
	// CardSize is the number of numbers printed on every card
	CardSize = 15

	// MinNumber and MaxNumber bound the drawable pool
	MinNumber = 1
	MaxNumber = 90

	// PoolSize is the total count of drawable numbers
	PoolSize = MaxNumber - MinNumber + 1
)

// Card represents a participant's fixed set of numbers and the subset matched this night
type Card struct {
	Numbers []int
	matched map[int]struct{}
}

// NewCard creates a card over the given numbers with nothing matched
func NewCard(numbers []int) *Card {
	n := make([]int, len(numbers))
	copy(n, numbers)
	return &Card{
		Numbers: n,
		matched: make(map[int]struct{}, len(numbers)),
	}
}

// Contains checks if the number is printed on the card
func (c *Card) Contains(number int) bool {
	for _, n := range c.Numbers {
		if n == number {
			return true
		}
	}
	return false
}

// IsMatched checks if the number has been matched this night
func (c *Card) IsMatched(number int) bool {
	_, ok := c.matched[number]
	return ok
}

// Mark matches a number on the card. Returns false if the number is not on
// the card or was already matched.
func (c *Card) Mark(number int) bool {
	if c.IsMatched(number) || !c.Contains(number) {
		return false
	}
	if c.matched == nil {
		c.matched = make(map[int]struct{}, CardSize)
	}
	c.matched[number] = struct{}{}
	return true
}

// Unmark removes a match. Returns false if the number was not matched.
func (c *Card) Unmark(number int) bool {
	if !c.IsMatched(number) {
		return false
	}
	delete(c.matched, number)
	return true
}

// MatchedCount returns how many numbers are matched
func (c *Card) MatchedCount() int {
	return len(c.matched)
}

// IsComplete returns true once every number on the card is matched
func (c *Card) IsComplete() bool {
	return len(c.Numbers) > 0 && len(c.matched) >= len(c.Numbers)
}

// UnmatchedNumbers returns the numbers still open, in card order
func (c *Card) UnmatchedNumbers() []int {
	out := make([]int, 0, len(c.Numbers)-len(c.matched))
	for _, n := range c.Numbers {
		if !c.IsMatched(n) {
			out = append(out, n)
		}
	}
	return out
}

// MatchedNumbers returns the matched numbers in ascending order
func (c *Card) MatchedNumbers() []int {
	out := make([]int, 0, len(c.matched))
	for n := range c.matched {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// MatchedFlags reports per card position whether the number there is matched
func (c *Card) MatchedFlags() []bool {
	flags := make([]bool, len(c.Numbers))
	for i, n := range c.Numbers {
		flags[i] = c.IsMatched(n)
	}
	return flags
}

// ResetForNight clears all matches
func (c *Card) ResetForNight() {
	c.matched = make(map[int]struct{}, CardSize)
}
