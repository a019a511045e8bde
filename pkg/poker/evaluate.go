package poker

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"cardroom-server/pkg/deck"
)

// ErrNoCards is returned when Evaluate is called without any cards
var ErrNoCards = errors.New("no cards provided for evaluation")

// ErrNotEnoughCards is returned when BestHand is called with fewer than five cards
var ErrNotEnoughCards = errors.New("not enough cards to form a hand")

// Result is the outcome of evaluating a hand.
// Value is a bit-packed tie-breaker: the category rank shifted left 20 bits,
// followed by up to five 4-bit rank fields packed most-significant-first in
// decreasing importance (primary group rank, then kickers descending).
// Two results compare equal exactly when they are an exact tie.
type Result struct {
	Hand        Hand
	Value       int
	Cards       []*deck.Card
	Description string
}

// MarshalJSON encodes JSON
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		HandName    string   `json:"handName"`
		HandRank    int      `json:"handRank"`
		HandValue   int      `json:"handValue"`
		Cards       []string `json:"cards"`
		Description string   `json:"description"`
	}{
		HandName:    r.Hand.String(),
		HandRank:    int(r.Hand),
		HandValue:   r.Value,
		Cards:       deck.CardsToStrings(r.Cards),
		Description: r.Description,
	})
}

// Compare returns a positive number if a beats b, a negative number if b
// beats a, and zero on an exact tie (split pot). Categories are compared
// first, then the packed tie-break values.
func Compare(a, b *Result) int {
	if a.Hand != b.Hand {
		return int(a.Hand) - int(b.Hand)
	}

	return a.Value - b.Value
}

// Evaluate judges exactly the cards it is given (five for direct
// evaluation; BestHand supplies the 5-of-7 subsets for hold'em).
func Evaluate(cards []*deck.Card) (*Result, error) {
	if len(cards) == 0 {
		return nil, ErrNoCards
	}

	sorted := make([]*deck.Card, len(cards))
	copy(sorted, cards)
	sort.Sort(sort.Reverse(sortByRank(sorted)))

	counts := rankCounts(sorted)

	if sf, ok := checkStraightFlush(sorted); ok {
		if sf.highRank == deck.Ace {
			return result(RoyalFlush, sorted, pack(RoyalFlush, sf.highRank),
				fmt.Sprintf("Royal Flush (%s)", sorted[0].Suit)), nil
		}

		return result(StraightFlush, sorted, pack(StraightFlush, sf.highRank),
			fmt.Sprintf("Straight Flush (%s high, %s)", rankName(sf.highRank), sorted[0].Suit)), nil
	}

	if quad, kicker, ok := checkFourOfAKind(counts); ok {
		return result(FourOfAKind, sorted, pack(FourOfAKind, quad, kicker),
			fmt.Sprintf("Four of a Kind (%ss with %s kicker)", rankName(quad), rankName(kicker))), nil
	}

	if trip, pair, ok := checkFullHouse(counts); ok {
		return result(FullHouse, sorted, pack(FullHouse, trip, pair),
			fmt.Sprintf("Full House (%ss full of %ss)", rankName(trip), rankName(pair))), nil
	}

	if checkFlush(sorted) {
		kickers := topRanks(sorted, 5)
		return result(Flush, sorted, pack(Flush, kickers...),
			fmt.Sprintf("Flush (%s, %s high)", sorted[0].Suit, rankName(sorted[0].Rank))), nil
	}

	if s, ok := checkStraight(sorted); ok {
		return result(Straight, sorted, pack(Straight, s.highRank),
			fmt.Sprintf("Straight (%s high)", rankName(s.highRank))), nil
	}

	if trip, kickers, ok := checkThreeOfAKind(counts); ok {
		return result(ThreeOfAKind, sorted, pack(ThreeOfAKind, append([]int{trip}, kickers...)...),
			fmt.Sprintf("Three of a Kind (%ss)", rankName(trip))), nil
	}

	if high, low, kicker, ok := checkTwoPair(counts); ok {
		return result(TwoPair, sorted, pack(TwoPair, high, low, kicker),
			fmt.Sprintf("Two Pair (%ss and %ss)", rankName(high), rankName(low))), nil
	}

	if pair, kickers, ok := checkOnePair(counts); ok {
		return result(OnePair, sorted, pack(OnePair, append([]int{pair}, kickers...)...),
			fmt.Sprintf("One Pair (%ss)", rankName(pair))), nil
	}

	kickers := topRanks(sorted, 5)
	return result(HighCard, sorted, pack(HighCard, kickers...),
		fmt.Sprintf("High Card (%s high)", rankName(sorted[0].Rank))), nil
}

// BestHand finds the best five-card hand among all C(n,5) subsets of the
// given cards, keeping the maximum by Compare
func BestHand(cards []*deck.Card) (*Result, error) {
	if len(cards) < 5 {
		return nil, ErrNotEnoughCards
	}

	var best *Result
	for _, combo := range combinations(cards, 5) {
		res, err := Evaluate(combo)
		if err != nil {
			return nil, err
		}

		if best == nil || Compare(res, best) > 0 {
			best = res
		}
	}

	return best, nil
}

func result(hand Hand, cards []*deck.Card, value int, description string) *Result {
	return &Result{
		Hand:        hand,
		Value:       value,
		Cards:       cards,
		Description: description,
	}
}

// pack builds the bit-packed tie-break value: category<<20, then 4-bit
// rank fields at shifts 16, 12, 8, 4, 0
func pack(hand Hand, fields ...int) int {
	value := int(hand) << 20
	shift := 16
	for _, field := range fields {
		if shift < 0 {
			break
		}

		value |= field << shift
		shift -= 4
	}

	return value
}

type straightInfo struct {
	highRank int
	isWheel  bool
}

// checkStraight finds a run of five consecutive unique ranks. The wheel
// (A-2-3-4-5) counts as a straight whose high card is 5, not 14.
func checkStraight(cards []*deck.Card) (straightInfo, bool) {
	unique := make([]int, 0, len(cards))
	seen := make(map[int]bool)
	for _, card := range cards {
		if !seen[card.Rank] {
			seen[card.Rank] = true
			unique = append(unique, card.Rank)
		}
	}

	sort.Ints(unique)

	if seen[deck.Ace] && seen[2] && seen[3] && seen[4] && seen[5] {
		return straightInfo{highRank: 5, isWheel: true}, true
	}

	for i := 0; i+5 <= len(unique); i++ {
		run := true
		for j := 1; j < 5; j++ {
			if unique[i+j] != unique[i]+j {
				run = false
				break
			}
		}

		if run {
			return straightInfo{highRank: unique[i+4]}, true
		}
	}

	return straightInfo{}, false
}

func checkFlush(cards []*deck.Card) bool {
	suit := cards[0].Suit
	for _, card := range cards[1:] {
		if card.Suit != suit {
			return false
		}
	}

	return true
}

func checkStraightFlush(cards []*deck.Card) (straightInfo, bool) {
	if !checkFlush(cards) {
		return straightInfo{}, false
	}

	return checkStraight(cards)
}

func checkFourOfAKind(counts map[int]int) (quad, kicker int, ok bool) {
	for rank, n := range counts {
		if n == 4 {
			for other := range counts {
				if other != rank && other > kicker {
					kicker = other
				}
			}

			return rank, kicker, true
		}
	}

	return 0, 0, false
}

func checkFullHouse(counts map[int]int) (trip, pair int, ok bool) {
	for rank, n := range counts {
		if n == 3 && rank > trip {
			trip = rank
		}
	}

	if trip == 0 {
		return 0, 0, false
	}

	for rank, n := range counts {
		if rank == trip {
			continue
		}

		if (n == 2 || n == 3) && rank > pair {
			pair = rank
		}
	}

	if pair == 0 {
		return 0, 0, false
	}

	return trip, pair, true
}

func checkThreeOfAKind(counts map[int]int) (trip int, kickers []int, ok bool) {
	for rank, n := range counts {
		if n == 3 && rank > trip {
			trip = rank
		}
	}

	if trip == 0 {
		return 0, nil, false
	}

	return trip, otherRanks(counts, trip), true
}

func checkTwoPair(counts map[int]int) (high, low, kicker int, ok bool) {
	pairs := make([]int, 0, 2)
	for rank, n := range counts {
		if n == 2 {
			pairs = append(pairs, rank)
		}
	}

	if len(pairs) < 2 {
		return 0, 0, 0, false
	}

	sort.Sort(sort.Reverse(sort.IntSlice(pairs)))

	for rank, n := range counts {
		if n == 1 && rank > kicker {
			kicker = rank
		}
	}

	return pairs[0], pairs[1], kicker, true
}

func checkOnePair(counts map[int]int) (pair int, kickers []int, ok bool) {
	for rank, n := range counts {
		if n == 2 && rank > pair {
			pair = rank
		}
	}

	if pair == 0 {
		return 0, nil, false
	}

	return pair, otherRanks(counts, pair), true
}

func rankCounts(cards []*deck.Card) map[int]int {
	counts := make(map[int]int)
	for _, card := range cards {
		counts[card.Rank]++
	}

	return counts
}

// otherRanks returns every rank except the excluded one, descending
func otherRanks(counts map[int]int, exclude int) []int {
	ranks := make([]int, 0, len(counts))
	for rank := range counts {
		if rank != exclude {
			ranks = append(ranks, rank)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
	return ranks
}

// topRanks returns the ranks of the first n cards of a descending-sorted hand
func topRanks(sorted []*deck.Card, n int) []int {
	if n > len(sorted) {
		n = len(sorted)
	}

	ranks := make([]int, n)
	for i := 0; i < n; i++ {
		ranks[i] = sorted[i].Rank
	}

	return ranks
}

func rankName(rank int) string {
	switch rank {
	case 10:
		return "T"
	case deck.Jack:
		return "J"
	case deck.Queen:
		return "Q"
	case deck.King:
		return "K"
	case deck.Ace:
		return "A"
	default:
		return strconv.Itoa(rank)
	}
}

func combinations(cards []*deck.Card, n int) [][]*deck.Card {
	if n > len(cards) {
		return nil
	}

	var results [][]*deck.Card
	combo := make([]*deck.Card, 0, n)

	var combine func(start int)
	combine = func(start int) {
		if len(combo) == n {
			cp := make([]*deck.Card, n)
			copy(cp, combo)
			results = append(results, cp)
			return
		}

		for i := start; i < len(cards); i++ {
			combo = append(combo, cards[i])
			combine(i + 1)
			combo = combo[:len(combo)-1]
		}
	}

	combine(0)
	return results
}
