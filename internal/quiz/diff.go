package quiz

import (
	"strings"
	"unicode"
)

// Segment is a maximal run of characters sharing the same match status
type Segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

// Diff is a character alignment of an expected and an actual string
type Diff struct {
	Expected []Segment `json:"expected"`
	Actual   []Segment `json:"actual"`
}

// DiffStrings aligns expected and actual on their longest common subsequence of
// code points. Characters outside the subsequence are reported as mismatches.
func DiffStrings(expected, actual string, caseSensitive bool) Diff {
	a := []rune(expected)
	b := []rune(actual)
	m, n := len(a), len(b)

	same := func(x, y rune) bool {
		if caseSensitive {
			return x == y
		}
		return x == y || unicode.ToLower(x) == unicode.ToLower(y)
	}

	// dp[i][j] is the LCS length of a[i:] and b[j:]
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if same(a[i], b[j]) {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}

	var exp, act segmentBuilder
	i, j := 0, 0
	for i < m && j < n {
		switch {
		case same(a[i], b[j]):
			exp.push(a[i], true)
			act.push(b[j], true)
			i++
			j++
		case dp[i+1][j] >= dp[i][j+1]:
			exp.push(a[i], false)
			i++
		default:
			act.push(b[j], false)
			j++
		}
	}
	for ; i < m; i++ {
		exp.push(a[i], false)
	}
	for ; j < n; j++ {
		act.push(b[j], false)
	}

	return Diff{Expected: exp.segments(), Actual: act.segments()}
}

// LCSLength returns the number of matched characters on one side of a diff
func (d Diff) LCSLength() int {
	return matchedRunes(d.Expected)
}

func matchedRunes(segments []Segment) int {
	count := 0
	for _, s := range segments {
		if s.Match {
			count += len([]rune(s.Text))
		}
	}
	return count
}

// Join concatenates segment texts
func Join(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

type segmentBuilder struct {
	list []Segment
	cur  strings.Builder
	open bool
	flag bool
}

func (b *segmentBuilder) push(r rune, match bool) {
	if b.open && b.flag != match {
		b.flush()
	}
	b.cur.WriteRune(r)
	b.open = true
	b.flag = match
}

func (b *segmentBuilder) flush() {
	if !b.open {
		return
	}
	b.list = append(b.list, Segment{Text: b.cur.String(), Match: b.flag})
	b.cur.Reset()
	b.open = false
}

func (b *segmentBuilder) segments() []Segment {
	b.flush()
	if b.list == nil {
		return []Segment{}
	}
	return b.list
}
