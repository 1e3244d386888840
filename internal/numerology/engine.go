// Package numerology implements the derivation engine: a pure function from a
// birth date and a reference date to a fixed set of derived numbers, a 3x3
// digit-frequency square and the line sums over that square.
package numerology

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tartampluch/go-numerology/internal/config"
)

// SlotCount is the number of planet slots in the square (digits 1 to 9).
const SlotCount = 9

// Histogram counts digit occurrences per slot. Index 0 is unused.
type Histogram [SlotCount + 1]int

// Total returns the sum of all slot counts.
func (h Histogram) Total() int {
	total := 0
	for i := 1; i <= SlotCount; i++ {
		total += h[i]
	}
	return total
}

// Strengths holds the clamped per-slot strength scores. Index 0 is unused.
type Strengths [SlotCount + 1]int

// MarshalJSON encodes slots 1 to 9 as a list.
func (h Histogram) MarshalJSON() ([]byte, error) {
	return json.Marshal(slotValues(h))
}

// MarshalYAML encodes slots 1 to 9 as a sequence.
func (h Histogram) MarshalYAML() (any, error) {
	return slotValues(h), nil
}

// UnmarshalJSON reads the nine slot counts written by MarshalJSON.
func (h *Histogram) UnmarshalJSON(b []byte) error {
	return unmarshalSlots(b, (*[SlotCount + 1]int)(h))
}

// MarshalJSON encodes slots 1 to 9 as a list.
func (s Strengths) MarshalJSON() ([]byte, error) {
	return json.Marshal(slotValues(s))
}

// MarshalYAML encodes slots 1 to 9 as a sequence.
func (s Strengths) MarshalYAML() (any, error) {
	return slotValues(s), nil
}

// UnmarshalJSON reads the nine slot strengths written by MarshalJSON.
func (s *Strengths) UnmarshalJSON(b []byte) error {
	return unmarshalSlots(b, (*[SlotCount + 1]int)(s))
}

// slotValues drops the unused index 0.
func slotValues(a [SlotCount + 1]int) []int {
	out := make([]int, SlotCount)
	copy(out, a[1:])
	return out
}

func unmarshalSlots(b []byte, dst *[SlotCount + 1]int) error {
	var values []int
	if err := json.Unmarshal(b, &values); err != nil {
		return err
	}
	if len(values) != SlotCount {
		return fmt.Errorf(config.FormatSlotCount, SlotCount, len(values))
	}
	dst[0] = 0
	copy(dst[1:], values)
	return nil
}

// WorkingNumbers are the four integers derived successively from the birth date.
// Third may be negative.
type WorkingNumbers struct {
	First  int `json:"first" yaml:"first"`
	Second int `json:"second" yaml:"second"`
	Third  int `json:"third" yaml:"third"`
	Fourth int `json:"fourth" yaml:"fourth"`
}

// Cycle groups the individual year, month and day numbers of a reference date.
type Cycle struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"`
	Day   int `json:"day" yaml:"day"`
}

// Lines holds the sums of histogram counts along the square's lines.
type Lines struct {
	Character [3]int `json:"character" yaml:"character"` // rows {1,4,7} {2,5,8} {3,6,9}
	Stability [3]int `json:"stability" yaml:"stability"` // columns {1,2,3} {4,5,6} {7,8,9}
	Spiritual [2]int `json:"spiritual" yaml:"spiritual"` // diagonals {1,5,9} {3,5,7}
}

// Result is the complete, immutable output of Compute.
type Result struct {
	BirthDate     CalendarDate   `json:"birth_date" yaml:"birth_date"`
	ReferenceDate CalendarDate   `json:"reference_date" yaml:"reference_date"`
	Working       WorkingNumbers `json:"working" yaml:"working"`
	FirstDigit    int            `json:"first_digit" yaml:"first_digit"`

	Soul    int `json:"soul" yaml:"soul"`
	Mind    int `json:"mind" yaml:"mind"`
	Destiny int `json:"destiny" yaml:"destiny"`
	Mind2   int `json:"mind2" yaml:"mind2"`
	Wisdom  int `json:"wisdom" yaml:"wisdom"`

	LifePath int `json:"life_path" yaml:"life_path"`
	Ruling   int `json:"ruling" yaml:"ruling"`
	Problem  int `json:"problem" yaml:"problem"`

	Individual   Cycle `json:"individual" yaml:"individual"`
	ProblemCycle Cycle `json:"problem_cycle" yaml:"problem_cycle"`

	Histogram Histogram `json:"histogram" yaml:"histogram"`
	Strengths Strengths `json:"strengths" yaml:"strengths"`
	Lines     Lines     `json:"lines" yaml:"lines"`
}

// problemOffset is added to every cycle number before reduction.
const problemOffset = 4

// soulBonus is the extra strength awarded to the slot matching the soul number.
const soulBonus = 3

// Compute derives the full result for a birth date and a reference date, both
// in DD.MM.YYYY form. It fails only with ErrInvalidDateFormat and never
// returns a partial result.
func Compute(birthText, referenceText string) (Result, error) {
	birth, err := ParseDate(birthText)
	if err != nil {
		return Result{}, fmt.Errorf("birth date: %w", err)
	}
	ref, err := ParseDate(referenceText)
	if err != nil {
		return Result{}, fmt.Errorf("reference date: %w", err)
	}

	// 1. Working numbers
	seed := NonZeroDigits(birthText)
	wn := WorkingNumbers{First: sum(seed)}
	wn.Second = DigitSum(wn.First)
	firstDigit := DigitsOf(birthText)[0]
	wn.Third = wn.First - 2*firstDigit
	wn.Fourth = DigitSum(wn.Third)

	// 2. Planet square. Zeros inside the working numbers enter the pool even
	// though the birth date zeros do not; they are never counted anyway.
	pool := append([]int(nil), seed...)
	for _, n := range []int{wn.First, wn.Second, wn.Third, wn.Fourth} {
		pool = append(pool, decimalDigits(n)...)
	}
	hist := histogramOf(pool)

	// 3. Principal numbers
	res := Result{
		BirthDate:     birth,
		ReferenceDate: ref,
		Working:       wn,
		FirstDigit:    firstDigit,
		Soul:          reduceField(birth.Day),
		Mind:          reduceField(birth.Month),
		Destiny:       wn.Second,
		Mind2:         wn.Fourth,
		Histogram:     hist,
	}
	res.Wisdom = abs(res.Destiny - res.Mind2)
	res.LifePath = Mod9or9(res.Soul + res.Mind + res.Destiny)
	res.Ruling = rulingNumber(birth)
	res.Problem = Mod9or9(res.Soul + res.Destiny + problemOffset)

	// 4. Cycles relative to the reference date
	res.Individual = individualCycle(birth, ref)
	res.ProblemCycle = Cycle{
		Year:  Mod9or9(res.Individual.Year + problemOffset),
		Month: Mod9or9(res.Individual.Month + problemOffset),
		Day:   Mod9or9(res.Individual.Day + problemOffset),
	}

	// 5. Square aggregates
	res.Strengths = strengthsOf(hist, res.Soul)
	res.Lines = linesOf(hist)

	return res, nil
}

// reduceField keeps single-digit fields and digit-sums two-digit ones.
func reduceField(v int) int {
	if v > 9 {
		return DigitSum(v)
	}
	return v
}

// rulingNumber concatenates the decimal forms of day and month: 10.01 gives 101.
func rulingNumber(d CalendarDate) int {
	n, _ := strconv.Atoi(strconv.Itoa(d.Day) + strconv.Itoa(d.Month))
	return n
}

func individualCycle(birth, ref CalendarDate) Cycle {
	var c Cycle
	c.Year = Mod9or9(birth.Day + birth.Month + DigitSum(ref.Year))
	c.Month = Mod9or9(c.Year + ref.Month)
	c.Day = Mod9or9(c.Month + ref.Day)
	return c
}

func histogramOf(pool []int) Histogram {
	var h Histogram
	for _, d := range pool {
		if d >= 1 && d <= SlotCount {
			h[d]++
		}
	}
	return h
}

func strengthsOf(h Histogram, soul int) Strengths {
	var s Strengths
	for i := 1; i <= SlotCount; i++ {
		score := h[i] * 2
		if i == soul {
			score += soulBonus
		}
		s[i] = clamp(score, 1, 10)
	}
	return s
}

// Square topology, by slot id.
var (
	characterLines = [3][3]int{{1, 4, 7}, {2, 5, 8}, {3, 6, 9}}
	stabilityLines = [3][3]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	spiritualLines = [2][3]int{{1, 5, 9}, {3, 5, 7}}
)

func linesOf(h Histogram) Lines {
	var l Lines
	for i, line := range characterLines {
		l.Character[i] = lineSum(h, line)
	}
	for i, line := range stabilityLines {
		l.Stability[i] = lineSum(h, line)
	}
	for i, line := range spiritualLines {
		l.Spiritual[i] = lineSum(h, line)
	}
	return l
}

func lineSum(h Histogram, slots [3]int) int {
	total := 0
	for _, slot := range slots {
		total += h[slot]
	}
	return total
}
