package spritesplit

import "fmt"

const defaultSpecial = "special_%d_%d.png"

// Layout maps grid positions to sprite filenames. Row r is Values[r]; column c
// is Suits[c/len(Variants)] drawn as Variants[c%len(Variants)].
type Layout struct {
	Values   []string
	Suits    []string
	Variants []string
	// Format for positions outside the table, given row and column.
	Special string
}

// DefaultLayout is the 5x8 card sheet: five values, four suits, each suit in
// a colored and an outline column.
func DefaultLayout() Layout {
	return Layout{
		Values:   []string{"5", "4", "3", "2", "A"},
		Suits:    []string{"clubs", "spades", "hearts", "diamonds"},
		Variants: []string{"colored", "outline"},
		Special:  defaultSpecial,
	}
}

func (l Layout) Rows() int { return len(l.Values) }

func (l Layout) Cols() int { return len(l.Suits) * len(l.Variants) }

// Covers reports whether a detected grid is large enough to carry the table.
// Smaller grids are not the sheet the table describes and get special names.
func (l Layout) Covers(gridRows, gridCols int) bool {
	return l.Rows() > 0 && l.Cols() > 0 && gridRows >= l.Rows() && gridCols >= l.Cols()
}

// Name returns the filename for (row, col) in a gridRows x gridCols grid.
func (l Layout) Name(row, col, gridRows, gridCols int) string {
	if l.Covers(gridRows, gridCols) && row < l.Rows() && col < l.Cols() {
		n := len(l.Variants)
		return fmt.Sprintf("%s_%s_%s.png", l.Values[row], l.Suits[col/n], l.Variants[col%n])
	}
	special := l.Special
	if special == "" {
		special = defaultSpecial
	}
	return fmt.Sprintf(special, row, col)
}
