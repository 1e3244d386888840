package numerology

// Planet describes one slot of the square. Key is a translation message id.
type Planet struct {
	Slot int
	Key  string
}

// SquarePlanets maps slot ids to their ruling planet.
var SquarePlanets = [SlotCount + 1]Planet{
	{},
	{Slot: 1, Key: "planet_sun"},
	{Slot: 2, Key: "planet_moon"},
	{Slot: 3, Key: "planet_jupiter"},
	{Slot: 4, Key: "planet_rahu"},
	{Slot: 5, Key: "planet_mercury"},
	{Slot: 6, Key: "planet_venus"},
	{Slot: 7, Key: "planet_ketu"},
	{Slot: 8, Key: "planet_saturn"},
	{Slot: 9, Key: "planet_mars"},
}

// GridLayout is the display arrangement of the square: each row is a
// character line, each column a stability line.
var GridLayout = characterLines

// Grid lays the histogram counts out as displayed, row by row.
func (h Histogram) Grid() [3][3]int {
	var g [3][3]int
	for r, row := range GridLayout {
		for c, slot := range row {
			g[r][c] = h[slot]
		}
	}
	return g
}
