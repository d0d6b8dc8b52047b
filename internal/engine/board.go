package engine

import "fmt"

// TileSize is the spacing between neighbouring tiles in board coordinates.
const TileSize = 48.0

// TileKind is the closed set of tile kinds on the loop.
type TileKind int

const (
	KindBank TileKind = iota
	KindProperty
	KindSuit
	KindChance
)

var kindNames = map[TileKind]string{
	KindBank:     "Bank",
	KindProperty: "Property",
	KindSuit:     "Suit",
	KindChance:   "Chance",
}

func (k TileKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Point is a display position. Rules never read it.
type Point struct {
	X, Y float64
}

// Lot is a purchasable shop in a district.
type Lot struct {
	District string `json:"district"`
	Price    int    `json:"price"`
	Fee      int    `json:"fee"`
}

// Tile is one square of the loop.
// District, Price and Fee are set for KindProperty, Suit for KindSuit.
// Displays read tiles through TileView.
type Tile struct {
	Index    int
	Kind     TileKind
	Position Point
	District string
	Price    int
	Fee      int
	Suit     Suit
}

// DefaultLots returns the shop catalogue, two lots per district in board order.
func DefaultLots() []Lot {
	var lots []Lot
	add := func(district string, price, fee int) {
		lots = append(lots, Lot{District: district, Price: price, Fee: fee})
	}

	add("Downtown", 300, 80)
	add("Downtown", 320, 90)
	add("Plaza", 280, 75)
	add("Plaza", 260, 70)
	add("Harbor", 350, 95)
	add("Harbor", 360, 105)
	add("Grove", 240, 60)
	add("Grove", 260, 65)

	return lots
}

// DefaultBoard is the 17 tile loop: the bank and four district groups.
func DefaultBoard() []Tile {
	return GenerateBoard(17, DefaultLots())
}

// GenerateBoard lays out length tiles: the bank at index 0, then repeating
// groups of Property, Suit, Property, Chance. Each group takes the next two
// lots of the catalogue, wrapping when the board outgrows it.
func GenerateBoard(length int, lots []Lot) []Tile {
	if length < 1 {
		panic(fmt.Sprintf("engine: board length %d, need at least 1", length))
	}
	if length > 1 && len(lots) == 0 {
		panic("engine: board has property slots but the lot catalogue is empty")
	}

	positions := ringPositions(length)
	suits := AllSuits()
	tiles := make([]Tile, length)
	tiles[0] = Tile{Index: 0, Kind: KindBank, Position: positions[0]}

	for i := 1; i < length; i++ {
		group, slot := (i-1)/4, (i-1)%4
		t := Tile{Index: i, Position: positions[i]}
		switch slot {
		case 0, 2:
			lot := lots[(2*group+slot/2)%len(lots)]
			t.Kind = KindProperty
			t.District = lot.District
			t.Price = lot.Price
			t.Fee = lot.Fee
		case 1:
			t.Kind = KindSuit
			t.Suit = suits[group%len(suits)]
		case 3:
			t.Kind = KindChance
		}
		tiles[i] = t
	}
	return tiles
}

// ringPositions walks the perimeter of the smallest square ring holding n
// tiles, clockwise from the top-left corner, centred on the origin.
func ringPositions(n int) []Point {
	side := (n+3)/4 + 1
	var cells [][2]int
	for x := 0; x < side; x++ {
		cells = append(cells, [2]int{x, 0})
	}
	for y := 1; y < side; y++ {
		cells = append(cells, [2]int{side - 1, y})
	}
	for x := side - 2; x >= 0; x-- {
		cells = append(cells, [2]int{x, side - 1})
	}
	for y := side - 2; y >= 1; y-- {
		cells = append(cells, [2]int{0, y})
	}

	offset := float64(side-1) / 2 * TileSize
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{
			X: float64(cells[i][0])*TileSize - offset,
			Y: float64(cells[i][1])*TileSize - offset,
		}
	}
	return points
}
