package board

import (
	"fmt"

	"github.com/playhall/marble-backend/app/models"
)

// Board geometry. The four corners are GO, ISLAND, FESTIVAL and TRAVEL;
// GO_TO_ISLAND sits on the last stretch like the classic layout.
const (
	Size            = 36
	GoIndex         = 0
	IslandIndex     = 9
	FestivalIndex   = 18
	TravelIndex     = 27
	GoToIslandIndex = 30
)

func prop(index int, name, group string, price, base, h1, h2, h3, h4, hotel, mono, house int) models.BoardCell {
	return models.BoardCell{
		Index: index, Name: name, Type: models.CellProperty, Group: group,
		Price: price, RentBase: base,
		RentHouse:    [4]int{h1, h2, h3, h4},
		RentHotel:    hotel,
		RentMonopoly: mono,
		HouseCost:    house,
		HotelCost:    price,
	}
}

func station(index int, name string) models.BoardCell {
	return models.BoardCell{Index: index, Name: name, Type: models.CellStation, Price: 2000}
}

func utility(index int, name string) models.BoardCell {
	return models.BoardCell{Index: index, Name: name, Type: models.CellUtility, Price: 1800}
}

func tax(index int, name string, amount int) models.BoardCell {
	return models.BoardCell{Index: index, Name: name, Type: models.CellTax, Tax: amount}
}

func corner(index int, name string, t models.CellType) models.BoardCell {
	return models.BoardCell{Index: index, Name: name, Type: t}
}

func card(index int, t models.CellType) models.BoardCell {
	name := "Chance"
	if t == models.CellCardB {
		name = "Fortune"
	}
	return models.BoardCell{Index: index, Name: name, Type: t}
}

// cells is the whole board. Rent tables are hand-tuned per cell; the only
// structural rules are base < monopoly < house tiers < hotel and
// hotelCost == price.
var cells = [Size]models.BoardCell{
	corner(0, "Start", models.CellGo),
	prop(1, "Taipei", "brown", 1000, 100, 220, 600, 1350, 2400, 3600, 200, 500),
	card(2, models.CellCardB),
	prop(3, "Hanoi", "brown", 1000, 100, 220, 600, 1350, 2400, 3600, 200, 500),
	tax(4, "Income Tax", 1500),
	station(5, "East Station"),
	prop(6, "Manila", "cyan", 1200, 120, 250, 750, 1800, 3200, 4500, 240, 600),
	prop(7, "Jakarta", "cyan", 1200, 120, 250, 750, 1800, 3200, 4500, 240, 600),
	prop(8, "Bangkok", "cyan", 1400, 140, 300, 900, 2000, 3600, 5000, 280, 700),
	corner(9, "Desert Island", models.CellIsland),
	prop(10, "Cairo", "pink", 1800, 180, 400, 1200, 2700, 4800, 6500, 360, 900),
	utility(11, "Water Works"),
	prop(12, "Istanbul", "pink", 1800, 180, 400, 1200, 2700, 4800, 6500, 360, 900),
	card(13, models.CellCardA),
	station(14, "South Station"),
	prop(15, "Warsaw", "orange", 2400, 240, 550, 1650, 3600, 6400, 8500, 480, 1200),
	card(16, models.CellCardB),
	prop(17, "Prague", "orange", 2600, 260, 600, 1800, 4000, 7000, 9000, 520, 1300),
	corner(18, "Festival Plaza", models.CellFestival),
	prop(19, "Vienna", "red", 2800, 280, 650, 2000, 4400, 7600, 10000, 560, 1400),
	prop(20, "Madrid", "red", 3000, 300, 700, 2100, 4700, 8200, 10500, 600, 1500),
	card(21, models.CellCardA),
	prop(22, "Rome", "red", 3200, 320, 750, 2250, 5000, 8800, 11000, 640, 1600),
	station(23, "West Station"),
	tax(24, "Luxury Tax", 2500),
	prop(25, "Berlin", "yellow", 3400, 340, 800, 2400, 5400, 9400, 12000, 680, 1700),
	prop(26, "Amsterdam", "yellow", 3600, 360, 850, 2550, 5700, 10000, 12500, 720, 1800),
	corner(27, "World Tour", models.CellTravel),
	prop(28, "Singapore", "green", 3800, 380, 900, 2700, 6000, 10600, 13000, 760, 1900),
	utility(29, "Power Plant"),
	corner(30, "Go to the Island", models.CellGoToIsland),
	prop(31, "Hong Kong", "green", 4000, 400, 950, 2850, 6400, 11200, 13500, 800, 2000),
	prop(32, "Shanghai", "green", 4200, 420, 1000, 3000, 6700, 11800, 14000, 840, 2100),
	station(33, "North Station"),
	prop(34, "Paris", "blue", 4600, 460, 1100, 3300, 7400, 13000, 15500, 920, 2300),
	prop(35, "New York", "blue", 5200, 520, 1250, 3750, 8400, 14800, 17500, 1040, 2600),
}

// CellAt returns the catalog entry for a board index. Out-of-range indices
// are a programming error and panic rather than clamp.
func CellAt(index int) models.BoardCell {
	if index < 0 || index >= Size {
		panic(fmt.Sprintf("board: cell index %d out of range", index))
	}
	return cells[index]
}

// Cells returns the full catalog in index order.
func Cells() []models.BoardCell {
	out := make([]models.BoardCell, Size)
	copy(out, cells[:])
	return out
}

// GroupCells returns the indices of every property in a color group.
func GroupCells(group string) []int {
	var out []int
	for _, c := range cells {
		if c.Type == models.CellProperty && c.Group == group {
			out = append(out, c.Index)
		}
	}
	return out
}

// StationIndices returns the four station cells in index order.
func StationIndices() []int {
	var out []int
	for _, c := range cells {
		if c.Type == models.CellStation {
			out = append(out, c.Index)
		}
	}
	return out
}
