package models

// CellType discriminates the 36 board cells. Only PROPERTY, STATION and
// UTILITY cells are purchasable; corners never are.
type CellType string

const (
	CellGo         CellType = "GO"
	CellProperty   CellType = "PROPERTY"
	CellStation    CellType = "STATION"
	CellUtility    CellType = "UTILITY"
	CellTax        CellType = "TAX"
	CellTravel     CellType = "TRAVEL"
	CellIsland     CellType = "ISLAND"
	CellGoToIsland CellType = "GO_TO_ISLAND"
	CellFestival   CellType = "FESTIVAL"
	CellCardA      CellType = "CARD_A"
	CellCardB      CellType = "CARD_B"
)

// BoardCell is one immutable catalog entry. RentHouse holds the tiered rent
// for 1..4 houses; RentMonopoly is the rent charged on an unimproved cell
// whose whole color group belongs to one owner (0 means fall back to twice
// the base rent).
type BoardCell struct {
	Index        int      `json:"index"`
	Name         string   `json:"name"`
	Type         CellType `json:"type"`
	Group        string   `json:"group,omitempty"`
	Price        int      `json:"price,omitempty"`
	RentBase     int      `json:"rent_base,omitempty"`
	RentHouse    [4]int   `json:"rent_house,omitempty"`
	RentHotel    int      `json:"rent_hotel,omitempty"`
	RentMonopoly int      `json:"rent_monopoly,omitempty"`
	HouseCost    int      `json:"house_cost,omitempty"`
	HotelCost    int      `json:"hotel_cost,omitempty"`
	Tax          int      `json:"tax,omitempty"`
}

// Purchasable reports whether the cell can be owned by a player.
func (c BoardCell) Purchasable() bool {
	switch c.Type {
	case CellProperty, CellStation, CellUtility:
		return true
	}
	return false
}
