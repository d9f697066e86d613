package domain

type SeatType string

const (
	SeatTypeStandard   SeatType = "standard"
	SeatTypeVIP        SeatType = "vip"
	SeatTypeAccessible SeatType = "accessible"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatOccupied  SeatStatus = "occupied"
	SeatSelected  SeatStatus = "selected"
)

// Seat is one position in a generated seat map. Occupied is assigned at
// generation time and never changes for the lifetime of the map; selected is
// only reachable from available. Price is fixed by tier at creation.
type Seat struct {
	ID     string
	Row    string
	Col    int
	Type   SeatType
	Status SeatStatus
	Price  int
}
