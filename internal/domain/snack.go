package domain

type SnackIcon string

const (
	SnackIconPopcorn SnackIcon = "popcorn"
	SnackIconDrink   SnackIcon = "drink"
	SnackIconNachos  SnackIcon = "nachos"
)

// Snack is a concession catalog entry. The catalog is static and never
// mutated at runtime.
type Snack struct {
	ID    string
	Name  string
	Price int
	Icon  SnackIcon
}

var Snacks = []Snack{
	{ID: "pop-s", Name: "Small Popcorn", Price: 22, Icon: SnackIconPopcorn},
	{ID: "pop-l", Name: "Jumbo Popcorn", Price: 34, Icon: SnackIconPopcorn},
	{ID: "drink-s", Name: "Soft Drink", Price: 16, Icon: SnackIconDrink},
	{ID: "drink-l", Name: "Large Drink", Price: 22, Icon: SnackIconDrink},
	{ID: "nachos", Name: "Nachos & Cheese", Price: 28, Icon: SnackIconNachos},
}

// SnackByID returns nil for unknown ids; callers treat unknown ids as
// contributing nothing to a subtotal.
func SnackByID(id string) *Snack {
	for i := range Snacks {
		if Snacks[i].ID == id {
			return &Snacks[i]
		}
	}

	return nil
}
