package catalog

// Product mirrors the remote store catalog schema. Local fixture products
// use the same shape and occupy ids >= 101.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// LocalIDFloor is the first product id reserved for the local fixture set.
const LocalIDFloor = 101
