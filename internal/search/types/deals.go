package types

// TreasureHuntDeal is a limited-time offer with bundled extras.
type TreasureHuntDeal struct {
	ID          ResultID `json:"id"`
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Benefits    []string `json:"benefits"`
	ExtrasValue string   `json:"extrasValue,omitempty"`
}

// HotDeal is a trending package.
type HotDeal struct {
	ID         ResultID `json:"id"`
	Title      string   `json:"title"`
	Image      string   `json:"image"`
	Price      string   `json:"price,omitempty"`
	Duration   string   `json:"duration,omitempty"`
	Inclusions []string `json:"inclusions"`
}
