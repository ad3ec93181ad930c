package main

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/alex-user-go/tripsearch/internal/providers"
	"github.com/alex-user-go/tripsearch/internal/search/types"
)

//go:embed catalog.yaml
var defaultCatalog []byte

const (
	searchLimit = 20
	dealLimit   = 6
)

type hotel struct {
	ID      int     `yaml:"id"`
	Name    string  `yaml:"name"`
	City    string  `yaml:"city"`
	Country string  `yaml:"country"`
	Rating  float64 `yaml:"rating"`
	Reviews int     `yaml:"reviews"`
	Image   string  `yaml:"image"`
}

type travelPackage struct {
	ID           int     `yaml:"id"`
	Title        string  `yaml:"title"`
	Destination  string  `yaml:"destination"`
	Nights       int     `yaml:"nights"`
	Price        float64 `yaml:"price"`
	Flight       bool    `yaml:"flight"`
	Car          bool    `yaml:"car"`
	HotelID      int     `yaml:"hotel_id"`
	Image        string  `yaml:"image"`
	Description  string  `yaml:"description"`
	Options      string  `yaml:"options"`
	TreasureHunt bool    `yaml:"treasure_hunt"`
	WhatsHot     bool    `yaml:"whats_hot"`
	ExtrasValue  string  `yaml:"extras_value"`
}

// Catalog is the provider's in-memory inventory.
type Catalog struct {
	Hotels   []hotel         `yaml:"hotels"`
	Packages []travelPackage `yaml:"packages"`

	hotelsByID map[int]hotel
	printer    *message.Printer
}

// LoadCatalog parses a YAML catalog.
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c.hotelsByID = make(map[int]hotel, len(c.Hotels))
	for _, h := range c.Hotels {
		c.hotelsByID[h.ID] = h
	}
	for _, p := range c.Packages {
		if p.HotelID != 0 {
			if _, ok := c.hotelsByID[p.HotelID]; !ok {
				return nil, fmt.Errorf("package %d references unknown hotel %d", p.ID, p.HotelID)
			}
		}
	}
	c.printer = message.NewPrinter(language.AmericanEnglish)
	return &c, nil
}

// Search lists packages for req, cheapest first. Package searches match the
// destination against the package destination or its hotel's city; other
// search types list the whole catalog. An empty type counts as packages.
func (c *Catalog) Search(req providers.SearchRequest) types.ResultSet {
	dest := strings.ToLower(strings.TrimSpace(req.Destination))
	packagesOnly := req.Type == "" || req.Type == string(types.SearchPackages)

	var matched []travelPackage
	for _, p := range c.Packages {
		if packagesOnly && !c.matches(p, dest) {
			continue
		}
		matched = append(matched, p)
	}
	slices.SortStableFunc(matched, func(a, b travelPackage) int {
		switch {
		case a.Price < b.Price:
			return -1
		case a.Price > b.Price:
			return 1
		}
		return 0
	})
	if len(matched) > searchLimit {
		matched = matched[:searchLimit]
	}

	rs := types.ResultSet{
		Results:     make([]types.RawResult, 0, len(matched)),
		Destination: req.Destination,
	}
	for _, p := range matched {
		rs.Results = append(rs.Results, c.result(p))
	}
	rs.Total = len(rs.Results)
	return rs
}

func (c *Catalog) matches(p travelPackage, dest string) bool {
	if strings.Contains(strings.ToLower(p.Destination), dest) {
		return true
	}
	h, ok := c.hotelsByID[p.HotelID]
	return ok && strings.Contains(strings.ToLower(h.City), dest)
}

func (c *Catalog) result(p travelPackage) types.RawResult {
	r := types.RawResult{
		ID:            types.ResultID(fmt.Sprint(p.ID)),
		Title:         p.Title,
		Image:         p.Image,
		City:          p.Destination,
		MemberReviews: "Member Reviews",
		Features:      splitList(p.Description, "."),
		PriceStatus:   types.PriceNotAvailable,
		Options:       p.Options,
		AdjustText:    "Adjust Your Search",
	}
	if p.Flight {
		r.Includes = append(r.Includes, "Flights")
	}
	if p.Car {
		r.Includes = append(r.Includes, "Rental Car")
	}
	if p.Price > 0 {
		r.PriceStatus = c.printer.Sprintf("From $%.2f", p.Price)
	}
	if h, ok := c.hotelsByID[p.HotelID]; ok {
		r.Hotel = h.Name
		if h.Rating > 0 {
			rating := h.Rating
			r.Rating = &rating
		}
		if h.Reviews > 0 {
			r.ReviewCount = c.printer.Sprintf("%d reviews", h.Reviews)
		}
	}
	return r
}

// TreasureHunt lists the limited-time offers in catalog order.
func (c *Catalog) TreasureHunt() []types.TreasureHuntDeal {
	deals := []types.TreasureHuntDeal{}
	for _, p := range c.Packages {
		if !p.TreasureHunt || len(deals) == dealLimit {
			continue
		}
		deals = append(deals, types.TreasureHuntDeal{
			ID:          types.ResultID(fmt.Sprint(p.ID)),
			Title:       p.Title,
			Image:       p.Image,
			Benefits:    splitList(p.Description, "."),
			ExtrasValue: p.ExtrasValue,
		})
	}
	return deals
}

// WhatsHot lists the trending packages in catalog order.
func (c *Catalog) WhatsHot() []types.HotDeal {
	deals := []types.HotDeal{}
	for _, p := range c.Packages {
		if !p.WhatsHot || len(deals) == dealLimit {
			continue
		}
		d := types.HotDeal{
			ID:         types.ResultID(fmt.Sprint(p.ID)),
			Title:      p.Title,
			Image:      p.Image,
			Inclusions: splitList(p.Description, ","),
		}
		if p.Price > 0 {
			d.Price = c.printer.Sprintf("From $%d", int(p.Price))
		}
		if p.Nights > 0 {
			d.Duration = fmt.Sprintf("%d nights", p.Nights)
		}
		deals = append(deals, d)
	}
	return deals
}

func splitList(s, sep string) []string {
	out := []string{}
	for part := range strings.SplitSeq(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
