package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/alex-user-go/tripsearch/internal/querycodec"
	"github.com/alex-user-go/tripsearch/internal/search"
	"github.com/alex-user-go/tripsearch/internal/search/types"
)

func queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "type", Usage: "packages, hotels, cruises or rental-cars", Value: string(types.SearchPackages)},
		&cli.StringFlag{Name: "destination", Aliases: []string{"d"}, Usage: "Where to go", Value: types.DefaultDestination},
		&cli.StringFlag{Name: "from", Usage: "Departure airport or city"},
		&cli.StringFlag{Name: "depart", Usage: "Departure date (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "return", Usage: "Return date (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "check-in", Usage: "Hotel check-in date (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "check-out", Usage: "Hotel check-out date (YYYY-MM-DD)"},
		&cli.IntFlag{Name: "rooms", Value: types.DefaultRooms},
		&cli.IntFlag{Name: "adults", Value: types.DefaultAdults},
		&cli.IntFlag{Name: "children", Value: types.DefaultChildren},
		&cli.StringFlag{Name: "class", Usage: "Any, Economy, Premium Economy, Business or First", Value: string(types.ClassAny)},
		&cli.BoolFlag{Name: "add-flight", Usage: "Add a flight to a hotel search"},
		&cli.BoolFlag{Name: "add-car", Usage: "Add a rental car"},
	}
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "sort", Usage: "price-low, price-high, member-reviews, star-rating, hotel-name-az or hotel-name-za", Value: string(types.SortPriceLow)},
		&cli.StringFlag{Name: "stars", Usage: "all, 5-star .. 2-star or not-rated", Value: string(types.StarsAll)},
		&cli.StringFlag{Name: "reviews", Usage: "all, 5-star, 4-star, 3-star or not-reviewed", Value: string(types.ReviewsAll)},
		&cli.StringFlag{Name: "name", Usage: "Hotel name contains"},
	}
}

// composeQuery builds a searchable query from the flags. Unlike the
// transport decoder it rejects bad input, since the user can fix it.
func composeQuery(c *cli.Command) (types.SearchQuery, error) {
	q := types.DefaultQuery()

	t, ok := types.ParseSearchType(c.String("type"))
	if !ok {
		return q, fmt.Errorf("unknown search type %q", c.String("type"))
	}
	q.Type = t

	class, ok := types.ParseTravelClass(c.String("class"))
	if !ok {
		return q, fmt.Errorf("unknown travel class %q", c.String("class"))
	}
	q.Class = class

	q.Destination = strings.TrimSpace(c.String("destination"))
	q.FlyingFrom = strings.TrimSpace(c.String("from"))
	q.Rooms = c.Int("rooms")
	q.Adults = c.Int("adults")
	q.Children = c.Int("children")
	q.AddFlight = c.Bool("add-flight")
	q.AddCar = c.Bool("add-car")

	for _, d := range []struct {
		flag string
		dst  *time.Time
	}{
		{"depart", &q.Departure},
		{"return", &q.Return},
		{"check-in", &q.CheckIn},
		{"check-out", &q.CheckOut},
	} {
		s := strings.TrimSpace(c.String(d.flag))
		if s == "" {
			continue
		}
		v, err := time.Parse(querycodec.DateLayout, s)
		if err != nil {
			return q, fmt.Errorf("--%s must be YYYY-MM-DD: %w", d.flag, err)
		}
		*d.dst = v
	}

	if err := q.Validate(); err != nil {
		return q, fmt.Errorf("query is not searchable: %w", err)
	}
	return q, nil
}

// composeFilters reads the filter flags through the same patch used by the
// session API so that unknown tokens are rejected.
func composeFilters(c *cli.Command) (types.FilterState, error) {
	sortBy, stars, reviews, name := c.String("sort"), c.String("stars"), c.String("reviews"), c.String("name")
	return search.FilterPatch{
		SortBy:        &sortBy,
		StarRating:    &stars,
		MemberReviews: &reviews,
		HotelName:     &name,
	}.Apply(types.DefaultFilters())
}
