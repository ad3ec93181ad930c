package types

import (
	"errors"
	"time"
)

// SearchType is the storefront tab a query was composed in.
type SearchType string

const (
	SearchPackages   SearchType = "packages"
	SearchHotels     SearchType = "hotels"
	SearchCruises    SearchType = "cruises"
	SearchRentalCars SearchType = "rental-cars"
)

// ParseSearchType maps a transport token to a SearchType.
func ParseSearchType(s string) (SearchType, bool) {
	switch t := SearchType(s); t {
	case SearchPackages, SearchHotels, SearchCruises, SearchRentalCars:
		return t, true
	}
	return "", false
}

// TravelClass is the requested cabin class for the flight part of a trip.
type TravelClass string

const (
	ClassAny            TravelClass = "Any"
	ClassEconomy        TravelClass = "Economy"
	ClassPremiumEconomy TravelClass = "Premium Economy"
	ClassBusiness       TravelClass = "Business"
	ClassFirst          TravelClass = "First"
)

// ParseTravelClass maps a transport token to a TravelClass.
func ParseTravelClass(s string) (TravelClass, bool) {
	switch c := TravelClass(s); c {
	case ClassAny, ClassEconomy, ClassPremiumEconomy, ClassBusiness, ClassFirst:
		return c, true
	}
	return "", false
}

// Query defaults applied when a transport record leaves a field unset.
const (
	DefaultDestination = "San Francisco"
	DefaultRooms       = 1
	DefaultAdults      = 2
	DefaultChildren    = 0
)

// SearchQuery describes one trip search. It is a value: a new search
// replaces it, nothing patches it in place. Dates are calendar days at UTC
// midnight; the time of day and location of other values are not kept.
// Unset dates are zero times.
type SearchQuery struct {
	Type        SearchType
	Destination string
	Departure   time.Time
	Return      time.Time
	CheckIn     time.Time
	CheckOut    time.Time
	Rooms       int
	Adults      int
	Children    int
	FlyingFrom  string
	Class       TravelClass
	AddFlight   bool
	AddCar      bool
}

// DefaultQuery returns the query a transport record with no fields decodes to.
func DefaultQuery() SearchQuery {
	return SearchQuery{
		Type:        SearchPackages,
		Destination: DefaultDestination,
		Rooms:       DefaultRooms,
		Adults:      DefaultAdults,
		Children:    DefaultChildren,
		Class:       ClassAny,
	}
}

var (
	ErrDestinationRequired = errors.New("destination is required")
	ErrFlyingFromRequired  = errors.New("flyingFrom is required")
	ErrReturnBeforeDepart  = errors.New("return must be after departure")
	ErrCheckOutBeforeIn    = errors.New("checkOut must be after checkIn")
	ErrInvalidRooms        = errors.New("rooms must be a positive integer")
	ErrInvalidAdults       = errors.New("adults must be a positive integer")
	ErrInvalidChildren     = errors.New("children must not be negative")
)

// NeedsFlight reports whether the query includes a flight leg.
func (q SearchQuery) NeedsFlight() bool {
	return q.Type == SearchPackages || (q.Type == SearchHotels && q.AddFlight)
}

// Validate reports whether q is searchable. The codec never calls it; it is
// the composer's precondition for a non-degenerate fetch.
func (q SearchQuery) Validate() error {
	if q.Destination == "" {
		return ErrDestinationRequired
	}
	if q.NeedsFlight() && q.FlyingFrom == "" {
		return ErrFlyingFromRequired
	}
	if !q.Departure.IsZero() && !q.Return.IsZero() && !q.Return.After(q.Departure) {
		return ErrReturnBeforeDepart
	}
	if !q.CheckIn.IsZero() && !q.CheckOut.IsZero() && !q.CheckOut.After(q.CheckIn) {
		return ErrCheckOutBeforeIn
	}
	if q.Rooms < 1 {
		return ErrInvalidRooms
	}
	if q.Adults < 1 {
		return ErrInvalidAdults
	}
	if q.Children < 0 {
		return ErrInvalidChildren
	}
	return nil
}
