package domain

// ChildPax is one child in a room's occupancy. Type is always "CH".
type ChildPax struct {
	Type string `json:"type"`
	Age  int    `json:"age"`
}

// Occupancy is one physical room's guest composition. Rooms is fixed at 1;
// Paxes enumerates children only (not adults), one entry per child.
type Occupancy struct {
	Rooms    int        `json:"rooms"`
	Adults   int        `json:"adults"`
	Children int        `json:"children"`
	Paxes    []ChildPax `json:"paxes,omitempty"`
}

// RoomRequest is the inbound per-room shape the occupancy builder normalizes
// into an Occupancy.
type RoomRequest struct {
	Adults    int   `json:"adults"`
	Children  int   `json:"children"`
	ChildAges []int `json:"childAges,omitempty"`
}

// SearchFilters are the optional rate/category/room bounds. The filter object
// is omitted from the supplier payload entirely when none is set.
type SearchFilters struct {
	MinRate     *float64 `json:"minRate,omitempty"`
	MaxRate     *float64 `json:"maxRate,omitempty"`
	MinCategory *int     `json:"minCategory,omitempty"`
	MaxCategory *int     `json:"maxCategory,omitempty"`
	MaxRooms    *int     `json:"maxRooms,omitempty"`
}

func (f SearchFilters) Empty() bool {
	return f.MinRate == nil && f.MaxRate == nil && f.MinCategory == nil &&
		f.MaxCategory == nil && f.MaxRooms == nil
}

// SearchRequest is the immutable inbound hotel-search request.
type SearchRequest struct {
	Destination    string        `json:"destination"`
	CheckIn        string        `json:"checkIn"`
	CheckOut       string        `json:"checkOut"`
	Rooms          []RoomRequest `json:"rooms"`
	Filters        SearchFilters `json:"filters"`
	MinRating      *float64      `json:"minRating,omitempty"`
	MaxRating      *float64      `json:"maxRating,omitempty"`
	Accommodations []string      `json:"accommodations,omitempty"`
	Page           int           `json:"page"`
	PageSize       int           `json:"pageSize"`
}

// Supplier payload wire types.

type Stay struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

type HotelCodes struct {
	Hotel []int `json:"hotel"`
}

type ReviewFilter struct {
	Type           string  `json:"type"`
	MinRate        float64 `json:"minRate"`
	MaxRate        float64 `json:"maxRate"`
	MinReviewCount int     `json:"minReviewCount"`
}

type PageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// SearchPayload is the supplier availability request body. Built fresh per
// request, never persisted.
type SearchPayload struct {
	Stay           Stay           `json:"stay"`
	Occupancies    []Occupancy    `json:"occupancies"`
	Hotels         HotelCodes     `json:"hotels"`
	SourceMarket   string         `json:"sourceMarket,omitempty"`
	Reviews        []ReviewFilter `json:"reviews"`
	Pagination     PageRequest    `json:"pagination"`
	Filter         *SearchFilters `json:"filter,omitempty"`
	Accommodations []string       `json:"accommodations,omitempty"`
}

// SupplierHotel is a single hotel from the supplier's availability response,
// kept as a decoded JSON object so the full payload passes through untouched;
// enrichment attaches a "local_data" key.
type SupplierHotel map[string]any

// SupplierResult is the decoded supplier availability response.
type SupplierResult struct {
	Hotels []SupplierHotel
	Total  int
}

// PriceSpan reports the whole result set's rounded rate bounds.
type PriceSpan struct {
	OverallMinRate int `json:"overallMinRate"`
	OverallMaxRate int `json:"overallMaxRate"`
}

type Pagination struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
	Offset      int  `json:"offset"`
}

// SearchResponse is the success envelope for a hotel search.
type SearchResponse struct {
	Success        bool            `json:"success"`
	Data           []SupplierHotel `json:"data"`
	Prices         PriceSpan       `json:"prices"`
	Accommodations []Accommodation `json:"accommodations"`
	Pagination     Pagination      `json:"pagination"`
}
