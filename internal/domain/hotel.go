package domain

// HotelBase is the locally stored hotel record keyed by supplier code.
// Refreshed out of band; read-only from the search path.
type HotelBase struct {
	Code        int     `json:"code"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	PostalCode  *string `json:"postal_code"`
	City        *string `json:"city"`
	Description *string `json:"description"`
}

// HotelContent is a HotelBase joined with its images and facilities, the
// "local_data" object attached to each supplier hotel on the current page.
type HotelContent struct {
	HotelBase
	Images     []Image    `json:"images"`
	Facilities []Facility `json:"facilities"`
}

type Image struct {
	Path        string  `json:"path"`
	Description *string `json:"description"`
	RoomCode    string  `json:"room_code,omitempty"`
}

type Facility struct {
	Description *string  `json:"description"`
	GroupCode   int      `json:"group_code,omitempty"`
	IndFee      *bool    `json:"indfee,omitempty"`
	IndLogic    *bool    `json:"indlogic,omitempty"`
	IndYesOrNo  *bool    `json:"indyesorno,omitempty"`
	Number      *int     `json:"number,omitempty"`
	Distance    *float64 `json:"distance,omitempty"`
}

// RoomFacility is a facility scoped to a room code within one hotel.
type RoomFacility struct {
	RoomCode    string  `json:"-"`
	Description *string `json:"description"`
	GroupCode   int     `json:"groupcode,omitempty"`
	IndFee      *bool   `json:"indfee,omitempty"`
	IndLogic    *bool   `json:"indlogic,omitempty"`
	IndYesOrNo  *bool   `json:"indyesorno,omitempty"`
	Number      *int    `json:"number,omitempty"`
}

// Accommodation is one entry of the accommodation taxonomy (hotel, apartment,
// resort, ...).
type Accommodation struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// DestinationHit is one row of the destination/hotel typeahead.
type DestinationHit struct {
	Destination string `json:"dest"`
	DestCode    string `json:"dest_code"`
	Country     string `json:"country"`
	Total       int    `json:"total,omitempty"`
	HotelName   string `json:"name,omitempty"`
}

// HotelInfo is a single hotel's full local record plus its main image,
// used to describe a cart selection.
type HotelInfo struct {
	Code          int     `json:"code"`
	Name          *string `json:"name"`
	DestName      *string `json:"dest_name"`
	DestCode      *string `json:"dest_code"`
	CountryCode   *string `json:"country_code"`
	CountryName   *string `json:"country_name"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	PostalCode    *string `json:"postal_code"`
	City          *string `json:"city"`
	Description   *string `json:"description"`
	MainImagePath *string `json:"main_image_path"`
}
