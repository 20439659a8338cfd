package app

import (
	"fmt"
	"time"

	"tripdesk/internal/domain"
)

const stayDateLayout = "2006-01-02"

// BuildOccupancies normalizes the inbound per-room shapes into supplier
// occupancies. Rooms is always 1 (one occupancy per physical room) and paxes
// enumerate children only.
func BuildOccupancies(rooms []domain.RoomRequest) []domain.Occupancy {
	out := make([]domain.Occupancy, 0, len(rooms))
	for _, r := range rooms {
		occ := domain.Occupancy{
			Rooms:    1,
			Adults:   r.Adults,
			Children: r.Children,
		}
		for _, age := range r.ChildAges {
			occ.Paxes = append(occ.Paxes, domain.ChildPax{Type: "CH", Age: age})
		}
		out = append(out, occ)
	}
	return out
}

// ValidateSearch checks dates, destination and every occupancy in room order.
// The first failing rule wins; nothing is accumulated.
func ValidateSearch(destination, checkIn, checkOut string, occupancies []domain.Occupancy, now time.Time) error {
	in, err := time.Parse(stayDateLayout, checkIn)
	if err != nil {
		return &domain.ValidationError{Field: "checkIn", Detail: "check-in date is not a valid date (YYYY-MM-DD)"}
	}
	out, err := time.Parse(stayDateLayout, checkOut)
	if err != nil {
		return &domain.ValidationError{Field: "checkOut", Detail: "check-out date is not a valid date (YYYY-MM-DD)"}
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if in.Before(today) {
		return &domain.ValidationError{Field: "checkIn", Detail: "check-in date cannot be in the past"}
	}
	if !out.After(in) {
		return &domain.ValidationError{Field: "checkOut", Detail: "check-out date must be after check-in date"}
	}

	if destination == "" {
		return &domain.ValidationError{Field: "destination", Detail: "destination is required"}
	}

	if len(occupancies) == 0 {
		return &domain.ValidationError{Field: "rooms", Detail: "at least one room is required"}
	}

	for i, occ := range occupancies {
		room := i + 1
		if occ.Rooms != 1 {
			return &domain.ValidationError{Room: room, Field: "rooms", Detail: "each occupancy covers exactly one room"}
		}
		if occ.Adults < 1 || occ.Adults > 3 {
			return &domain.ValidationError{Room: room, Field: "adults", Detail: "adults must be between 1 and 3"}
		}
		if occ.Children < 0 || occ.Children > 3 {
			return &domain.ValidationError{Room: room, Field: "children", Detail: "children must be between 0 and 3"}
		}
		if occ.Children > 0 {
			if len(occ.Paxes) != occ.Children {
				return &domain.ValidationError{
					Room:   room,
					Field:  "paxes",
					Detail: fmt.Sprintf("expected %d child entries, got %d", occ.Children, len(occ.Paxes)),
				}
			}
			for _, p := range occ.Paxes {
				if p.Type != "CH" {
					return &domain.ValidationError{Room: room, Field: "paxes", Detail: "child entries must have type CH"}
				}
				if p.Age < 1 || p.Age > 17 {
					return &domain.ValidationError{Room: room, Field: "paxes", Detail: "child age must be between 1 and 17"}
				}
			}
		}
		total := occ.Adults + occ.Children
		if total < 1 || total > 6 {
			return &domain.ValidationError{Room: room, Field: "occupancy", Detail: "total occupants per room must be between 1 and 6"}
		}
		// paxes count only children, never adults, even though the room
		// total above counts both
		if len(occ.Paxes) != occ.Children {
			return &domain.ValidationError{
				Room:   room,
				Field:  "paxes",
				Detail: fmt.Sprintf("expected %d child entries, got %d", occ.Children, len(occ.Paxes)),
			}
		}
	}
	return nil
}
