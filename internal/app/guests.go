package app

import (
	"fmt"
	"strconv"
	"strings"

	"tripdesk/internal/domain"
)

// BuildGuestManifest reconstructs the per-room guest list from the flat
// submitted fields ("room1_adult1_firstName", "room2_child1_age", ...).
// Unlike the search-side validator this step collects every problem across
// all rooms and guests and reports them as one aggregated error.
func BuildGuestManifest(rooms []domain.RoomRequest, fields map[string]string) ([]domain.BookingPax, error) {
	if len(rooms) == 0 {
		return nil, &domain.GuestValidationError{Problems: []domain.GuestProblem{{
			Room:   1,
			Guest:  "room",
			Issues: []string{"room occupancy declarations are required"},
		}}}
	}

	var paxes []domain.BookingPax
	var problems []domain.GuestProblem

	field := func(room int, role string, idx int, name string) string {
		return strings.TrimSpace(fields[fmt.Sprintf("room%d_%s%d_%s", room, role, idx, name)])
	}

	for i, r := range rooms {
		room := i + 1

		for a := 1; a <= r.Adults; a++ {
			var issues []string
			first := field(room, "adult", a, "firstName")
			last := field(room, "adult", a, "lastName")
			typ := field(room, "adult", a, "type")
			if first == "" {
				issues = append(issues, "first name is required")
			}
			if last == "" {
				issues = append(issues, "last name is required")
			}
			if typ != "AD" {
				issues = append(issues, "type must be AD")
			}
			if len(issues) > 0 {
				problems = append(problems, domain.GuestProblem{
					Room:   room,
					Guest:  fmt.Sprintf("Adult %d", a),
					Issues: issues,
				})
				continue
			}
			paxes = append(paxes, domain.BookingPax{
				RoomID:  room,
				Type:    "AD",
				Name:    first,
				Surname: last,
			})
		}

		for c := 1; c <= r.Children; c++ {
			var issues []string
			first := field(room, "child", c, "firstName")
			last := field(room, "child", c, "lastName")
			typ := field(room, "child", c, "type")
			ageRaw := field(room, "child", c, "age")
			if first == "" {
				issues = append(issues, "first name is required")
			}
			if last == "" {
				issues = append(issues, "last name is required")
			}
			if typ != "CH" {
				issues = append(issues, "type must be CH")
			}
			var age int
			if ageRaw == "" {
				issues = append(issues, "age is required")
			} else if n, err := strconv.Atoi(ageRaw); err != nil || n < 0 || n > 17 {
				issues = append(issues, "age must be a number between 0 and 17")
			} else {
				age = n
			}
			if len(issues) > 0 {
				problems = append(problems, domain.GuestProblem{
					Room:   room,
					Guest:  fmt.Sprintf("Child %d", c),
					Issues: issues,
				})
				continue
			}
			a := age
			paxes = append(paxes, domain.BookingPax{
				RoomID:  room,
				Type:    "CH",
				Name:    first,
				Surname: last,
				Age:     &a,
			})
		}
	}

	if len(problems) > 0 {
		return nil, &domain.GuestValidationError{Problems: problems}
	}
	return paxes, nil
}
