package mysql

import (
	"context"
	"database/sql"

	"tripdesk/internal/domain"
)

func (r *Repo) HotelIDsByDestination(ctx context.Context, destCode string) ([]int, []string, error) {
	rows, err := r.db.QueryContext(ctx, hotelIDsByDestSQL, destCode)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var codes []int
	var countries []string
	for rows.Next() {
		var code int
		var cc sql.NullString
		if err := rows.Scan(&code, &cc); err != nil {
			return nil, nil, err
		}
		codes = append(codes, code)
		countries = append(countries, cc.String)
	}
	return codes, countries, rows.Err()
}

func (r *Repo) HotelCountryCode(ctx context.Context, code int) (string, error) {
	var cc sql.NullString
	err := r.db.QueryRowContext(ctx, hotelCountryCodeSQL, code).Scan(&cc)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return cc.String, nil
}

func (r *Repo) BaseHotels(ctx context.Context, codes []int) ([]domain.HotelBase, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, baseHotelsPrefix+placeholders(len(codes))+")", intArgs(codes)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HotelBase
	for rows.Next() {
		var h domain.HotelBase
		var phone, addr, postal, city, desc sql.NullString
		if err := rows.Scan(&h.Code, &phone, &addr, &postal, &city, &desc); err != nil {
			return nil, err
		}
		h.Phone = ptrStr(phone)
		h.Address = ptrStr(addr)
		h.PostalCode = ptrStr(postal)
		h.City = ptrStr(city)
		h.Description = ptrStr(desc)
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) ImagesByTypes(ctx context.Context, codes []int, imageTypes []string) (map[int][]domain.Image, error) {
	if len(codes) == 0 || len(imageTypes) == 0 {
		return map[int][]domain.Image{}, nil
	}
	q := imagesByTypesPrefix + placeholders(len(codes)) + ") AND code IN (" + placeholders(len(imageTypes)) + ")"
	args := append(intArgs(codes), strArgs(imageTypes)...)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int][]domain.Image)
	for rows.Next() {
		var hotelCode int
		var img domain.Image
		var desc sql.NullString
		if err := rows.Scan(&hotelCode, &img.Path, &desc); err != nil {
			return nil, err
		}
		img.Description = ptrStr(desc)
		out[hotelCode] = append(out[hotelCode], img)
	}
	return out, rows.Err()
}

func (r *Repo) MainImages(ctx context.Context, codes []int) (map[int][]domain.Image, error) {
	out := make(map[int][]domain.Image, len(codes))
	for _, code := range codes {
		var hotelCode int
		var img domain.Image
		var desc sql.NullString
		err := r.db.QueryRowContext(ctx, mainImageSQL, code).Scan(&hotelCode, &img.Path, &desc)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, err
		}
		img.Description = ptrStr(desc)
		out[hotelCode] = append(out[hotelCode], img)
	}
	return out, nil
}

func scanFacility(rows *sql.Rows) (int, domain.Facility, error) {
	var hotelCode int
	var f domain.Facility
	var desc sql.NullString
	var fee, logic, yesno, num sql.NullInt64
	var dist sql.NullFloat64
	if err := rows.Scan(&hotelCode, &desc, &f.GroupCode, &fee, &logic, &yesno, &num, &dist); err != nil {
		return 0, domain.Facility{}, err
	}
	f.Description = ptrStr(desc)
	f.IndFee = ptrBool(fee)
	f.IndLogic = ptrBool(logic)
	f.IndYesOrNo = ptrBool(yesno)
	f.Number = ptrInt(num)
	f.Distance = ptrF64(dist)
	return hotelCode, f, nil
}

func (r *Repo) FacilitiesByGroups(ctx context.Context, codes []int, groups []int) (map[int][]domain.Facility, error) {
	if len(codes) == 0 || len(groups) == 0 {
		return map[int][]domain.Facility{}, nil
	}
	q := facilitiesByGroupsPrefix + placeholders(len(codes)) + ") AND group_code IN (" + placeholders(len(groups)) + ")"
	args := append(intArgs(codes), intArgs(groups)...)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int][]domain.Facility)
	for rows.Next() {
		hotelCode, f, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		out[hotelCode] = append(out[hotelCode], f)
	}
	return out, rows.Err()
}

func (r *Repo) LimitedFacilities(ctx context.Context, codes []int, group, limit int) (map[int][]domain.Facility, error) {
	out := make(map[int][]domain.Facility, len(codes))
	for _, code := range codes {
		rows, err := r.db.QueryContext(ctx, limitedFacilitiesSQL, code, group, limit)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var hotelCode int
			var f domain.Facility
			var desc sql.NullString
			if err := rows.Scan(&hotelCode, &desc); err != nil {
				rows.Close()
				return nil, err
			}
			f.Description = ptrStr(desc)
			out[hotelCode] = append(out[hotelCode], f)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return out, nil
}

func (r *Repo) HotelFacilities(ctx context.Context, code int) ([]domain.Facility, error) {
	rows, err := r.db.QueryContext(ctx, hotelFacilitiesSQL, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Facility
	for rows.Next() {
		_, f, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repo) RoomFacilities(ctx context.Context, hotelCode int, roomCodes []string) (map[string][]domain.RoomFacility, error) {
	if len(roomCodes) == 0 {
		return map[string][]domain.RoomFacility{}, nil
	}
	q := roomFacilitiesPrefix + placeholders(len(roomCodes)) + ")"
	args := append([]any{hotelCode}, strArgs(roomCodes)...)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.RoomFacility)
	for rows.Next() {
		var hc int
		var f domain.RoomFacility
		var desc sql.NullString
		var fee, logic, yesno, num sql.NullInt64
		if err := rows.Scan(&hc, &f.RoomCode, &desc, &f.GroupCode, &fee, &logic, &yesno, &num); err != nil {
			return nil, err
		}
		f.Description = ptrStr(desc)
		f.IndFee = ptrBool(fee)
		f.IndLogic = ptrBool(logic)
		f.IndYesOrNo = ptrBool(yesno)
		f.Number = ptrInt(num)
		out[f.RoomCode] = append(out[f.RoomCode], f)
	}
	return out, rows.Err()
}

func (r *Repo) RoomImages(ctx context.Context, hotelCode int, roomCodes []string) (map[string][]domain.Image, error) {
	if len(roomCodes) == 0 {
		return map[string][]domain.Image{}, nil
	}
	q := roomImagesPrefix + placeholders(len(roomCodes)) + ")"
	args := append([]any{hotelCode}, strArgs(roomCodes)...)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.Image)
	for rows.Next() {
		var hc int
		var img domain.Image
		var desc sql.NullString
		if err := rows.Scan(&hc, &img.Path, &img.RoomCode, &desc); err != nil {
			return nil, err
		}
		img.Description = ptrStr(desc)
		out[img.RoomCode] = append(out[img.RoomCode], img)
	}
	return out, rows.Err()
}

func (r *Repo) Accommodations(ctx context.Context) ([]domain.Accommodation, error) {
	rows, err := r.db.QueryContext(ctx, accommodationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Accommodation
	for rows.Next() {
		var a domain.Accommodation
		if err := rows.Scan(&a.Code, &a.Description); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) SearchDestinations(ctx context.Context, q string) ([]domain.DestinationHit, error) {
	like := "%" + q + "%"
	rows, err := r.db.QueryContext(ctx, searchDestinationsSQL, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DestinationHit
	for rows.Next() {
		var h domain.DestinationHit
		var dest, code, country sql.NullString
		if err := rows.Scan(&dest, &code, &country, &h.Total); err != nil {
			return nil, err
		}
		h.Destination = dest.String
		h.DestCode = code.String
		h.Country = country.String
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) SearchHotels(ctx context.Context, q string) ([]domain.DestinationHit, error) {
	like := "%" + q + "%"
	rows, err := r.db.QueryContext(ctx, searchHotelsSQL, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DestinationHit
	for rows.Next() {
		var h domain.DestinationHit
		var name, dest, code, country sql.NullString
		if err := rows.Scan(&name, &dest, &code, &country); err != nil {
			return nil, err
		}
		h.HotelName = name.String
		h.Destination = dest.String
		h.DestCode = code.String
		h.Country = country.String
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) HotelInfoByCode(ctx context.Context, code int) (domain.HotelInfo, error) {
	row := r.db.QueryRowContext(ctx, hotelInfoByCodeSQL, code)

	var hi domain.HotelInfo
	var name, destName, destCode, countryCode, countryName sql.NullString
	var phone, addr, postal, city, desc, mainImage sql.NullString
	err := row.Scan(
		&hi.Code,
		&name, &destName, &destCode, &countryCode, &countryName,
		&phone, &addr, &postal, &city, &desc,
		&mainImage,
	)
	if err == sql.ErrNoRows {
		return domain.HotelInfo{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.HotelInfo{}, err
	}
	hi.Name = ptrStr(name)
	hi.DestName = ptrStr(destName)
	hi.DestCode = ptrStr(destCode)
	hi.CountryCode = ptrStr(countryCode)
	hi.CountryName = ptrStr(countryName)
	hi.Phone = ptrStr(phone)
	hi.Address = ptrStr(addr)
	hi.PostalCode = ptrStr(postal)
	hi.City = ptrStr(city)
	hi.Description = ptrStr(desc)
	hi.MainImagePath = ptrStr(mainImage)
	return hi, nil
}
