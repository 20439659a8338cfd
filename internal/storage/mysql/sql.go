package mysql

const hotelIDsByDestSQL = `
SELECT code, country_code
FROM hotels
WHERE dest_code = ?
LIMIT 1000
`

const hotelCountryCodeSQL = `
SELECT country_code FROM hotels WHERE code = ?
`

const baseHotelsPrefix = `
SELECT code, phone, address, postal_code, city, description
FROM hotels
WHERE code IN (`

const imagesByTypesPrefix = `
SELECT hotel_code, path, description
FROM hotel_images
WHERE hotel_code IN (`

const mainImageSQL = `
SELECT hotel_code, path, description
FROM hotel_images
WHERE hotel_code = ? AND code = 'GEN'
LIMIT 1
`

const facilitiesByGroupsPrefix = `
SELECT hotel_code, description, group_code, indfee, indlogic, indyesorno, number, distance
FROM hotel_facilities
WHERE hotel_code IN (`

const limitedFacilitiesSQL = `
SELECT hotel_code, description
FROM hotel_facilities
WHERE hotel_code = ? AND group_code = ?
LIMIT ?
`

const hotelFacilitiesSQL = `
SELECT hotel_code, description, group_code, indfee, indlogic, indyesorno, number, distance
FROM hotel_facilities
WHERE hotel_code = ?
ORDER BY group_code, number
`

const roomFacilitiesPrefix = `
SELECT hotel_code, room_code, description, groupcode, indfee, indlogic, indyesorno, number
FROM hotel_room_facility
WHERE hotel_code = ? AND room_code IN (`

const roomImagesPrefix = `
SELECT hotel_code, path, roomcode, description
FROM hotel_images
WHERE hotel_code = ? AND roomcode IN (`

const accommodationsSQL = `
SELECT code, description FROM accommodations
`

const searchDestinationsSQL = `
SELECT dest_name, dest_code, country_name, COUNT(*) AS dest_count
FROM hotels
WHERE dest_name LIKE ? OR dest_code LIKE ?
GROUP BY dest_name, dest_code, country_name
`

const searchHotelsSQL = `
SELECT name, dest_name, dest_code, country_name
FROM hotels
WHERE name LIKE ? OR dest_code LIKE ?
LIMIT 10
`

const hotelInfoByCodeSQL = `
SELECT h.code, h.name, h.dest_name, h.dest_code, h.country_code, h.country_name,
       h.phone, h.address, h.postal_code, h.city, h.description,
       hi.path AS main_image_path
FROM hotels h
LEFT JOIN hotel_images hi
  ON hi.hotel_code = h.code AND hi.code = 'GEN'
WHERE h.code = ?
LIMIT 1
`

// ---- cart ----

const cartExistsByUserSQL = `
SELECT 1 FROM cart WHERE cart_item_id = ? AND user_id = ? LIMIT 1
`

const cartExistsBySessionSQL = `
SELECT 1 FROM cart WHERE cart_item_id = ? AND session_id = ? AND user_id IS NULL LIMIT 1
`

const cartInsertSQL = `
INSERT INTO cart
  (cart_item_id, user_id, session_id, room_data, rate_data, booking_details, added_at, expires_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

const cartByUserSQL = `
SELECT id, cart_item_id, user_id, session_id, room_data, rate_data, booking_details, added_at, expires_at
FROM cart
WHERE user_id = ? AND expires_at > ?
`

const cartBySessionSQL = `
SELECT id, cart_item_id, user_id, session_id, room_data, rate_data, booking_details, added_at, expires_at
FROM cart
WHERE session_id = ? AND user_id IS NULL AND expires_at > ?
`

const cartByIDSQL = `
SELECT id, cart_item_id, user_id, session_id, room_data, rate_data, booking_details, added_at, expires_at
FROM cart
WHERE id = ?
`

const cartRemoveSQL = `
DELETE FROM cart WHERE id = ?
`

const cartTransferSQL = `
UPDATE cart SET user_id = ?, session_id = NULL
WHERE session_id = ? AND user_id IS NULL AND expires_at > ?
`

// ---- bookings & wallet ----

const bookingInsertSQL = `
INSERT INTO bookings
  (email, firstname, lastname, reference, phone, date, status, booking_type, user, payment_type, payment_method, total_amount, meta)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const walletTxInsertSQL = `
INSERT INTO wallet_transactions (user_id, type, amount, commission, description, date)
VALUES (?, ?, ?, ?, ?, ?)
`

const walletDebitSQL = `
UPDATE api_users SET wallet = wallet - ? WHERE id = ?
`

const bookingByReferenceSQL = `
SELECT id, email, firstname, lastname, reference, phone, date, status, booking_type, user, payment_type, payment_method, total_amount, meta
FROM bookings
WHERE reference = ?
LIMIT 1
`

const bookingsByUserSQL = `
SELECT id, email, firstname, lastname, reference, phone, date, status, booking_type, user, payment_type, payment_method, total_amount, meta
FROM bookings
WHERE email = ?
ORDER BY date DESC
`

// ---- accounts ----

const apiKeyExistsSQL = `
SELECT 1 FROM api_users WHERE token = ? LIMIT 1
`

const accountByKeySQL = `
SELECT id, name, email, token, wallet, hotel_margin
FROM api_users
WHERE email = ? OR token = ?
LIMIT 1
`
