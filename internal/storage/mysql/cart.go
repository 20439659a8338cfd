package mysql

import (
	"context"
	"database/sql"
	"time"

	"tripdesk/internal/domain"
)

func (r *Repo) Exists(ctx context.Context, cartItemID string, owner domain.CartOwner) (bool, error) {
	var one int
	var err error
	if owner.IsUser() {
		err = r.db.QueryRowContext(ctx, cartExistsByUserSQL, cartItemID, owner.UserID).Scan(&one)
	} else {
		err = r.db.QueryRowContext(ctx, cartExistsBySessionSQL, cartItemID, owner.SessionID).Scan(&one)
	}
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repo) Insert(ctx context.Context, item domain.CartItem, owner domain.CartOwner) (int64, error) {
	var userID, sessionID any
	if owner.IsUser() {
		userID = owner.UserID
	} else {
		sessionID = owner.SessionID
	}
	res, err := r.db.ExecContext(ctx, cartInsertSQL,
		item.CartItemID,
		userID,
		sessionID,
		valJSON(item.RoomData),
		valJSON(item.RateData),
		valJSON(item.BookingDetails),
		item.AddedAt,
		item.ExpiresAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) ItemsByOwner(ctx context.Context, owner domain.CartOwner) ([]domain.CartItem, error) {
	var rows *sql.Rows
	var err error
	now := time.Now()
	if owner.IsUser() {
		rows, err = r.db.QueryContext(ctx, cartByUserSQL, owner.UserID, now)
	} else {
		rows, err = r.db.QueryContext(ctx, cartBySessionSQL, owner.SessionID, now)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *Repo) ItemByID(ctx context.Context, id int64) (domain.CartItem, error) {
	row := r.db.QueryRowContext(ctx, cartByIDSQL, id)
	item, err := scanCartItem(row.Scan)
	if err == sql.ErrNoRows {
		return domain.CartItem{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.CartItem{}, err
	}
	return item, nil
}

func (r *Repo) Remove(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, cartRemoveSQL, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repo) TransferGuestToUser(ctx context.Context, userID int64, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	_, err := r.db.ExecContext(ctx, cartTransferSQL, userID, sessionID, time.Now())
	return err
}

func scanCartItem(scan func(...any) error) (domain.CartItem, error) {
	var item domain.CartItem
	var userID sql.NullInt64
	var sessionID sql.NullString
	var roomData, rateData, details sql.NullString
	if err := scan(
		&item.ID,
		&item.CartItemID,
		&userID,
		&sessionID,
		&roomData,
		&rateData,
		&details,
		&item.AddedAt,
		&item.ExpiresAt,
	); err != nil {
		return domain.CartItem{}, err
	}
	if userID.Valid {
		u := userID.Int64
		item.UserID = &u
	}
	item.SessionID = ptrStr(sessionID)
	if roomData.Valid {
		item.RoomData = []byte(roomData.String)
	}
	if rateData.Valid {
		item.RateData = []byte(rateData.String)
	}
	if details.Valid {
		item.BookingDetails = []byte(details.String)
	}
	return item, nil
}
