package mysql

import (
	"context"
	"database/sql"

	"tripdesk/internal/domain"
)

// CreateWithDebit persists the booking, the wallet movement and the balance
// decrement atomically. The decrement is total minus commission; commission
// stays in the wallet as the account's margin.
func (r *Repo) CreateWithDebit(ctx context.Context, b domain.Booking, wt domain.WalletTransaction, debit float64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, bookingInsertSQL,
		b.Email,
		b.FirstName,
		b.LastName,
		b.Reference,
		b.Phone,
		b.Date,
		b.Status,
		b.BookingType,
		b.UserKey,
		b.PaymentType,
		b.PaymentMethod,
		b.TotalAmount,
		valJSON(b.MetaJSON),
	)
	if err != nil {
		return 0, err
	}
	bookingID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, walletTxInsertSQL,
		wt.UserID,
		wt.Type,
		wt.Amount,
		wt.Commission,
		wt.Description,
		wt.Date,
	); err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, walletDebitSQL, debit, wt.UserID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return bookingID, nil
}

func (r *Repo) ByReference(ctx context.Context, reference string) (domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, bookingByReferenceSQL, reference)
	b, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

func (r *Repo) ByUser(ctx context.Context, email string) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, bookingsByUserSQL, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBooking(scan func(...any) error) (domain.Booking, error) {
	var b domain.Booking
	var meta sql.NullString
	if err := scan(
		&b.ID,
		&b.Email,
		&b.FirstName,
		&b.LastName,
		&b.Reference,
		&b.Phone,
		&b.Date,
		&b.Status,
		&b.BookingType,
		&b.UserKey,
		&b.PaymentType,
		&b.PaymentMethod,
		&b.TotalAmount,
		&meta,
	); err != nil {
		return domain.Booking{}, err
	}
	if meta.Valid {
		b.MetaJSON = []byte(meta.String)
	}
	return b, nil
}
