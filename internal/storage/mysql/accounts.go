package mysql

import (
	"context"
	"database/sql"

	"tripdesk/internal/domain"
)

func (r *Repo) IsValidAPIKey(ctx context.Context, key string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, apiKeyExistsSQL, key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repo) ByKey(ctx context.Context, keyOrEmail string) (domain.Account, error) {
	var a domain.Account
	err := r.db.QueryRowContext(ctx, accountByKeySQL, keyOrEmail, keyOrEmail).Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Token,
		&a.Wallet,
		&a.HotelMargin,
	)
	if err == sql.ErrNoRows {
		return domain.Account{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Account{}, err
	}
	return a, nil
}
