package repositories

import "context"

// SettingsRepository persists process-wide marketplace settings. The
// payments-required flag lives here so it survives restarts and is read
// per call instead of through a package global.
type SettingsRepository interface {
	PaymentsRequired(ctx context.Context) (bool, error)
	SetPaymentsRequired(ctx context.Context, value bool) error
}
