package repository

import "context"

// Transactor 複数リポジトリ操作を1つのトランザクションにまとめる
// fnがエラーを返した場合は全操作をロールバックする
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
