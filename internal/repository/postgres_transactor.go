package repository

import (
	"context"
	"database/sql"
	"fmt"

	"FoodBridge-App/internal/database"
	"FoodBridge-App/internal/domain/repository"
)

// txKey contextにトランザクションを保持するためのキー
type txKey struct{}

// PostgresTransactor database/sqlトランザクションによるTransactor実装
type PostgresTransactor struct {
	client *database.PostgreSQLClient
}

func NewPostgresTransactor(client *database.PostgreSQLClient) repository.Transactor {
	return &PostgresTransactor{client: client}
}

// WithinTransaction fn内の全リポジトリ操作を1つのトランザクションで実行する
// fnがエラーを返した時点でロールバックし、そのエラーをそのまま返す
func (t *PostgresTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := t.client.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("ロールバックに失敗: %v (元エラー: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("コミットに失敗: %w", err)
	}
	return nil
}

// sqlExecutor *sql.DBと*sql.Txの共通インターフェース
type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// executorFrom contextにトランザクションがあればそれを、なければ素のDBを返す
func executorFrom(ctx context.Context, db *sql.DB) sqlExecutor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
