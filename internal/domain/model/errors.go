package model

import "errors"

var (
	// ErrValidation 入力不備（状態変更前に拒否される）
	ErrValidation = errors.New("入力値が不正です")

	// ErrForbidden 操作権限なし（所有者・ロール不一致）
	ErrForbidden = errors.New("この操作を行う権限がありません")

	// ErrUserNotFound ユーザーが存在しない
	ErrUserNotFound = errors.New("ユーザーが見つかりません")

	// ErrListingNotFound リスティングが存在しない
	ErrListingNotFound = errors.New("リスティングが見つかりません")

	// ErrRequestNotFound 引き取りリクエストが存在しない（解決済みを含む）
	ErrRequestNotFound = errors.New("引き取りリクエストが見つかりません")

	// ErrListingNoLongerAvailable 参照先リスティングが並行操作で既に処理済み
	ErrListingNoLongerAvailable = errors.New("リスティングは既に利用できません")
)
