package domain

import "errors"

// ErrAlreadyReacted は同一のリアクションが既に存在することを示す
// 冪等な結果として成功扱いにする
var ErrAlreadyReacted = errors.New("already_reacted")

// ErrTooManyReactions はメッセージのリアクション数が上限に達していることを示す
// 該当アクションのみスキップし、処理は継続する
var ErrTooManyReactions = errors.New("too_many_reactions")
