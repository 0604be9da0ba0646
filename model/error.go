// Package model はコントリビューション記録のデータモデルを提供します。
package model

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound は指定IDのコントリビューション記録が存在しないことを表します。
var ErrRecordNotFound = errors.New("contribution record not found")

// ValidationError は記録の項目が不正であることを表します。
// Field は date / count / note のいずれかで、空なら項目を特定しません。
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError は項目名付きの ValidationError を返します。
func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
