package errors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeExclusionViolation  = "23P01"
	codeInvalidText         = "22P02"
)

// ErrDuplicate 唯一约束冲突：记录已存在
var ErrDuplicate = errors.New("记录已存在")

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsExclusionViolation 排他约束冲突（教室时段重叠）
func IsExclusionViolation(err error) bool {
	return pgCode(err) == codeExclusionViolation
}

// IsForeignKeyViolation 外键约束冲突（引用的课程/教室不存在）
func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// IsUniqueViolation 唯一约束冲突
func IsUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// IsCheckViolation CHECK 约束冲突
func IsCheckViolation(err error) bool {
	return pgCode(err) == codeCheckViolation
}

// IsInvalidTextRepresentation 参数无法转换为列类型（如非法 UUID）
func IsInvalidTextRepresentation(err error) bool {
	return pgCode(err) == codeInvalidText
}

// ConstraintName 违反的约束名，非 PostgreSQL 错误返回空串
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
