// Package controllers 把用例结果包装成统一的 {success, data, error} 信封，错误和 panic 都不会越过这一层。
package controllers

import (
	"log"
)

// Result 统一信封
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}

func Success[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func Failure[T any](message string, empty T) Result[T] {
	return Result[T]{Success: false, Data: empty, Error: message}
}

// recoverInto 必须直接 defer 调用
func recoverInto[T any](res *Result[T], op, message string, empty T) {
	if r := recover(); r != nil {
		log.Printf("[Controller] %s panic: %v", op, r)
		*res = Failure(message, empty)
	}
}

func logFailure(op string, err error) {
	log.Printf("[Controller] Error in %s: %v", op, err)
}
