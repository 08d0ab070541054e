package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// Logger интерфейс для логирования ошибок.
type Logger interface {
	Errorf(format string, args ...interface{})
}

// RecoveryHandler запускает фоновые горутины с обработкой panic.
// Пайплайн подбора работ работает полностью в фоне, поэтому паника
// в нём не должна ронять весь сервер.
type RecoveryHandler struct {
	logger Logger
}

// NewRecoveryHandler создаёт новый обработчик.
func NewRecoveryHandler(logger Logger) *RecoveryHandler {
	return &RecoveryHandler{logger: logger}
}

// SafeGo запускает горутину с обработкой panic.
func (rh *RecoveryHandler) SafeGo(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				rh.logger.Errorf("Panic in goroutine: %v\nStack trace:\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic.
func (rh *RecoveryHandler) SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				rh.logger.Errorf("Panic in goroutine (with context): %v\nStack trace:\n%s", r, debug.Stack())
			}
		}()
		fn(ctx)
	}()
}

// DefaultRecoveryHandler — глобальный обработчик, пишет в стандартный логгер приложения.
var DefaultRecoveryHandler = NewRecoveryHandler(logrus.StandardLogger())

// SafeGo — упрощённая функция для запуска безопасной горутины.
func SafeGo(fn func()) {
	DefaultRecoveryHandler.SafeGo(fn)
}

// SafeGoWithContext — упрощённая функция для запуска безопасной горутины с контекстом.
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	DefaultRecoveryHandler.SafeGoWithContext(ctx, fn)
}
