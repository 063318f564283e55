// actions — слой единого конверта ответов для UI.
//
// Каждая операция возвращает Result{success, code, message, data} и никогда
// не отдаёт наружу исключение/ошибку для ожидаемых отказов: аутентификация,
// доступы, валидация и конфликты конвертируются в конверт с человекочитаемым
// сообщением. Непредвиденные ошибки логируются с контекстом операции и
// выходят наружу обезличенным сообщением.
package actions

import (
	"context"
	"errors"

	"github.com/jeanlaboratories/momentum/internal/auth"
	"github.com/jeanlaboratories/momentum/internal/config"
	"github.com/jeanlaboratories/momentum/internal/service"
	"github.com/jeanlaboratories/momentum/pkg/log"
)

// Code — машинный код результата; дополняет человекочитаемое message.
type Code string

const (
	CodeOK                 Code = "ok"
	CodeUnauthenticated    Code = "unauthenticated"
	CodeForbidden          Code = "forbidden"
	CodeNotFound           Code = "not_found"
	CodeInvalidArgument    Code = "invalid_argument"
	CodeConflict           Code = "conflict"
	CodeFailedPrecondition Code = "failed_precondition"
	CodeUnavailable        Code = "unavailable"
	CodeInternal           Code = "internal"
)

// Result — единый конверт ответа операции.
type Result struct {
	Success bool   `json:"success"`
	Code    Code   `json:"code"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Actions — фасад операций для транспортного слоя.
type Actions struct {
	svc   *service.Service
	authn auth.Authenticator
	cfg   config.Config
}

// New создаёт фасад поверх сервиса и аутентификатора.
func New(svc *service.Service, authn auth.Authenticator, cfg config.Config) *Actions {
	return &Actions{svc: svc, authn: authn, cfg: cfg}
}

func ok(data any) Result {
	return Result{Success: true, Code: CodeOK, Data: data}
}

func fail(code Code, message string) Result {
	return Result{Success: false, Code: code, Message: message}
}

// msgInternal — обезличенное сообщение для непредвиденных ошибок.
const msgInternal = "Something went wrong. Please try again."

// actor разрешает пользователя текущего запроса.
func (a *Actions) actor(ctx context.Context) (*auth.User, *Result) {
	user, err := a.authn.AuthenticatedUser(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthenticated) {
			res := fail(CodeUnauthenticated, "Authentication required")
			return nil, &res
		}

		log.From(ctx).Error("authenticator error", "err", err)
		res := fail(CodeInternal, msgInternal)
		return nil, &res
	}

	return user, nil
}

// failFromError конвертирует сервисную ошибку в конверт.
// forbiddenMsg и invalidMsg задают операционно-специфичные формулировки;
// остальные коды получают общие сообщения.
func failFromError(ctx context.Context, op string, err error, forbiddenMsg, invalidMsg string) Result {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return fail(CodeInvalidArgument, invalidMsg)
	case errors.Is(err, service.ErrForbidden):
		return fail(CodeForbidden, forbiddenMsg)
	case errors.Is(err, service.ErrNotFound):
		return fail(CodeNotFound, "Not found")
	case errors.Is(err, service.ErrParentNotFound):
		return fail(CodeNotFound, "The comment you are replying to no longer exists")
	case errors.Is(err, service.ErrInvalidCursor):
		return fail(CodeInvalidArgument, "Invalid page token")
	case errors.Is(err, service.ErrAlreadyDeleted):
		return fail(CodeFailedPrecondition, "Comment has already been deleted")
	case errors.Is(err, service.ErrAlreadyFlagged):
		return fail(CodeConflict, "You have already flagged this comment")
	case errors.Is(err, service.ErrFlagNotOpen):
		return fail(CodeFailedPrecondition, "This flag has already been reviewed")
	default:
		log.From(ctx).Error("unexpected service error", "op", op, "err", err)
		return fail(CodeInternal, msgInternal)
	}
}
