// handlers — REST-обвязка над конвертным слоем actions.
//
// Хендлеры не содержат бизнес-логики: парсинг запроса, вызов операции,
// перевод кода конверта в HTTP-статус. Тело ответа всегда конверт
// actions.Result.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jeanlaboratories/momentum/internal/actions"
)

// Handlers агрегирует зависимости (фасад операций).
type Handlers struct {
	Actions *actions.Actions
}

func New(a *actions.Actions) *Handlers {
	return &Handlers{Actions: a}
}

// writeResult — единый ответ JSON: HTTP-статус выводится из кода конверта.
func writeResult(w http.ResponseWriter, res actions.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFromCode(res.Code))
	_ = json.NewEncoder(w).Encode(res)
}

// statusFromCode переводит машинный код конверта в HTTP-статус.
func statusFromCode(code actions.Code) int {
	switch code {
	case actions.CodeOK:
		return http.StatusOK
	case actions.CodeInvalidArgument:
		return http.StatusBadRequest
	case actions.CodeUnauthenticated:
		return http.StatusUnauthorized
	case actions.CodeForbidden:
		return http.StatusForbidden
	case actions.CodeNotFound:
		return http.StatusNotFound
	case actions.CodeConflict:
		return http.StatusConflict
	case actions.CodeFailedPrecondition:
		return http.StatusPreconditionFailed
	case actions.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// badRequest — конверт для локальных ошибок парсинга запроса.
func badRequest(message string) actions.Result {
	return actions.Result{
		Success: false,
		Code:    actions.CodeInvalidArgument,
		Message: message,
	}
}
