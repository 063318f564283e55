// service содержит бизнес-логику engagement-сервиса: правила доступа,
// валидацию входа, окно редактирования и маппинг ошибок хранилища в
// сентинелы сервисного слоя.
package service

import (
	"errors"

	"github.com/jeanlaboratories/momentum/internal/auth"
	"github.com/jeanlaboratories/momentum/internal/config"
	"github.com/jeanlaboratories/momentum/internal/storage"
)

var (
	// ErrInvalidArgument — неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrParentNotFound — родитель ответа не найден, не является корнем
	// или принадлежит другому контексту.
	ErrParentNotFound = errors.New("parent not found")
	// ErrInvalidCursor — битый/чужой page_token.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrForbidden — у пользователя нет доступа к бренду или нет требуемой
	// роли для операции.
	ErrForbidden = errors.New("forbidden")
	// ErrEditWindowExpired — окно редактирования автора истекло.
	ErrEditWindowExpired = errors.New("edit window expired")
	// ErrAlreadyDeleted — комментарий уже мягко удалён.
	ErrAlreadyDeleted = errors.New("already deleted")
	// ErrAlreadyFlagged — у пользователя уже есть открытая жалоба на этот
	// комментарий.
	ErrAlreadyFlagged = errors.New("already flagged")
	// ErrFlagNotOpen — жалоба уже закрыта (resolved/dismissed).
	ErrFlagNotOpen = errors.New("flag is not open")
	// ErrInternal — внутренняя ошибка (стораж/БД/контекст/и т.д.).
	ErrInternal = errors.New("internal")
)

// Service — бизнес-логика engagement-сервиса.
type Service struct {
	storage   storage.Storage
	cfg       config.Config
	directory auth.Directory
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, cfg config.Config, directory auth.Directory) *Service {
	return &Service{
		storage:   storage,
		cfg:       cfg,
		directory: directory,
	}
}
