// storage описывает контракт хранилища engagement-сервиса.
//
// Ключевое требование слоя: каждая операция, затрагивающая несколько записей
// (комментарий + агрегат контекста; комментарий + replyCount родителя;
// жалоба + комментарий + агрегат), выполняется как единая атомарная единица
// работы на стороне хранилища. Частичное применение — нарушение корректности,
// и предотвращается транзакцией, а не компенсацией на уровне приложения.
// Инкременты счётчиков — только атомарным "apply delta" примитивом,
// никогда read-modify-write.
package storage

import (
	"context"
	"errors"

	"github.com/jeanlaboratories/momentum/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrParentNotFound — указан parentId, но родитель не найден, не является
	// корневым комментарием или принадлежит другому контексту.
	ErrParentNotFound = errors.New("parent not found")
	// ErrInvalidCursor — битый/чужой page_token.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrAlreadyDeleted — комментарий уже мягко удалён; повторное удаление
	// отклоняется, чтобы не декрементировать activeComments дважды.
	ErrAlreadyDeleted = errors.New("already deleted")
	// ErrDuplicateFlag — у пользователя уже есть открытая жалоба на этот
	// комментарий.
	ErrDuplicateFlag = errors.New("duplicate open flag")
	// ErrFlagNotOpen — жалоба существует, но уже закрыта (resolved/dismissed).
	ErrFlagNotOpen = errors.New("flag is not open")
	// ErrConflict — конфликт уникальности, не покрытый специализированными
	// ошибками выше.
	ErrConflict = errors.New("conflict")
)

// ReviewInput — атрибуты решения модератора по жалобе.
type ReviewInput struct {
	Resolution      models.FlagResolution
	ReviewedBy      string
	ReviewedByName  string
	ResolutionNotes string
}

// CopyEngagementInput — параметры кросс-контекстного копирования
// вовлечённости (см. Storage.CopyEngagement).
type CopyEngagementInput struct {
	BrandID       string
	SourceAssetID string
	TargetAssetID string
	TargetType    models.ContextType
}

// Storage описывает операции над комментариями, жалобами и агрегатами.
type Storage interface {
	// CreateComment создаёт корневой комментарий или ответ.
	// Атомарно: вставка комментария; upsert агрегата контекста
	// (totalComments+1, activeComments+1, lastCommentAt/lastCommentBy);
	// при ответе — replyCount+1 у родителя.
	// Вычисляемые хранилищем поля: ID, CreatedAt, Status, счётчики.
	// Возможные ошибки: ErrParentNotFound.
	CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error)

	// CommentByID возвращает комментарий по идентификатору.
	// Если запись не найдена — ErrNotFound.
	CommentByID(ctx context.Context, id string) (*models.Comment, error)

	// UpdateComment применяет редактирование: body, editedAt, status=edited.
	// Если rev != nil, снимок кладётся в revisionHistory — только если
	// история ещё пуста (идемпотентно). Возвращает обновлённую запись.
	UpdateComment(ctx context.Context, id, body, editedAt string, rev *models.Revision) (*models.Comment, error)

	// SoftDeleteComment выполняет мягкое удаление: body -> сентинел,
	// status -> deleted, атомарно activeComments-1 у агрегата.
	// replyCount родителя и дочерние ответы не трогаются.
	// Повторное удаление — ErrAlreadyDeleted, отсутствие записи — ErrNotFound.
	SoftDeleteComment(ctx context.Context, id string) (*models.Comment, error)

	// ContextByKey возвращает агрегат контекста; при его отсутствии —
	// нулевой агрегат, никогда не ErrNotFound.
	ContextByKey(ctx context.Context, key models.ContextKey) (*models.CommentContext, error)

	// ListThreads возвращает страницу корневых комментариев контекста
	// (status active/edited, created_at DESC, курсорная пагинация с
	// овер-фетчем одной записи) с прикреплёнными первыми ответами.
	// При некорректном page_token — ErrInvalidCursor.
	ListThreads(ctx context.Context, key models.ContextKey, p models.ListParams) (*models.ThreadPage, error)

	// ListReplies возвращает страницу ответов одной ветки: скан всех ответов
	// (с защитным потолком), фильтрация active/edited и сортировка ASC в
	// памяти, продолжение по id последнего показанного ответа. Неизвестный
	// startAfter (например, ответ удалён) перезапускает выдачу с начала.
	ListReplies(ctx context.Context, parentID string, limit int32, startAfter string) (*models.ReplyPage, error)

	// CreateFlag регистрирует жалобу. Атомарно: вставка жалобы (status=open),
	// flagCount+1 и status=flagged у комментария, flaggedComments+1 у
	// агрегата. Дубликат открытой жалобы той же пары
	// (commentId, flaggedBy) — ErrDuplicateFlag; нет комментария — ErrNotFound.
	CreateFlag(ctx context.Context, flag models.CommentFlag) (*models.CommentFlag, error)

	// FlagByID возвращает жалобу по идентификатору или ErrNotFound.
	FlagByID(ctx context.Context, id string) (*models.CommentFlag, error)

	// ListFlags возвращает жалобы бренда, новые первыми; status="" — все.
	ListFlags(ctx context.Context, brandID string, status models.FlagStatus, limit int32) ([]models.CommentFlag, error)

	// ResolveFlag закрывает открытую жалобу. Атомарно: статус жалобы
	// open -> resolved|dismissed + атрибуты ревью; при resolved комментарий
	// скрывается (status=hidden) и resolvedComments+1 у агрегата; при
	// dismissed статус комментария по умолчанию не меняется (политика
	// restore_on_dismiss — см. config). Закрытая жалоба — ErrFlagNotOpen.
	ResolveFlag(ctx context.Context, id string, in ReviewInput) (*models.CommentFlag, error)

	// CopyEngagement копирует вовлечённость ассета в новый контекст одной
	// транзакцией: статистика и записи реакций (детерминированные id —
	// идемпотентный повтор), комментарии со свежими id и перелинковкой
	// parentId, свежий агрегат под типом назначения.
	CopyEngagement(ctx context.Context, in CopyEngagementInput) error

	// ExportCampaign снимает переносимый слепок вовлечённости кампании.
	ExportCampaign(ctx context.Context, key models.ContextKey) (*models.CampaignBundle, error)

	// ImportCampaign восстанавливает слепок под новым ключом кампании:
	// свежие id комментариев с перелинковкой, перепривязанные жалобы,
	// пересчитанный агрегат. Одна транзакция.
	ImportCampaign(ctx context.Context, key models.ContextKey, bundle models.CampaignBundle) error

	// Close закрывает соединения/ресурсы хранилища.
	Close(ctx context.Context) error
}
