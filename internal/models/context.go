package models

import "strings"

// ContextType — тип поверхности, к которой привязаны комментарии.
type ContextType string

const (
	ContextCampaign     ContextType = "campaign"
	ContextContentBlock ContextType = "contentBlock"
	ContextImage        ContextType = "image"
	ContextVideo        ContextType = "video"
	ContextBrandProfile ContextType = "brandProfile"
)

// Valid проверяет, что тип контекста входит в допустимое множество.
func (t ContextType) Valid() bool {
	switch t {
	case ContextCampaign, ContextContentBlock, ContextImage, ContextVideo, ContextBrandProfile:
		return true
	default:
		return false
	}
}

// Unified сообщает, что поверхность единая для всех брендов: медиа-контент
// профиля (image/video) комментируем независимо от того, какой бренд его
// опубликовал, поэтому brandId в ключ агрегата не входит.
func (t ContextType) Unified() bool {
	return t == ContextImage || t == ContextVideo
}

// ContextKey — тегированный ключ контекста: brand-scoped либо unified.
// Правило вынесено в явный тип, чтобы исключение для image/video не было
// размазано по слоям (см. DocID).
type ContextKey struct {
	BrandID   string
	Type      ContextType
	ContextID string
}

// NewContextKey собирает ключ контекста. BrandID сохраняется и для
// unified-типов: комментарий всегда помнит бренд автора публикации —
// этим брендом потом определяется очередь модерации. Кросс-брендовость
// unified-поверхностей действует только на адресацию агрегата и выборку
// (см. DocID и фильтры хранилища).
func NewContextKey(brandID string, t ContextType, contextID string) ContextKey {
	return ContextKey{BrandID: strings.TrimSpace(brandID), Type: t, ContextID: contextID}
}

// Unified сообщает, является ли ключ кросс-брендовым.
func (k ContextKey) Unified() bool {
	return k.Type.Unified()
}

// DocID возвращает детерминированный идентификатор документа агрегата.
// Формат зафиксирован контрактом совместимости с существующими данными:
//   - brand-scoped: "<brandId>_<contextType>_<contextId>";
//   - unified:      "<contextType>_<contextId>".
func (k ContextKey) DocID() string {
	if k.Unified() {
		return string(k.Type) + "_" + k.ContextID
	}

	return k.BrandID + "_" + string(k.Type) + "_" + k.ContextID
}

// CommentContext — денормализованный агрегат счётчиков по одному контексту.
// Инварианты:
//   - totalComments инкрементируется при создании и больше не меняется;
//   - activeComments учитывает все комментарии вне статуса deleted:
//     создание +1, мягкое удаление -1; редактирование и жалобы его не трогают;
//   - flaggedComments инкрементируется при каждой новой жалобе;
//   - resolvedComments инкрементируется при resolve жалобы модератором.
//
// Отсутствующий агрегат читается как нулевой — это не ошибка.
type CommentContext struct {
	ID               string      `bson:"_id" json:"id"`
	BrandID          string      `bson:"brandId,omitempty" json:"brandId,omitempty"`
	ContextType      ContextType `bson:"contextType" json:"contextType"`
	ContextID        string      `bson:"contextId" json:"contextId"`
	TotalComments    int32       `bson:"totalComments" json:"totalComments"`
	ActiveComments   int32       `bson:"activeComments" json:"activeComments"`
	ResolvedComments int32       `bson:"resolvedComments" json:"resolvedComments"`
	FlaggedComments  int32       `bson:"flaggedComments" json:"flaggedComments"`
	LastCommentAt    string      `bson:"lastCommentAt,omitempty" json:"lastCommentAt,omitempty"`
	LastCommentBy    string      `bson:"lastCommentBy,omitempty" json:"lastCommentBy,omitempty"`
}

// EmptyContext возвращает нулевой агрегат для ключа.
func EmptyContext(key ContextKey) *CommentContext {
	return &CommentContext{
		ID:          key.DocID(),
		BrandID:     key.BrandID,
		ContextType: key.Type,
		ContextID:   key.ContextID,
	}
}
