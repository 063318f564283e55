package models

// InteractionKind — тип пользовательской реакции на ассет.
type InteractionKind string

const (
	InteractionLove InteractionKind = "love"
	InteractionLike InteractionKind = "like"
)

// InteractionStats — денормализованные счётчики реакций по ассету.
type InteractionStats struct {
	AssetID string `bson:"_id" json:"assetId"`
	Loves   int32  `bson:"loves" json:"loves"`
	Likes   int32  `bson:"likes" json:"likes"`
}

// UserInteraction — единичная реакция пользователя на ассет.
// ID детерминирован (см. InteractionID), поэтому повторное копирование
// реакций идемпотентно — в отличие от комментариев, которым при копировании
// выдаются свежие идентификаторы.
type UserInteraction struct {
	ID        string          `bson:"_id" json:"id"`
	AssetID   string          `bson:"assetId" json:"assetId"`
	Kind      InteractionKind `bson:"kind" json:"kind"`
	UserID    string          `bson:"userId" json:"userId"`
	CreatedAt string          `bson:"createdAt" json:"createdAt"`
}

// InteractionID — детерминированный идентификатор реакции:
// "<assetId>_<kind>_<userId>".
func InteractionID(assetID string, kind InteractionKind, userID string) string {
	return assetID + "_" + string(kind) + "_" + userID
}

// CampaignBundle — переносимый слепок вовлечённости кампании: комментарии
// со всеми статусами, жалобы и агрегат. Используется для backup/restore
// при смене идентификатора кампании (export -> import).
type CampaignBundle struct {
	Comments []Comment      `bson:"comments" json:"comments"`
	Flags    []CommentFlag  `bson:"flags" json:"flags"`
	Context  CommentContext `bson:"context" json:"context"`
}
