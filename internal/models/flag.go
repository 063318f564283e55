package models

// FlagReason — причина жалобы.
type FlagReason string

const (
	ReasonInappropriate FlagReason = "inappropriate"
	ReasonSpam          FlagReason = "spam"
	ReasonOffTopic      FlagReason = "off_topic"
	ReasonHarassment    FlagReason = "harassment"
	ReasonOther         FlagReason = "other"
)

// Valid проверяет причину по допустимому множеству.
func (r FlagReason) Valid() bool {
	switch r {
	case ReasonInappropriate, ReasonSpam, ReasonOffTopic, ReasonHarassment, ReasonOther:
		return true
	default:
		return false
	}
}

// FlagStatus — состояние жалобы: open -> resolved | dismissed.
type FlagStatus string

const (
	FlagOpen      FlagStatus = "open"
	FlagResolved  FlagStatus = "resolved"
	FlagDismissed FlagStatus = "dismissed"
)

// FlagResolution — решение модератора по открытой жалобе.
type FlagResolution string

const (
	// ResolutionResolved — модератор подтвердил проблему; комментарий скрывается.
	ResolutionResolved FlagResolution = "resolved"
	// ResolutionDismissed — модератор не согласился; жалоба закрывается,
	// статус комментария по умолчанию не меняется (см. config.ModerationConfig).
	ResolutionDismissed FlagResolution = "dismissed"
)

// Valid проверяет решение по допустимому множеству.
func (r FlagResolution) Valid() bool {
	return r == ResolutionResolved || r == ResolutionDismissed
}

// CommentFlag — жалоба на комментарий.
// Инвариант: не более одной жалобы со статусом open на пару
// (commentId, flaggedBy) — защита от дублирующих репортов.
type CommentFlag struct {
	ID              string     `bson:"_id" json:"id"`
	BrandID         string     `bson:"brandId" json:"brandId"`
	CommentID       string     `bson:"commentId" json:"commentId"`
	Reason          FlagReason `bson:"reason" json:"reason"`
	Notes           string     `bson:"notes,omitempty" json:"notes,omitempty"`
	FlaggedBy       string     `bson:"flaggedBy" json:"flaggedBy"`
	FlaggedByName   string     `bson:"flaggedByName" json:"flaggedByName"`
	CreatedAt       string     `bson:"createdAt" json:"createdAt"`
	Status          FlagStatus `bson:"status" json:"status"`
	ReviewedBy      string     `bson:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	ReviewedByName  string     `bson:"reviewedByName,omitempty" json:"reviewedByName,omitempty"`
	ReviewedAt      string     `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	ResolutionNotes string     `bson:"resolutionNotes,omitempty" json:"resolutionNotes,omitempty"`
}
