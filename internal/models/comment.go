// Package models содержит доменные сущности engagement-сервиса Momentum.
package models

import "time"

// isoLayout — формат времени в персистентных полях: UTC, фиксированная ширина
// (миллисекунды всегда присутствуют), поэтому лексикографический порядок строк
// совпадает с хронологическим. Совместим с ISO-8601 данными существующего стора.
const isoLayout = "2006-01-02T15:04:05.000Z"

// NowISO возвращает текущее время в персистентном формате.
func NowISO() string {
	return FormatISO(time.Now())
}

// FormatISO приводит время к персистентному формату (UTC, миллисекунды).
func FormatISO(t time.Time) string {
	return t.UTC().Truncate(time.Millisecond).Format(isoLayout)
}

// ParseISO разбирает персистентную метку времени. Для устойчивости к данным,
// записанным другими клиентами, принимает и произвольный RFC3339.
func ParseISO(s string) (time.Time, error) {
	if t, err := time.Parse(isoLayout, s); err == nil {
		return t, nil
	}

	return time.Parse(time.RFC3339, s)
}

// CommentStatus — статус жизненного цикла комментария.
type CommentStatus string

const (
	StatusActive   CommentStatus = "active"
	StatusEdited   CommentStatus = "edited"
	StatusFlagged  CommentStatus = "flagged"
	StatusResolved CommentStatus = "resolved"
	StatusHidden   CommentStatus = "hidden"
	StatusDeleted  CommentStatus = "deleted"
)

// DeletedBody — сентинел, которым замещается текст при мягком удалении.
// Запись физически не удаляется: сохраняются связи ответов и счётчики.
const DeletedBody = "[deleted]"

// Revision — снимок состояния комментария до первого редактирования.
// Заполняется ровно один раз: EditedAt/EditedBy — это createdAt/createdBy
// исходной версии.
type Revision struct {
	Body     string `bson:"body" json:"body"`
	EditedAt string `bson:"editedAt" json:"editedAt"`
	EditedBy string `bson:"editedBy" json:"editedBy"`
}

// Comment — доменная модель комментария.
// Важно:
//   - ID — hex ObjectID, генерируется стореджем; наружу всегда string.
//   - ParentID — ID корневого комментария; пустой для корней. Поддерживается
//     ровно один уровень вложенности: у ответа не может быть ответов.
//   - CreatedAt/EditedAt/CopiedAt — ISO-8601 строки (см. isoLayout);
//     CreatedAt неизменяем после создания.
//   - ReplyCount инкрементируется при создании ответа и НЕ декрементируется
//     при удалении (слот ответа сохраняется ради стабильной пагинации).
//   - FlagCount — количество жалоб за всю историю (открытых и закрытых).
//   - RevisionHistory заполняется однократно при первом редактировании.
//   - Имена bson-полей фиксированы контрактом совместимости с существующими
//     данными — не переименовывать.
type Comment struct {
	ID              string        `bson:"_id,omitempty" json:"id"`
	BrandID         string        `bson:"brandId" json:"brandId"`
	ContextType     ContextType   `bson:"contextType" json:"contextType"`
	ContextID       string        `bson:"contextId" json:"contextId"`
	ParentID        string        `bson:"parentId" json:"parentId"`
	Body            string        `bson:"body" json:"body"`
	CreatedBy       string        `bson:"createdBy" json:"createdBy"`
	CreatedByName   string        `bson:"createdByName" json:"createdByName"`
	CreatedByPhoto  string        `bson:"createdByPhoto,omitempty" json:"createdByPhoto,omitempty"`
	CreatedAt       string        `bson:"createdAt" json:"createdAt"`
	EditedAt        string        `bson:"editedAt,omitempty" json:"editedAt,omitempty"`
	Status          CommentStatus `bson:"status" json:"status"`
	ReplyCount      int32         `bson:"replyCount" json:"replyCount"`
	FlagCount       int32         `bson:"flagCount" json:"flagCount"`
	RevisionHistory []Revision    `bson:"revisionHistory,omitempty" json:"revisionHistory,omitempty"`
	CopiedFrom      string        `bson:"copiedFrom,omitempty" json:"copiedFrom,omitempty"`
	CopiedAt        string        `bson:"copiedAt,omitempty" json:"copiedAt,omitempty"`
}

// Key возвращает ключ контекста, которому принадлежит комментарий.
func (c Comment) Key() ContextKey {
	return NewContextKey(c.BrandID, c.ContextType, c.ContextID)
}

// Visible сообщает, участвует ли комментарий в выдаче тредов и ответов.
// В списки попадают только active и edited; при этом в счётчике
// activeComments flagged-записи продолжают учитываться до решения модератора.
func (c Comment) Visible() bool {
	return c.Status == StatusActive || c.Status == StatusEdited
}

// ListParams — базовые параметры постраничной выдачи тредов.
type ListParams struct {
	PageSize  int32
	PageToken string
}

// Thread — корневой комментарий с первыми ответами.
type Thread struct {
	Comment        Comment   `json:"comment"`
	Replies        []Comment `json:"replies"`
	HasMoreReplies bool      `json:"hasMoreReplies"`
}

// ThreadPage — результат постраничной выдачи тредов.
// HasMore вычисляется овер-фетчем одной лишней записи.
type ThreadPage struct {
	Threads       []Thread `json:"threads"`
	NextPageToken string   `json:"nextPageToken,omitempty"`
	HasMore       bool     `json:"hasMore"`
}

// ReplyPage — результат постраничной выдачи ответов одной ветки.
// Продолжение — по id последнего показанного ответа (NextStartAfter).
type ReplyPage struct {
	Items          []Comment `json:"items"`
	NextStartAfter string    `json:"nextStartAfter,omitempty"`
	HasMore        bool      `json:"hasMore"`
}
