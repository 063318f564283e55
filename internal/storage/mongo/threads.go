package mongo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jeanlaboratories/momentum/internal/models"
	"github.com/jeanlaboratories/momentum/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContextByKey возвращает агрегат контекста.
// Отсутствующий агрегат — это нулевой агрегат, а не ошибка.
func (m *Mongo) ContextByKey(ctx context.Context, key models.ContextKey) (*models.CommentContext, error) {
	const op = "storage/mongo/ContextByKey"

	var out models.CommentContext
	if err := m.contexts.FindOne(ctx, bson.D{{Key: "_id", Value: key.DocID()}}).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return models.EmptyContext(key), nil
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// ListThreads возвращает страницу корневых комментариев контекста
// (status active/edited, createdAt DESC, _id DESC) с первыми ответами.
// hasMore вычисляется овер-фетчем одной лишней записи; курсор — непрозрачный
// токен пары (createdAt, _id). При некорректном токене — storage.ErrInvalidCursor.
func (m *Mongo) ListThreads(ctx context.Context, key models.ContextKey, p models.ListParams) (*models.ThreadPage, error) {
	const op = "storage/mongo/ListThreads"

	limit := limitOrDefault(m.cfg, p.PageSize)

	filter := contextFilter(key)
	filter = append(filter,
		bson.E{Key: "parentId", Value: ""},
		bson.E{Key: "status", Value: bson.D{{Key: "$in", Value: bson.A{models.StatusActive, models.StatusEdited}}}},
	)

	if strings.TrimSpace(p.PageToken) != "" {
		createdAt, id, decErr := decodeCursor(p.PageToken)
		if decErr != nil {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidCursor)
		}

		// Курсор "меньше" для DESC сортировки.
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "createdAt", Value: bson.D{{Key: "$lt", Value: createdAt}}}},
			bson.D{
				{Key: "createdAt", Value: createdAt},
				{Key: "_id", Value: bson.D{{Key: "$lt", Value: id}}},
			},
		}})
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit) + 1) // +1 — для hasMore.

	cur, err := m.comments.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var roots []models.Comment
	if err := cur.All(ctx, &roots); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	hasMore := len(roots) > limit
	if hasMore {
		roots = roots[:limit]
	}

	threads := make([]models.Thread, 0, len(roots))
	for i := range roots {
		replies, moreReplies, err := m.attachReplies(ctx, roots[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		threads = append(threads, models.Thread{
			Comment:        roots[i],
			Replies:        replies,
			HasMoreReplies: moreReplies,
		})
	}

	var next string
	if hasMore && len(roots) > 0 {
		last := roots[len(roots)-1]
		next = encodeCursor(last.CreatedAt, last.ID)
	}

	return &models.ThreadPage{
		Threads:       threads,
		NextPageToken: next,
		HasMore:       hasMore,
	}, nil
}

// attachReplies собирает первые ответы треда: скан всех ответов родителя
// (с защитным потолком ReplyScanCap), фильтрация active/edited и сортировка
// ASC в памяти, затем первые ThreadReplies.
//
// Скан вместо составного индексированного запроса — осознанно: активный ответ
// не должен теряться за любым количеством удалённых, и это свойство не должно
// зависеть от наличия индекса по статусу.
func (m *Mongo) attachReplies(ctx context.Context, parent models.Comment) ([]models.Comment, bool, error) {
	visible, capped, err := m.scanReplies(ctx, parent.ID)
	if err != nil {
		return nil, false, err
	}

	shown := visible
	if int32(len(shown)) > m.cfg.Limits.ThreadReplies {
		shown = shown[:m.cfg.Limits.ThreadReplies]
	}

	// replyCount не декрементируется при удалении, поэтому "ещё есть" может
	// быть ложно-положительным после удалений — слот ответа сохраняется.
	more := parent.ReplyCount-int32(len(shown)) > 0 || capped

	return shown, more, nil
}

// scanReplies возвращает видимые ответы ветки, отсортированные по createdAt
// ASC (_id ASC при равенстве), и признак упора в защитный потолок скана.
func (m *Mongo) scanReplies(ctx context.Context, parentID string) ([]models.Comment, bool, error) {
	scanCap := int64(m.cfg.Limits.ReplyScanCap)

	cur, err := m.comments.Find(ctx,
		bson.D{{Key: "parentId", Value: parentID}},
		options.Find().SetLimit(scanCap),
	)
	if err != nil {
		return nil, false, fmt.Errorf("scan replies: %w", err)
	}
	defer cur.Close(ctx)

	var raw []models.Comment
	if err := cur.All(ctx, &raw); err != nil {
		return nil, false, fmt.Errorf("decode replies: %w", err)
	}

	visible := raw[:0:0]
	for _, c := range raw {
		if c.Visible() {
			visible = append(visible, c)
		}
	}

	sort.Slice(visible, func(i, j int) bool {
		if visible[i].CreatedAt != visible[j].CreatedAt {
			return visible[i].CreatedAt < visible[j].CreatedAt
		}
		return visible[i].ID < visible[j].ID
	})

	return visible, int64(len(raw)) >= scanCap, nil
}

// ListReplies возвращает страницу ответов одной ветки.
// Продолжение — по id последнего показанного ответа (startAfter): позиция
// находится в отфильтрованном+отсортированном списке и выдача продолжается
// со следующего индекса. Если id не найден (например, ответ был удалён),
// выдача перезапускается с начала — известный краевой случай.
func (m *Mongo) ListReplies(ctx context.Context, parentID string, limit int32, startAfter string) (*models.ReplyPage, error) {
	const op = "storage/mongo/ListReplies"

	visible, capped, err := m.scanReplies(ctx, strings.TrimSpace(parentID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lim := limitOrDefault(m.cfg, limit)

	start := 0
	if startAfter != "" {
		for i := range visible {
			if visible[i].ID == startAfter {
				start = i + 1
				break
			}
		}
	}

	end := start + lim
	if end > len(visible) {
		end = len(visible)
	}

	items := visible[start:end]
	hasMore := end < len(visible) || capped

	var next string
	if hasMore && len(items) > 0 {
		next = items[len(items)-1].ID
	}

	return &models.ReplyPage{
		Items:          items,
		NextStartAfter: next,
		HasMore:        hasMore,
	}, nil
}
