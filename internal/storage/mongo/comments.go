package mongo

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/jeanlaboratories/momentum/internal/config"
	"github.com/jeanlaboratories/momentum/internal/models"
	"github.com/jeanlaboratories/momentum/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// encodeCursor кодирует пару (createdAt, _id) в непрозрачный токен для клиента.
// createdAt — персистентная ISO-строка фиксированной ширины, разделитель "|"
// в ней невозможен.
func encodeCursor(createdAt, id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(createdAt + "|" + id))
}

// decodeCursor декодирует токен обратно в пару ключей.
func decodeCursor(token string) (string, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return "", "", err
	}

	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("bad parts")
	}

	return parts[0], parts[1], nil
}

// limitOrDefault приводит запрошенный размер страницы к [Default, Max].
func limitOrDefault(cfg *config.Config, pageSize int32) int {
	lim := pageSize
	if lim <= 0 {
		lim = cfg.Limits.Default
	}

	if lim > cfg.Limits.Max {
		lim = cfg.Limits.Max
	}

	return int(lim)
}

// CreateComment создаёт комментарий (корневой или ответ).
// Одна транзакция: вставка комментария, upsert агрегата контекста
// (totalComments+1, activeComments+1, lastCommentAt/lastCommentBy) и,
// для ответа, replyCount+1 у родителя. Либо применяется всё, либо ничего.
func (m *Mongo) CreateComment(ctx context.Context, comm models.Comment) (*models.Comment, error) {
	const op = "storage/mongo/CreateComment"

	now := models.NowISO()

	comm.ID = primitive.NewObjectID().Hex()
	comm.CreatedAt = now
	comm.Status = models.StatusActive
	comm.ReplyCount = 0
	comm.FlagCount = 0
	comm.EditedAt = ""
	comm.RevisionHistory = nil

	key := comm.Key()

	err := m.withTxn(ctx, func(sc mongodriver.SessionContext) error {
		if comm.ParentID != "" {
			var parent models.Comment
			if err := m.comments.FindOne(sc, bson.D{{Key: "_id", Value: comm.ParentID}}).Decode(&parent); err != nil {
				if errors.Is(err, mongodriver.ErrNoDocuments) {
					return storage.ErrParentNotFound
				}

				return fmt.Errorf("find parent: %w", err)
			}

			// Один уровень вложенности: родителем может быть только корневой
			// комментарий того же контекста.
			if parent.ParentID != "" || parent.Key().DocID() != key.DocID() {
				return storage.ErrParentNotFound
			}

			if _, err := m.comments.UpdateByID(sc, comm.ParentID, bson.D{
				{Key: "$inc", Value: bson.D{{Key: "replyCount", Value: 1}}},
			}); err != nil {
				return fmt.Errorf("inc parent replyCount: %w", err)
			}
		}

		if _, err := m.comments.InsertOne(sc, comm); err != nil {
			return fmt.Errorf("insert: %w", err)
		}

		return m.bumpContextOnCreate(sc, key, now, comm.CreatedByName)
	})

	if err != nil {
		if errors.Is(err, storage.ErrParentNotFound) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrParentNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &comm, nil
}

// bumpContextOnCreate атомарно инкрементит агрегат контекста при создании
// комментария, создавая документ при отсутствии.
func (m *Mongo) bumpContextOnCreate(sc mongodriver.SessionContext, key models.ContextKey, now, author string) error {
	setOnInsert := bson.D{
		{Key: "contextType", Value: key.Type},
		{Key: "contextId", Value: key.ContextID},
	}
	if !key.Unified() {
		setOnInsert = append(setOnInsert, bson.E{Key: "brandId", Value: key.BrandID})
	}

	upd := bson.D{
		{Key: "$inc", Value: bson.D{
			{Key: "totalComments", Value: 1},
			{Key: "activeComments", Value: 1},
		}},
		{Key: "$set", Value: bson.D{
			{Key: "lastCommentAt", Value: now},
			{Key: "lastCommentBy", Value: author},
		}},
		{Key: "$setOnInsert", Value: setOnInsert},
	}

	if _, err := m.contexts.UpdateByID(sc, key.DocID(), upd, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("bump context: %w", err)
	}

	return nil
}

// CommentByID возвращает комментарий по идентификатору.
// Если запись не найдена — storage.ErrNotFound.
func (m *Mongo) CommentByID(ctx context.Context, id string) (*models.Comment, error) {
	const op = "storage/mongo/CommentByID"

	var out models.Comment
	if err := m.comments.FindOne(ctx, bson.D{{Key: "_id", Value: strings.TrimSpace(id)}}).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// UpdateComment применяет редактирование: body, editedAt, status=edited.
// Снимок rev кладётся в revisionHistory только если история ещё пуста —
// повторные правки её не перетирают.
func (m *Mongo) UpdateComment(ctx context.Context, id, body, editedAt string, rev *models.Revision) (*models.Comment, error) {
	const op = "storage/mongo/UpdateComment"

	var out models.Comment

	err := m.withTxn(ctx, func(sc mongodriver.SessionContext) error {
		if rev != nil {
			// Идемпотентно: только при отсутствующей истории.
			if _, err := m.comments.UpdateOne(sc,
				bson.D{
					{Key: "_id", Value: id},
					{Key: "revisionHistory", Value: bson.D{{Key: "$exists", Value: false}}},
				},
				bson.D{{Key: "$set", Value: bson.D{{Key: "revisionHistory", Value: []models.Revision{*rev}}}}},
			); err != nil {
				return fmt.Errorf("set revision history: %w", err)
			}
		}

		res := m.comments.FindOneAndUpdate(sc,
			bson.D{
				{Key: "_id", Value: id},
				{Key: "status", Value: bson.D{{Key: "$ne", Value: models.StatusDeleted}}},
			},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "body", Value: body},
				{Key: "editedAt", Value: editedAt},
				{Key: "status", Value: models.StatusEdited},
			}}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		)

		if err := res.Decode(&out); err != nil {
			if errors.Is(err, mongodriver.ErrNoDocuments) {
				return m.missingOrDeleted(sc, id)
			}

			return fmt.Errorf("update: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// SoftDeleteComment помечает комментарий удалённым: body -> сентинел,
// status -> deleted; атомарно activeComments-1 у агрегата. Повторное удаление
// отклоняется фильтром по статусу — декремент не может примениться дважды.
func (m *Mongo) SoftDeleteComment(ctx context.Context, id string) (*models.Comment, error) {
	const op = "storage/mongo/SoftDeleteComment"

	var out models.Comment

	err := m.withTxn(ctx, func(sc mongodriver.SessionContext) error {
		res := m.comments.FindOneAndUpdate(sc,
			bson.D{
				{Key: "_id", Value: id},
				{Key: "status", Value: bson.D{{Key: "$ne", Value: models.StatusDeleted}}},
			},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "body", Value: models.DeletedBody},
				{Key: "status", Value: models.StatusDeleted},
			}}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		)

		if err := res.Decode(&out); err != nil {
			if errors.Is(err, mongodriver.ErrNoDocuments) {
				return m.missingOrDeleted(sc, id)
			}

			return fmt.Errorf("delete: %w", err)
		}

		if _, err := m.contexts.UpdateByID(sc, out.Key().DocID(), bson.D{
			{Key: "$inc", Value: bson.D{{Key: "activeComments", Value: -1}}},
		}); err != nil {
			return fmt.Errorf("dec activeComments: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// missingOrDeleted различает «записи нет» и «запись уже удалена» после
// неуспешного FindOneAndUpdate с фильтром по статусу.
func (m *Mongo) missingOrDeleted(sc mongodriver.SessionContext, id string) error {
	var existing models.Comment
	if err := m.comments.FindOne(sc, bson.D{{Key: "_id", Value: id}}).Decode(&existing); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return storage.ErrNotFound
		}

		return fmt.Errorf("recheck: %w", err)
	}

	return storage.ErrAlreadyDeleted
}
