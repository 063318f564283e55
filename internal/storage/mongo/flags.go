package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jeanlaboratories/momentum/internal/models"
	"github.com/jeanlaboratories/momentum/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateFlag регистрирует жалобу на комментарий.
// Одна транзакция: вставка жалобы, flagCount+1 и status=flagged у комментария,
// flaggedComments+1 у агрегата контекста. Повторная открытая жалоба той же
// пары (commentId, flaggedBy) отсекается частичным уникальным индексом —
// storage.ErrDuplicateFlag.
func (m *Mongo) CreateFlag(ctx context.Context, flag models.CommentFlag) (*models.CommentFlag, error) {
	const op = "storage/mongo/CreateFlag"

	flag.ID = uuid.NewString()
	flag.CreatedAt = models.NowISO()
	flag.Status = models.FlagOpen
	flag.ReviewedBy = ""
	flag.ReviewedByName = ""
	flag.ReviewedAt = ""
	flag.ResolutionNotes = ""

	err := m.withTxn(ctx, func(sc mongodriver.SessionContext) error {
		var comm models.Comment
		if err := m.comments.FindOne(sc, bson.D{{Key: "_id", Value: flag.CommentID}}).Decode(&comm); err != nil {
			if errors.Is(err, mongodriver.ErrNoDocuments) {
				return storage.ErrNotFound
			}

			return fmt.Errorf("find comment: %w", err)
		}

		// Жалобы брендовых контекстов закрепляются за брендом комментария.
		flag.BrandID = comm.BrandID

		if _, err := m.flags.InsertOne(sc, flag); err != nil {
			if mongodriver.IsDuplicateKeyError(err) {
				return storage.ErrDuplicateFlag
			}

			return fmt.Errorf("insert flag: %w", err)
		}

		if _, err := m.comments.UpdateByID(sc, comm.ID, bson.D{
			{Key: "$inc", Value: bson.D{{Key: "flagCount", Value: 1}}},
			{Key: "$set", Value: bson.D{{Key: "status", Value: models.StatusFlagged}}},
		}); err != nil {
			return fmt.Errorf("mark comment flagged: %w", err)
		}

		if _, err := m.contexts.UpdateByID(sc, comm.Key().DocID(), bson.D{
			{Key: "$inc", Value: bson.D{{Key: "flaggedComments", Value: 1}}},
		}, options.Update().SetUpsert(true)); err != nil {
			return fmt.Errorf("inc flaggedComments: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &flag, nil
}

// FlagByID возвращает жалобу по идентификатору.
func (m *Mongo) FlagByID(ctx context.Context, id string) (*models.CommentFlag, error) {
	const op = "storage/mongo/FlagByID"

	var out models.CommentFlag
	if err := m.flags.FindOne(ctx, bson.D{{Key: "_id", Value: strings.TrimSpace(id)}}).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// ListFlags возвращает жалобы бренда, новые первыми.
// status сужает выдачу до open/resolved/dismissed; пустой status — все.
func (m *Mongo) ListFlags(ctx context.Context, brandID string, status models.FlagStatus, limit int32) ([]models.CommentFlag, error) {
	const op = "storage/mongo/ListFlags"

	filter := bson.D{{Key: "brandId", Value: brandID}}
	if status != "" {
		filter = append(filter, bson.E{Key: "status", Value: status})
	}

	lim := limitOrDefault(m.cfg, limit)

	cur, err := m.flags.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(lim)))
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var out []models.CommentFlag
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	return out, nil
}

// ResolveFlag закрывает открытую жалобу решением модератора.
// resolved — комментарий скрывается (status=hidden, resolvedComments+1);
// dismissed — комментарий по умолчанию остаётся flagged, при включённом
// RestoreOnDismiss статус восстанавливается (edited при editedAt, иначе
// active). Обе ветки выполняются в одной транзакции с закрытием жалобы.
func (m *Mongo) ResolveFlag(ctx context.Context, id string, in storage.ReviewInput) (*models.CommentFlag, error) {
	const op = "storage/mongo/ResolveFlag"

	now := models.NowISO()

	var out models.CommentFlag

	err := m.withTxn(ctx, func(sc mongodriver.SessionContext) error {
		res := m.flags.FindOneAndUpdate(sc,
			bson.D{
				{Key: "_id", Value: id},
				{Key: "status", Value: models.FlagOpen},
			},
			bson.D{{Key: "$set", Value: bson.D{
				{Key: "status", Value: models.FlagStatus(in.Resolution)},
				{Key: "reviewedBy", Value: in.ReviewedBy},
				{Key: "reviewedByName", Value: in.ReviewedByName},
				{Key: "reviewedAt", Value: now},
				{Key: "resolutionNotes", Value: in.ResolutionNotes},
			}}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		)

		if err := res.Decode(&out); err != nil {
			if errors.Is(err, mongodriver.ErrNoDocuments) {
				return m.flagMissingOrClosed(sc, id)
			}

			return fmt.Errorf("close flag: %w", err)
		}

		switch in.Resolution {
		case models.ResolutionResolved:
			return m.hideFlaggedComment(sc, out.CommentID)
		case models.ResolutionDismissed:
			if m.cfg.Moderation.RestoreOnDismiss {
				return m.restoreFlaggedComment(sc, out.CommentID)
			}
			return nil
		default:
			return fmt.Errorf("unknown resolution %q", in.Resolution)
		}
	})

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// flagMissingOrClosed различает «жалобы нет» и «жалоба уже закрыта».
func (m *Mongo) flagMissingOrClosed(sc mongodriver.SessionContext, id string) error {
	var existing models.CommentFlag
	if err := m.flags.FindOne(sc, bson.D{{Key: "_id", Value: id}}).Decode(&existing); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return storage.ErrNotFound
		}

		return fmt.Errorf("recheck flag: %w", err)
	}

	return storage.ErrFlagNotOpen
}

// hideFlaggedComment скрывает комментарий по принятой жалобе и переносит его
// из flagged в resolved в агрегате контекста.
func (m *Mongo) hideFlaggedComment(sc mongodriver.SessionContext, commentID string) error {
	res := m.comments.FindOneAndUpdate(sc,
		bson.D{{Key: "_id", Value: commentID}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: models.StatusHidden}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var comm models.Comment
	if err := res.Decode(&comm); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			// Комментарий удалён после подачи жалобы; жалоба всё равно закрыта.
			return nil
		}

		return fmt.Errorf("hide comment: %w", err)
	}

	if _, err := m.contexts.UpdateByID(sc, comm.Key().DocID(), bson.D{
		{Key: "$inc", Value: bson.D{{Key: "resolvedComments", Value: 1}}},
	}, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("inc resolvedComments: %w", err)
	}

	return nil
}

// restoreFlaggedComment возвращает комментарию дожалобный статус.
// Прежний статус не персистится, поэтому восстановление эвристическое:
// edited при наличии editedAt, иначе active. Фильтр по status=flagged
// защищает от перетирания более поздних решений (hidden/deleted).
func (m *Mongo) restoreFlaggedComment(sc mongodriver.SessionContext, commentID string) error {
	var comm models.Comment
	if err := m.comments.FindOne(sc, bson.D{{Key: "_id", Value: commentID}}).Decode(&comm); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil
		}

		return fmt.Errorf("find flagged comment: %w", err)
	}

	restored := models.StatusActive
	if comm.EditedAt != "" {
		restored = models.StatusEdited
	}

	if _, err := m.comments.UpdateOne(sc,
		bson.D{
			{Key: "_id", Value: commentID},
			{Key: "status", Value: models.StatusFlagged},
		},
		bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: restored}}}},
	); err != nil {
		return fmt.Errorf("restore comment: %w", err)
	}

	return nil
}
