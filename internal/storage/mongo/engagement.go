package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeanlaboratories/momentum/internal/models"
	"github.com/jeanlaboratories/momentum/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CopyEngagement переносит вовлечённость ассета в новый контекст одной
// транзакцией: статистика реакций, записи реакций, комментарии и жалобы.
//
// Реакции идемпотентны (детерминированные id, ReplaceOne+upsert) — повторный
// перенос не задваивает их. Комментарии получают свежие id с перелинковкой
// parentId и отметкой copiedFrom/copiedAt; агрегат назначения пересчитывается
// с нуля по перенесённым данным, а не инкрементами.
func (m *Mongo) CopyEngagement(ctx context.Context, in storage.CopyEngagementInput) error {
	const op = "storage/mongo/CopyEngagement"

	now := models.NowISO()

	err := m.withTxn(ctx, func(sc mongodriver.SessionContext) error {
		if err := m.copyStats(sc, in.SourceAssetID, in.TargetAssetID); err != nil {
			return err
		}

		if err := m.copyInteractions(sc, in.SourceAssetID, in.TargetAssetID); err != nil {
			return err
		}

		// Исходный ассет — unified-поверхность (image/video), поэтому
		// комментарии выбираются по contextId без brandId.
		cur, err := m.comments.Find(sc, bson.D{{Key: "contextId", Value: in.SourceAssetID}})
		if err != nil {
			return fmt.Errorf("find source comments: %w", err)
		}

		var src []models.Comment
		if err := cur.All(sc, &src); err != nil {
			return fmt.Errorf("decode source comments: %w", err)
		}

		copies, idmap := remapComments(src, models.NewContextKey(in.BrandID, in.TargetType, in.TargetAssetID), now)

		if len(copies) > 0 {
			docs := make([]interface{}, 0, len(copies))
			for i := range copies {
				docs = append(docs, copies[i])
			}

			if _, err := m.comments.InsertMany(sc, docs); err != nil {
				return fmt.Errorf("insert copied comments: %w", err)
			}
		}

		flags, err := m.copyFlags(sc, in.BrandID, idmap)
		if err != nil {
			return err
		}

		key := models.NewContextKey(in.BrandID, in.TargetType, in.TargetAssetID)
		agg := recomputeContext(key, copies, flags)

		if _, err := m.contexts.ReplaceOne(sc,
			bson.D{{Key: "_id", Value: key.DocID()}},
			agg,
			options.Replace().SetUpsert(true),
		); err != nil {
			return fmt.Errorf("replace target context: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// copyStats переносит денормализованные счётчики реакций на целевой ассет.
// Отсутствие статистики у источника — не ошибка.
func (m *Mongo) copyStats(sc mongodriver.SessionContext, sourceID, targetID string) error {
	var stats models.InteractionStats
	if err := m.stats.FindOne(sc, bson.D{{Key: "_id", Value: sourceID}}).Decode(&stats); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil
		}

		return fmt.Errorf("find source stats: %w", err)
	}

	stats.AssetID = targetID

	if _, err := m.stats.ReplaceOne(sc,
		bson.D{{Key: "_id", Value: targetID}},
		stats,
		options.Replace().SetUpsert(true),
	); err != nil {
		return fmt.Errorf("replace target stats: %w", err)
	}

	return nil
}

// copyInteractions переносит единичные реакции на целевой ассет с
// детерминированными id — повтор идемпотентен.
func (m *Mongo) copyInteractions(sc mongodriver.SessionContext, sourceID, targetID string) error {
	cur, err := m.interactions.Find(sc, bson.D{{Key: "assetId", Value: sourceID}})
	if err != nil {
		return fmt.Errorf("find source interactions: %w", err)
	}

	var src []models.UserInteraction
	if err := cur.All(sc, &src); err != nil {
		return fmt.Errorf("decode source interactions: %w", err)
	}

	for _, it := range src {
		it.ID = models.InteractionID(targetID, it.Kind, it.UserID)
		it.AssetID = targetID

		if _, err := m.interactions.ReplaceOne(sc,
			bson.D{{Key: "_id", Value: it.ID}},
			it,
			options.Replace().SetUpsert(true),
		); err != nil {
			return fmt.Errorf("replace interaction %s: %w", it.ID, err)
		}
	}

	return nil
}

// copyFlags переносит жалобы на скопированные комментарии: свежие id,
// перепривязка commentId по idmap. Возвращает вставленные копии.
func (m *Mongo) copyFlags(sc mongodriver.SessionContext, brandID string, idmap map[string]string) ([]models.CommentFlag, error) {
	if len(idmap) == 0 {
		return nil, nil
	}

	oldIDs := make([]string, 0, len(idmap))
	for old := range idmap {
		oldIDs = append(oldIDs, old)
	}

	cur, err := m.flags.Find(sc, bson.D{{Key: "commentId", Value: bson.D{{Key: "$in", Value: oldIDs}}}})
	if err != nil {
		return nil, fmt.Errorf("find source flags: %w", err)
	}

	var src []models.CommentFlag
	if err := cur.All(sc, &src); err != nil {
		return nil, fmt.Errorf("decode source flags: %w", err)
	}

	if len(src) == 0 {
		return nil, nil
	}

	copies := make([]models.CommentFlag, 0, len(src))
	docs := make([]interface{}, 0, len(src))
	for _, f := range src {
		f.ID = uuid.NewString()
		f.BrandID = brandID
		f.CommentID = idmap[f.CommentID]
		copies = append(copies, f)
		docs = append(docs, f)
	}

	if _, err := m.flags.InsertMany(sc, docs); err != nil {
		return nil, fmt.Errorf("insert copied flags: %w", err)
	}

	return copies, nil
}

// remapComments готовит копии комментариев под новый ключ контекста:
// свежие id, перелинковка parentId, отметка происхождения. Ответы на
// родителя вне переносимого набора опускаются.
func remapComments(src []models.Comment, key models.ContextKey, now string) ([]models.Comment, map[string]string) {
	idmap := make(map[string]string, len(src))
	for _, c := range src {
		idmap[c.ID] = primitive.NewObjectID().Hex()
	}

	out := make([]models.Comment, 0, len(src))
	for _, c := range src {
		if c.ParentID != "" {
			mapped, ok := idmap[c.ParentID]
			if !ok {
				continue
			}
			c.ParentID = mapped
		}

		copiedFrom := c.ID
		c.ID = idmap[copiedFrom]
		c.BrandID = key.BrandID
		c.ContextType = key.Type
		c.ContextID = key.ContextID
		c.CopiedFrom = copiedFrom
		c.CopiedAt = now

		out = append(out, c)
	}

	return out, idmap
}

// recomputeContext строит агрегат контекста с нуля по набору комментариев
// и жалоб — для путей, где данные появляются пачкой (copy/import), а не
// поштучными инкрементами.
func recomputeContext(key models.ContextKey, comments []models.Comment, flags []models.CommentFlag) *models.CommentContext {
	agg := models.EmptyContext(key)

	for _, c := range comments {
		agg.TotalComments++
		if c.Status != models.StatusDeleted {
			agg.ActiveComments++
		}

		if c.CreatedAt > agg.LastCommentAt {
			agg.LastCommentAt = c.CreatedAt
			agg.LastCommentBy = c.CreatedByName
		}
	}

	for _, f := range flags {
		agg.FlaggedComments++
		if f.Status == models.FlagResolved {
			agg.ResolvedComments++
		}
	}

	return agg
}

// ExportCampaign снимает переносимый слепок вовлечённости кампании:
// комментарии со всеми статусами, их жалобы и агрегат. Только чтение.
func (m *Mongo) ExportCampaign(ctx context.Context, key models.ContextKey) (*models.CampaignBundle, error) {
	const op = "storage/mongo/ExportCampaign"

	cur, err := m.comments.Find(ctx, contextFilter(key),
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: find comments: %w", op, err)
	}

	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("%s: decode comments: %w", op, err)
	}

	var flags []models.CommentFlag
	if len(comments) > 0 {
		ids := make([]string, 0, len(comments))
		for _, c := range comments {
			ids = append(ids, c.ID)
		}

		fcur, err := m.flags.Find(ctx, bson.D{{Key: "commentId", Value: bson.D{{Key: "$in", Value: ids}}}})
		if err != nil {
			return nil, fmt.Errorf("%s: find flags: %w", op, err)
		}

		if err := fcur.All(ctx, &flags); err != nil {
			return nil, fmt.Errorf("%s: decode flags: %w", op, err)
		}
	}

	agg, err := m.ContextByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.CampaignBundle{
		Comments: comments,
		Flags:    flags,
		Context:  *agg,
	}, nil
}

// ImportCampaign восстанавливает слепок под новым ключом кампании.
// Комментарии получают свежие id с перелинковкой parentId, жалобы —
// свежие id с перепривязкой к новым комментариям; агрегат пересчитывается
// по факту вставленного. Одна транзакция.
func (m *Mongo) ImportCampaign(ctx context.Context, key models.ContextKey, bundle models.CampaignBundle) error {
	const op = "storage/mongo/ImportCampaign"

	now := models.NowISO()

	err := m.withTxn(ctx, func(sc mongodriver.SessionContext) error {
		copies, idmap := remapComments(bundle.Comments, key, now)

		if len(copies) > 0 {
			docs := make([]interface{}, 0, len(copies))
			for i := range copies {
				docs = append(docs, copies[i])
			}

			if _, err := m.comments.InsertMany(sc, docs); err != nil {
				return fmt.Errorf("insert comments: %w", err)
			}
		}

		flags := make([]models.CommentFlag, 0, len(bundle.Flags))
		if len(bundle.Flags) > 0 {
			docs := make([]interface{}, 0, len(bundle.Flags))
			for _, f := range bundle.Flags {
				mapped, ok := idmap[f.CommentID]
				if !ok {
					// Жалоба на комментарий вне слепка; переносить некуда.
					continue
				}

				f.ID = uuid.NewString()
				f.BrandID = key.BrandID
				f.CommentID = mapped
				flags = append(flags, f)
				docs = append(docs, f)
			}

			if len(docs) > 0 {
				if _, err := m.flags.InsertMany(sc, docs); err != nil {
					return fmt.Errorf("insert flags: %w", err)
				}
			}
		}

		agg := recomputeContext(key, copies, flags)

		if _, err := m.contexts.ReplaceOne(sc,
			bson.D{{Key: "_id", Value: key.DocID()}},
			agg,
			options.Replace().SetUpsert(true),
		); err != nil {
			return fmt.Errorf("replace context: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
