// Package mongo — MongoDB-адаптер хранилища engagement-сервиса.
//
// Атомарность мультидокументных операций обеспечивается транзакциями
// (требуется replica set); счётчики меняются только через $inc.
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jeanlaboratories/momentum/internal/config"
	"github.com/jeanlaboratories/momentum/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	commentsCollection     = "comments"
	contextsCollection     = "commentContexts"
	flagsCollection        = "commentFlags"
	interactionsCollection = "interactions"
	statsCollection        = "interactionStats"
	membersCollection      = "brandMembers"

	defaultDBName = "momentum"
)

// Mongo — тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	cfg          *config.Config
	client       *mongodriver.Client
	db           *mongodriver.Database
	comments     *mongodriver.Collection
	contexts     *mongodriver.Collection
	flags        *mongodriver.Collection
	interactions *mongodriver.Collection
	stats        *mongodriver.Collection
	members      *mongodriver.Collection
}

// New подключается к MongoDB, проверяет соединение, подготавливает коллекции
// и обеспечивает индексацию.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.DB.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	dbName := databaseFromURI(cfg.DB.URL)
	db := cli.Database(dbName)

	m := &Mongo{
		cfg:          cfg,
		client:       cli,
		db:           db,
		comments:     db.Collection(commentsCollection),
		contexts:     db.Collection(contextsCollection),
		flags:        db.Collection(flagsCollection),
		interactions: db.Collection(interactionsCollection),
		stats:        db.Collection(statsCollection),
		members:      db.Collection(membersCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

// Close закрывает соединение с MongoDB.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// withTxn выполняет fn в рамках одной mongo-транзакции.
// Единственная точка, через которую проходят все мультидокументные мутации.
func (m *Mongo) withTxn(ctx context.Context, fn func(sc mongodriver.SessionContext) error) error {
	sess, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongodriver.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})

	return err
}

// ensureIndexes создаёт индексы, необходимые сервису:
//   - выдача корневых комментариев контекста: (brandId, contextType, contextId,
//     parentId, createdAt desc);
//   - скан ответов одной ветки: (parentId);
//   - уникальность открытой жалобы на пару (commentId, flaggedBy) — частичный
//     уникальный индекс по status="open";
//   - выдача жалоб бренда: (brandId, status, createdAt desc);
//   - реакции ассета: (assetId).
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	commentIdx := []mongodriver.IndexModel{
		{
			Keys: bson.D{
				{Key: "brandId", Value: 1},
				{Key: "contextType", Value: 1},
				{Key: "contextId", Value: 1},
				{Key: "parentId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("context_parent_created_desc"),
		},
		{
			Keys:    bson.D{{Key: "parentId", Value: 1}},
			Options: options.Index().SetName("parent_scan"),
		},
	}

	if _, err := m.comments.Indexes().CreateMany(ctx, commentIdx); err != nil {
		return fmt.Errorf("mongo ensure comment indexes: %w", err)
	}

	flagIdx := []mongodriver.IndexModel{
		{
			Keys: bson.D{
				{Key: "commentId", Value: 1},
				{Key: "flaggedBy", Value: 1},
			},
			Options: options.Index().
				SetName("open_flag_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "status", Value: string(models.FlagOpen)}}),
		},
		{
			Keys: bson.D{
				{Key: "brandId", Value: 1},
				{Key: "status", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().SetName("brand_status_created_desc"),
		},
	}

	if _, err := m.flags.Indexes().CreateMany(ctx, flagIdx); err != nil {
		return fmt.Errorf("mongo ensure flag indexes: %w", err)
	}

	interactionIdx := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "assetId", Value: 1}},
			Options: options.Index().SetName("asset_interactions"),
		},
	}

	if _, err := m.interactions.Indexes().CreateMany(ctx, interactionIdx); err != nil {
		return fmt.Errorf("mongo ensure interaction indexes: %w", err)
	}

	memberIdx := []mongodriver.IndexModel{
		{
			Keys: bson.D{
				{Key: "brandId", Value: 1},
				{Key: "uid", Value: 1},
			},
			Options: options.Index().SetName("brand_member_unique").SetUnique(true),
		},
	}

	if _, err := m.members.Indexes().CreateMany(ctx, memberIdx); err != nil {
		return fmt.Errorf("mongo ensure member indexes: %w", err)
	}

	return nil
}

// contextFilter собирает фильтр комментариев одного контекста.
// Для unified-ключей brandId в фильтр не входит: вовлечённость по
// image/video едина для всех брендов.
func contextFilter(key models.ContextKey) bson.D {
	if key.Unified() {
		return bson.D{
			{Key: "contextType", Value: key.Type},
			{Key: "contextId", Value: key.ContextID},
		}
	}

	return bson.D{
		{Key: "brandId", Value: key.BrandID},
		{Key: "contextType", Value: key.Type},
		{Key: "contextId", Value: key.ContextID},
	}
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддаётся разбору, возвращает значение
// по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}
