package mongo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jeanlaboratories/momentum/internal/auth"
	"github.com/jeanlaboratories/momentum/internal/config"
	"github.com/jeanlaboratories/momentum/internal/models"
	"github.com/jeanlaboratories/momentum/internal/storage"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
)

// testTimeout — общий дедлайн на операции с БД в тестах.
const testTimeout = 15 * time.Second

// TestMain запускает MongoDB в контейнере один раз на весь пакет тестов.
// Транзакции требуют replica set, поэтому контейнер стартует с --replSet
// и инициируется через mongosh; адрес прокидывается в ENV DATABASE_URL
// (directConnection=true, т.к. узел один), а каждая спецификация создаёт
// свою БД с уникальным именем (см. newTestConfig).
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7.0",
		ExposedPorts: []string{"27017/tcp"},
		Cmd:          []string{"--replSet", "rs0", "--bind_ip_all"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
	}

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})

	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	// Инициализация replica set из одного узла.
	if _, _, err := mongoC.Exec(ctx, []string{"mongosh", "--quiet", "--eval", "rs.initiate()"}); err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to initiate replica set: %v\n", err)
		os.Exit(1)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}

	_ = os.Setenv("DATABASE_URL", fmt.Sprintf("mongodb://%s:%s", host, port.Port()))

	// Replica set выбирает primary не мгновенно.
	time.Sleep(3 * time.Second)

	code := m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

// newTestConfig создаёт конфиг с отдельной тестовой БД.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	baseURL := os.Getenv("DATABASE_URL")
	if baseURL == "" {
		baseURL = "mongodb://localhost:27017"
	}

	dbName := "momentum_test_" + uuid.NewString()

	return &config.Config{
		DB: config.DBConfig{
			URL: baseURL + "/" + dbName + "?directConnection=true",
		},
		Limits: config.LimitsConfig{
			Default:       2,
			Max:           100,
			ThreadReplies: 2,
			ReplyScanCap:  100,
			EditWindow:    15 * time.Minute,
			NotesMax:      500,
		},
	}
}

// mustNewMongo подключается к тестовой БД и регистрирует очистку.
// Вне интеграционного режима тест пропускается.
func mustNewMongo(t *testing.T, cfg *config.Config) *Mongo {
	t.Helper()

	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("set GO_TEST_INTEGRATION to run MongoDB integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	m, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("cannot connect to MongoDB in container: %v (DATABASE_URL=%s)", err, cfg.DB.URL)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		_ = m.db.Drop(ctx)
		_ = m.Close(ctx)
	})

	return m
}

func testCtx(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	t.Cleanup(cancel)

	return ctx
}

// rootComment — типовой корневой комментарий кампании бренда.
func rootComment(brandID, campaignID, body string) models.Comment {
	return models.Comment{
		BrandID:       brandID,
		ContextType:   models.ContextCampaign,
		ContextID:     campaignID,
		Body:          body,
		CreatedBy:     uuid.NewString(),
		CreatedByName: "tester",
	}
}

// TestEncodeDecodeCursor — encode/decode должны быть взаимно обратимыми.
func TestEncodeDecodeCursor(t *testing.T) {
	createdAt := models.NowISO()
	id := "65e0a0c9fd2f000000000001"

	gotAt, gotID, err := decodeCursor(encodeCursor(createdAt, id))
	if err != nil {
		t.Fatalf("decodeCursor error: %v", err)
	}

	if gotAt != createdAt || gotID != id {
		t.Fatalf("cursor roundtrip mismatch: got (%q, %q)", gotAt, gotID)
	}
}

// TestDecodeCursor_Invalid — битые токены отклоняются.
func TestDecodeCursor_Invalid(t *testing.T) {
	for _, token := range []string{"%%%", "bm90LWEtY3Vyc29y", ""} {
		if _, _, err := decodeCursor(token); err == nil {
			t.Errorf("decodeCursor(%q): want error", token)
		}
	}
}

// TestLimitOrDefault — граничные случаи и дефолт для размера страницы.
func TestLimitOrDefault(t *testing.T) {
	cfg := &config.Config{
		Limits: config.LimitsConfig{Default: 10, Max: 50},
	}

	tests := []struct {
		name string
		in   int32
		want int
	}{
		{"zero->default", 0, 10},
		{"negative->default", -5, 10},
		{"less-than-max", 25, 25},
		{"more-than-max->cap", 200, 50},
	}

	for _, tt := range tests {
		if got := limitOrDefault(cfg, tt.in); got != tt.want {
			t.Errorf("%s: want %d, got %d", tt.name, tt.want, got)
		}
	}
}

// TestCreateRootComment_SetsDefaultsAndBumpsContext — создание корневого
// комментария: вычисляемые поля и агрегат контекста.
func TestCreateRootComment_SetsDefaultsAndBumpsContext(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	campaignID := uuid.NewString()

	out, err := m.CreateComment(ctx, rootComment("brand-1", campaignID, "hello"))
	if err != nil {
		t.Fatalf("CreateComment(root) error: %v", err)
	}

	if out.ID == "" {
		t.Fatalf("expected generated ID")
	}

	if out.Status != models.StatusActive {
		t.Fatalf("status = %q, want active", out.Status)
	}

	if out.CreatedAt == "" || out.ReplyCount != 0 || out.FlagCount != 0 {
		t.Fatalf("bad defaults: %+v", out)
	}

	agg, err := m.ContextByKey(ctx, out.Key())
	if err != nil {
		t.Fatalf("ContextByKey error: %v", err)
	}

	if agg.TotalComments != 1 || agg.ActiveComments != 1 {
		t.Fatalf("aggregate = %+v, want total=1 active=1", agg)
	}

	if agg.LastCommentAt != out.CreatedAt || agg.LastCommentBy != out.CreatedByName {
		t.Fatalf("aggregate lastComment = (%q, %q)", agg.LastCommentAt, agg.LastCommentBy)
	}
}

// TestCreateReply_IncrementsReplyCount — ответ поднимает replyCount родителя.
// TestCreateComment_ConcurrentSameContext — параллельные создания в один
// контекст: транзакции сериализуют конкурирующие $inc по общему документу
// агрегата (write-conflict ретраится внутри WithTransaction), потерянных
// обновлений нет.
func TestCreateComment_ConcurrentSameContext(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)

	const n = 8
	campaignID := uuid.NewString()

	errCh := make(chan error, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			_, err := m.CreateComment(ctx, rootComment("brand-1", campaignID, fmt.Sprintf("comment %d", i)))
			errCh <- err
		}(i)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			t.Fatalf("concurrent CreateComment error: %v", err)
		}
	}

	ctx := testCtx(t)

	agg, err := m.ContextByKey(ctx, models.NewContextKey("brand-1", models.ContextCampaign, campaignID))
	if err != nil {
		t.Fatalf("ContextByKey error: %v", err)
	}

	if agg.TotalComments != n || agg.ActiveComments != n {
		t.Fatalf("aggregate after %d concurrent creates = %+v", n, agg)
	}

	page, err := m.ListThreads(ctx, models.NewContextKey("brand-1", models.ContextCampaign, campaignID),
		models.ListParams{PageSize: n})
	if err != nil {
		t.Fatalf("ListThreads error: %v", err)
	}

	if len(page.Threads) != n {
		t.Fatalf("threads after concurrent creates = %d, want %d", len(page.Threads), n)
	}
}

func TestCreateReply_IncrementsReplyCount(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	campaignID := uuid.NewString()

	root, err := m.CreateComment(ctx, rootComment("brand-1", campaignID, "root"))
	if err != nil {
		t.Fatalf("CreateComment(root) error: %v", err)
	}

	reply := rootComment("brand-1", campaignID, "reply")
	reply.ParentID = root.ID

	if _, err := m.CreateComment(ctx, reply); err != nil {
		t.Fatalf("CreateComment(reply) error: %v", err)
	}

	parent, err := m.CommentByID(ctx, root.ID)
	if err != nil {
		t.Fatalf("CommentByID(root) error: %v", err)
	}

	if parent.ReplyCount != 1 {
		t.Fatalf("parent.ReplyCount = %d, want 1", parent.ReplyCount)
	}
}

// TestCreateReply_ParentValidation — отсутствующий родитель, ответ на ответ
// и родитель из чужого контекста отклоняются одинаково.
func TestCreateReply_ParentValidation(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	campaignID := uuid.NewString()

	root, err := m.CreateComment(ctx, rootComment("brand-1", campaignID, "root"))
	if err != nil {
		t.Fatalf("CreateComment(root) error: %v", err)
	}

	reply := rootComment("brand-1", campaignID, "reply")
	reply.ParentID = root.ID

	created, err := m.CreateComment(ctx, reply)
	if err != nil {
		t.Fatalf("CreateComment(reply) error: %v", err)
	}

	// Несуществующий родитель.
	orphan := rootComment("brand-1", campaignID, "orphan")
	orphan.ParentID = "65e0a0c9fd2f000000000000"
	if _, err := m.CreateComment(ctx, orphan); !errors.Is(err, storage.ErrParentNotFound) {
		t.Fatalf("missing parent: want ErrParentNotFound, got %v", err)
	}

	// Ответ на ответ — один уровень вложенности.
	nested := rootComment("brand-1", campaignID, "nested")
	nested.ParentID = created.ID
	if _, err := m.CreateComment(ctx, nested); !errors.Is(err, storage.ErrParentNotFound) {
		t.Fatalf("reply-to-reply: want ErrParentNotFound, got %v", err)
	}

	// Родитель принадлежит другому контексту.
	foreign := rootComment("brand-1", uuid.NewString(), "foreign")
	foreign.ParentID = root.ID
	if _, err := m.CreateComment(ctx, foreign); !errors.Is(err, storage.ErrParentNotFound) {
		t.Fatalf("cross-context parent: want ErrParentNotFound, got %v", err)
	}
}

// TestUpdateComment_RevisionHistoryOnce — история ревизий заполняется только
// первым редактированием.
func TestUpdateComment_RevisionHistoryOnce(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	c, err := m.CreateComment(ctx, rootComment("brand-1", uuid.NewString(), "original"))
	if err != nil {
		t.Fatalf("CreateComment error: %v", err)
	}

	rev := &models.Revision{Body: c.Body, EditedAt: c.CreatedAt, EditedBy: c.CreatedBy}

	first, err := m.UpdateComment(ctx, c.ID, "edit one", models.NowISO(), rev)
	if err != nil {
		t.Fatalf("UpdateComment(first) error: %v", err)
	}

	if first.Status != models.StatusEdited || first.Body != "edit one" {
		t.Fatalf("after first edit: %+v", first)
	}

	if len(first.RevisionHistory) != 1 || first.RevisionHistory[0].Body != "original" {
		t.Fatalf("revision history = %+v, want original snapshot", first.RevisionHistory)
	}

	second, err := m.UpdateComment(ctx, c.ID, "edit two", models.NowISO(),
		&models.Revision{Body: "edit one", EditedAt: first.EditedAt, EditedBy: c.CreatedBy})
	if err != nil {
		t.Fatalf("UpdateComment(second) error: %v", err)
	}

	if len(second.RevisionHistory) != 1 || second.RevisionHistory[0].Body != "original" {
		t.Fatalf("revision history overwritten: %+v", second.RevisionHistory)
	}
}

// TestSoftDeleteComment — сентинел в body, статус deleted, декремент
// activeComments; повторное удаление отклоняется без второго декремента.
func TestSoftDeleteComment(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	c, err := m.CreateComment(ctx, rootComment("brand-1", uuid.NewString(), "to be deleted"))
	if err != nil {
		t.Fatalf("CreateComment error: %v", err)
	}

	deleted, err := m.SoftDeleteComment(ctx, c.ID)
	if err != nil {
		t.Fatalf("SoftDeleteComment error: %v", err)
	}

	if deleted.Status != models.StatusDeleted || deleted.Body != models.DeletedBody {
		t.Fatalf("soft delete failed: status=%q body=%q", deleted.Status, deleted.Body)
	}

	agg, err := m.ContextByKey(ctx, c.Key())
	if err != nil {
		t.Fatalf("ContextByKey error: %v", err)
	}

	if agg.TotalComments != 1 || agg.ActiveComments != 0 {
		t.Fatalf("aggregate after delete = %+v, want total=1 active=0", agg)
	}

	if _, err := m.SoftDeleteComment(ctx, c.ID); !errors.Is(err, storage.ErrAlreadyDeleted) {
		t.Fatalf("second delete: want ErrAlreadyDeleted, got %v", err)
	}

	agg, err = m.ContextByKey(ctx, c.Key())
	if err != nil {
		t.Fatalf("ContextByKey error: %v", err)
	}

	if agg.ActiveComments != 0 {
		t.Fatalf("activeComments double-decremented: %d", agg.ActiveComments)
	}

	if _, err := m.SoftDeleteComment(ctx, "65e0a0c9fd2f000000000000"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("delete missing: want ErrNotFound, got %v", err)
	}
}

// TestContextByKey_EmptyDefault — отсутствующий агрегат читается как нулевой.
func TestContextByKey_EmptyDefault(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	key := models.NewContextKey("brand-1", models.ContextCampaign, uuid.NewString())

	agg, err := m.ContextByKey(ctx, key)
	if err != nil {
		t.Fatalf("ContextByKey error: %v", err)
	}

	if agg.ID != key.DocID() || agg.TotalComments != 0 || agg.ActiveComments != 0 {
		t.Fatalf("want zero aggregate, got %+v", agg)
	}
}

// TestListThreads_PaginationOrderAndVisibility — порядок DESC, курсорная
// пагинация с овер-фетчем, скрытие удалённых корней.
func TestListThreads_PaginationOrderAndVisibility(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	campaignID := uuid.NewString()
	key := models.NewContextKey("brand-1", models.ContextCampaign, campaignID)

	var ids []string
	for i := 0; i < 3; i++ {
		c, err := m.CreateComment(ctx, rootComment("brand-1", campaignID, fmt.Sprintf("root %d", i)))
		if err != nil {
			t.Fatalf("CreateComment(root %d) error: %v", i, err)
		}

		ids = append(ids, c.ID)
		time.Sleep(5 * time.Millisecond)
	}

	// Удалённый корень выпадает из выдачи.
	if _, err := m.SoftDeleteComment(ctx, ids[1]); err != nil {
		t.Fatalf("SoftDeleteComment error: %v", err)
	}

	p1, err := m.ListThreads(ctx, key, models.ListParams{PageSize: 1})
	if err != nil {
		t.Fatalf("ListThreads page1 error: %v", err)
	}

	if len(p1.Threads) != 1 || p1.Threads[0].Comment.ID != ids[2] {
		t.Fatalf("page1 = %+v, want newest root", p1.Threads)
	}

	if !p1.HasMore || p1.NextPageToken == "" {
		t.Fatalf("page1 must report more pages")
	}

	p2, err := m.ListThreads(ctx, key, models.ListParams{PageSize: 1, PageToken: p1.NextPageToken})
	if err != nil {
		t.Fatalf("ListThreads page2 error: %v", err)
	}

	if len(p2.Threads) != 1 || p2.Threads[0].Comment.ID != ids[0] {
		t.Fatalf("page2 skips deleted root: got %+v", p2.Threads)
	}

	if p2.HasMore {
		t.Fatalf("page2 must be the last page")
	}

	if _, err := m.ListThreads(ctx, key, models.ListParams{PageToken: "%%%"}); !errors.Is(err, storage.ErrInvalidCursor) {
		t.Fatalf("bad token: want ErrInvalidCursor, got %v", err)
	}
}

// TestListThreads_AttachesFirstReplies — к треду прикрепляются первые ответы
// в хронологическом порядке; hasMoreReplies учитывает replyCount.
func TestListThreads_AttachesFirstReplies(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	campaignID := uuid.NewString()
	key := models.NewContextKey("brand-1", models.ContextCampaign, campaignID)

	root, err := m.CreateComment(ctx, rootComment("brand-1", campaignID, "root"))
	if err != nil {
		t.Fatalf("CreateComment(root) error: %v", err)
	}

	// ThreadReplies=2 в тестовом конфиге; создаём три ответа.
	var replyIDs []string
	for i := 0; i < 3; i++ {
		r := rootComment("brand-1", campaignID, fmt.Sprintf("reply %d", i))
		r.ParentID = root.ID

		created, err := m.CreateComment(ctx, r)
		if err != nil {
			t.Fatalf("CreateComment(reply %d) error: %v", i, err)
		}

		replyIDs = append(replyIDs, created.ID)
		time.Sleep(5 * time.Millisecond)
	}

	page, err := m.ListThreads(ctx, key, models.ListParams{PageSize: 10})
	if err != nil {
		t.Fatalf("ListThreads error: %v", err)
	}

	if len(page.Threads) != 1 {
		t.Fatalf("threads = %d, want 1", len(page.Threads))
	}

	thread := page.Threads[0]
	if len(thread.Replies) != 2 {
		t.Fatalf("replies = %d, want 2 (thread_replies)", len(thread.Replies))
	}

	// Старые первыми.
	if thread.Replies[0].ID != replyIDs[0] || thread.Replies[1].ID != replyIDs[1] {
		t.Fatalf("replies out of order: %+v", thread.Replies)
	}

	if !thread.HasMoreReplies {
		t.Fatalf("want HasMoreReplies=true with 3 replies and thread_replies=2")
	}
}

// TestListReplies_StartAfterContinuation — продолжение по id последнего
// показанного ответа; неизвестный id перезапускает выдачу с начала.
func TestListReplies_StartAfterContinuation(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	campaignID := uuid.NewString()

	root, err := m.CreateComment(ctx, rootComment("brand-1", campaignID, "root"))
	if err != nil {
		t.Fatalf("CreateComment(root) error: %v", err)
	}

	var replyIDs []string
	for i := 0; i < 4; i++ {
		r := rootComment("brand-1", campaignID, fmt.Sprintf("reply %d", i))
		r.ParentID = root.ID

		created, err := m.CreateComment(ctx, r)
		if err != nil {
			t.Fatalf("CreateComment(reply %d) error: %v", i, err)
		}

		replyIDs = append(replyIDs, created.ID)
		time.Sleep(5 * time.Millisecond)
	}

	// Удалённый ответ не участвует в выдаче.
	if _, err := m.SoftDeleteComment(ctx, replyIDs[1]); err != nil {
		t.Fatalf("SoftDeleteComment error: %v", err)
	}

	p1, err := m.ListReplies(ctx, root.ID, 2, "")
	if err != nil {
		t.Fatalf("ListReplies page1 error: %v", err)
	}

	if len(p1.Items) != 2 || p1.Items[0].ID != replyIDs[0] || p1.Items[1].ID != replyIDs[2] {
		t.Fatalf("page1 = %+v, want [0, 2]", p1.Items)
	}

	if !p1.HasMore || p1.NextStartAfter != replyIDs[2] {
		t.Fatalf("page1 continuation = (%v, %q)", p1.HasMore, p1.NextStartAfter)
	}

	p2, err := m.ListReplies(ctx, root.ID, 2, p1.NextStartAfter)
	if err != nil {
		t.Fatalf("ListReplies page2 error: %v", err)
	}

	if len(p2.Items) != 1 || p2.Items[0].ID != replyIDs[3] || p2.HasMore {
		t.Fatalf("page2 = %+v hasMore=%v", p2.Items, p2.HasMore)
	}

	// Неизвестный курсор (удалённый ответ) -> выдача с начала.
	restart, err := m.ListReplies(ctx, root.ID, 2, replyIDs[1])
	if err != nil {
		t.Fatalf("ListReplies restart error: %v", err)
	}

	if len(restart.Items) != 2 || restart.Items[0].ID != replyIDs[0] {
		t.Fatalf("restart = %+v, want from beginning", restart.Items)
	}
}

// TestCreateFlag_CountersAndDuplicate — жалоба помечает комментарий и агрегат;
// вторая открытая жалоба той же пары отклоняется.
func TestCreateFlag_CountersAndDuplicate(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	c, err := m.CreateComment(ctx, rootComment("brand-1", uuid.NewString(), "spammy"))
	if err != nil {
		t.Fatalf("CreateComment error: %v", err)
	}

	flaggerID := uuid.NewString()
	flag := models.CommentFlag{
		CommentID:     c.ID,
		Reason:        models.ReasonSpam,
		FlaggedBy:     flaggerID,
		FlaggedByName: "reporter",
	}

	created, err := m.CreateFlag(ctx, flag)
	if err != nil {
		t.Fatalf("CreateFlag error: %v", err)
	}

	if created.ID == "" || created.Status != models.FlagOpen || created.BrandID != "brand-1" {
		t.Fatalf("flag defaults: %+v", created)
	}

	got, err := m.CommentByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("CommentByID error: %v", err)
	}

	if got.Status != models.StatusFlagged || got.FlagCount != 1 {
		t.Fatalf("comment after flag: status=%q flagCount=%d", got.Status, got.FlagCount)
	}

	agg, err := m.ContextByKey(ctx, c.Key())
	if err != nil {
		t.Fatalf("ContextByKey error: %v", err)
	}

	if agg.FlaggedComments != 1 {
		t.Fatalf("flaggedComments = %d, want 1", agg.FlaggedComments)
	}

	if _, err := m.CreateFlag(ctx, flag); !errors.Is(err, storage.ErrDuplicateFlag) {
		t.Fatalf("duplicate flag: want ErrDuplicateFlag, got %v", err)
	}

	// Другой пользователь флажит свободно.
	other := flag
	other.FlaggedBy = uuid.NewString()
	if _, err := m.CreateFlag(ctx, other); err != nil {
		t.Fatalf("CreateFlag(other user) error: %v", err)
	}

	missing := flag
	missing.CommentID = "65e0a0c9fd2f000000000000"
	missing.FlaggedBy = uuid.NewString()
	if _, err := m.CreateFlag(ctx, missing); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("flag missing comment: want ErrNotFound, got %v", err)
	}
}

// TestResolveFlag_Resolved — принятая жалоба скрывает комментарий и двигает
// resolvedComments; повторное решение отклоняется.
// TestCreateFlag_UnifiedContextKeepsBrandQueue — комментарий на unified-
// поверхности (image) сохраняет brandId, жалоба наследует его и попадает
// в очередь модерации этого бренда, где её можно разрешить.
func TestCreateFlag_UnifiedContextKeepsBrandQueue(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	c, err := m.CreateComment(ctx, models.Comment{
		BrandID:       "brand-1",
		ContextType:   models.ContextImage,
		ContextID:     uuid.NewString(),
		Body:          "rude remark",
		CreatedBy:     uuid.NewString(),
		CreatedByName: "viewer",
	})
	if err != nil {
		t.Fatalf("CreateComment error: %v", err)
	}

	if c.BrandID != "brand-1" {
		t.Fatalf("stored BrandID = %q, want brand-1", c.BrandID)
	}

	created, err := m.CreateFlag(ctx, models.CommentFlag{
		CommentID:     c.ID,
		Reason:        models.ReasonHarassment,
		FlaggedBy:     uuid.NewString(),
		FlaggedByName: "reporter",
	})
	if err != nil {
		t.Fatalf("CreateFlag error: %v", err)
	}

	if created.BrandID != "brand-1" {
		t.Fatalf("flag BrandID = %q, want brand-1", created.BrandID)
	}

	queue, err := m.ListFlags(ctx, "brand-1", models.FlagOpen, 10)
	if err != nil {
		t.Fatalf("ListFlags error: %v", err)
	}

	if len(queue) != 1 || queue[0].ID != created.ID {
		t.Fatalf("brand queue = %+v, want the unified-context flag", queue)
	}

	resolved, err := m.ResolveFlag(ctx, created.ID, storage.ReviewInput{
		Resolution:     models.ResolutionResolved,
		ReviewedBy:     uuid.NewString(),
		ReviewedByName: "manager",
	})
	if err != nil {
		t.Fatalf("ResolveFlag error: %v", err)
	}

	if resolved.Status != models.FlagResolved {
		t.Fatalf("flag status = %q, want resolved", resolved.Status)
	}

	hidden, err := m.CommentByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("CommentByID error: %v", err)
	}

	if hidden.Status != models.StatusHidden {
		t.Fatalf("comment status = %q, want hidden", hidden.Status)
	}
}

func TestResolveFlag_Resolved(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	c, err := m.CreateComment(ctx, rootComment("brand-1", uuid.NewString(), "bad"))
	if err != nil {
		t.Fatalf("CreateComment error: %v", err)
	}

	flag, err := m.CreateFlag(ctx, models.CommentFlag{
		CommentID:     c.ID,
		Reason:        models.ReasonHarassment,
		FlaggedBy:     uuid.NewString(),
		FlaggedByName: "reporter",
	})
	if err != nil {
		t.Fatalf("CreateFlag error: %v", err)
	}

	review := storage.ReviewInput{
		Resolution:      models.ResolutionResolved,
		ReviewedBy:      uuid.NewString(),
		ReviewedByName:  "moderator",
		ResolutionNotes: "confirmed",
	}

	closed, err := m.ResolveFlag(ctx, flag.ID, review)
	if err != nil {
		t.Fatalf("ResolveFlag error: %v", err)
	}

	if closed.Status != models.FlagResolved || closed.ReviewedAt == "" || closed.ResolutionNotes != "confirmed" {
		t.Fatalf("closed flag: %+v", closed)
	}

	got, err := m.CommentByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("CommentByID error: %v", err)
	}

	if got.Status != models.StatusHidden {
		t.Fatalf("comment status = %q, want hidden", got.Status)
	}

	agg, err := m.ContextByKey(ctx, c.Key())
	if err != nil {
		t.Fatalf("ContextByKey error: %v", err)
	}

	if agg.ResolvedComments != 1 {
		t.Fatalf("resolvedComments = %d, want 1", agg.ResolvedComments)
	}

	if _, err := m.ResolveFlag(ctx, flag.ID, review); !errors.Is(err, storage.ErrFlagNotOpen) {
		t.Fatalf("second resolve: want ErrFlagNotOpen, got %v", err)
	}

	if _, err := m.ResolveFlag(ctx, uuid.NewString(), review); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("resolve missing: want ErrNotFound, got %v", err)
	}
}

// TestResolveFlag_Dismissed — отклонённая жалоба по умолчанию оставляет
// комментарий flagged; с restore_on_dismiss статус восстанавливается.
func TestResolveFlag_Dismissed(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	c, err := m.CreateComment(ctx, rootComment("brand-1", uuid.NewString(), "fine actually"))
	if err != nil {
		t.Fatalf("CreateComment error: %v", err)
	}

	flag, err := m.CreateFlag(ctx, models.CommentFlag{
		CommentID:     c.ID,
		Reason:        models.ReasonOther,
		FlaggedBy:     uuid.NewString(),
		FlaggedByName: "reporter",
	})
	if err != nil {
		t.Fatalf("CreateFlag error: %v", err)
	}

	if _, err := m.ResolveFlag(ctx, flag.ID, storage.ReviewInput{
		Resolution: models.ResolutionDismissed,
		ReviewedBy: uuid.NewString(),
	}); err != nil {
		t.Fatalf("ResolveFlag(dismiss) error: %v", err)
	}

	got, err := m.CommentByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("CommentByID error: %v", err)
	}

	if got.Status != models.StatusFlagged {
		t.Fatalf("default dismiss must keep flagged, got %q", got.Status)
	}
}

// TestResolveFlag_DismissedWithRestore — политика restore_on_dismiss
// возвращает комментарию дожалобный статус.
func TestResolveFlag_DismissedWithRestore(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Moderation.RestoreOnDismiss = true
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	c, err := m.CreateComment(ctx, rootComment("brand-1", uuid.NewString(), "fine"))
	if err != nil {
		t.Fatalf("CreateComment error: %v", err)
	}

	flag, err := m.CreateFlag(ctx, models.CommentFlag{
		CommentID:     c.ID,
		Reason:        models.ReasonOffTopic,
		FlaggedBy:     uuid.NewString(),
		FlaggedByName: "reporter",
	})
	if err != nil {
		t.Fatalf("CreateFlag error: %v", err)
	}

	if _, err := m.ResolveFlag(ctx, flag.ID, storage.ReviewInput{
		Resolution: models.ResolutionDismissed,
		ReviewedBy: uuid.NewString(),
	}); err != nil {
		t.Fatalf("ResolveFlag(dismiss) error: %v", err)
	}

	got, err := m.CommentByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("CommentByID error: %v", err)
	}

	if got.Status != models.StatusActive {
		t.Fatalf("restored status = %q, want active", got.Status)
	}
}

// TestListFlags_BrandAndStatusFilter — выдача жалоб бренда, новые первыми,
// с опциональным фильтром по статусу.
func TestListFlags_BrandAndStatusFilter(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	c1, err := m.CreateComment(ctx, rootComment("brand-1", uuid.NewString(), "one"))
	if err != nil {
		t.Fatalf("CreateComment error: %v", err)
	}

	c2, err := m.CreateComment(ctx, rootComment("brand-2", uuid.NewString(), "two"))
	if err != nil {
		t.Fatalf("CreateComment error: %v", err)
	}

	f1, err := m.CreateFlag(ctx, models.CommentFlag{
		CommentID: c1.ID, Reason: models.ReasonSpam, FlaggedBy: uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("CreateFlag(f1) error: %v", err)
	}

	if _, err := m.CreateFlag(ctx, models.CommentFlag{
		CommentID: c2.ID, Reason: models.ReasonSpam, FlaggedBy: uuid.NewString(),
	}); err != nil {
		t.Fatalf("CreateFlag(f2) error: %v", err)
	}

	flags, err := m.ListFlags(ctx, "brand-1", "", 10)
	if err != nil {
		t.Fatalf("ListFlags error: %v", err)
	}

	if len(flags) != 1 || flags[0].ID != f1.ID {
		t.Fatalf("brand-1 flags = %+v, want only f1", flags)
	}

	if _, err := m.ResolveFlag(ctx, f1.ID, storage.ReviewInput{
		Resolution: models.ResolutionResolved,
		ReviewedBy: uuid.NewString(),
	}); err != nil {
		t.Fatalf("ResolveFlag error: %v", err)
	}

	open, err := m.ListFlags(ctx, "brand-1", models.FlagOpen, 10)
	if err != nil {
		t.Fatalf("ListFlags(open) error: %v", err)
	}

	if len(open) != 0 {
		t.Fatalf("open flags after resolve = %+v, want none", open)
	}
}

// TestCopyEngagement — перенос статистики, реакций и комментариев с
// перелинковкой; повтор идемпотентен для реакций.
func TestCopyEngagement(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	sourceID := uuid.NewString()
	targetID := uuid.NewString()

	// Исходный ассет — unified-поверхность image.
	root, err := m.CreateComment(ctx, models.Comment{
		ContextType:   models.ContextImage,
		ContextID:     sourceID,
		Body:          "nice shot",
		CreatedBy:     uuid.NewString(),
		CreatedByName: "viewer",
	})
	if err != nil {
		t.Fatalf("CreateComment(root) error: %v", err)
	}

	reply := models.Comment{
		ContextType:   models.ContextImage,
		ContextID:     sourceID,
		ParentID:      root.ID,
		Body:          "agreed",
		CreatedBy:     uuid.NewString(),
		CreatedByName: "viewer2",
	}
	if _, err := m.CreateComment(ctx, reply); err != nil {
		t.Fatalf("CreateComment(reply) error: %v", err)
	}

	// Статистика и реакции источника.
	userID := uuid.NewString()
	if _, err := m.stats.InsertOne(ctx, models.InteractionStats{AssetID: sourceID, Loves: 3, Likes: 1}); err != nil {
		t.Fatalf("seed stats error: %v", err)
	}

	if _, err := m.interactions.InsertOne(ctx, models.UserInteraction{
		ID:        models.InteractionID(sourceID, models.InteractionLove, userID),
		AssetID:   sourceID,
		Kind:      models.InteractionLove,
		UserID:    userID,
		CreatedAt: models.NowISO(),
	}); err != nil {
		t.Fatalf("seed interaction error: %v", err)
	}

	in := storage.CopyEngagementInput{
		BrandID:       "brand-1",
		SourceAssetID: sourceID,
		TargetAssetID: targetID,
		TargetType:    models.ContextBrandProfile,
	}

	if err := m.CopyEngagement(ctx, in); err != nil {
		t.Fatalf("CopyEngagement error: %v", err)
	}

	// Повтор не задваивает реакции.
	if err := m.CopyEngagement(ctx, in); err != nil {
		t.Fatalf("CopyEngagement(repeat) error: %v", err)
	}

	n, err := m.interactions.CountDocuments(ctx, bson.D{{Key: "assetId", Value: targetID}})
	if err != nil {
		t.Fatalf("count interactions error: %v", err)
	}

	if n != 1 {
		t.Fatalf("target interactions = %d, want 1 (idempotent copy)", n)
	}

	var stats models.InteractionStats
	if err := m.stats.FindOne(ctx, bson.D{{Key: "_id", Value: targetID}}).Decode(&stats); err != nil {
		t.Fatalf("find target stats error: %v", err)
	}

	if stats.Loves != 3 || stats.Likes != 1 {
		t.Fatalf("target stats = %+v", stats)
	}

	key := models.NewContextKey("brand-1", models.ContextBrandProfile, targetID)

	page, err := m.ListThreads(ctx, key, models.ListParams{PageSize: 10})
	if err != nil {
		t.Fatalf("ListThreads(target) error: %v", err)
	}

	// Повтор копирования комментариев даёт свежие id, поэтому корней два;
	// важно, что перелинковка ответов сохранилась.
	if len(page.Threads) == 0 {
		t.Fatalf("no copied threads in target context")
	}

	thread := page.Threads[0]
	if thread.Comment.CopiedFrom == "" || thread.Comment.ContextType != models.ContextBrandProfile {
		t.Fatalf("copied root: %+v", thread.Comment)
	}

	if len(thread.Replies) != 1 || thread.Replies[0].ParentID != thread.Comment.ID {
		t.Fatalf("copied reply not relinked: %+v", thread.Replies)
	}
}

// TestExportImportCampaign — export -> import под новым ключом: свежие id,
// перелинковка ответов, перепривязанные жалобы, пересчитанный агрегат.
func TestExportImportCampaign(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	oldCampaign := uuid.NewString()
	oldKey := models.NewContextKey("brand-1", models.ContextCampaign, oldCampaign)

	root, err := m.CreateComment(ctx, rootComment("brand-1", oldCampaign, "root"))
	if err != nil {
		t.Fatalf("CreateComment(root) error: %v", err)
	}

	reply := rootComment("brand-1", oldCampaign, "reply")
	reply.ParentID = root.ID
	if _, err := m.CreateComment(ctx, reply); err != nil {
		t.Fatalf("CreateComment(reply) error: %v", err)
	}

	deletedRoot, err := m.CreateComment(ctx, rootComment("brand-1", oldCampaign, "gone"))
	if err != nil {
		t.Fatalf("CreateComment(deleted) error: %v", err)
	}
	if _, err := m.SoftDeleteComment(ctx, deletedRoot.ID); err != nil {
		t.Fatalf("SoftDeleteComment error: %v", err)
	}

	if _, err := m.CreateFlag(ctx, models.CommentFlag{
		CommentID: root.ID, Reason: models.ReasonSpam, FlaggedBy: uuid.NewString(),
	}); err != nil {
		t.Fatalf("CreateFlag error: %v", err)
	}

	bundle, err := m.ExportCampaign(ctx, oldKey)
	if err != nil {
		t.Fatalf("ExportCampaign error: %v", err)
	}

	if len(bundle.Comments) != 3 || len(bundle.Flags) != 1 {
		t.Fatalf("bundle = %d comments, %d flags; want 3/1", len(bundle.Comments), len(bundle.Flags))
	}

	newKey := models.NewContextKey("brand-1", models.ContextCampaign, uuid.NewString())

	if err := m.ImportCampaign(ctx, newKey, *bundle); err != nil {
		t.Fatalf("ImportCampaign error: %v", err)
	}

	agg, err := m.ContextByKey(ctx, newKey)
	if err != nil {
		t.Fatalf("ContextByKey error: %v", err)
	}

	// 3 комментария, из них 1 удалённый; 1 открытая жалоба.
	if agg.TotalComments != 3 || agg.ActiveComments != 2 || agg.FlaggedComments != 1 {
		t.Fatalf("imported aggregate = %+v", agg)
	}

	flags, err := m.ListFlags(ctx, "brand-1", models.FlagOpen, 10)
	if err != nil {
		t.Fatalf("ListFlags error: %v", err)
	}

	found := false
	for _, f := range flags {
		if f.CommentID != root.ID {
			found = true
		}
	}

	if !found {
		t.Fatalf("imported flag not rebound to a fresh comment id")
	}
}

func TestDirectory_Membership(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)
	ctx := testCtx(t)

	docs := []interface{}{
		bson.D{
			{Key: "brandId", Value: "brand-1"},
			{Key: "uid", Value: "uid-manager"},
			{Key: "role", Value: string(auth.RoleManager)},
			{Key: "displayName", Value: "Mary"},
		},
		bson.D{
			{Key: "brandId", Value: "brand-1"},
			{Key: "uid", Value: "uid-member"},
			{Key: "role", Value: string(auth.RoleMember)},
			{Key: "displayName", Value: "Bob"},
		},
	}

	if _, err := m.members.InsertMany(ctx, docs); err != nil {
		t.Fatalf("seed members error: %v", err)
	}

	member, err := m.BrandMember(ctx, "brand-1", "uid-manager")
	if err != nil {
		t.Fatalf("BrandMember error: %v", err)
	}

	if member == nil || member.Role != auth.RoleManager || member.DisplayName != "Mary" {
		t.Fatalf("BrandMember = %+v", member)
	}

	// Отсутствие документа членства — nil без ошибки.
	missing, err := m.BrandMember(ctx, "brand-1", "uid-stranger")
	if err != nil {
		t.Fatalf("BrandMember(stranger) error: %v", err)
	}

	if missing != nil {
		t.Fatalf("expected nil membership, got %+v", missing)
	}

	if err := m.RequireBrandAccess(ctx, "uid-member", "brand-1"); err != nil {
		t.Fatalf("RequireBrandAccess(member) error: %v", err)
	}

	if err := m.RequireBrandAccess(ctx, "uid-stranger", "brand-1"); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("RequireBrandAccess(stranger) = %v, want ErrForbidden", err)
	}

	if err := m.RequireBrandRole(ctx, "uid-manager", "brand-1", auth.RoleManager); err != nil {
		t.Fatalf("RequireBrandRole(manager) error: %v", err)
	}

	if err := m.RequireBrandRole(ctx, "uid-member", "brand-1", auth.RoleManager); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("RequireBrandRole(member) = %v, want ErrForbidden", err)
	}
}
