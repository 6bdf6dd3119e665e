package patron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/borrowing"
	"github.com/xiebiao/library/internal/domain/patron"
	"github.com/xiebiao/library/pkg/cache"
)

// fakePatronRepo 内存读者仓储
type fakePatronRepo struct {
	patrons map[uint]*patron.Patron
	nextID  uint
}

func newFakePatronRepo() *fakePatronRepo {
	return &fakePatronRepo{patrons: make(map[uint]*patron.Patron), nextID: 1}
}

func (r *fakePatronRepo) Create(ctx context.Context, p *patron.Patron) error {
	p.ID = r.nextID
	r.nextID++
	c := *p
	r.patrons[p.ID] = &c
	return nil
}

func (r *fakePatronRepo) FindByID(ctx context.Context, id uint) (*patron.Patron, error) {
	p, ok := r.patrons[id]
	if !ok {
		return nil, patron.ErrPatronNotFound
	}
	c := *p
	return &c, nil
}

func (r *fakePatronRepo) ExistsByID(ctx context.Context, id uint) (bool, error) {
	_, ok := r.patrons[id]
	return ok, nil
}

func (r *fakePatronRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, p := range r.patrons {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePatronRepo) Update(ctx context.Context, p *patron.Patron) error {
	if _, ok := r.patrons[p.ID]; !ok {
		return patron.ErrPatronNotFound
	}
	c := *p
	r.patrons[p.ID] = &c
	return nil
}

func (r *fakePatronRepo) Delete(ctx context.Context, id uint) error {
	if _, ok := r.patrons[id]; !ok {
		return patron.ErrPatronNotFound
	}
	delete(r.patrons, id)
	return nil
}

func (r *fakePatronRepo) FindAll(ctx context.Context) ([]*patron.Patron, error) {
	out := make([]*patron.Patron, 0, len(r.patrons))
	for _, p := range r.patrons {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

// fakeRecordRepo 借阅记录仓储,提供预置的历史和在借状态
type fakeRecordRepo struct {
	activePatrons map[uint]bool
	history       map[uint][]*borrowing.HistoryEntry
	historyCalls  int
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{
		activePatrons: make(map[uint]bool),
		history:       make(map[uint][]*borrowing.HistoryEntry),
	}
}

func (r *fakeRecordRepo) Create(ctx context.Context, rec *borrowing.Record) error { return nil }
func (r *fakeRecordRepo) Update(ctx context.Context, rec *borrowing.Record) error { return nil }

func (r *fakeRecordRepo) ExistsActiveByBookID(ctx context.Context, bookID uint) (bool, error) {
	return false, nil
}

func (r *fakeRecordRepo) ExistsActiveByPatronID(ctx context.Context, patronID uint) (bool, error) {
	return r.activePatrons[patronID], nil
}

func (r *fakeRecordRepo) FindActiveForUpdate(ctx context.Context, bookID, patronID uint) (*borrowing.Record, error) {
	return nil, borrowing.ErrLoanNotFound
}

func (r *fakeRecordRepo) HistoryByPatronID(ctx context.Context, patronID uint) ([]*borrowing.HistoryEntry, error) {
	r.historyCalls++
	entries, ok := r.history[patronID]
	if !ok {
		return make([]*borrowing.HistoryEntry, 0), nil
	}
	return entries, nil
}

type noopTxManager struct{}

func (noopTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type patronFixture struct {
	repo       *fakePatronRepo
	recordRepo *fakeRecordRepo
	cache      *cache.Memory
	createUC   *CreatePatronUseCase
	queryUC    *QueryPatronsUseCase
	updateUC   *UpdatePatronUseCase
	deleteUC   *DeletePatronUseCase
}

func newPatronFixture() *patronFixture {
	f := &patronFixture{
		repo:       newFakePatronRepo(),
		recordRepo: newFakeRecordRepo(),
		cache:      cache.NewMemory(),
	}
	svc := patron.NewService(f.repo)
	f.createUC = NewCreatePatronUseCase(svc, f.cache)
	f.queryUC = NewQueryPatronsUseCase(svc, f.repo, f.recordRepo, f.cache)
	f.updateUC = NewUpdatePatronUseCase(svc, f.cache)
	f.deleteUC = NewDeletePatronUseCase(f.repo, f.recordRepo, noopTxManager{}, f.cache)
	return f
}

func validPatronReq() CreatePatronRequest {
	return CreatePatronRequest{
		Name:        "张三",
		ContactInfo: "13800138000",
		Email:       "zhangsan@example.com",
	}
}

// TestCreatePatron 测试登记读者
func TestCreatePatron(t *testing.T) {
	t.Run("正常登记", func(t *testing.T) {
		f := newPatronFixture()

		resp, err := f.createUC.Execute(context.Background(), validPatronReq())
		require.NoError(t, err)
		assert.NotZero(t, resp.ID)
	})

	t.Run("邮箱重复", func(t *testing.T) {
		f := newPatronFixture()

		_, err := f.createUC.Execute(context.Background(), validPatronReq())
		require.NoError(t, err)

		req := validPatronReq()
		req.Name = "李四"
		_, err = f.createUC.Execute(context.Background(), req)
		require.ErrorIs(t, err, patron.ErrEmailDuplicate)
	})

	t.Run("邮箱格式不正确", func(t *testing.T) {
		f := newPatronFixture()

		req := validPatronReq()
		req.Email = "not-an-email"
		_, err := f.createUC.Execute(context.Background(), req)
		require.ErrorIs(t, err, patron.ErrInvalidEmail)
	})
}

// TestUpdatePatron_EmailCollision 更新时邮箱与其他读者冲突
func TestUpdatePatron_EmailCollision(t *testing.T) {
	f := newPatronFixture()
	ctx := context.Background()

	first, err := f.createUC.Execute(ctx, validPatronReq())
	require.NoError(t, err)

	second := validPatronReq()
	second.Email = "lisi@example.com"
	_, err = f.createUC.Execute(ctx, second)
	require.NoError(t, err)

	_, err = f.updateUC.Execute(ctx, first.ID, UpdatePatronRequest{
		Name:        first.Name,
		ContactInfo: first.ContactInfo,
		Email:       "lisi@example.com",
	})
	require.ErrorIs(t, err, patron.ErrEmailDuplicate)
}

// TestDeletePatron 测试注销读者及在借守卫
func TestDeletePatron(t *testing.T) {
	t.Run("正常注销", func(t *testing.T) {
		f := newPatronFixture()
		ctx := context.Background()

		created, err := f.createUC.Execute(ctx, validPatronReq())
		require.NoError(t, err)

		require.NoError(t, f.deleteUC.Execute(ctx, created.ID))

		_, err = f.repo.FindByID(ctx, created.ID)
		require.ErrorIs(t, err, patron.ErrPatronNotFound)
	})

	t.Run("有在借图书不能注销", func(t *testing.T) {
		f := newPatronFixture()
		ctx := context.Background()

		created, err := f.createUC.Execute(ctx, validPatronReq())
		require.NoError(t, err)

		f.recordRepo.activePatrons[created.ID] = true

		err = f.deleteUC.Execute(ctx, created.ID)
		require.ErrorIs(t, err, patron.ErrPatronHasLoan)

		_, err = f.repo.FindByID(ctx, created.ID)
		require.NoError(t, err, "守卫拒绝后读者应该还在")
	})

	t.Run("读者不存在", func(t *testing.T) {
		f := newPatronFixture()

		err := f.deleteUC.Execute(context.Background(), 999)
		require.ErrorIs(t, err, patron.ErrPatronNotFound)
	})
}

// TestPatronHistory 测试借阅历史查询
func TestPatronHistory(t *testing.T) {
	t.Run("读者不存在返回404", func(t *testing.T) {
		f := newPatronFixture()

		_, err := f.queryUC.History(context.Background(), 999)
		require.ErrorIs(t, err, patron.ErrPatronNotFound)
	})

	t.Run("没有历史返回空列表", func(t *testing.T) {
		f := newPatronFixture()
		ctx := context.Background()

		created, err := f.createUC.Execute(ctx, validPatronReq())
		require.NoError(t, err)

		entries, err := f.queryUC.History(ctx, created.ID)
		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})

	t.Run("历史按借出日期降序", func(t *testing.T) {
		f := newPatronFixture()
		ctx := context.Background()

		created, err := f.createUC.Execute(ctx, validPatronReq())
		require.NoError(t, err)

		// 仓储乱序返回也要排成降序
		now := time.Now()
		f.recordRepo.history[created.ID] = []*borrowing.HistoryEntry{
			{ID: 2, BookID: 2, BookTitle: "活着", PatronID: created.ID, BorrowDate: now.AddDate(0, 0, -30)},
			{ID: 3, BookID: 3, BookTitle: "边城", PatronID: created.ID, BorrowDate: now},
			{ID: 1, BookID: 1, BookTitle: "围城", PatronID: created.ID, BorrowDate: now.AddDate(0, 0, -60)},
		}

		entries, err := f.queryUC.History(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "边城", entries[0].BookTitle)
		assert.Equal(t, "活着", entries[1].BookTitle)
		assert.Equal(t, "围城", entries[2].BookTitle)
		for i := 1; i < len(entries); i++ {
			assert.False(t, entries[i-1].BorrowDate.Before(entries[i].BorrowDate),
				"第%d条早于第%d条", i-1, i)
		}
	})

	t.Run("历史命中缓存", func(t *testing.T) {
		f := newPatronFixture()
		ctx := context.Background()

		created, err := f.createUC.Execute(ctx, validPatronReq())
		require.NoError(t, err)

		now := time.Now()
		f.recordRepo.history[created.ID] = []*borrowing.HistoryEntry{
			{ID: 2, BookID: 1, BookTitle: "围城", PatronID: created.ID, BorrowDate: now},
			{ID: 1, BookID: 2, BookTitle: "活着", PatronID: created.ID, BorrowDate: now.AddDate(0, 0, -30)},
		}

		first, err := f.queryUC.History(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, first, 2)
		assert.Equal(t, "围城", first[0].BookTitle, "最近的借阅在前")

		// 第二次查询命中缓存,不再访问仓储
		calls := f.recordRepo.historyCalls
		second, err := f.queryUC.History(ctx, created.ID)
		require.NoError(t, err)
		assert.Len(t, second, 2)
		assert.Equal(t, calls, f.recordRepo.historyCalls, "缓存命中时不应再查仓储")
	})
}
