package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// stubRepo 最小用户仓储桩
type stubRepo struct {
	users  map[string]*User
	nextID uint
}

func newStubRepo() *stubRepo {
	return &stubRepo{users: make(map[string]*User), nextID: 1}
}

func (r *stubRepo) Create(ctx context.Context, u *User) error {
	if _, ok := r.users[u.Email]; ok {
		return ErrEmailDuplicate
	}
	u.ID = r.nextID
	r.nextID++
	c := *u
	r.users[u.Email] = &c
	return nil
}

func (r *stubRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *stubRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

// TestRegister 测试用户注册
func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("正常注册", func(t *testing.T) {
		svc := NewService(newStubRepo())

		u, err := svc.Register(ctx, "zhangsan@example.com", "password123")
		require.NoError(t, err)
		assert.NotZero(t, u.ID)
		assert.Equal(t, RolePatron, u.Role, "注册默认为读者角色")
		assert.NotEqual(t, "password123", u.Password, "密码不得明文存储")
	})

	t.Run("邮箱格式不正确", func(t *testing.T) {
		svc := NewService(newStubRepo())
		_, err := svc.Register(ctx, "not-an-email", "password123")
		require.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("密码强度不足", func(t *testing.T) {
		svc := NewService(newStubRepo())

		weak := []string{
			"short1",               // 不足8位
			"onlyletters",          // 没有数字
			"12345678",             // 没有字母
			"toolongpassword123456", // 超过20位
		}
		for _, pwd := range weak {
			_, err := svc.Register(ctx, "zhangsan@example.com", pwd)
			require.ErrorIs(t, err, ErrWeakPassword, "密码 %q 应被拒绝", pwd)
		}
	})

	t.Run("邮箱重复", func(t *testing.T) {
		svc := NewService(newStubRepo())

		_, err := svc.Register(ctx, "zhangsan@example.com", "password123")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "zhangsan@example.com", "password456")
		require.ErrorIs(t, err, ErrEmailDuplicate)
	})
}

// TestLogin 测试用户登录
func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newStubRepo())

	_, err := svc.Register(ctx, "zhangsan@example.com", "password123")
	require.NoError(t, err)

	t.Run("正常登录", func(t *testing.T) {
		u, err := svc.Login(ctx, "zhangsan@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "zhangsan@example.com", u.Email)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(ctx, "zhangsan@example.com", "wrongpassword1")
		require.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("用户不存在", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "password123")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}
