// auth описывает контракты внешних коллабораторов: аутентификацию сессии и
// членство/роли в брендах. Реализации живут вне этого сервиса (платформа
// Momentum); здесь — только узкие интерфейсы, которые потребляет ядро.
package auth

import (
	"context"
	"errors"
)

var (
	// ErrUnauthenticated — запрос без валидной сессии.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden — пользователь аутентифицирован, но не имеет доступа
	// к бренду либо не обладает требуемой ролью.
	ErrForbidden = errors.New("forbidden")
)

// Role — роль участника бренда.
type Role string

const (
	RoleManager Role = "MANAGER"
	RoleMember  Role = "MEMBER"
)

// User — аутентифицированный пользователь платформы.
type User struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// Member — членство пользователя в бренде.
type Member struct {
	UID         string
	Role        Role
	DisplayName string
}

// Authenticator разрешает пользователя текущего запроса.
// Возвращает ErrUnauthenticated при отсутствии валидной сессии.
type Authenticator interface {
	AuthenticatedUser(ctx context.Context) (*User, error)
}

// Directory — доступы и роли в брендах.
type Directory interface {
	// RequireBrandAccess возвращает ErrForbidden, если пользователь
	// не является участником бренда.
	RequireBrandAccess(ctx context.Context, uid, brandID string) error

	// BrandMember возвращает членство пользователя или nil, если его нет.
	BrandMember(ctx context.Context, brandID, uid string) (*Member, error)

	// RequireBrandRole возвращает ErrForbidden, если у пользователя
	// нет требуемой роли в бренде.
	RequireBrandRole(ctx context.Context, uid, brandID string, role Role) error
}
