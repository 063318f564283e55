package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jeanlaboratories/momentum/internal/auth"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// memberDoc — документ членства в коллекции brandMembers.
// Коллекция общая с платформой Momentum: сервис её только читает.
type memberDoc struct {
	BrandID     string `bson:"brandId"`
	UID         string `bson:"uid"`
	Role        string `bson:"role"`
	DisplayName string `bson:"displayName"`
}

// BrandMember возвращает членство пользователя в бренде или nil,
// если документа членства нет.
func (m *Mongo) BrandMember(ctx context.Context, brandID, uid string) (*auth.Member, error) {
	const op = "storage/mongo/BrandMember"

	filter := bson.D{
		{Key: "brandId", Value: strings.TrimSpace(brandID)},
		{Key: "uid", Value: strings.TrimSpace(uid)},
	}

	var doc memberDoc
	if err := m.members.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, nil
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &auth.Member{
		UID:         doc.UID,
		Role:        auth.Role(doc.Role),
		DisplayName: doc.DisplayName,
	}, nil
}

// RequireBrandAccess возвращает auth.ErrForbidden, если пользователь
// не является участником бренда.
func (m *Mongo) RequireBrandAccess(ctx context.Context, uid, brandID string) error {
	const op = "storage/mongo/RequireBrandAccess"

	member, err := m.BrandMember(ctx, brandID, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if member == nil {
		return fmt.Errorf("%s: %w", op, auth.ErrForbidden)
	}

	return nil
}

// RequireBrandRole возвращает auth.ErrForbidden, если пользователь
// не состоит в бренде либо его роль отличается от требуемой.
func (m *Mongo) RequireBrandRole(ctx context.Context, uid, brandID string, role auth.Role) error {
	const op = "storage/mongo/RequireBrandRole"

	member, err := m.BrandMember(ctx, brandID, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if member == nil || member.Role != role {
		return fmt.Errorf("%s: %w", op, auth.ErrForbidden)
	}

	return nil
}
