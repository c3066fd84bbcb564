package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"habitat-portal-backend/internal/domain"
	"habitat-portal-backend/internal/logger"
	"habitat-portal-backend/internal/repository"
)

type userRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) col() *firestore.CollectionRef {
	return r.client.Collection(colUsers)
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	logger.StoreCall("CREATE", colUsers, "email", user.Email, "building_id", user.BuildingID)
	ref := r.col().NewDoc()
	_, err := ref.Set(ctx, user)
	logger.StoreResult("CREATE", colUsers, err, "id", ref.ID)
	if err != nil {
		return mapErr("create user", err)
	}
	user.ID = ref.ID
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr("get user", err)
	}
	return snapToUser(snap)
}

func (r *userRepository) GetByAuthUID(ctx context.Context, uid string) (*domain.User, error) {
	it := r.col().Where("uid", "==", uid).Limit(1).Documents(ctx)
	defer it.Stop()

	snap, err := it.Next()
	if err == iterator.Done {
		return nil, domain.WrapError(domain.ErrNotFound, "no user for uid %s", uid)
	}
	if err != nil {
		return nil, mapErr("get user by uid", err)
	}
	return snapToUser(snap)
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	it := r.col().Documents(ctx)
	defer it.Stop()

	var users []domain.User
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr("list users", err)
		}
		u, err := snapToUser(snap)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	logger.StoreCall("UPDATE", colUsers, "id", user.ID)
	// Password never lives here and the provider uid is written once at
	// creation; a full Set would be able to clobber it, so update the
	// mutable profile fields only.
	_, err := r.col().Doc(user.ID).Update(ctx, []firestore.Update{
		{Path: "nombreApellido", Value: user.Name},
		{Path: "email", Value: user.Email},
		{Path: "telefono", Value: user.Phone},
		{Path: "rol", Value: user.Role},
		{Path: "edificioId", Value: user.BuildingID},
		{Path: "unidad", Value: user.Unit},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	logger.StoreResult("UPDATE", colUsers, err, "id", user.ID)
	return mapErr("update user", err)
}

func (r *userRepository) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "estado", Value: active},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	return mapErr("set user active", err)
}

func snapToUser(snap *firestore.DocumentSnapshot) (*domain.User, error) {
	var u domain.User
	if err := snap.DataTo(&u); err != nil {
		return nil, domain.WrapError(domain.ErrUnknown, "decode user %s: %v", snap.Ref.ID, err)
	}
	u.ID = snap.Ref.ID
	return &u, nil
}
