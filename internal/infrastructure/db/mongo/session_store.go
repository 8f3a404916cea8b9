package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookshelf/storefront/internal/core/domain"
)

const (
	sessionCollection = "storefront_sessions"
	defaultSessionID  = "default"
)

// SessionStore keeps the token and user record in one document, so both
// halves always change together.
type SessionStore struct {
	coll *mongo.Collection
	id   string
}

// NewSessionStore stores the session under document id; an empty id selects
// "default".
func NewSessionStore(db *mongo.Database, id string) *SessionStore {
	if id == "" {
		id = defaultSessionID
	}
	return &SessionStore{coll: db.Collection(sessionCollection), id: id}
}

type mongoUser struct {
	ID       int64  `bson:"id"`
	FullName string `bson:"full_name,omitempty"`
	Email    string `bson:"email,omitempty"`
	Role     string `bson:"role,omitempty"`
}

type mongoSession struct {
	ID        string     `bson:"_id"`
	Token     string     `bson:"token"`
	User      *mongoUser `bson:"user,omitempty"`
	UpdatedAt int64      `bson:"updated_at"`
}

func (s *SessionStore) Load(ctx context.Context) (*domain.PersistedSession, error) {
	var doc mongoSession
	if err := s.coll.FindOne(ctx, bson.M{"_id": s.id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	if doc.Token == "" || doc.User == nil || doc.User.ID == 0 {
		return nil, domain.ErrCorruptSession
	}

	return &domain.PersistedSession{
		Token: doc.Token,
		User: domain.User{
			ID:       doc.User.ID,
			FullName: doc.User.FullName,
			Email:    doc.User.Email,
			Role:     domain.Role(doc.User.Role),
		},
	}, nil
}

func (s *SessionStore) Save(ctx context.Context, ps domain.PersistedSession) error {
	doc := mongoSession{
		ID:    s.id,
		Token: ps.Token,
		User: &mongoUser{
			ID:       ps.User.ID,
			FullName: ps.User.FullName,
			Email:    ps.User.Email,
			Role:     string(ps.User.Role),
		},
		UpdatedAt: time.Now().UTC().Unix(),
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": s.id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.id}); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
