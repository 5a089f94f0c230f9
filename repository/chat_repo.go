package repository

import (
	"context"
	"errors"

	"github.com/tieubaoca/docchat-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ChatRepo interface {
	CreateChat(ctx context.Context, chat *types.Chat) error
	GetChat(ctx context.Context, id string) (*types.Chat, error)
	ListChats(ctx context.Context, userID string) ([]types.Chat, error)
	PushMessage(ctx context.Context, chatID string, msg types.Message) error
	SetTitle(ctx context.Context, chatID, title string) error
	ClearMessages(ctx context.Context, chatID string) error
	DeleteChat(ctx context.Context, id string) error
}

type chatRepo struct {
	collection *mongo.Collection
}

func NewChatRepo(collection *mongo.Collection) ChatRepo {
	return &chatRepo{
		collection: collection,
	}
}

func (r *chatRepo) CreateChat(ctx context.Context, chat *types.Chat) error {
	if chat.ID == "" {
		chat.ID = bson.NewObjectID().Hex()
	}
	if chat.Messages == nil {
		chat.Messages = []types.Message{}
	}
	_, err := r.collection.InsertOne(ctx, chat)
	return err
}

func (r *chatRepo) GetChat(ctx context.Context, id string) (*types.Chat, error) {
	var chat types.Chat
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&chat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// ListChats returns the user's chats sorted newest-first.
func (r *chatRepo) ListChats(ctx context.Context, userID string) ([]types.Chat, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	chats := []types.Chat{}
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *chatRepo) PushMessage(ctx context.Context, chatID string, msg types.Message) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": chatID},
		bson.M{"$push": bson.M{"messages": msg}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *chatRepo) SetTitle(ctx context.Context, chatID, title string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": chatID},
		bson.M{"$set": bson.M{"title": title}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *chatRepo) ClearMessages(ctx context.Context, chatID string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": chatID},
		bson.M{"$set": bson.M{"messages": []types.Message{}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *chatRepo) DeleteChat(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
