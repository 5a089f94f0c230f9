package repository

import (
	"context"

	"github.com/tieubaoca/docchat-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type PDFRepo interface {
	CreatePDF(ctx context.Context, pdf *types.PDF) error
	ListByChat(ctx context.Context, userID, chatID string) ([]types.PDF, error)
	DeleteByChat(ctx context.Context, chatID string) error
}

type pdfRepo struct {
	collection *mongo.Collection
}

func NewPDFRepo(collection *mongo.Collection) PDFRepo {
	return &pdfRepo{
		collection: collection,
	}
}

func (r *pdfRepo) CreatePDF(ctx context.Context, pdf *types.PDF) error {
	if pdf.ID == "" {
		pdf.ID = bson.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, pdf)
	return err
}

func (r *pdfRepo) ListByChat(ctx context.Context, userID, chatID string) ([]types.PDF, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID, "chat_id": chatID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	pdfs := []types.PDF{}
	if err := cursor.All(ctx, &pdfs); err != nil {
		return nil, err
	}
	return pdfs, nil
}

// DeleteByChat removes every PDF scoped to the chat, used by the cascade
// when a chat is deleted.
func (r *pdfRepo) DeleteByChat(ctx context.Context, chatID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"chat_id": chatID})
	return err
}
