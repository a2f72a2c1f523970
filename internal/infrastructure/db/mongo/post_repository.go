package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnector/social-api/internal/core/domain"
)

const collectionPosts = "posts"

// PostRepository implements ports.PostRepository. Conditional mutations put
// their precondition in the filter so the check and the write are a single
// atomic operation; an unmatched filter yields domain.ErrGuardFailed.
type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(collectionPosts)}
}

type mongoLike struct {
	User primitive.ObjectID `bson:"user"`
}

type mongoComment struct {
	ID     primitive.ObjectID `bson:"_id"`
	User   primitive.ObjectID `bson:"user"`
	Text   string             `bson:"text"`
	Name   string             `bson:"name"`
	Avatar string             `bson:"avatar"`
	Date   time.Time          `bson:"date"`
}

type mongoPost struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	User     primitive.ObjectID `bson:"user"`
	Text     string             `bson:"text"`
	Name     string             `bson:"name"`
	Avatar   string             `bson:"avatar"`
	Likes    []mongoLike        `bson:"likes"`
	Comments []mongoComment     `bson:"comments"`
	Date     time.Time          `bson:"date"`
}

func (mp *mongoPost) toDomain() *domain.Post {
	p := &domain.Post{
		ID:       mp.ID.Hex(),
		UserID:   mp.User.Hex(),
		Text:     mp.Text,
		Name:     mp.Name,
		Avatar:   mp.Avatar,
		Likes:    make([]domain.Like, 0, len(mp.Likes)),
		Comments: make([]domain.Comment, 0, len(mp.Comments)),
		Date:     mp.Date.UTC(),
	}
	for _, l := range mp.Likes {
		p.Likes = append(p.Likes, domain.Like{UserID: l.User.Hex()})
	}
	for _, c := range mp.Comments {
		p.Comments = append(p.Comments, domain.Comment{
			ID:     c.ID.Hex(),
			UserID: c.User.Hex(),
			Text:   c.Text,
			Name:   c.Name,
			Avatar: c.Avatar,
			Date:   c.Date.UTC(),
		})
	}
	return p
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	author, err := primitive.ObjectIDFromHex(post.UserID)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", domain.ErrUserNotFound)
	}

	doc := mongoPost{
		ID:       primitive.NewObjectID(),
		User:     author,
		Text:     post.Text,
		Name:     post.Name,
		Avatar:   post.Avatar,
		Likes:    []mongoLike{},
		Comments: []mongoComment{},
		Date:     post.Date,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	var doc mongoPost
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	var docs []mongoPost
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	out := make([]*domain.Post, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *PostRepository) DeleteOwned(ctx context.Context, postID, authorID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pid, uid, ok := parsePair(postID, authorID)
	if !ok {
		return domain.ErrGuardFailed
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": pid, "user": uid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGuardFailed
	}
	return nil
}

func (r *PostRepository) DeleteByAuthor(ctx context.Context, authorID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	uid, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return 0, nil
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"user": uid})
	if err != nil {
		return 0, fmt.Errorf("delete posts: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *PostRepository) AddLike(ctx context.Context, postID, userID string) (*domain.Post, error) {
	pid, uid, ok := parsePair(postID, userID)
	if !ok {
		return nil, domain.ErrGuardFailed
	}
	filter := bson.M{"_id": pid, "likes.user": bson.M{"$ne": uid}}
	return r.guardedUpdate(ctx, filter, prepend("likes", mongoLike{User: uid}))
}

func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) (*domain.Post, error) {
	pid, uid, ok := parsePair(postID, userID)
	if !ok {
		return nil, domain.ErrGuardFailed
	}
	filter := bson.M{"_id": pid, "likes.user": uid}
	return r.guardedUpdate(ctx, filter, bson.M{"$pull": bson.M{"likes": bson.M{"user": uid}}})
}

func (r *PostRepository) PushComment(ctx context.Context, postID string, c domain.Comment) (*domain.Post, error) {
	pid, uid, ok := parsePair(postID, c.UserID)
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	doc := mongoComment{
		ID:     primitive.NewObjectID(),
		User:   uid,
		Text:   c.Text,
		Name:   c.Name,
		Avatar: c.Avatar,
		Date:   c.Date,
	}
	post, err := r.guardedUpdate(ctx, bson.M{"_id": pid}, prepend("comments", doc))
	if errors.Is(err, domain.ErrGuardFailed) {
		return nil, domain.ErrPostNotFound
	}
	return post, err
}

func (r *PostRepository) PullOwnedComment(ctx context.Context, postID, commentID, authorID string) (*domain.Post, error) {
	pid, uid, ok := parsePair(postID, authorID)
	if !ok {
		return nil, domain.ErrGuardFailed
	}
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, domain.ErrGuardFailed
	}
	filter := bson.M{
		"_id":      pid,
		"comments": bson.M{"$elemMatch": bson.M{"_id": cid, "user": uid}},
	}
	return r.guardedUpdate(ctx, filter, bson.M{"$pull": bson.M{"comments": bson.M{"_id": cid}}})
}

func (r *PostRepository) guardedUpdate(ctx context.Context, filter, update bson.M) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoPost
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGuardFailed
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes supports the newest-first listing and cascade delete by author.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	})
	return err
}

func parsePair(a, b string) (primitive.ObjectID, primitive.ObjectID, bool) {
	x, err := primitive.ObjectIDFromHex(a)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	y, err := primitive.ObjectIDFromHex(b)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return x, y, true
}
