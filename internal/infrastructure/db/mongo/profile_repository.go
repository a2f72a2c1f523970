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

const collectionProfiles = "profiles"

// ProfileRepository implements ports.ProfileRepository. Each method is one
// findAndModify round trip so concurrent writers never observe or overwrite
// a partially merged document.
type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(collectionProfiles)}
}

type mongoExperience struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Company     string             `bson:"company"`
	Location    string             `bson:"location,omitempty"`
	From        time.Time          `bson:"from"`
	To          *time.Time         `bson:"to,omitempty"`
	Current     bool               `bson:"current"`
	Description string             `bson:"description,omitempty"`
}

type mongoEducation struct {
	ID           primitive.ObjectID `bson:"_id"`
	School       string             `bson:"school"`
	Degree       string             `bson:"degree"`
	FieldOfStudy string             `bson:"fieldofstudy"`
	From         time.Time          `bson:"from"`
	To           *time.Time         `bson:"to,omitempty"`
	Current      bool               `bson:"current"`
	Description  string             `bson:"description,omitempty"`
}

type mongoProfile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	User           primitive.ObjectID `bson:"user"`
	Company        string             `bson:"company,omitempty"`
	Website        string             `bson:"website,omitempty"`
	Location       string             `bson:"location,omitempty"`
	Bio            string             `bson:"bio,omitempty"`
	Status         string             `bson:"status"`
	GithubUsername string             `bson:"githubusername,omitempty"`
	Skills         []string           `bson:"skills"`
	Social         map[string]string  `bson:"social,omitempty"`
	Experience     []mongoExperience  `bson:"experience"`
	Education      []mongoEducation   `bson:"education"`
	Date           time.Time          `bson:"date"`
}

func (mp *mongoProfile) toDomain() *domain.Profile {
	p := &domain.Profile{
		ID:             mp.ID.Hex(),
		UserID:         mp.User.Hex(),
		Company:        mp.Company,
		Website:        mp.Website,
		Location:       mp.Location,
		Bio:            mp.Bio,
		Status:         mp.Status,
		GithubUsername: mp.GithubUsername,
		Skills:         mp.Skills,
		Social:         mp.Social,
		Experience:     make([]domain.Experience, 0, len(mp.Experience)),
		Education:      make([]domain.Education, 0, len(mp.Education)),
		Date:           mp.Date.UTC(),
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	for _, e := range mp.Experience {
		p.Experience = append(p.Experience, domain.Experience{
			ID:          e.ID.Hex(),
			Title:       e.Title,
			Company:     e.Company,
			Location:    e.Location,
			From:        e.From.UTC(),
			To:          e.To,
			Current:     e.Current,
			Description: e.Description,
		})
	}
	for _, e := range mp.Education {
		p.Education = append(p.Education, domain.Education{
			ID:           e.ID.Hex(),
			School:       e.School,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			From:         e.From.UTC(),
			To:           e.To,
			Current:      e.Current,
			Description:  e.Description,
		})
	}
	return p
}

// Upsert merges fields into the user's profile in a single findAndModify.
// Only the keys present in fields are written.
func (r *ProfileRepository) Upsert(ctx context.Context, userID string, fields domain.ProfileFields) (*domain.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", domain.ErrUserNotFound)
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	return r.findOneAndUpdate(ctx, bson.M{"user": oid}, profileUpdate(fields, time.Now().UTC()), opts)
}

// profileUpdate builds the update document for Upsert. Insert-only defaults
// go to $setOnInsert so they never clobber an existing profile.
func profileUpdate(f domain.ProfileFields, now time.Time) bson.M {
	set := bson.M{}
	setString := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	setString("company", f.Company)
	setString("website", f.Website)
	setString("location", f.Location)
	setString("bio", f.Bio)
	setString("status", f.Status)
	setString("githubusername", f.GithubUsername)
	if f.Skills != nil {
		set["skills"] = f.Skills
	}
	if f.Social != nil {
		set["social"] = f.Social
	}

	onInsert := bson.M{
		"date":       now,
		"experience": bson.A{},
		"education":  bson.A{},
	}
	if _, ok := set["skills"]; !ok {
		onInsert["skills"] = bson.A{}
	}

	update := bson.M{"$setOnInsert": onInsert}
	if len(set) > 0 {
		update["$set"] = set
	}
	return update
}

func (r *ProfileRepository) FindByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}

	var doc mongoProfile
	if err := r.coll.FindOne(ctx, bson.M{"user": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	var docs []mongoProfile
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	out := make([]*domain.Profile, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *ProfileRepository) DeleteByUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrProfileNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"user": oid})
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepository) PushExperience(ctx context.Context, userID string, exp domain.Experience) (*domain.Profile, error) {
	doc := mongoExperience{
		ID:          primitive.NewObjectID(),
		Title:       exp.Title,
		Company:     exp.Company,
		Location:    exp.Location,
		From:        exp.From,
		To:          exp.To,
		Current:     exp.Current,
		Description: exp.Description,
	}
	return r.updateByUser(ctx, userID, prepend("experience", doc))
}

func (r *ProfileRepository) PullExperience(ctx context.Context, userID, expID string) (*domain.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(expID)
	if err != nil {
		return r.FindByUser(ctx, userID)
	}
	return r.updateByUser(ctx, userID, bson.M{"$pull": bson.M{"experience": bson.M{"_id": oid}}})
}

func (r *ProfileRepository) PushEducation(ctx context.Context, userID string, edu domain.Education) (*domain.Profile, error) {
	doc := mongoEducation{
		ID:           primitive.NewObjectID(),
		School:       edu.School,
		Degree:       edu.Degree,
		FieldOfStudy: edu.FieldOfStudy,
		From:         edu.From,
		To:           edu.To,
		Current:      edu.Current,
		Description:  edu.Description,
	}
	return r.updateByUser(ctx, userID, prepend("education", doc))
}

func (r *ProfileRepository) PullEducation(ctx context.Context, userID, eduID string) (*domain.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(eduID)
	if err != nil {
		return r.FindByUser(ctx, userID)
	}
	return r.updateByUser(ctx, userID, bson.M{"$pull": bson.M{"education": bson.M{"_id": oid}}})
}

func (r *ProfileRepository) updateByUser(ctx context.Context, userID string, update bson.M) (*domain.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrProfileNotFound
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return r.findOneAndUpdate(ctx, bson.M{"user": oid}, update, opts)
}

func (r *ProfileRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M, opts *options.FindOneAndUpdateOptions) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoProfile
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes enforces one profile per user.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// prepend builds a $push that inserts doc at the front of field.
func prepend(field string, doc any) bson.M {
	return bson.M{"$push": bson.M{field: bson.M{"$each": bson.A{doc}, "$position": 0}}}
}
