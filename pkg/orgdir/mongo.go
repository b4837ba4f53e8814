package orgdir

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DefaultCollection is the MongoDB collection holding organizations.
const DefaultCollection = "organizations"

type organizationDoc struct {
	ID string `bson:"_id"`
}

// MongoDirectory resolves organizations from a MongoDB collection whose
// documents carry "_id", "tenant_domain" and "status" fields.
type MongoDirectory struct {
	coll *mongo.Collection
}

func NewMongoDirectory(coll *mongo.Collection) *MongoDirectory {
	return &MongoDirectory{coll: coll}
}

func (d *MongoDirectory) ResolveOrganizationID(ctx context.Context, tenantDomain string) (string, error) {
	filter := bson.D{
		{Key: "tenant_domain", Value: normalizeDomain(tenantDomain)},
		{Key: "status", Value: "ACTIVE"},
	}
	opts := options.FindOne().SetProjection(bson.D{{Key: "_id", Value: 1}})

	var doc organizationDoc
	err := d.coll.FindOne(ctx, filter, opts).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return "", fmt.Errorf("%w: %q", ErrOrganizationNotFound, tenantDomain)
	case err != nil:
		return "", errors.Join(ErrLookupFailed, err)
	}
	return doc.ID, nil
}
