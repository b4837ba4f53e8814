// Package mongo connects to the MongoDB deployment that can back the
// organization directory when tenants are not stored in PostgreSQL.
//
//	client, err := mongo.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Disconnect(ctx)
//	coll := client.Database(cfg.Database).Collection(orgdir.DefaultCollection)
//	dir := orgdir.NewMongoDirectory(coll)
//
// Config is populated from MONGODB_* environment variables.
package mongo
