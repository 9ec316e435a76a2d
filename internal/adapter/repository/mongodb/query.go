package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/strogmv/postapi/internal/port"
)

// matchNothing is a filter no document satisfies, used for malformed ids.
var matchNothing = bson.M{"_id": bson.M{"$exists": false}}

var sortFields = map[string]string{
	port.SortByID:    "_id",
	port.SortByTitle: "title",
	port.SortByDesc:  "desc",
	port.SortByImage: "image",
}

func tagFilter(tagID string) bson.M {
	if tagID == "" {
		return bson.M{}
	}
	oid, err := primitive.ObjectIDFromHex(tagID)
	if err != nil {
		return matchNothing
	}
	return bson.M{"tags": oid}
}

// searchFilter matches keyword literally and case-insensitively in title or desc.
func searchFilter(keyword string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
	return bson.M{
		"$or": bson.A{
			bson.M{"title": pattern},
			bson.M{"desc": pattern},
		},
	}
}

func sortSpec(field string, desc bool) bson.D {
	name, ok := sortFields[field]
	if !ok {
		name = "_id"
	}
	dir := 1
	if desc {
		dir = -1
	}
	spec := bson.D{{Key: name, Value: dir}}
	if name != "_id" {
		spec = append(spec, bson.E{Key: "_id", Value: 1})
	}
	return spec
}

func listOptions(q port.PostQuery) *options.FindOptions {
	opts := options.Find().SetSort(sortSpec(q.SortField, q.SortDesc))
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return opts
}
