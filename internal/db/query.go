package db

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListQuery carries the common list-endpoint parameters: case-insensitive
// substring search, pagination and an optional inclusive date range.
// A Limit of zero means no pagination (used by the analysis aggregator).
type ListQuery struct {
	Search    string
	Page      int64
	Limit     int64
	StartDate *time.Time
	EndDate   *time.Time
}

// searchFilter builds a $or regex filter over the given fields, or an empty
// filter when there is no search term.
func (q ListQuery) searchFilter(fields ...string) bson.M {
	filter := bson.M{}
	if q.Search != "" {
		or := make(bson.A, 0, len(fields))
		for _, f := range fields {
			or = append(or, bson.M{f: bson.M{"$regex": q.Search, "$options": "i"}})
		}
		filter["$or"] = or
	}
	if dateFilter := q.dateFilter(); len(dateFilter) > 0 {
		filter["date"] = dateFilter
	}
	return filter
}

func (q ListQuery) dateFilter() bson.M {
	rng := bson.M{}
	if q.StartDate != nil {
		rng["$gte"] = *q.StartDate
	}
	if q.EndDate != nil {
		rng["$lte"] = *q.EndDate
	}
	return rng
}

// findOptions applies pagination and the given sort order.
func (q ListQuery) findOptions(sort bson.D) *options.FindOptions {
	opts := options.Find().SetSort(sort)
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
		if q.Page > 1 {
			opts.SetSkip((q.Page - 1) * q.Limit)
		}
	}
	return opts
}
