package database

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func findSort(sort bson.D) *options.FindOptions {
	return options.Find().SetSort(sort)
}

// toInt64 normalizes the numeric types the driver hands back from
// aggregation results
func toInt64(v any) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case primitive.Decimal128:
		big, _, err := n.BigInt()
		if err == nil && big != nil {
			return big.Int64()
		}
	}
	return 0
}
