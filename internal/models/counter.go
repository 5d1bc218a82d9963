package models

// Counter tracks the next sequential id for a collection. A single document
// per sequence lives in the counters collection; order ids come from the
// "orders" counter, incremented inside the checkout transaction.
type Counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}
