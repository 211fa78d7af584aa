package irrigation

import (
	"time"

	"gorm.io/gorm"
)

type ConditionFunc func(*Condition) *Condition

type Condition struct {
	NodeID string

	From *time.Time
	To   *time.Time

	offset int
	limit  int
}

func WithNodeID(nodeID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.NodeID = nodeID
		return c
	}
}

func WithTimestampFrom(from time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		t := from.UTC()
		c.From = &t
		return c
	}
}

func WithTimestampTo(to time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		t := to.UTC()
		c.To = &t
		return c
	}
}

func WithOffsetLimit(offset, limit int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.offset = offset
		c.limit = limit
		return c
	}
}

func newCondition(conditions ...ConditionFunc) *Condition {
	c := &Condition{}
	for _, f := range conditions {
		c = f(c)
	}
	return c
}

func (c *Condition) where(query *gorm.DB) *gorm.DB {
	if c.NodeID != "" {
		query = query.Where("node_id = ?", c.NodeID)
	}
	if c.From != nil {
		query = query.Where("timestamp >= ?", *c.From)
	}
	if c.To != nil {
		query = query.Where("timestamp <= ?", *c.To)
	}
	return query
}

func (c *Condition) page(query *gorm.DB) *gorm.DB {
	if c.offset > 0 {
		query = query.Offset(c.offset)
	}
	if c.limit > 0 {
		query = query.Limit(c.limit)
	}
	return query
}
