package models

import "errors"

var (
	ErrNoOverlappingBuckets = errors.New("no overlapping 15-minute buckets between etf and btc series")
	ErrEmptySeries          = errors.New("series contains no bars")
	ErrNonPositivePrice     = errors.New("price must be positive")
	ErrUnorderedRows        = errors.New("rows are not in ascending timestamp order")
)
